package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"gocatalog/internal/pkg/logger"
)

// RequestID atribui um identificador único a cada requisição, devolve-o no
// header X-Request-ID e registra um log de acesso estruturado ao final.
func RequestID(log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			start := time.Now()
			next.ServeHTTP(w, r)

			log.Debug("Requisição processada.", map[string]interface{}{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"elapsed_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}
