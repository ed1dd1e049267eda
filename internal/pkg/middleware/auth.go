package middleware

import (
	"context"
	"net/http"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/session"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
// Usamos um tipo próprio para garantir que a chave seja única e não haja
// conflito com chaves string de outros pacotes.
type ContextKey int

const (
	// SessionUserKey guarda o snapshot do usuário autenticado no contexto.
	SessionUserKey ContextKey = iota
)

// NewAuthMiddleware cria um middleware que valida o token de sessão opaco
// vindo em `Authorization: Bearer <token>` contra o Session Store e anexa
// o snapshot do usuário ao contexto da requisição.
func NewAuthMiddleware(sessions *session.Store) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
				http.Error(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado.").Error(), http.StatusUnauthorized)
				return
			}

			token := authHeader[7:]

			// 2. Resolver o token no Session Store
			info, ok := sessions.Get(token)
			if !ok {
				http.Error(w, apperror.NewUnauthorizedError("Sessão inválida.").Error(), http.StatusUnauthorized)
				return
			}

			// 3. Anexar o snapshot ao contexto e seguir
			ctx := context.WithValue(r.Context(), SessionUserKey, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetSessionUserFromContext extrai o snapshot do usuário autenticado no handler.
func GetSessionUserFromContext(ctx context.Context) (domain.UserInfo, bool) {
	info, ok := ctx.Value(SessionUserKey).(domain.UserInfo)
	return info, ok
}
