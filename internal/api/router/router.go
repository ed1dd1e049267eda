package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"gocatalog/internal/api/product"
	"gocatalog/internal/api/user"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/middleware"
	"gocatalog/internal/pkg/session"
)

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(productHandler *product.Handler, userHandler *user.Handler, sessions *session.Store, log logger.Logger) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	mux := http.NewServeMux()

	// --- 1. Health Check e documentação ---
	mux.HandleFunc("/ping", PingHandler)
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// --- 2. Rotas do Módulo de Produtos (v1) ---
	mux.HandleFunc("/v1/products", productHandler.CollectionHandler)
	mux.HandleFunc("/v1/products/", productHandler.ItemHandler)

	// --- 3. Rotas do Módulo de Usuários (v1) ---
	mux.HandleFunc("/v1/register", userHandler.RegisterUserHandler)
	mux.HandleFunc("/v1/login", userHandler.LoginUserHandler)

	// Rotas protegidas: exigem sessão válida (token opaco emitido no login)
	authRequired := middleware.NewAuthMiddleware(sessions)
	mux.HandleFunc("/v1/users", authRequired(userHandler.ListUsersHandler))
	mux.HandleFunc("/v1/users/", authRequired(userHandler.GetUserHandler))

	// --- 4. Middlewares globais ---
	return middleware.RequestID(log)(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
