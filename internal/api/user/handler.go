package user

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// UserService define o contrato para as operações de registro e login.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.UserInfo, error)
	Login(ctx context.Context, username string, password string) (string, error)
	GetUserInfo(ctx context.Context, username string) (domain.UserInfo, error)
	ListUsers(ctx context.Context) ([]domain.UserInfo, error)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta.", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error("Erro interno no serviço de usuário:", err)
	}

	errorResponse := domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// RegisterUserHandler lida com a requisição POST /v1/register.
// @Summary Registra um novo usuário
// @Description Valida as credenciais, hasheia a senha e grava o usuário. O hash nunca é devolvido.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Credenciais de registro (username, email e senha)"
// @Success 201 {object} domain.UserInfo "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou senha curta demais"
// @Failure 409 {object} domain.ErrorResponse "Username já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	var reg domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	info, err := h.Service.Register(r.Context(), reg)
	h.handleServiceResponse(w, r, info, err, http.StatusCreated)
}

// LoginUserHandler lida com a requisição POST /v1/login.
// @Summary Autentica um usuário e emite um token de sessão opaco
// @Description Verifica as credenciais e devolve o token no corpo e no header Authorization (Bearer).
// @Tags users
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais do usuário (username e senha)"
// @Success 200 {object} map[string]string "Token de sessão emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	token, err := h.Service.Login(r.Context(), loginReq.Username, loginReq.Password)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	// O token volta também como header, no formato convencional Bearer.
	w.Header().Set("Authorization", "Bearer "+token)
	h.handleServiceResponse(w, r, map[string]string{"token": token}, nil, http.StatusOK)
}

// ListUsersHandler lida com a requisição GET /v1/users (rota protegida).
// @Summary Lista os usuários registrados
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.UserInfo
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente ou inválida"
// @Router /users [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	infos, err := h.Service.ListUsers(r.Context())
	h.handleServiceResponse(w, r, infos, err, http.StatusOK)
}

// GetUserHandler lida com a requisição GET /v1/users/{username} (rota protegida).
// @Summary Busca o resumo público de um usuário
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username do usuário"
// @Success 200 {object} domain.UserInfo
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente ou inválida"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{username} [get]
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	username := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/users/"), "/")
	if username == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Username ausente no caminho."), http.StatusOK)
		return
	}

	info, err := h.Service.GetUserInfo(r.Context(), username)
	h.handleServiceResponse(w, r, info, err, http.StatusOK)
}
