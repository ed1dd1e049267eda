package product

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, name string, price float64) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id uint64) (domain.Product, error)
	UpdateProduct(ctx context.Context, id uint64, name string, price float64) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
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

	// Mapeamento de Erros de Negócio para Status HTTP
	status, category, message := apperror.MapToHTTPStatus(err)

	// Log apenas de erros graves
	if status >= 500 {
		h.Logger.Error("Erro interno no serviço de produto:", err)
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

// CollectionHandler despacha /v1/products por método (GET lista, POST cria).
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listProducts(w, r)
	case http.MethodPost:
		h.createProduct(w, r)
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// ItemHandler despacha /v1/products/{id} por método (GET, PUT, DELETE).
func (h *Handler) ItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getProductByID(w, r, id)
	case http.MethodPut:
		h.updateProduct(w, r, id)
	case http.MethodDelete:
		h.deleteProduct(w, r, id)
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// createProduct lida com a requisição POST /v1/products.
// @Summary Cria um novo produto
// @Description Valida nome e preço, garante nome único e insere no catálogo.
// @Tags products
// @Accept json
// @Produce json
// @Param product body domain.ProductRequest true "Dados do produto (nome e preço)"
// @Success 201 {object} domain.Product "Produto criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou campos fora das regras"
// @Failure 409 {object} domain.ErrorResponse "Nome de produto já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products [post]
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	product, err := h.Service.CreateProduct(r.Context(), req.Name, req.Price)
	h.handleServiceResponse(w, r, product, err, http.StatusCreated)
}

// listProducts lida com a requisição GET /v1/products.
// @Summary Lista os produtos do catálogo
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product "Snapshot dos produtos, em ordem de inserção"
// @Router /products [get]
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.ListProducts(r.Context())
	h.handleServiceResponse(w, r, products, err, http.StatusOK)
}

// getProductByID lida com a requisição GET /v1/products/{id}.
// @Summary Busca um produto pelo ID
// @Tags products
// @Produce json
// @Param id path int true "ID do produto"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /products/{id} [get]
func (h *Handler) getProductByID(w http.ResponseWriter, r *http.Request, id uint64) {
	product, err := h.Service.GetProductByID(r.Context(), id)
	h.handleServiceResponse(w, r, product, err, http.StatusOK)
}

// updateProduct lida com a requisição PUT /v1/products/{id}.
// @Summary Atualiza um produto existente
// @Description Substitui nome e preço; o ID é imutável.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "ID do produto"
// @Param product body domain.ProductRequest true "Novos dados do produto"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse "Campos fora das regras"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Nome de produto já cadastrado"
// @Router /products/{id} [put]
func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request, id uint64) {
	var req domain.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	product, err := h.Service.UpdateProduct(r.Context(), id, req.Name, req.Price)
	h.handleServiceResponse(w, r, product, err, http.StatusOK)
}

// deleteProduct lida com a requisição DELETE /v1/products/{id}.
// @Summary Remove um produto do catálogo
// @Tags products
// @Param id path int true "ID do produto"
// @Success 204 "Produto removido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /products/{id} [delete]
func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request, id uint64) {
	err := h.Service.DeleteProduct(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// extractID extrai o ID numérico do caminho /v1/products/{id}.
func extractID(path string) (uint64, error) {
	raw := strings.TrimPrefix(path, "/v1/products/")
	raw = strings.TrimSuffix(raw, "/")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperror.NewValidationError("O ID do produto deve ser um inteiro positivo.")
	}
	return id, nil
}
