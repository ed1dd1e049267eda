package productrepo

import (
	"context"
	"fmt"
	"sync"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// MemoryRepository implementa a interface domain.ProductRepository com uma
// coleção em memória. É o dono exclusivo da coleção: toda mutação é
// serializada por um único mutex, adquirido pela duração completa de cada
// operação (leituras incluídas), garantindo semântica linearizável.
type MemoryRepository struct {
	mu       sync.Mutex
	products []domain.Product
	nextID   uint64 // estritamente monotônico; nunca "último + 1", nunca reutilizado após delete
	logger   logger.Logger
}

// NewMemoryRepository cria um repositório de produtos vazio.
// Cada instância é explicitamente injetada pelo chamador (main ou teste);
// não existe singleton de processo.
func NewMemoryRepository(log logger.Logger) *MemoryRepository {
	return &MemoryRepository{
		products: make([]domain.Product, 0),
		logger:   log,
	}
}

// Add valida os campos, verifica a unicidade do nome e insere o produto.
// O ID atribuído é estritamente maior que qualquer ID já emitido por esta
// instância. Retorna uma cópia do produto criado.
func (r *MemoryRepository) Add(ctx context.Context, name string, price float64) (domain.Product, error) {
	// 1. Validação de campos (antes de tocar na coleção)
	if err := validate(name, price); err != nil {
		return domain.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 2. Unicidade do nome entre os produtos vivos
	for _, p := range r.products {
		if p.Name == name {
			return domain.Product{}, apperror.NewConflictError(
				fmt.Sprintf("Produto com nome '%s' já existe.", name))
		}
	}

	// 3. Atribuição de ID e inserção (contador lido e incrementado sob o mesmo lock)
	r.nextID++
	product := domain.Product{
		ID:    r.nextID,
		Name:  name,
		Price: price,
	}
	r.products = append(r.products, product)

	r.logger.Debug("Produto inserido no repositório.", map[string]interface{}{"product_id": product.ID, "name": product.Name})
	return product, nil
}

// List retorna uma cópia (snapshot) de todos os produtos vivos,
// na ordem de inserção.
func (r *MemoryRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]domain.Product, len(r.products))
	copy(snapshot, r.products)
	return snapshot, nil
}

// FindByID busca um produto pelo ID.
func (r *MemoryRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, apperror.NewNotFoundError(
		fmt.Sprintf("Produto com ID %d não encontrado.", id))
}

// Update substitui os campos mutáveis do produto. O ID é imutável.
// Revalida os campos exatamente como Add e re-verifica a unicidade do
// nome contra os demais produtos (excluindo o próprio).
func (r *MemoryRepository) Update(ctx context.Context, id uint64, name string, price float64) (domain.Product, error) {
	if err := validate(name, price); err != nil {
		return domain.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// NotFound tem precedência sobre o conflito de nome
	idx := -1
	for i, p := range r.products {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Product{}, apperror.NewNotFoundError(
			fmt.Sprintf("Produto com ID %d não encontrado.", id))
	}

	for i, p := range r.products {
		if i != idx && p.Name == name {
			return domain.Product{}, apperror.NewConflictError(
				fmt.Sprintf("Produto com nome '%s' já existe.", name))
		}
	}

	r.products[idx].Name = name
	r.products[idx].Price = price

	r.logger.Debug("Produto atualizado no repositório.", map[string]interface{}{"product_id": id})
	return r.products[idx], nil
}

// Delete remove o produto da coleção. O ID removido nunca é reatribuído.
func (r *MemoryRepository) Delete(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			r.logger.Debug("Produto removido do repositório.", map[string]interface{}{"product_id": id})
			return nil
		}
	}
	return apperror.NewNotFoundError(
		fmt.Sprintf("Produto com ID %d não encontrado.", id))
}

// validate aplica as regras de campo compartilhadas por Add e Update.
func validate(name string, price float64) error {
	if name == "" {
		return apperror.NewValidationError("O nome do produto não pode ser vazio.")
	}
	if price <= 0 {
		return apperror.NewValidationError("O preço do produto deve ser positivo.")
	}
	return nil
}
