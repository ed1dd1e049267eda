package domain

import "context"

// Product representa o item principal do catálogo (a Entidade).
// O ID é atribuído pelo Repositório no momento da criação e nunca
// é reutilizado durante a vida do processo.
type Product struct {
	ID    uint64  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ProductRequest representa o payload de entrada para criação e atualização
// de produtos. O ID nunca é aceito do cliente.
type ProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// --- Interfaces de Contrato (O CORAÇÃO DA ARQUITETURA LIMPA) ---

// ProductService é a interface que a camada de Serviço (Business Logic) DEVE implementar.
// Ela define o que o Handler (Camada API) pode pedir para a camada de Serviço fazer.
type ProductService interface {
	CreateProduct(ctx context.Context, name string, price float64) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id uint64) (Product, error)
	UpdateProduct(ctx context.Context, id uint64, name string, price float64) (Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

// ProductRepository é a interface que a camada de Repositório (Data Access) DEVE implementar.
// Hoje existe uma única implementação em memória (productrepo); a interface deixa
// espaço para uma implementação persistente no futuro sem tocar na camada de Serviço.
type ProductRepository interface {
	Add(ctx context.Context, name string, price float64) (Product, error)
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id uint64) (Product, error)
	Update(ctx context.Context, id uint64, name string, price float64) (Product, error)
	Delete(ctx context.Context, id uint64) error
}
