package productservice

import (
	"context"

	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/logger"
)

// Service implementa a interface domain.ProductService.
// As regras de validação e unicidade do catálogo vivem no Repositório
// (dono do lock); esta camada é um repasse fino que existe para manter a
// simetria da arquitetura e dar um ponto de extensão para regras futuras.
type Service struct {
	repo   domain.ProductRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo domain.ProductRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// CreateProduct delega a criação ao Repositório.
func (s *Service) CreateProduct(ctx context.Context, name string, price float64) (domain.Product, error) {
	product, err := s.repo.Add(ctx, name, price)
	if err != nil {
		return domain.Product{}, err
	}
	s.logger.Info("Produto criado.", map[string]interface{}{"product_id": product.ID, "name": product.Name})
	return product, nil
}

// ListProducts retorna o snapshot de todos os produtos.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// GetProductByID busca um produto pelo ID.
func (s *Service) GetProductByID(ctx context.Context, id uint64) (domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProduct delega a atualização ao Repositório.
func (s *Service) UpdateProduct(ctx context.Context, id uint64, name string, price float64) (domain.Product, error) {
	product, err := s.repo.Update(ctx, id, name, price)
	if err != nil {
		return domain.Product{}, err
	}
	s.logger.Info("Produto atualizado.", map[string]interface{}{"product_id": id})
	return product, nil
}

// DeleteProduct delega a remoção ao Repositório.
func (s *Service) DeleteProduct(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Produto removido.", map[string]interface{}{"product_id": id})
	return nil
}
