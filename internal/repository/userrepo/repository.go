package userrepo

import (
	"context"
	"fmt"
	"sync"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// MemoryRepository implementa a interface domain.UserRepository com uma
// coleção em memória, serializada por um único mutex (mesmo desenho do
// repositório de produtos). O hashing da senha acontece na camada de
// Serviço, ANTES da chamada: nenhuma operação cara roda sob o lock.
type MemoryRepository struct {
	mu     sync.Mutex
	users  []domain.User
	nextID uint64 // estritamente monotônico, incrementado sob o lock
	logger logger.Logger
}

// NewMemoryRepository cria um repositório de usuários vazio e isolado.
func NewMemoryRepository(log logger.Logger) *MemoryRepository {
	return &MemoryRepository{
		users:  make([]domain.User, 0),
		logger: log,
	}
}

// Add insere um novo usuário. passwordHash deve ser o hash já calculado;
// este repositório nunca vê a senha em texto puro.
func (r *MemoryRepository) Add(ctx context.Context, username string, email string, passwordHash string) (domain.User, error) {
	// 1. Validação de campos
	if username == "" || email == "" {
		return domain.User{}, apperror.NewValidationError("Username e email não podem ser vazios.")
	}
	if passwordHash == "" {
		return domain.User{}, apperror.NewValidationError("O hash da credencial não pode ser vazio.")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 2. Unicidade do username entre os usuários vivos
	for _, u := range r.users {
		if u.Username == username {
			return domain.User{}, apperror.NewConflictError(
				fmt.Sprintf("Usuário com username '%s' já existe.", username))
		}
	}

	// 3. Atribuição de ID e inserção
	r.nextID++
	user := domain.User{
		ID:           r.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	r.users = append(r.users, user)

	r.logger.Debug("Usuário inserido no repositório.", map[string]interface{}{"user_id": user.ID, "username": user.Username})
	return user, nil
}

// FindByID busca um usuário pelo ID.
func (r *MemoryRepository) FindByID(ctx context.Context, id uint64) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, apperror.NewNotFoundError(
		fmt.Sprintf("Usuário com ID %d não encontrado.", id))
}

// FindByUsername busca um usuário pela chave de unicidade.
func (r *MemoryRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, apperror.NewNotFoundError(
		fmt.Sprintf("Usuário com username '%s' não encontrado.", username))
}

// List retorna um snapshot de todos os usuários vivos, na ordem de inserção.
func (r *MemoryRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]domain.User, len(r.users))
	copy(snapshot, r.users)
	return snapshot, nil
}

// Update substitui os campos mutáveis do usuário (o ID é imutável),
// revalidando como Add e re-verificando a unicidade do username contra
// os demais usuários (excluindo o próprio).
func (r *MemoryRepository) Update(ctx context.Context, id uint64, username string, email string, passwordHash string) (domain.User, error) {
	if username == "" || email == "" {
		return domain.User{}, apperror.NewValidationError("Username e email não podem ser vazios.")
	}
	if passwordHash == "" {
		return domain.User{}, apperror.NewValidationError("O hash da credencial não pode ser vazio.")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// NotFound tem precedência sobre o conflito de username
	idx := -1
	for i, u := range r.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.User{}, apperror.NewNotFoundError(
			fmt.Sprintf("Usuário com ID %d não encontrado.", id))
	}

	for i, u := range r.users {
		if i != idx && u.Username == username {
			return domain.User{}, apperror.NewConflictError(
				fmt.Sprintf("Usuário com username '%s' já existe.", username))
		}
	}

	r.users[idx].Username = username
	r.users[idx].Email = email
	r.users[idx].PasswordHash = passwordHash

	r.logger.Debug("Usuário atualizado no repositório.", map[string]interface{}{"user_id": id})
	return r.users[idx], nil
}

// Delete remove o usuário da coleção. O ID removido nunca é reatribuído.
func (r *MemoryRepository) Delete(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			r.logger.Debug("Usuário removido do repositório.", map[string]interface{}{"user_id": id})
			return nil
		}
	}
	return apperror.NewNotFoundError(
		fmt.Sprintf("Usuário com ID %d não encontrado.", id))
}
