package domain

import (
	"context"
	"time"
)

// User representa a entidade do usuário no sistema.
// PasswordHash guarda sempre o hash da credencial, nunca o texto puro.
type User struct {
	ID           uint64 `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Oculta o hash da senha no JSON de resposta
}

// UserInfo é o resumo público do usuário, devolvido pela API.
// LastLogin só é preenchido no snapshot guardado na sessão.
type UserInfo struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRepository define o contrato de armazenamento para a entidade User.
// O hashing da senha acontece na camada de Serviço, fora do lock do
// repositório; Add recebe o hash já calculado.
type UserRepository interface {
	Add(ctx context.Context, username string, email string, passwordHash string) (User, error)
	List(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id uint64) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, id uint64, username string, email string, passwordHash string) (User, error)
	Delete(ctx context.Context, id uint64) error
}

// UserService define o contrato de lógica de negócio para a entidade User.
type UserService interface {
	Register(ctx context.Context, registration UserRegistration) (UserInfo, error)
	Login(ctx context.Context, username string, password string) (string, error)
	GetUserInfo(ctx context.Context, username string) (UserInfo, error)
	ListUsers(ctx context.Context) ([]UserInfo, error)
}
