package userservice

import (
	"context"
	"time"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/hasher"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/session"
)

// Service implementa a interface domain.UserService. Ele orquestra registro
// e login: não guarda entidade nenhuma, delega ao Repositório de usuários e
// ao Session Store injetados, e ao Hasher para as credenciais.
//
// O hashing (CPU-bound, potencialmente lento) roda sempre FORA de qualquer
// lock de repositório, para que a senha de uma requisição nunca bloqueie
// leituras não relacionadas.
type Service struct {
	repo     domain.UserRepository
	hasher   hasher.Hasher
	sessions *session.Store
	logger   logger.Logger
}

// NewService cria uma nova instância do serviço, injetando as dependências.
func NewService(repo domain.UserRepository, h hasher.Hasher, sessions *session.Store, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		hasher:   h,
		sessions: sessions,
		logger:   log,
	}
}

// Register registra um novo usuário no sistema.
func (s *Service) Register(ctx context.Context, registration domain.UserRegistration) (domain.UserInfo, error) {
	// 1. Validação básica
	if registration.Username == "" || registration.Email == "" || registration.Password == "" {
		return domain.UserInfo{}, apperror.NewValidationError("Username, email e senha são obrigatórios.")
	}
	if len(registration.Password) < 8 {
		return domain.UserInfo{}, apperror.NewValidationError("A senha deve ter pelo menos 8 caracteres.")
	}

	// 2. Hashing da senha (fora do lock do repositório)
	passwordHash, err := s.hasher.Hash(registration.Password)
	if err != nil {
		s.logger.Error("Falha ao gerar hash da senha.", err)
		return domain.UserInfo{}, apperror.NewHashingError("Falha ao gerar hash da senha", err)
	}

	// 3. Delegação ao Repositório; ConflictError (username duplicado) propaga inalterado
	user, err := s.repo.Add(ctx, registration.Username, registration.Email, passwordHash)
	if err != nil {
		return domain.UserInfo{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID, "username": user.Username})

	// 4. Resumo público: nunca devolve hash nem senha; last_login ausente
	return domain.UserInfo{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Login autentica um usuário e emite um token de sessão opaco.
// Usuário desconhecido e senha incorreta produzem o MESMO erro, de
// propósito, para impedir enumeração de usernames.
func (s *Service) Login(ctx context.Context, username string, password string) (string, error) {
	// 1. Validação básica
	if username == "" || password == "" {
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	// 2. Buscar usuário pela chave de unicidade
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		// NotFound vira Unauthorized, indistinguível de senha incorreta.
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	// 3. Verificação da senha (fora do lock, depois da chamada ao repositório)
	matched, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		// Hash armazenado malformado ou falha do primitivo: falha de servidor.
		s.logger.Error("Falha na verificação de credenciais.", err)
		return "", apperror.NewHashingError("Falha ao verificar credenciais", err)
	}
	if !matched {
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	// 4. Emissão do token com snapshot do usuário e last_login = agora
	now := time.Now().UTC()
	token, err := s.sessions.Issue(domain.UserInfo{
		Username:  user.Username,
		Email:     user.Email,
		LastLogin: &now,
	})
	if err != nil {
		s.logger.Error("Falha ao emitir token de sessão.", err)
		return "", apperror.NewInternalError("Falha ao emitir token de sessão.", err)
	}

	s.logger.Info("Login realizado.", map[string]interface{}{"username": user.Username})
	return token, nil
}

// GetUserInfo retorna o resumo público de um usuário pela chave de unicidade.
func (s *Service) GetUserInfo(ctx context.Context, username string) (domain.UserInfo, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		// NotFound propaga inalterado (aqui não há risco de enumeração:
		// a rota é protegida por sessão).
		return domain.UserInfo{}, err
	}

	return domain.UserInfo{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// ListUsers retorna o resumo público de todos os usuários registrados.
func (s *Service) ListUsers(ctx context.Context) ([]domain.UserInfo, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]domain.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, domain.UserInfo{
			Username: u.Username,
			Email:    u.Email,
		})
	}
	return infos, nil
}
