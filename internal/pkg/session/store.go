package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"gocatalog/internal/domain"
)

// tokenBytes define o tamanho do token em bytes (128 bits).
const tokenBytes = 16

// Store é o dono exclusivo do mapeamento token -> sessão.
// Todas as operações públicas adquirem o mutex pela duração completa.
// Não há expiração nem revogação: tokens vivem até o fim do processo.
type Store struct {
	mu       sync.Mutex
	sessions map[string]domain.UserInfo
}

// NewStore cria um Session Store vazio.
// Cada instância é injetada explicitamente (nada de singleton global),
// para que testes possam usar um store isolado.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]domain.UserInfo),
	}
}

// Issue gera um token opaco e imprevisível, registra o snapshot do usuário
// e retorna o token. O token nunca colide com um token já emitido: com
// 128 bits de entropia a colisão é teórica, mas se acontecer o token é
// descartado e um novo é gerado.
func (s *Store) Issue(info domain.UserInfo) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		token, err := newToken()
		if err != nil {
			return "", fmt.Errorf("falha ao gerar token de sessão: %w", err)
		}
		if _, exists := s.sessions[token]; exists {
			continue
		}
		s.sessions[token] = info
		return token, nil
	}
}

// Get retorna o snapshot associado ao token, se a sessão existir.
func (s *Store) Get(token string) (domain.UserInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.sessions[token]
	return info, ok
}

// Len retorna o número de sessões vivas (usado em testes e health check).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// newToken lê 16 bytes de crypto/rand e codifica em hexadecimal.
func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
