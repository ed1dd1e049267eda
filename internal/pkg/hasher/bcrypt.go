package hasher

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt é a implementação concreta da interface Hasher usando bcrypt.
// O bcrypt gera e embute o salt automaticamente a partir de crypto/rand.
type Bcrypt struct {
	cost int
}

// NewBcrypt cria um hasher bcrypt com o custo informado.
// Custos fora da faixa válida caem no bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash gera um hash forte (salted) para a senha informada.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compara a senha em texto puro com o hash armazenado.
// Senha incorreta não é erro; só falhas do próprio primitivo são.
func (b *Bcrypt) Verify(plaintext string, storedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	// Hash malformado, custo inválido etc.
	return false, err
}
