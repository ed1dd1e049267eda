package hasher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"gocatalog/internal/pkg/hasher"
)

func TestHashAndVerify(t *testing.T) {
	h := hasher.NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("longenough1")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	// O valor armazenado nunca é o texto puro
	assert.NotEqual(t, "longenough1", hash)

	matched, err := h.Verify("longenough1", hash)
	assert.NoError(t, err)
	assert.True(t, matched)
}

// TestVerify_WrongPassword: senha incorreta é (false, nil) — resultado de
// negócio, não falha do primitivo.
func TestVerify_WrongPassword(t *testing.T) {
	h := hasher.NewBcrypt(bcrypt.MinCost)

	hash, _ := h.Hash("longenough1")

	matched, err := h.Verify("wrongpass", hash)
	assert.NoError(t, err)
	assert.False(t, matched)
}

// TestVerify_MalformedHash: hash armazenado malformado é falha do primitivo.
func TestVerify_MalformedHash(t *testing.T) {
	h := hasher.NewBcrypt(bcrypt.MinCost)

	matched, err := h.Verify("longenough1", "isto-nao-e-um-hash-bcrypt")
	assert.Error(t, err)
	assert.False(t, matched)
}

// TestHash_SaltedPerCall: dois hashes da mesma senha diferem (salt novo a cada chamada).
func TestHash_SaltedPerCall(t *testing.T) {
	h := hasher.NewBcrypt(bcrypt.MinCost)

	first, err := h.Hash("longenough1")
	assert.NoError(t, err)
	second, err := h.Hash("longenough1")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

// TestNewBcrypt_CostOutOfRange: custo inválido cai no default sem quebrar.
func TestNewBcrypt_CostOutOfRange(t *testing.T) {
	h := hasher.NewBcrypt(99)

	hash, err := h.Hash("longenough1")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
