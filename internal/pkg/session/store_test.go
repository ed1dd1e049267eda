package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/session"
)

func TestIssue_TokensAreOpaqueAndDistinct(t *testing.T) {
	store := session.NewStore()

	now := time.Now().UTC()
	info := domain.UserInfo{Username: "alice", Email: "a@x.com", LastLogin: &now}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := store.Issue(info)
		assert.NoError(t, err)
		// 16 bytes em hexadecimal: 32 caracteres, sempre
		assert.Len(t, token, 32)
		assert.False(t, seen[token], "token repetido: %s", token)
		seen[token] = true
	}

	assert.Equal(t, 100, store.Len())
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	store := session.NewStore()

	now := time.Now().UTC()
	token, err := store.Issue(domain.UserInfo{Username: "alice", Email: "a@x.com", LastLogin: &now})
	assert.NoError(t, err)

	info, ok := store.Get(token)
	assert.True(t, ok)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, "a@x.com", info.Email)
	assert.NotNil(t, info.LastLogin)
	assert.Equal(t, now, *info.LastLogin)
}

func TestGet_UnknownToken(t *testing.T) {
	store := session.NewStore()

	_, ok := store.Get("deadbeefdeadbeefdeadbeefdeadbeef")
	assert.False(t, ok)
}

// TestIssue_Concurrent: emissões concorrentes nunca colidem nem se perdem.
func TestIssue_Concurrent(t *testing.T) {
	store := session.NewStore()

	const workers = 20
	var wg sync.WaitGroup
	tokens := make(chan string, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := store.Issue(domain.UserInfo{Username: "alice", Email: "a@x.com"})
			if err == nil {
				tokens <- token
			}
		}()
	}
	wg.Wait()
	close(tokens)

	seen := make(map[string]bool)
	for token := range tokens {
		assert.False(t, seen[token])
		seen[token] = true
	}
	assert.Len(t, seen, workers)
	assert.Equal(t, workers, store.Len())
}
