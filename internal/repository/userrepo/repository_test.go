package userrepo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/repository/userrepo"
)

func newRepo() *userrepo.MemoryRepository {
	return userrepo.NewMemoryRepository(logger.NewLogger("error"))
}

func TestAdd_Success(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	user, err := repo.Add(ctx, "alice", "a@x.com", "$2a$10$fakehashfakehashfakehash")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	// O repositório guarda exatamente o hash recebido; nunca vê texto puro.
	assert.Equal(t, "$2a$10$fakehashfakehashfakehash", user.PasswordHash)
	assert.NotZero(t, user.ID)
}

func TestAdd_Fail_EmptyFields(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	_, err := repo.Add(ctx, "", "a@x.com", "hash")
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = repo.Add(ctx, "alice", "", "hash")
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = repo.Add(ctx, "alice", "a@x.com", "")
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestAdd_Fail_DuplicateUsername: a chave de unicidade é o username;
// email e hash diferentes não mudam o resultado.
func TestAdd_Fail_DuplicateUsername(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	_, err := repo.Add(ctx, "alice", "a@x.com", "hash-1")
	assert.NoError(t, err)

	_, err = repo.Add(ctx, "alice", "outra@x.com", "hash-2")
	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
}

func TestFindByUsername(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	created, _ := repo.Add(ctx, "alice", "a@x.com", "hash")

	found, err := repo.FindByUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = repo.FindByUsername(ctx, "bob")
	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestFindByID(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	created, _ := repo.Add(ctx, "alice", "a@x.com", "hash")

	found, err := repo.FindByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = repo.FindByID(ctx, 99)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestUpdate(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	alice, _ := repo.Add(ctx, "alice", "a@x.com", "hash-1")
	bob, _ := repo.Add(ctx, "bob", "b@x.com", "hash-2")

	// Substitui os campos mutáveis; o ID permanece
	updated, err := repo.Update(ctx, alice.ID, "alice2", "a2@x.com", "hash-3")
	assert.NoError(t, err)
	assert.Equal(t, alice.ID, updated.ID)
	assert.Equal(t, "alice2", updated.Username)

	// Renomear para o username de OUTRO usuário vivo é conflito
	_, err = repo.Update(ctx, bob.ID, "alice2", "b@x.com", "hash-2")
	assert.IsType(t, &apperror.ConflictError{}, err)

	// Manter o próprio username não é conflito
	_, err = repo.Update(ctx, bob.ID, "bob", "b2@x.com", "hash-2")
	assert.NoError(t, err)

	// ID ausente: NotFound
	_, err = repo.Update(ctx, 99, "carol", "c@x.com", "hash")
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// TestDelete_ThenAdd_NeverReusesID: o contador é monotônico também aqui.
func TestDelete_ThenAdd_NeverReusesID(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	repo.Add(ctx, "alice", "a@x.com", "hash")
	bob, _ := repo.Add(ctx, "bob", "b@x.com", "hash")

	assert.NoError(t, repo.Delete(ctx, bob.ID))

	carol, err := repo.Add(ctx, "carol", "c@x.com", "hash")
	assert.NoError(t, err)
	assert.Greater(t, carol.ID, bob.ID)

	err = repo.Delete(ctx, 99)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestList_InsertionOrder(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	usernames := []string{"alice", "bob", "carol"}
	for _, u := range usernames {
		_, err := repo.Add(ctx, u, u+"@x.com", "hash")
		assert.NoError(t, err)
	}

	users, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 3)
	for i, u := range usernames {
		assert.Equal(t, u, users[i].Username)
	}
}

// TestConcurrentAdd_DistinctUsernames: registros concorrentes com chaves
// distintas vencem todos, sem IDs duplicados.
func TestConcurrentAdd_DistinctUsernames(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	errCh := make(chan error, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			username := fmt.Sprintf("user-%d", w)
			if _, err := repo.Add(ctx, username, username+"@x.com", "hash"); err != nil {
				errCh <- err
			}
		}(w)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Fatalf("add concorrente falhou: %v", err)
	}

	users, _ := repo.List(ctx)
	assert.Len(t, users, workers)

	seen := make(map[uint64]bool, workers)
	for _, u := range users {
		assert.False(t, seen[u.ID], "ID duplicado: %d", u.ID)
		seen[u.ID] = true
	}
}

// TestConcurrentAdd_SameUsername: sob corrida pela MESMA chave, exatamente
// um add vence; os demais recebem Conflict.
func TestConcurrentAdd_SameUsername(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	conflicts := 0

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Add(ctx, "alice", "a@x.com", "hash"); err != nil {
				mu.Lock()
				conflicts++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers-1, conflicts)

	users, _ := repo.List(ctx)
	assert.Len(t, users, 1)
}
