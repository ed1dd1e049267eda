package productrepo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/repository/productrepo"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRepo() *productrepo.MemoryRepository {
	return productrepo.NewMemoryRepository(logger.NewLogger("error"))
}

// TestAdd_Success_InsertionOrder verifica que adds com nomes distintos
// aparecem todos no List, na ordem de inserção.
func TestAdd_Success_InsertionOrder(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	names := []string{"Teclado", "Mouse", "Monitor"}
	for _, name := range names {
		_, err := repo.Add(ctx, name, 99.90)
		assert.NoError(t, err)
	}

	products, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, products, 3)
	for i, name := range names {
		assert.Equal(t, name, products[i].Name)
	}
}

// TestAdd_Fail_Validation cobre os campos fora das regras.
func TestAdd_Fail_Validation(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	cases := []struct {
		name  string
		price float64
	}{
		{"", 10.0},        // nome vazio
		{"Widget", 0.0},   // preço zero
		{"Widget", -1.0},  // preço negativo
	}

	for _, tc := range cases {
		_, err := repo.Add(ctx, tc.name, tc.price)
		assert.Error(t, err)
		assert.IsType(t, &apperror.ValidationError{}, err)
	}

	// Nada deve ter sido inserido
	products, _ := repo.List(ctx)
	assert.Empty(t, products)
}

// TestAdd_Fail_DuplicateName: a colisão de nome sempre retorna Conflict,
// independentemente dos demais campos.
func TestAdd_Fail_DuplicateName(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	_, err := repo.Add(ctx, "Teclado", 120.0)
	assert.NoError(t, err)

	_, err = repo.Add(ctx, "Teclado", 350.0)
	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
}

// TestFindByID_RoundTrip: o produto recém-criado é recuperável pelo ID
// com os mesmos campos visíveis.
func TestFindByID_RoundTrip(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	created, err := repo.Add(ctx, "Monitor", 899.0)
	assert.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created, found)
}

func TestFindByID_NotFound(t *testing.T) {
	repo := newRepo()

	_, err := repo.FindByID(context.Background(), 42)
	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// TestDelete_ThenAdd_NeverReusesID: IDs removidos nunca são reatribuídos.
// O contador é estritamente monotônico, não "último elemento + 1".
func TestDelete_ThenAdd_NeverReusesID(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	first, _ := repo.Add(ctx, "Teclado", 120.0)
	second, _ := repo.Add(ctx, "Mouse", 60.0)

	// Remove o ÚLTIMO produto: um esquema "último + 1" reutilizaria o ID dele.
	assert.NoError(t, repo.Delete(ctx, second.ID))

	third, err := repo.Add(ctx, "Monitor", 899.0)
	assert.NoError(t, err)
	assert.NotEqual(t, second.ID, third.ID)
	assert.Greater(t, third.ID, second.ID)
	assert.Greater(t, third.ID, first.ID)
}

func TestDelete_NotFound(t *testing.T) {
	repo := newRepo()

	err := repo.Delete(context.Background(), 7)
	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// TestUpdate_Success: substitui os campos mutáveis; o ID permanece.
func TestUpdate_Success(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	created, _ := repo.Add(ctx, "Teclado", 120.0)

	updated, err := repo.Update(ctx, created.ID, "Teclado Mecânico", 250.0)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Teclado Mecânico", updated.Name)
	assert.Equal(t, 250.0, updated.Price)

	// A atualização é visível no List
	products, _ := repo.List(ctx)
	assert.Len(t, products, 1)
	assert.Equal(t, updated, products[0])
}

// TestUpdate_KeepOwnName: manter o próprio nome não é conflito.
func TestUpdate_KeepOwnName(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	created, _ := repo.Add(ctx, "Teclado", 120.0)

	_, err := repo.Update(ctx, created.ID, "Teclado", 150.0)
	assert.NoError(t, err)
}

// TestUpdate_Fail_DuplicateName: renomear para o nome de OUTRO produto vivo é conflito.
func TestUpdate_Fail_DuplicateName(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	repo.Add(ctx, "Teclado", 120.0)
	mouse, _ := repo.Add(ctx, "Mouse", 60.0)

	_, err := repo.Update(ctx, mouse.ID, "Teclado", 60.0)
	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
}

// TestUpdate_Fail_Validation: Update revalida exatamente como Add.
func TestUpdate_Fail_Validation(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	created, _ := repo.Add(ctx, "Teclado", 120.0)

	_, err := repo.Update(ctx, created.ID, "", 120.0)
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = repo.Update(ctx, created.ID, "Teclado", -5.0)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestUpdate_NotFoundPrecedesConflict: ID ausente retorna NotFound mesmo
// que o novo nome colida com um produto existente.
func TestUpdate_NotFoundPrecedesConflict(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	repo.Add(ctx, "Teclado", 120.0)

	_, err := repo.Update(ctx, 999, "Teclado", 50.0)
	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// TestConcurrentAdd_Linearizable: adds concorrentes com chaves distintas
// devem todos vencer, sem updates perdidos e sem IDs duplicados.
func TestConcurrentAdd_Linearizable(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	errCh := make(chan error, workers*perWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				name := fmt.Sprintf("produto-%d-%d", w, i)
				if _, err := repo.Add(ctx, name, 10.0); err != nil {
					errCh <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Fatalf("add concorrente falhou: %v", err)
	}

	products, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, products, workers*perWorker)

	seen := make(map[uint64]bool, len(products))
	for _, p := range products {
		assert.False(t, seen[p.ID], "ID duplicado: %d", p.ID)
		seen[p.ID] = true
	}
}

// TestList_ReturnsSnapshot: mutações posteriores não afetam um List anterior.
func TestList_ReturnsSnapshot(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	created, _ := repo.Add(ctx, "Teclado", 120.0)

	before, _ := repo.List(ctx)
	repo.Update(ctx, created.ID, "Mouse", 60.0)

	assert.Equal(t, "Teclado", before[0].Name)
}
