package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dom/pokedex-web/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandoffRepository_SaveTake(t *testing.T) {
	repo := NewHandoffRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "slot", &domain.Handoff{Pokemon: &domain.Pokemon{ID: 1}}))
	require.NoError(t, repo.Save(ctx, "slot", &domain.Handoff{Pokemon: &domain.Pokemon{ID: 2}}))

	h, err := repo.Take(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, 2, h.Pokemon.ID)

	_, err = repo.Take(ctx, "slot")
	assert.ErrorIs(t, err, domain.ErrNoHandoff)
}

func TestHandoffRepository_ConcurrentTake(t *testing.T) {
	repo := NewHandoffRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "slot", &domain.Handoff{Pokemon: &domain.Pokemon{ID: 25}}))

	var wg sync.WaitGroup
	var mu sync.Mutex
	taken := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Take(ctx, "slot"); err == nil {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, taken)
}

func TestHandoffRepository_DeleteStale(t *testing.T) {
	repo := NewHandoffRepository()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Save(ctx, "old", &domain.Handoff{Pokemon: &domain.Pokemon{ID: 1}, PublishedAt: now.Add(-2 * time.Hour)}))
	require.NoError(t, repo.Save(ctx, "new", &domain.Handoff{Pokemon: &domain.Pokemon{ID: 2}, PublishedAt: now}))

	n, err := repo.DeleteStale(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Take(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrNoHandoff)
	_, err = repo.Take(ctx, "new")
	assert.NoError(t, err)
}
