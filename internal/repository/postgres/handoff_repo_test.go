package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/pokedex-web/internal/domain"
	"github.com/dom/pokedex-web/internal/repository/postgres"
	"github.com/dom/pokedex-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandoffRepository(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := postgres.NewHandoffRepository(tdb.DB)
	ctx := context.Background()

	t.Run("take on empty slot", func(t *testing.T) {
		tdb.Truncate(t)

		_, err := repo.Take(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNoHandoff)
	})

	t.Run("last write wins and take clears", func(t *testing.T) {
		tdb.Truncate(t)
		first := testutil.NewPokemonBuilder().Build()
		second := testutil.NewPokemonBuilder().WithID(25).WithName("pikachu").WithTypes("electric").
			WithSprite("https://sprites.example/25.png").WithSize(4, 60).Build()

		require.NoError(t, repo.Save(ctx, "slot", &domain.Handoff{Pokemon: first, PublishedAt: time.Now()}))
		require.NoError(t, repo.Save(ctx, "slot", &domain.Handoff{
			Pokemon:     second,
			Sequence:    domain.EvolutionSequence{"pichu", "pikachu", "raichu"},
			PublishedAt: time.Now(),
		}))

		h, err := repo.Take(ctx, "slot")
		require.NoError(t, err)
		assert.Equal(t, second, h.Pokemon)
		assert.Equal(t, domain.EvolutionSequence{"pichu", "pikachu", "raichu"}, h.Sequence)

		_, err = repo.Take(ctx, "slot")
		assert.ErrorIs(t, err, domain.ErrNoHandoff)
	})

	t.Run("sequence stays unset when not handed off", func(t *testing.T) {
		tdb.Truncate(t)

		require.NoError(t, repo.Save(ctx, "slot", &domain.Handoff{Pokemon: testutil.NewPokemonBuilder().Build(), PublishedAt: time.Now()}))

		h, err := repo.Take(ctx, "slot")
		require.NoError(t, err)
		assert.Nil(t, h.Sequence)
	})

	t.Run("delete stale", func(t *testing.T) {
		tdb.Truncate(t)
		now := time.Now()

		require.NoError(t, repo.Save(ctx, "old", &domain.Handoff{Pokemon: testutil.NewPokemonBuilder().Build(), PublishedAt: now.Add(-2 * time.Hour)}))
		require.NoError(t, repo.Save(ctx, "new", &domain.Handoff{Pokemon: testutil.NewPokemonBuilder().Build(), PublishedAt: now}))

		n, err := repo.DeleteStale(ctx, now.Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = repo.Take(ctx, "new")
		assert.NoError(t, err)
	})
}
