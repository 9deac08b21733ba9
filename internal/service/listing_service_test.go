package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dom/pokedex-web/internal/domain"
	"github.com/dom/pokedex-web/internal/pokeapi"
	"github.com/dom/pokedex-web/internal/service"
	"github.com/dom/pokedex-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestChunks(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		end       int
		size      int
		expected  int
		lastRange service.IDRange
	}{
		{"kanto", 1, 151, 20, 8, service.IDRange{Start: 141, End: 151}},
		{"exact multiple", 1, 40, 20, 2, service.IDRange{Start: 21, End: 40}},
		{"smaller than one chunk", 906, 910, 20, 1, service.IDRange{Start: 906, End: 910}},
		{"paldea", 906, 1025, 20, 6, service.IDRange{Start: 1006, End: 1025}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := service.Chunks(tt.start, tt.end, tt.size)
			require.Len(t, chunks, tt.expected)
			assert.Equal(t, tt.lastRange, chunks[len(chunks)-1])

			covered := 0
			for i, c := range chunks {
				assert.LessOrEqual(t, c.Len(), tt.size)
				if i > 0 {
					assert.Equal(t, chunks[i-1].End+1, c.Start)
				}
				covered += c.Len()
			}
			assert.Equal(t, tt.end-tt.start+1, covered)
		})
	}

	assert.Nil(t, service.Chunks(1, 10, 0))
	assert.Nil(t, service.Chunks(10, 1, 20))
}

func TestListGeneration_Kanto(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fetcher := newStubFetcher()
	listing := service.NewListingService(fetcher, 20)

	var chunks []service.Chunk
	err := listing.ListGeneration(context.Background(), 1, func(c service.Chunk) error {
		chunks = append(chunks, c)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, chunks, 8)
	last := chunks[len(chunks)-1]
	assert.Equal(t, "Loaded 151 of 151 Pokémon...", last.Progress())
	assert.True(t, last.Done())
	assert.Equal(t, "Loaded 20 of 151 Pokémon...", chunks[0].Progress())
	assert.False(t, chunks[0].Done())

	// Cards stay in id order across and within chunks.
	next := 1
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		for _, p := range c.Pokemon {
			assert.Equal(t, next, p.ID)
			next++
		}
	}
	assert.Equal(t, 152, next)

	calls, maxInFlight := fetcher.stats()
	assert.Equal(t, 151, calls)
	assert.LessOrEqual(t, maxInFlight, 20)
}

func TestListGeneration_OmitsFailures(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fetcher := newStubFetcher(3, 7)
	listing := service.NewListingService(fetcher, 5)

	var got []int
	var last service.Chunk
	err := listing.ListRange(context.Background(), 1, 10, func(c service.Chunk) error {
		for _, p := range c.Pokemon {
			got = append(got, p.ID)
		}
		last = c
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 4, 5, 6, 8, 9, 10}, got)
	// Progress counts attempted ids, not successes.
	assert.Equal(t, 10, last.Loaded)
}

func TestListGeneration_SequentialChunks(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fetcher := newStubFetcher()
	fetcher.delay = 5 * time.Millisecond
	listing := service.NewListingService(fetcher, 10)

	err := listing.ListRange(context.Background(), 1, 50, func(c service.Chunk) error {
		// The next batch must not start while this callback runs.
		calls, _ := fetcher.stats()
		assert.Equal(t, (c.Index+1)*10, calls)
		return nil
	})
	require.NoError(t, err)

	_, maxInFlight := fetcher.stats()
	assert.LessOrEqual(t, maxInFlight, 10)
}

func TestListGeneration_StopsOnCallbackError(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fetcher := newStubFetcher()
	listing := service.NewListingService(fetcher, 20)
	stop := errors.New("client went away")

	seen := 0
	err := listing.ListGeneration(context.Background(), 1, func(c service.Chunk) error {
		seen++
		return stop
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, seen)
	calls, _ := fetcher.stats()
	assert.Equal(t, 20, calls)
}

func TestListGeneration_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	listing := service.NewListingService(newStubFetcher(), 20)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := listing.ListGeneration(ctx, 1, func(c service.Chunk) error {
		t.Fatal("no chunk expected after cancellation")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListGeneration_UnknownOrdinal(t *testing.T) {
	listing := service.NewListingService(newStubFetcher(), 20)

	err := listing.ListGeneration(context.Background(), 42, func(service.Chunk) error { return nil })
	assert.ErrorIs(t, err, domain.ErrGenerationNotFound)
}

func TestListGeneration_AgainstPokeAPI(t *testing.T) {
	fake := testutil.NewFakePokeAPI(t)
	fake.SeedRange(1, 151)
	fake.SetDelay(2 * time.Millisecond)
	listing := service.NewListingService(pokeapi.NewClient(fake.BaseURL(), 5*time.Second), 20)

	chunks := 0
	loaded := 0
	err := listing.ListGeneration(context.Background(), 1, func(c service.Chunk) error {
		chunks++
		loaded += len(c.Pokemon)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 8, chunks)
	assert.Equal(t, 151, loaded)
	assert.Equal(t, 151, fake.Hits("/pokemon/"))
	assert.LessOrEqual(t, fake.MaxInFlight(), 20)
}
