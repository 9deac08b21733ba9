package service

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/dom/pokedex-web/internal/domain"
	"golang.org/x/sync/errgroup"
)

// IDRange is an inclusive range of Pokemon ids.
type IDRange struct {
	Start int
	End   int
}

func (r IDRange) Len() int {
	return r.End - r.Start + 1
}

// Chunks splits [start, end] into consecutive ranges of at most size ids.
func Chunks(start, end, size int) []IDRange {
	if size < 1 || end < start {
		return nil
	}
	chunks := make([]IDRange, 0, (end-start)/size+1)
	for i := start; i <= end; i += size {
		chunks = append(chunks, IDRange{Start: i, End: min(i+size-1, end)})
	}
	return chunks
}

// Chunk is one settled batch. Pokemon holds only successful lookups, in
// id order.
type Chunk struct {
	Index   int
	Range   IDRange
	Pokemon []*domain.Pokemon
	Loaded  int
	Total   int
}

func (c Chunk) Progress() string {
	return fmt.Sprintf("Loaded %d of %d Pokémon...", c.Loaded, c.Total)
}

func (c Chunk) Done() bool {
	return c.Loaded >= c.Total
}

// ListingService loads id ranges in fixed-size batches. Each batch runs
// concurrently; the next batch is not issued until the callback for the
// previous one returns.
type ListingService struct {
	api       PokemonFetcher
	batchSize int
}

func NewListingService(api PokemonFetcher, batchSize int) *ListingService {
	if batchSize < 1 {
		batchSize = 20
	}
	return &ListingService{api: api, batchSize: batchSize}
}

func (s *ListingService) BatchSize() int {
	return s.batchSize
}

func (s *ListingService) ListGeneration(ctx context.Context, ordinal int, onChunk func(Chunk) error) error {
	gen, err := domain.GenerationByOrdinal(ordinal)
	if err != nil {
		return err
	}
	return s.ListRange(ctx, gen.StartID, gen.EndID, onChunk)
}

func (s *ListingService) ListRange(ctx context.Context, start, end int, onChunk func(Chunk) error) error {
	total := end - start + 1
	for i, r := range Chunks(start, end, s.batchSize) {
		if err := ctx.Err(); err != nil {
			return err
		}

		chunk := Chunk{
			Index:   i,
			Range:   r,
			Pokemon: s.fetchBatch(ctx, r),
			Loaded:  min(r.End-start+1, total),
			Total:   total,
		}
		if err := onChunk(chunk); err != nil {
			return err
		}
	}
	return nil
}

func (s *ListingService) fetchBatch(ctx context.Context, r IDRange) []*domain.Pokemon {
	results := make([]*domain.Pokemon, r.Len())

	var g errgroup.Group
	for i := range results {
		i := i
		id := r.Start + i
		g.Go(func() error {
			p, err := s.api.FetchPokemon(ctx, strconv.Itoa(id))
			if err != nil {
				log.Printf("ERROR [listing.fetchBatch] id=%d: %v", id, err)
				return nil
			}
			results[i] = p
			return nil
		})
	}
	// Goroutines record failures in place and never return an error.
	g.Wait()

	loaded := make([]*domain.Pokemon, 0, len(results))
	for _, p := range results {
		if p != nil {
			loaded = append(loaded, p)
		}
	}
	return loaded
}
