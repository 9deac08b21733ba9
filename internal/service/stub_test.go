package service_test

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dom/pokedex-web/internal/domain"
)

// stubFetcher serves "pokemon-<id>" for every numeric id without touching
// the network, so goroutine accounting sees only the service's own work.
type stubFetcher struct {
	mu          sync.Mutex
	missing     map[int]bool
	delay       time.Duration
	calls       int
	inFlight    int
	maxInFlight int
}

func newStubFetcher(missing ...int) *stubFetcher {
	s := &stubFetcher{missing: make(map[int]bool)}
	for _, id := range missing {
		s.missing[id] = true
	}
	return s
}

func (s *stubFetcher) FetchPokemon(ctx context.Context, query string) (*domain.Pokemon, error) {
	s.mu.Lock()
	s.calls++
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	delay := s.delay
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrNotFound, ctx.Err())
		}
	}

	id, err := strconv.Atoi(query)
	if err != nil || s.missing[id] {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, query)
	}
	return &domain.Pokemon{ID: id, Name: fmt.Sprintf("pokemon-%d", id)}, nil
}

func (s *stubFetcher) stats() (calls, maxInFlight int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls, s.maxInFlight
}
