package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dom/pokedex-web/internal/domain"
	"github.com/dom/pokedex-web/internal/repository"
)

type handoffRepository struct {
	mu    sync.Mutex
	slots map[string]domain.Handoff
}

func NewHandoffRepository() *handoffRepository {
	return &handoffRepository{slots: make(map[string]domain.Handoff)}
}

func (r *handoffRepository) Save(ctx context.Context, slotKey string, handoff *domain.Handoff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[slotKey] = *handoff
	return nil
}

func (r *handoffRepository) Take(ctx context.Context, slotKey string) (*domain.Handoff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.slots[slotKey]
	if !ok {
		return nil, domain.ErrNoHandoff
	}
	delete(r.slots, slotKey)
	return &h, nil
}

func (r *handoffRepository) DeleteStale(ctx context.Context, olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for key, h := range r.slots {
		if h.PublishedAt.Before(olderThan) {
			delete(r.slots, key)
			n++
		}
	}
	return n, nil
}

func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Handoff: NewHandoffRepository(),
	}
}
