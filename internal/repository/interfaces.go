package repository

import (
	"context"
	"time"

	"github.com/dom/pokedex-web/internal/domain"
)

// HandoffRepository stores at most one hand-off per slot key. Save
// replaces whatever the slot held; Take reads and clears it, returning
// domain.ErrNoHandoff when the slot is empty.
type HandoffRepository interface {
	Save(ctx context.Context, slotKey string, handoff *domain.Handoff) error
	Take(ctx context.Context, slotKey string) (*domain.Handoff, error)
	DeleteStale(ctx context.Context, olderThan time.Time) (int64, error)
}

type Repositories struct {
	Handoff HandoffRepository
}
