package service

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/dom/pokedex-web/internal/domain"
	"github.com/dom/pokedex-web/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// HandoffService owns the per-session hand-off slot. A later Publish
// replaces an earlier one; Consume empties the slot.
type HandoffService struct {
	repo repository.HandoffRepository
	now  func() time.Time
}

func NewHandoffService(repo repository.HandoffRepository) *HandoffService {
	return &HandoffService{repo: repo, now: time.Now}
}

// SlotKey derives the storage key for a session. Raw session ids are
// never persisted.
func SlotKey(sessionID uuid.UUID) string {
	sum := blake2b.Sum256(sessionID[:])
	return hex.EncodeToString(sum[:])
}

func (s *HandoffService) Publish(ctx context.Context, sessionID uuid.UUID, p *domain.Pokemon, seq domain.EvolutionSequence) error {
	return s.repo.Save(ctx, SlotKey(sessionID), &domain.Handoff{
		Pokemon:     p,
		Sequence:    seq,
		PublishedAt: s.now(),
	})
}

// Consume returns domain.ErrNoHandoff when nothing was published.
func (s *HandoffService) Consume(ctx context.Context, sessionID uuid.UUID) (*domain.Handoff, error) {
	return s.repo.Take(ctx, SlotKey(sessionID))
}

// Sweep drops slots that were never consumed within ttl.
func (s *HandoffService) Sweep(ctx context.Context, ttl time.Duration) (int64, error) {
	return s.repo.DeleteStale(ctx, s.now().Add(-ttl))
}
