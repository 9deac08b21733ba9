package service

import (
	"context"
	"strconv"

	"github.com/dom/pokedex-web/internal/domain"
	"github.com/google/uuid"
)

// Outcome is what a page needs after a successful search.
type Outcome struct {
	Pokemon  *domain.Pokemon
	Sequence domain.EvolutionSequence
	Stages   []domain.EvolutionStage
}

// NavigationService ties search and prev/next stepping to the hand-off
// slot according to the configured page variant.
type NavigationService struct {
	api       PokemonFetcher
	evolution *EvolutionService
	handoff   *HandoffService
	variant   domain.PageVariant
	maxID     int
}

func NewNavigationService(api PokemonFetcher, evolution *EvolutionService, handoff *HandoffService, variant domain.PageVariant, maxID int) *NavigationService {
	if variant == "" {
		variant = domain.VariantRedirect
	}
	return &NavigationService{
		api:       api,
		evolution: evolution,
		handoff:   handoff,
		variant:   variant,
		maxID:     maxID,
	}
}

func (s *NavigationService) Variant() domain.PageVariant {
	return s.variant
}

func (s *NavigationService) MaxID() int {
	return s.maxID
}

// Lookup is a plain fetch with no hand-off.
func (s *NavigationService) Lookup(ctx context.Context, query string) (*domain.Pokemon, error) {
	return s.api.FetchPokemon(ctx, query)
}

// SearchInline resolves a Pokemon and its chain for rendering in place.
// Nothing is published.
func (s *NavigationService) SearchInline(ctx context.Context, query string) (*Outcome, error) {
	p, err := s.api.FetchPokemon(ctx, query)
	if err != nil {
		return nil, err
	}
	seq := s.evolution.Resolve(ctx, p)
	return &Outcome{
		Pokemon:  p,
		Sequence: seq,
		Stages:   s.evolution.ResolveStages(ctx, seq),
	}, nil
}

// SearchAndPublish resolves a Pokemon and hands it off to the session's
// next page load. The prefetch-chain variant resolves the evolution
// sequence first and hands that off too.
func (s *NavigationService) SearchAndPublish(ctx context.Context, sessionID uuid.UUID, query string) (*Outcome, error) {
	p, err := s.api.FetchPokemon(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.publish(ctx, sessionID, p)
}

// Step moves to the neighbouring id and publishes it. At either end of
// [1, max] it returns domain.ErrNavigationDisabled without a request.
func (s *NavigationService) Step(ctx context.Context, sessionID uuid.UUID, current int, dir domain.Direction) (*Outcome, error) {
	target, ok := domain.StepEntity(current, dir, s.maxID)
	if !ok {
		return nil, domain.ErrNavigationDisabled
	}
	p, err := s.api.FetchPokemon(ctx, strconv.Itoa(target))
	if err != nil {
		return nil, err
	}
	return s.publish(ctx, sessionID, p)
}

func (s *NavigationService) publish(ctx context.Context, sessionID uuid.UUID, p *domain.Pokemon) (*Outcome, error) {
	out := &Outcome{Pokemon: p}
	if s.variant == domain.VariantPrefetchChain {
		out.Sequence = s.evolution.Resolve(ctx, p)
	}
	if err := s.handoff.Publish(ctx, sessionID, p, out.Sequence); err != nil {
		return nil, err
	}
	return out, nil
}

// Load consumes the session's hand-off and completes it for rendering:
// the chain is resolved here unless it was handed off already.
func (s *NavigationService) Load(ctx context.Context, sessionID uuid.UUID) (*Outcome, error) {
	h, err := s.handoff.Consume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	seq := h.Sequence
	if seq == nil {
		seq = s.evolution.Resolve(ctx, h.Pokemon)
	}
	out := &Outcome{Pokemon: h.Pokemon, Sequence: seq}
	if seq.HasChain() {
		out.Stages = s.evolution.ResolveStages(ctx, seq)
	}
	return out, nil
}

// Neighbours reports the prev/next targets for id and whether each is
// enabled.
func (s *NavigationService) Neighbours(id int) (prev int, hasPrev bool, next int, hasNext bool) {
	prev, hasPrev = domain.StepEntity(id, domain.Previous, s.maxID)
	next, hasNext = domain.StepEntity(id, domain.Next, s.maxID)
	return
}
