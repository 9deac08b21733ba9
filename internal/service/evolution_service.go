package service

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/dom/pokedex-web/internal/domain"
	"golang.org/x/sync/errgroup"
)

type EvolutionService struct {
	api     Upstream
	flatten domain.FlattenPolicy
}

func NewEvolutionService(api Upstream, flatten domain.FlattenPolicy) *EvolutionService {
	if flatten == nil {
		flatten = domain.FlattenPreferringFirstBranch
	}
	return &EvolutionService{api: api, flatten: flatten}
}

// ResolveChain performs the species lookup and then the evolution chain
// lookup, and flattens the tree. Failures wrap domain.ErrChainUnavailable.
func (s *EvolutionService) ResolveChain(ctx context.Context, p *domain.Pokemon) (domain.EvolutionSequence, error) {
	ref := p.SpeciesURL
	if ref == "" {
		ref = strconv.Itoa(p.ID)
	}

	species, err := s.api.FetchSpecies(ctx, ref)
	if err != nil {
		return nil, chainErr(err)
	}

	root, err := s.api.FetchEvolutionChain(ctx, species.EvolutionChainURL)
	if err != nil {
		return nil, chainErr(err)
	}

	return s.flatten(root), nil
}

// Resolve is ResolveChain with failures degraded to an empty sequence.
func (s *EvolutionService) Resolve(ctx context.Context, p *domain.Pokemon) domain.EvolutionSequence {
	seq, err := s.ResolveChain(ctx, p)
	if err != nil {
		log.Printf("ERROR [evolution.Resolve] pokemon=%s: %v", p.Name, err)
		return domain.EvolutionSequence{}
	}
	return seq
}

// ResolveStages looks up every stage of seq concurrently. Stage order
// follows seq; a failed lookup leaves that stage's Pokemon nil.
func (s *EvolutionService) ResolveStages(ctx context.Context, seq domain.EvolutionSequence) []domain.EvolutionStage {
	stages := make([]domain.EvolutionStage, len(seq))

	var g errgroup.Group
	for i, name := range seq {
		i, name := i, name
		stages[i].Name = name
		g.Go(func() error {
			p, err := s.api.FetchPokemon(ctx, name)
			if err != nil {
				log.Printf("ERROR [evolution.ResolveStages] stage=%s: %v", name, err)
				return nil
			}
			stages[i].Pokemon = p
			return nil
		})
	}
	// Goroutines record failures in place and never return an error.
	g.Wait()

	return stages
}

func chainErr(err error) error {
	if errors.Is(err, domain.ErrChainUnavailable) {
		return err
	}
	return errors.Join(domain.ErrChainUnavailable, err)
}
