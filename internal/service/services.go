package service

import (
	"context"

	"github.com/dom/pokedex-web/internal/config"
	"github.com/dom/pokedex-web/internal/domain"
	"github.com/dom/pokedex-web/internal/pokeapi"
	"github.com/dom/pokedex-web/internal/repository"
)

// PokemonFetcher resolves a name or id to a single Pokemon.
type PokemonFetcher interface {
	FetchPokemon(ctx context.Context, query string) (*domain.Pokemon, error)
}

// Upstream is the slice of the PokeAPI the services depend on.
type Upstream interface {
	PokemonFetcher
	FetchSpecies(ctx context.Context, ref string) (*pokeapi.Species, error)
	FetchEvolutionChain(ctx context.Context, url string) (*domain.EvolutionNode, error)
}

type Services struct {
	Evolution  *EvolutionService
	Handoff    *HandoffService
	Listing    *ListingService
	Navigation *NavigationService
}

func NewServices(repos *repository.Repositories, api Upstream, cfg *config.Config) *Services {
	evolution := NewEvolutionService(api, domain.FlattenPolicyByName(cfg.FlattenPolicy))
	handoff := NewHandoffService(repos.Handoff)
	return &Services{
		Evolution:  evolution,
		Handoff:    handoff,
		Listing:    NewListingService(api, cfg.BatchSize),
		Navigation: NewNavigationService(api, evolution, handoff, cfg.PageVariant(), cfg.MaxPokemonID),
	}
}
