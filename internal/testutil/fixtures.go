package testutil

import (
	"fmt"

	"github.com/dom/pokedex-web/internal/domain"
)

// PokemonBuilder creates domain.Pokemon values for tests that do not go
// through the fake API.
type PokemonBuilder struct {
	pokemon domain.Pokemon
}

// NewPokemonBuilder starts from a sprite-less bulbasaur.
func NewPokemonBuilder() *PokemonBuilder {
	return &PokemonBuilder{pokemon: domain.Pokemon{
		ID:             1,
		Name:           "bulbasaur",
		Types:          []string{"grass", "poison"},
		Height:         7,
		Weight:         69,
		BaseExperience: 64,
		Stats: []domain.Stat{
			{Name: "hp", Base: 45},
			{Name: "attack", Base: 49},
			{Name: "special-attack", Base: 65},
		},
		SpeciesURL: "https://pokeapi.co/api/v2/pokemon-species/1/",
	}}
}

func (b *PokemonBuilder) WithID(id int) *PokemonBuilder {
	b.pokemon.ID = id
	b.pokemon.SpeciesURL = fmt.Sprintf("https://pokeapi.co/api/v2/pokemon-species/%d/", id)
	return b
}

func (b *PokemonBuilder) WithName(name string) *PokemonBuilder {
	b.pokemon.Name = name
	return b
}

func (b *PokemonBuilder) WithTypes(types ...string) *PokemonBuilder {
	b.pokemon.Types = types
	return b
}

func (b *PokemonBuilder) WithSprite(url string) *PokemonBuilder {
	b.pokemon.SpriteURL = url
	return b
}

func (b *PokemonBuilder) WithSize(height, weight int) *PokemonBuilder {
	b.pokemon.Height = height
	b.pokemon.Weight = weight
	return b
}

func (b *PokemonBuilder) Build() *domain.Pokemon {
	p := b.pokemon
	p.Types = append([]string(nil), b.pokemon.Types...)
	p.Stats = append([]domain.Stat(nil), b.pokemon.Stats...)
	return &p
}
