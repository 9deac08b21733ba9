package domain

// Generation is a contiguous, inclusive range of national dex ids.
type Generation struct {
	Ordinal int    `json:"ordinal"`
	Region  string `json:"region"`
	StartID int    `json:"startId"`
	EndID   int    `json:"endId"`
}

func (g Generation) Size() int {
	return g.EndID - g.StartID + 1
}

var Generations = []Generation{
	{Ordinal: 1, Region: "Kanto", StartID: 1, EndID: 151},
	{Ordinal: 2, Region: "Johto", StartID: 152, EndID: 251},
	{Ordinal: 3, Region: "Hoenn", StartID: 252, EndID: 386},
	{Ordinal: 4, Region: "Sinnoh", StartID: 387, EndID: 493},
	{Ordinal: 5, Region: "Unova", StartID: 494, EndID: 649},
	{Ordinal: 6, Region: "Kalos", StartID: 650, EndID: 721},
	{Ordinal: 7, Region: "Alola", StartID: 722, EndID: 809},
	{Ordinal: 8, Region: "Galar", StartID: 810, EndID: 905},
	{Ordinal: 9, Region: "Paldea", StartID: 906, EndID: 1025},
}

// MaxPokemonID is the last id covered by Generations.
const MaxPokemonID = 1025

func GenerationByOrdinal(ordinal int) (Generation, error) {
	if ordinal < 1 || ordinal > len(Generations) {
		return Generation{}, ErrGenerationNotFound
	}
	return Generations[ordinal-1], nil
}
