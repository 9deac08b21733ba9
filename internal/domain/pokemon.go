package domain

import (
	"fmt"
	"strings"
)

const officialArtworkURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"

// Pokemon is a resolved creature record. Height is in decimeters and
// Weight in hectograms, as returned upstream.
type Pokemon struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Types          []string `json:"types"`
	Stats          []Stat   `json:"stats"`
	Height         int      `json:"height"`
	Weight         int      `json:"weight"`
	BaseExperience int      `json:"baseExperience"`
	SpriteURL      string   `json:"spriteUrl,omitempty"`
	SpeciesURL     string   `json:"speciesUrl"`
}

type Stat struct {
	Name string `json:"name"`
	Base int    `json:"base"`
}

// ImageURL returns the front sprite, or the official artwork when the
// upstream record has none.
func (p *Pokemon) ImageURL() string {
	if p.SpriteURL != "" {
		return p.SpriteURL
	}
	return fmt.Sprintf(officialArtworkURL, p.ID)
}

func (p *Pokemon) StatMap() map[string]int {
	m := make(map[string]int, len(p.Stats))
	for _, s := range p.Stats {
		m[s.Name] = s.Base
	}
	return m
}

func (p *Pokemon) HeightMeters() float64 {
	return float64(p.Height) / 10
}

func (p *Pokemon) WeightKilograms() float64 {
	return float64(p.Weight) / 10
}

// NormalizeQuery turns free text or a numeric id into the path segment
// form used upstream.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

var popularQueries = map[string]string{
	"balbasaur":    "bulbasaur",
	"pichu":        "pichu",
	"mightyena":    "mightyena",
	"piplup":       "piplup",
	"snivy":        "snivy",
	"vivillon":     "vivillon",
	"rowlet":       "rowlet",
	"orbeetle":     "orbeetle",
	"walking wake": "walking-wake",
}

// PopularDisplayNames is the order the suggestions appear on the error page.
var PopularDisplayNames = []string{
	"Balbasaur", "Pichu", "Mightyena", "Piplup", "Snivy",
	"Vivillon", "Rowlet", "Orbeetle", "Walking Wake",
}

// PopularQuery maps a suggestion's display name to its canonical query.
// Names outside the table pass through lowercased.
func PopularQuery(display string) string {
	key := strings.ToLower(strings.TrimSpace(display))
	if q, ok := popularQueries[key]; ok {
		return q
	}
	return key
}
