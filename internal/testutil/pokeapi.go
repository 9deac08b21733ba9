package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dom/pokedex-web/internal/domain"
)

// FakePokeAPI is an in-process stand-in for the PokeAPI REST service,
// serving the same JSON shapes under /api/v2.
type FakePokeAPI struct {
	Server *httptest.Server

	mu          sync.Mutex
	pokemon     map[string]*FakePokemon
	species     map[int]int // species id -> chain id
	chains      map[int]*domain.EvolutionNode
	failures    map[string]bool
	hits        map[string]int
	delay       time.Duration
	inFlight    int
	maxInFlight int
}

type FakePokemon struct {
	ID             int
	Name           string
	Types          []string
	Height         int
	Weight         int
	BaseExperience int
	NoSprite       bool
	SpeciesID      int
}

// NewFakePokeAPI starts the fake and seeds it with a handful of real
// chains: bulbasaur, pikachu, eevee (branching) and ditto (no evolution).
func NewFakePokeAPI(t *testing.T) *FakePokeAPI {
	t.Helper()

	f := &FakePokeAPI{
		pokemon:  make(map[string]*FakePokemon),
		species:  make(map[int]int),
		chains:   make(map[int]*domain.EvolutionNode),
		failures: make(map[string]bool),
		hits:     make(map[string]int),
	}
	f.seed()
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))

	t.Cleanup(func() {
		f.Server.Close()
	})

	return f
}

// BaseURL is what pokeapi.NewClient expects.
func (f *FakePokeAPI) BaseURL() string {
	return f.Server.URL + "/api/v2"
}

func (f *FakePokeAPI) seed() {
	f.AddPokemon(FakePokemon{ID: 1, Name: "bulbasaur", Types: []string{"grass", "poison"}, Height: 7, Weight: 69, BaseExperience: 64})
	f.AddPokemon(FakePokemon{ID: 2, Name: "ivysaur", Types: []string{"grass", "poison"}, Height: 10, Weight: 130, BaseExperience: 142})
	f.AddPokemon(FakePokemon{ID: 3, Name: "venusaur", Types: []string{"grass", "poison"}, Height: 20, Weight: 1000, BaseExperience: 263})
	f.AddChain(1, Chain("bulbasaur", Chain("ivysaur", Chain("venusaur"))), 1, 2, 3)

	f.AddPokemon(FakePokemon{ID: 25, Name: "pikachu", Types: []string{"electric"}, Height: 4, Weight: 60, BaseExperience: 112})
	f.AddPokemon(FakePokemon{ID: 26, Name: "raichu", Types: []string{"electric"}, Height: 8, Weight: 300, BaseExperience: 243})
	f.AddPokemon(FakePokemon{ID: 172, Name: "pichu", Types: []string{"electric"}, Height: 3, Weight: 20, BaseExperience: 41})
	f.AddChain(10, Chain("pichu", Chain("pikachu", Chain("raichu"))), 172, 25, 26)

	f.AddPokemon(FakePokemon{ID: 132, Name: "ditto", Types: []string{"normal"}, Height: 3, Weight: 40, BaseExperience: 101})
	f.AddChain(66, Chain("ditto"), 132)

	f.AddPokemon(FakePokemon{ID: 133, Name: "eevee", Types: []string{"normal"}, Height: 3, Weight: 65, BaseExperience: 65})
	f.AddPokemon(FakePokemon{ID: 134, Name: "vaporeon", Types: []string{"water"}, Height: 10, Weight: 290, BaseExperience: 184})
	f.AddPokemon(FakePokemon{ID: 135, Name: "jolteon", Types: []string{"electric"}, Height: 8, Weight: 245, BaseExperience: 184})
	f.AddPokemon(FakePokemon{ID: 136, Name: "flareon", Types: []string{"fire"}, Height: 9, Weight: 250, BaseExperience: 184})
	f.AddChain(67, Chain("eevee", Chain("vaporeon"), Chain("jolteon"), Chain("flareon")), 133, 134, 135, 136)
}

// Chain builds an evolution tree for AddChain.
func Chain(species string, evolvesTo ...*domain.EvolutionNode) *domain.EvolutionNode {
	return &domain.EvolutionNode{Species: species, EvolvesTo: evolvesTo}
}

func (f *FakePokeAPI) AddPokemon(p FakePokemon) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.SpeciesID == 0 {
		p.SpeciesID = p.ID
	}
	f.pokemon[p.Name] = &p
	f.pokemon[strconv.Itoa(p.ID)] = &p
}

// AddChain registers a chain and points the given species ids at it.
func (f *FakePokeAPI) AddChain(chainID int, root *domain.EvolutionNode, speciesIDs ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chains[chainID] = root
	for _, id := range speciesIDs {
		f.species[id] = chainID
	}
}

// SeedRange fills every id in [start, end] that has no fixture yet with a
// placeholder Pokemon named "pokemon-<id>".
func (f *FakePokeAPI) SeedRange(start, end int) {
	for id := start; id <= end; id++ {
		f.mu.Lock()
		_, exists := f.pokemon[strconv.Itoa(id)]
		f.mu.Unlock()
		if !exists {
			f.AddPokemon(FakePokemon{ID: id, Name: fmt.Sprintf("pokemon-%d", id), Types: []string{"normal"}, Height: 10, Weight: 100})
		}
	}
}

// Fail makes every request whose path starts with prefix answer 500.
func (f *FakePokeAPI) Fail(prefix string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[prefix] = true
}

// SetDelay holds every response for d, which makes concurrency observable.
func (f *FakePokeAPI) SetDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay = d
}

// Hits counts requests whose path starts with prefix.
func (f *FakePokeAPI) Hits(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for path, c := range f.hits {
		if strings.HasPrefix(path, prefix) {
			n += c
		}
	}
	return n
}

func (f *FakePokeAPI) MaxInFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight
}

func (f *FakePokeAPI) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v2")

	f.mu.Lock()
	f.hits[path]++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	delay := f.delay
	failed := false
	for prefix := range f.failures {
		if strings.HasPrefix(path, prefix) {
			failed = true
		}
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if delay > 0 {
		time.Sleep(delay)
	}
	if failed {
		http.Error(w, "upstream failure", http.StatusInternalServerError)
		return
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}

	var body interface{}
	var ok bool
	switch parts[0] {
	case "pokemon":
		body, ok = f.pokemonJSON(parts[1])
	case "pokemon-species":
		body, ok = f.speciesJSON(parts[1])
	case "evolution-chain":
		body, ok = f.chainJSON(parts[1])
	}
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func (f *FakePokeAPI) resource(kind string, id int) map[string]string {
	return map[string]string{"url": fmt.Sprintf("%s/%s/%d/", f.BaseURL(), kind, id)}
}

func (f *FakePokeAPI) pokemonJSON(key string) (interface{}, bool) {
	f.mu.Lock()
	p, ok := f.pokemon[key]
	f.mu.Unlock()
	if !ok {
		return nil, false
	}

	types := make([]map[string]interface{}, len(p.Types))
	for i, t := range p.Types {
		types[i] = map[string]interface{}{
			"slot": i + 1,
			"type": map[string]string{"name": t, "url": ""},
		}
	}

	stats := []map[string]interface{}{}
	for i, name := range []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"} {
		stats = append(stats, map[string]interface{}{
			"base_stat": 40 + i*5,
			"effort":    0,
			"stat":      map[string]string{"name": name, "url": ""},
		})
	}

	var sprite interface{}
	if !p.NoSprite {
		sprite = fmt.Sprintf("https://sprites.example/%d.png", p.ID)
	}

	species := f.resource("pokemon-species", p.SpeciesID)
	species["name"] = p.Name

	return map[string]interface{}{
		"id":              p.ID,
		"name":            p.Name,
		"height":          p.Height,
		"weight":          p.Weight,
		"base_experience": p.BaseExperience,
		"types":           types,
		"stats":           stats,
		"sprites":         map[string]interface{}{"front_default": sprite},
		"species":         species,
	}, true
}

func (f *FakePokeAPI) speciesJSON(key string) (interface{}, bool) {
	id, err := strconv.Atoi(key)
	if err != nil {
		return nil, false
	}
	f.mu.Lock()
	chainID, ok := f.species[id]
	f.mu.Unlock()
	if !ok {
		return nil, false
	}
	return map[string]interface{}{
		"id":              id,
		"name":            key,
		"evolution_chain": f.resource("evolution-chain", chainID),
	}, true
}

func (f *FakePokeAPI) chainJSON(key string) (interface{}, bool) {
	id, err := strconv.Atoi(key)
	if err != nil {
		return nil, false
	}
	f.mu.Lock()
	root, ok := f.chains[id]
	f.mu.Unlock()
	if !ok {
		return nil, false
	}
	return map[string]interface{}{
		"id":    id,
		"chain": linkJSON(root),
	}, true
}

func linkJSON(n *domain.EvolutionNode) map[string]interface{} {
	children := make([]map[string]interface{}, 0, len(n.EvolvesTo))
	for _, c := range n.EvolvesTo {
		children = append(children, linkJSON(c))
	}
	return map[string]interface{}{
		"species":    map[string]string{"name": n.Species, "url": ""},
		"evolves_to": children,
	}
}
