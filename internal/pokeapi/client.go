package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dom/pokedex-web/internal/domain"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
)

// Client talks to the PokeAPI REST service. It never retries or caches;
// every call is one request.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type pokemonResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Height         int    `json:"height"`
	Weight         int    `json:"weight"`
	BaseExperience int    `json:"base_experience"`
	Types          []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
	Species namedResource `json:"species"`
}

// Species is the subset of /pokemon-species needed to reach the chain.
type Species struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	EvolutionChainURL string `json:"-"`
}

type speciesResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

type chainLink struct {
	Species   namedResource `json:"species"`
	EvolvesTo []chainLink   `json:"evolves_to"`
}

type evolutionChainResponse struct {
	ID    int       `json:"id"`
	Chain chainLink `json:"chain"`
}

// FetchPokemon resolves a name or numeric id. Transport failures and non-2xx
// responses are both reported as domain.ErrNotFound.
func (c *Client) FetchPokemon(ctx context.Context, query string) (*domain.Pokemon, error) {
	q := domain.NormalizeQuery(query)
	if q == "" {
		return nil, domain.ErrInvalidQuery
	}

	var resp pokemonResponse
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+url.PathEscape(q), &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrNotFound, q, err)
	}
	// A 2xx body that is not a Pokemon (e.g. the paginated index) is a miss.
	if resp.ID <= 0 || resp.Name == "" {
		return nil, fmt.Errorf("%w: %s: response is not a pokemon record", domain.ErrNotFound, q)
	}

	return resp.toDomain(), nil
}

func (c *Client) FetchPokemonByID(ctx context.Context, id int) (*domain.Pokemon, error) {
	return c.FetchPokemon(ctx, strconv.Itoa(id))
}

// FetchSpecies accepts either a species URL or a species id.
func (c *Client) FetchSpecies(ctx context.Context, ref string) (*Species, error) {
	target := ref
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		target = fmt.Sprintf("%s/pokemon-species/%s/", c.baseURL, url.PathEscape(ref))
	}

	var resp speciesResponse
	if err := c.getJSON(ctx, target, &resp); err != nil {
		return nil, fmt.Errorf("%w: species %s: %v", domain.ErrChainUnavailable, ref, err)
	}
	if resp.EvolutionChain.URL == "" {
		return nil, fmt.Errorf("%w: species %s has no evolution chain", domain.ErrChainUnavailable, ref)
	}

	return &Species{
		ID:                resp.ID,
		Name:              resp.Name,
		EvolutionChainURL: resp.EvolutionChain.URL,
	}, nil
}

func (c *Client) FetchEvolutionChain(ctx context.Context, chainURL string) (*domain.EvolutionNode, error) {
	var resp evolutionChainResponse
	if err := c.getJSON(ctx, chainURL, &resp); err != nil {
		return nil, fmt.Errorf("%w: chain %s: %v", domain.ErrChainUnavailable, chainURL, err)
	}
	return resp.Chain.toDomain(), nil
}

func (c *Client) getJSON(ctx context.Context, target string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

func (r *pokemonResponse) toDomain() *domain.Pokemon {
	p := &domain.Pokemon{
		ID:             r.ID,
		Name:           strings.ToLower(r.Name),
		Height:         r.Height,
		Weight:         r.Weight,
		BaseExperience: r.BaseExperience,
		SpeciesURL:     r.Species.URL,
		Types:          make([]string, 0, len(r.Types)),
		Stats:          make([]domain.Stat, 0, len(r.Stats)),
	}
	for _, t := range r.Types {
		p.Types = append(p.Types, t.Type.Name)
	}
	for _, s := range r.Stats {
		p.Stats = append(p.Stats, domain.Stat{Name: s.Stat.Name, Base: s.BaseStat})
	}
	if r.Sprites.FrontDefault != nil {
		p.SpriteURL = *r.Sprites.FrontDefault
	}
	return p
}

func (l chainLink) toDomain() *domain.EvolutionNode {
	node := &domain.EvolutionNode{Species: l.Species.Name}
	for _, child := range l.EvolvesTo {
		node.EvolvesTo = append(node.EvolvesTo, child.toDomain())
	}
	return node
}
