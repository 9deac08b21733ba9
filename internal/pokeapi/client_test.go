package pokeapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/pokedex-web/internal/domain"
	"github.com/dom/pokedex-web/internal/pokeapi"
	"github.com/dom/pokedex-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*pokeapi.Client, *testutil.FakePokeAPI) {
	t.Helper()
	fake := testutil.NewFakePokeAPI(t)
	return pokeapi.NewClient(fake.BaseURL(), 5*time.Second), fake
}

func TestFetchPokemon(t *testing.T) {
	client, fake := newClient(t)
	ctx := context.Background()

	p, err := client.FetchPokemon(ctx, "  PIKACHU ")
	require.NoError(t, err)

	assert.Equal(t, 25, p.ID)
	assert.Equal(t, "pikachu", p.Name)
	assert.Equal(t, []string{"electric"}, p.Types)
	assert.Len(t, p.Stats, 6)
	assert.Equal(t, "hp", p.Stats[0].Name)
	assert.Equal(t, "special-attack", p.Stats[3].Name)
	assert.Equal(t, "https://sprites.example/25.png", p.SpriteURL)
	assert.Equal(t, fake.BaseURL()+"/pokemon-species/25/", p.SpeciesURL)
	assert.Equal(t, 1, fake.Hits("/pokemon/"))
}

func TestFetchPokemon_ByID(t *testing.T) {
	client, _ := newClient(t)

	p, err := client.FetchPokemonByID(context.Background(), 133)
	require.NoError(t, err)
	assert.Equal(t, "eevee", p.Name)
}

func TestFetchPokemon_NullSprite(t *testing.T) {
	client, fake := newClient(t)
	fake.AddPokemon(testutil.FakePokemon{ID: 1008, Name: "miraidon", Types: []string{"electric", "dragon"}, NoSprite: true})

	p, err := client.FetchPokemon(context.Background(), "miraidon")
	require.NoError(t, err)

	assert.Empty(t, p.SpriteURL)
	assert.Contains(t, p.ImageURL(), "official-artwork/1008.png")
}

func TestFetchPokemon_Errors(t *testing.T) {
	t.Run("unknown name is not found", func(t *testing.T) {
		client, fake := newClient(t)

		_, err := client.FetchPokemon(context.Background(), "missingno")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		// No retry.
		assert.Equal(t, 1, fake.Hits("/pokemon/"))
	})

	t.Run("upstream failure is not found", func(t *testing.T) {
		client, fake := newClient(t)
		fake.Fail("/pokemon/")

		_, err := client.FetchPokemon(context.Background(), "pikachu")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty query never reaches the network", func(t *testing.T) {
		client, fake := newClient(t)

		_, err := client.FetchPokemon(context.Background(), "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidQuery)
		assert.Equal(t, 0, fake.Hits("/"))
	})

	t.Run("query and fragment characters stay in the path", func(t *testing.T) {
		for _, query := range []string{"?limit=1", "#pikachu"} {
			client, fake := newClient(t)

			p, err := client.FetchPokemon(context.Background(), query)
			assert.ErrorIs(t, err, domain.ErrNotFound, "query %q", query)
			assert.Nil(t, p)
			assert.Equal(t, 1, fake.Hits("/pokemon/"+query), "query %q", query)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		client, _ := newClient(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.FetchPokemon(ctx, "pikachu")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestFetchSpeciesAndChain(t *testing.T) {
	client, fake := newClient(t)
	ctx := context.Background()

	byURL, err := client.FetchSpecies(ctx, fake.BaseURL()+"/pokemon-species/25/")
	require.NoError(t, err)
	byID, err := client.FetchSpecies(ctx, "25")
	require.NoError(t, err)
	assert.Equal(t, byURL.EvolutionChainURL, byID.EvolutionChainURL)

	root, err := client.FetchEvolutionChain(ctx, byID.EvolutionChainURL)
	require.NoError(t, err)

	assert.Equal(t, "pichu", root.Species)
	require.Len(t, root.EvolvesTo, 1)
	assert.Equal(t, "pikachu", root.EvolvesTo[0].Species)
	require.Len(t, root.EvolvesTo[0].EvolvesTo, 1)
	assert.Equal(t, "raichu", root.EvolvesTo[0].EvolvesTo[0].Species)
}

func TestFetchSpecies_Failure(t *testing.T) {
	client, fake := newClient(t)
	fake.Fail("/pokemon-species/")

	_, err := client.FetchSpecies(context.Background(), "25")
	assert.ErrorIs(t, err, domain.ErrChainUnavailable)

	_, err = client.FetchEvolutionChain(context.Background(), fake.BaseURL()+"/evolution-chain/999/")
	assert.ErrorIs(t, err, domain.ErrChainUnavailable)
}

func TestFetchPokemon_NonRecordBody(t *testing.T) {
	var gotPath, gotRawQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotRawQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":1302,"next":null,"previous":null,"results":[{"name":"bulbasaur","url":""}]}`))
	}))
	t.Cleanup(upstream.Close)
	client := pokeapi.NewClient(upstream.URL+"/api/v2", 5*time.Second)

	for _, query := range []string{"?limit=1", "#pikachu", "pikachu"} {
		p, err := client.FetchPokemon(context.Background(), query)
		assert.ErrorIs(t, err, domain.ErrNotFound, "query %q", query)
		assert.Nil(t, p, "query %q", query)
	}
	assert.Equal(t, "/api/v2/pokemon/pikachu", gotPath)
	assert.Empty(t, gotRawQuery)
}
