package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dom/pokedex-web/internal/api/handlers"
	"github.com/dom/pokedex-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPokemon(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.Browser(t)

	resp := get(t, client, ts.APIURL("/pokemon/pikachu"))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var p handlers.PokemonResponse
	testutil.AssertJSONResponse(t, resp, &p)

	assert.Equal(t, 25, p.ID)
	assert.Equal(t, "Pikachu", p.DisplayName)
	assert.Equal(t, "0.4 m", p.HeightLabel)
	assert.Equal(t, "6 kg", p.WeightLabel)
	require.Len(t, p.Stats, 6)
	assert.Equal(t, "Special attack", p.Stats[3].Label)
	require.NotNil(t, p.PrevID)
	require.NotNil(t, p.NextID)
	assert.Equal(t, 24, *p.PrevID)
	assert.Equal(t, 26, *p.NextID)
}

func TestGetPokemon_FirstHasNoPrevious(t *testing.T) {
	ts := testutil.NewTestServer(t)

	var p handlers.PokemonResponse
	testutil.AssertJSONResponse(t, get(t, ts.Browser(t), ts.APIURL("/pokemon/1")), &p)

	assert.Equal(t, "bulbasaur", p.Name)
	assert.Nil(t, p.PrevID)
	require.NotNil(t, p.NextID)
	assert.Equal(t, 2, *p.NextID)
}

func TestGetPokemon_NotFound(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := get(t, ts.Browser(t), ts.APIURL("/pokemon/missingno"))
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Pokemon not found")
}

func TestGetEvolution(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.Browser(t)

	t.Run("linear chain", func(t *testing.T) {
		var evo handlers.EvolutionResponse
		testutil.AssertJSONResponse(t, get(t, client, ts.APIURL("/pokemon/pikachu/evolution")), &evo)

		assert.Equal(t, "pikachu", evo.Pokemon)
		assert.Equal(t, []string{"pichu", "pikachu", "raichu"}, evo.Sequence)
		require.Len(t, evo.Stages, 3)
		assert.Equal(t, "Pichu", evo.Stages[0].DisplayName)
		assert.Equal(t, 172, evo.Stages[0].ID)
	})

	t.Run("single stage", func(t *testing.T) {
		var evo handlers.EvolutionResponse
		testutil.AssertJSONResponse(t, get(t, client, ts.APIURL("/pokemon/ditto/evolution")), &evo)

		assert.Equal(t, []string{"ditto"}, evo.Sequence)
		assert.Empty(t, evo.Stages)
	})
}

func TestGetEvolution_ChainUnavailable(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.API.Fail("/evolution-chain/")

	resp := get(t, ts.Browser(t), ts.APIURL("/pokemon/pikachu/evolution"))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var evo handlers.EvolutionResponse
	testutil.AssertJSONResponse(t, resp, &evo)
	assert.Empty(t, evo.Sequence)
	assert.Empty(t, evo.Stages)
}

func TestListGenerations(t *testing.T) {
	ts := testutil.NewTestServer(t)

	var resp handlers.GenerationsResponse
	testutil.AssertJSONResponse(t, get(t, ts.Browser(t), ts.APIURL("/generations/")), &resp)

	require.Len(t, resp.Generations, 9)
	assert.Equal(t, "Kanto", resp.Generations[0].Region)
	assert.Equal(t, 1025, resp.Generations[8].EndID)
}
