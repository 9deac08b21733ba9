package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dom/pokedex-web/internal/testutil"
	"github.com/dom/pokedex-web/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingStream(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.API.SeedRange(1, 151)

	ws := testutil.NewWSClient(t, ts.WebSocketURL("/generations/1/stream"))

	msgs := ws.ReadUntil(websocket.MessageTypeListingComplete, 10*time.Second)
	require.Len(t, msgs, 10, "started + 8 chunks + complete")

	assert.Equal(t, websocket.MessageTypeListingStarted, msgs[0].Type)
	var started websocket.ListingStartedPayload
	testutil.DecodePayload(t, msgs[0], &started)
	assert.Equal(t, "Kanto", started.Region)
	assert.Equal(t, 20, started.BatchSize)

	loaded := 0
	for i, msg := range msgs[1:9] {
		require.Equal(t, websocket.MessageTypeListingChunk, msg.Type)
		var chunk websocket.ListingChunkPayload
		testutil.DecodePayload(t, msg, &chunk)
		assert.Equal(t, i, chunk.Index)
		assert.Equal(t, 151, chunk.Total)
		loaded += len(chunk.Pokemon)
		if i == 7 {
			assert.Equal(t, "Loaded 151 of 151 Pokémon...", chunk.Progress)
		}
	}
	assert.Equal(t, 151, loaded)

	var complete websocket.ListingCompletePayload
	testutil.DecodePayload(t, msgs[9], &complete)
	assert.Equal(t, 151, complete.Loaded)
	assert.Equal(t, 151, complete.Total)
	assert.Equal(t, 8, complete.Chunks)
}

func TestListingStream_UnknownGeneration(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := get(t, ts.Browser(t), ts.APIURL("/generations/12/stream"))
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)

	resp = get(t, ts.Browser(t), ts.APIURL("/generations/x/stream"))
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}
