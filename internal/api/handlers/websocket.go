package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/dom/pokedex-web/internal/domain"
	"github.com/dom/pokedex-web/internal/service"
	"github.com/dom/pokedex-web/internal/websocket"
	"github.com/go-chi/chi/v5"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// ListingStreamHandler pushes a generation listing over a websocket, one
// message per settled chunk.
type ListingStreamHandler struct {
	listing *service.ListingService
}

func NewListingStreamHandler(listing *service.ListingService) *ListingStreamHandler {
	return &ListingStreamHandler{listing: listing}
}

func (h *ListingStreamHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ordinal, err := strconv.Atoi(chi.URLParam(r, "ordinal"))
	if err != nil {
		http.Error(w, "Invalid generation", http.StatusBadRequest)
		return
	}
	gen, err := domain.GenerationByOrdinal(ordinal)
	if err != nil {
		http.Error(w, "Generation not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := websocket.NewClient(conn)
	go client.WritePump()
	go client.ReadPump(cancel)
	defer client.Close()

	started, _ := websocket.NewMessage(websocket.MessageTypeListingStarted, websocket.ListingStartedPayload{
		Ordinal:   gen.Ordinal,
		Region:    gen.Region,
		StartID:   gen.StartID,
		EndID:     gen.EndID,
		BatchSize: h.listing.BatchSize(),
	})
	if err := client.Send(started); err != nil {
		return
	}

	var last service.Chunk
	err = h.listing.ListGeneration(ctx, ordinal, func(chunk service.Chunk) error {
		last = chunk
		payload := websocket.ListingChunkPayload{
			Index:    chunk.Index,
			Loaded:   chunk.Loaded,
			Total:    chunk.Total,
			Progress: chunk.Progress(),
			Pokemon:  make([]websocket.PokemonSummary, 0, len(chunk.Pokemon)),
		}
		for _, p := range chunk.Pokemon {
			payload.Pokemon = append(payload.Pokemon, websocket.PokemonSummary{
				ID:       p.ID,
				Name:     p.Name,
				Types:    p.Types,
				ImageURL: p.ImageURL(),
			})
		}
		msg, err := websocket.NewMessage(websocket.MessageTypeListingChunk, payload)
		if err != nil {
			return err
		}
		return client.Send(msg)
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, websocket.ErrClientClosed) {
			log.Printf("ERROR [websocket.Listing] ordinal=%d: %v", ordinal, err)
			client.SendError("LISTING_FAILED", "Failed to load generation")
		}
		return
	}

	complete, _ := websocket.NewMessage(websocket.MessageTypeListingComplete, websocket.ListingCompletePayload{
		Loaded: last.Loaded,
		Total:  last.Total,
		Chunks: last.Index + 1,
	})
	_ = client.Send(complete)
}
