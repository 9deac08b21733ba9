package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// Server to Client
	MessageTypeListingStarted  MessageType = "LISTING_STARTED"
	MessageTypeListingChunk    MessageType = "LISTING_CHUNK"
	MessageTypeListingComplete MessageType = "LISTING_COMPLETE"
	MessageTypeError           MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Seq       int             `json:"seq,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Server to Client payloads

type ListingStartedPayload struct {
	Ordinal   int    `json:"ordinal"`
	Region    string `json:"region"`
	StartID   int    `json:"startId"`
	EndID     int    `json:"endId"`
	BatchSize int    `json:"batchSize"`
}

type PokemonSummary struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Types    []string `json:"types"`
	ImageURL string   `json:"imageUrl"`
}

type ListingChunkPayload struct {
	Index    int              `json:"index"`
	Loaded   int              `json:"loaded"`
	Total    int              `json:"total"`
	Progress string           `json:"progress"`
	Pokemon  []PokemonSummary `json:"pokemon"`
}

type ListingCompletePayload struct {
	Loaded int `json:"loaded"`
	Total  int `json:"total"`
	Chunks int `json:"chunks"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
