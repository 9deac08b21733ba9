package testutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dom/pokedex-web/internal/websocket"
	gorillaWS "github.com/gorilla/websocket"
)

// WSClient is a test WebSocket client
type WSClient struct {
	t    *testing.T
	conn *gorillaWS.Conn
}

// NewWSClient creates a new WebSocket test client
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := *gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{t: t, conn: conn}

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

// Next reads one message, failing the test after timeout.
func (c *WSClient) Next(timeout time.Duration) *websocket.Message {
	c.t.Helper()

	c.conn.SetReadDeadline(time.Now().Add(timeout))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		c.t.Fatalf("failed to read websocket message: %v", err)
	}

	var msg websocket.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.t.Fatalf("failed to unmarshal websocket message: %v", err)
	}
	return &msg
}

// ReadUntil reads messages until one of type msgType arrives, returning
// everything read including that message.
func (c *WSClient) ReadUntil(msgType websocket.MessageType, timeout time.Duration) []*websocket.Message {
	c.t.Helper()

	var msgs []*websocket.Message
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		msg := c.Next(time.Until(deadline))
		msgs = append(msgs, msg)
		if msg.Type == msgType {
			return msgs
		}
	}
	c.t.Fatalf("timed out waiting for %s", msgType)
	return nil
}

// DecodePayload unmarshals a message payload into v
func DecodePayload(t *testing.T, msg *websocket.Message, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		t.Fatalf("failed to decode %s payload: %v", msg.Type, err)
	}
}

// Close closes the WebSocket connection
func (c *WSClient) Close() {
	c.conn.WriteMessage(gorillaWS.CloseMessage,
		gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
	c.conn.Close()
}
