package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgQuestion   MessageType = "question"    // server -> client, next adaptive question
	MsgAnswer     MessageType = "answer"      // client -> server, option pick
	MsgTierDone   MessageType = "tier_done"   // server -> client, personalized tier finished
	MsgError      MessageType = "error"       // server -> client
	MsgSuperseded MessageType = "superseded" // server -> client, a newer connection took over
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// AnswerPayload is the client's answer message body
type AnswerPayload struct {
	QuestionID  string `json:"questionId"`
	OptionIndex int    `json:"optionIndex"`
}

// Hub tracks the one live connection each session is allowed. The
// adaptive tier is a strict request-then-answer protocol, so a second
// connection for the same session supersedes the first.
type Hub struct {
	conns map[string]*Connection // sessionID -> conn
	mu    sync.Mutex
}

// Connection is one live adaptive-tier socket
type Connection struct {
	SessionID string
	Send      chan []byte
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{conns: make(map[string]*Connection)}
}

// Register adds a connection, superseding any existing one for the
// same session
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.conns[conn.SessionID]; ok {
		data, _ := json.Marshal(&Message{Type: MsgSuperseded})
		select {
		case old.Send <- data:
		default:
		}
		close(old.Send)
		log.Printf("session %s: superseding stale connection", conn.SessionID)
	}
	h.conns[conn.SessionID] = conn
}

// Unregister removes a connection if it is still the session's current one
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.conns[conn.SessionID]; ok && existing == conn {
		delete(h.conns, conn.SessionID)
		close(conn.Send)
	}
}

// Current reports whether the connection is still the session's live one
func (h *Hub) Current(conn *Connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conns[conn.SessionID] == conn
}
