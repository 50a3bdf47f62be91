package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"disha/internal/service"
	"disha/internal/transport/rest/middleware"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced by the embedding platform
	},
}

// Handler serves the personalized tier over a WebSocket: the server
// pushes one question, waits for the answer, updates the adaptive
// state, and pushes the next. One message in flight at a time.
type Handler struct {
	hub        *Hub
	sessionSvc *service.SessionService
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, sessionSvc *service.SessionService) *Handler {
	return &Handler{hub: hub, sessionSvc: sessionSvc}
}

// AdaptiveWS handles GET /v1/ws/assessment (session token in query param)
func (h *Handler) AdaptiveWS(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed for session %s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	wsConn := &Connection{SessionID: sessionID, Send: make(chan []byte, 8)}
	h.hub.Register(wsConn)
	defer h.hub.Unregister(wsConn)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	ctx := r.Context()
	for {
		if !h.hub.Current(wsConn) {
			if data, ok := <-wsConn.Send; ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.TextMessage, data)
			}
			return
		}

		question, done, err := h.sessionSvc.NextQuestion(ctx, sessionID)
		if err != nil {
			h.write(conn, MsgError, map[string]string{"message": err.Error()})
			return
		}
		if done {
			h.write(conn, MsgTierDone, nil)
			return
		}
		if err := h.write(conn, MsgQuestion, question); err != nil {
			return
		}

		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("session %s: read failed, leaving state resumable: %v", sessionID, err)
			return
		}
		if msg.Type != MsgAnswer {
			h.write(conn, MsgError, map[string]string{"message": "expected an answer message"})
			continue
		}

		var answer AnswerPayload
		if err := json.Unmarshal(msg.Payload, &answer); err != nil {
			h.write(conn, MsgError, map[string]string{"message": "invalid answer payload"})
			continue
		}

		finished, err := h.sessionSvc.SubmitAnswer(ctx, sessionID, answer.OptionIndex)
		if err != nil {
			h.write(conn, MsgError, map[string]string{"message": err.Error()})
			return
		}
		if finished {
			h.write(conn, MsgTierDone, nil)
			return
		}
	}
}

func (h *Handler) write(conn *websocket.Conn, msgType MessageType, payload interface{}) error {
	data, _ := json.Marshal(payload)
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(&Message{Type: msgType, Payload: data})
}
