// Package chat serves the single-page web chat. Each WebSocket
// connection gets its own conversation session; history lives in
// memory for the life of the connection and is never persisted.
package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/bharath8080/thinkingui/internal/chat"
	"github.com/bharath8080/thinkingui/internal/llm"
	"github.com/bharath8080/thinkingui/internal/ui"
)

// SessionFactory creates a fresh conversation session for a new
// connection.
type SessionFactory func() *chat.Session

// Server holds everything the page and WebSocket handlers need.
type Server struct {
	model      string
	logos      Logos
	newSession SessionFactory
}

// NewServer creates a chat server. The logos must already be loaded;
// missing assets abort startup before this point.
func NewServer(model string, logos Logos, factory SessionFactory) *Server {
	return &Server{
		model:      model,
		logos:      logos,
		newSession: factory,
	}
}

// HTTPHandler returns the handler for the page and WebSocket routes.
func (s *Server) HTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Sessions are scoped to the connection, so a fresh one always
	// starts empty and there is no history to replay.
	sess := s.newSession()
	s.writeEvent(conn, WireEvent{
		Type:      "session_ready",
		SessionID: uuid.NewString(),
		Model:     sess.Model(),
	})

	// One turn at a time: the read loop blocks while a turn streams,
	// so the next input is not accepted until the turn completes.
	for {
		var ev ClientEvent
		if err := conn.ReadJSON(&ev); err != nil {
			return
		}
		if ev.Type != "message" || strings.TrimSpace(ev.Text) == "" {
			continue
		}
		s.runTurn(r.Context(), conn, sess, ev.Text)
	}
}

func (s *Server) runTurn(ctx context.Context, conn *websocket.Conn, sess *chat.Session, text string) {
	var inputTokens, outputTokens int
	obs := &llm.Observer{
		OnPhase: func(phase string) {
			s.writeEvent(conn, WireEvent{Type: "phase_change", Phase: phase})
		},
		OnThinking: func(delta string) {
			s.writeEvent(conn, WireEvent{Type: "thinking_delta", Text: delta})
		},
		OnAnswer: func(delta string) {
			s.writeEvent(conn, WireEvent{Type: "text_delta", Text: delta})
		},
		OnUsage: func(in, out int) {
			inputTokens, outputTokens = in, out
		},
	}

	reply, err := sess.Send(ctx, text, obs)
	if err != nil {
		s.writeEvent(conn, WireEvent{Type: "error", Message: userFacingError(err)})
		return
	}

	s.writeEvent(conn, WireEvent{
		Type:         "message_done",
		AnswerHTML:   ui.RenderHTML(reply.Content),
		ThinkingHTML: ui.RenderHTML(reply.Thinking),
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
	})
}

func userFacingError(err error) string {
	if llm.IsAuthError(err) {
		return "Authentication failed: check that OLLAMA_API_KEY is set to a valid key."
	}
	return err.Error()
}

func (s *Server) writeEvent(conn *websocket.Conn, ev WireEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, payload)
}
