package chat

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	appchat "github.com/bharath8080/thinkingui/internal/chat"
	"github.com/bharath8080/thinkingui/internal/llm"
)

func newTestServer(t *testing.T, provider llm.Provider) *httptest.Server {
	t.Helper()
	server := NewServer("test-model", Logos{Ollama: "b64ollama", Minimax: "b64minimax"}, func() *appchat.Session {
		return appchat.New(provider, "test-model", "sys")
	})
	ts := httptest.NewServer(server.HTTPHandler())
	t.Cleanup(ts.Close)
	return ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) WireEvent {
	t.Helper()
	var ev WireEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	return ev
}

func TestPageEmbedsLogosAndModel(t *testing.T) {
	ts := newTestServer(t, llm.NewMockProvider("mock"))

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("failed to get page: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read page: %v", err)
	}
	body := string(raw)

	for _, want := range []string{"b64ollama", "b64minimax", "test-model", "Thinking"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestPageUnknownPathIs404(t *testing.T) {
	ts := newTestServer(t, llm.NewMockProvider("mock"))

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestWebSocketTurnStreamsAndCommits(t *testing.T) {
	provider := llm.NewMockProvider("mock").
		AddResponse("Let me think.", "The answer is 42.")

	ts := newTestServer(t, provider)
	conn := dialWS(t, ts)

	ready := readEvent(t, conn)
	if ready.Type != "session_ready" {
		t.Fatalf("expected session_ready, got %q", ready.Type)
	}
	if ready.SessionID == "" {
		t.Error("session_ready missing session id")
	}
	if ready.Model != "test-model" {
		t.Errorf("expected model %q, got %q", "test-model", ready.Model)
	}

	if err := conn.WriteJSON(ClientEvent{Type: "message", Text: "what is the answer?"}); err != nil {
		t.Fatalf("failed to send message: %v", err)
	}

	var thinking, answer string
	var phases []string
	var done WireEvent
	for {
		ev := readEvent(t, conn)
		switch ev.Type {
		case "phase_change":
			phases = append(phases, ev.Phase)
		case "thinking_delta":
			thinking += ev.Text
		case "text_delta":
			answer += ev.Text
		case "message_done":
			done = ev
		case "error":
			t.Fatalf("unexpected error event: %s", ev.Message)
		}
		if done.Type != "" {
			break
		}
	}

	if thinking != "Let me think." {
		t.Errorf("expected thinking %q, got %q", "Let me think.", thinking)
	}
	if answer != "The answer is 42." {
		t.Errorf("expected answer %q, got %q", "The answer is 42.", answer)
	}
	if len(phases) == 0 || phases[0] != llm.PhaseThinking {
		t.Errorf("expected thinking phase first, got %v", phases)
	}
	if !strings.Contains(done.AnswerHTML, "The answer is 42.") {
		t.Errorf("message_done missing rendered answer: %q", done.AnswerHTML)
	}
	if !strings.Contains(done.ThinkingHTML, "Let me think.") {
		t.Errorf("message_done missing rendered thinking: %q", done.ThinkingHTML)
	}
}

func TestWebSocketTurnFailureKeepsHistoryClean(t *testing.T) {
	provider := llm.NewMockProvider("mock").
		AddError(errors.New("boom")).
		AddResponse("", "recovered")

	ts := newTestServer(t, provider)
	conn := dialWS(t, ts)
	_ = readEvent(t, conn) // session_ready

	if err := conn.WriteJSON(ClientEvent{Type: "message", Text: "hello"}); err != nil {
		t.Fatalf("failed to send: %v", err)
	}

	sawError := false
	for !sawError {
		ev := readEvent(t, conn)
		if ev.Type == "error" {
			sawError = true
		}
		if ev.Type == "message_done" {
			t.Fatal("failed turn must not produce message_done")
		}
	}

	// Resubmit succeeds and the failed turn left no trace in history.
	if err := conn.WriteJSON(ClientEvent{Type: "message", Text: "again"}); err != nil {
		t.Fatalf("failed to resend: %v", err)
	}
	for {
		ev := readEvent(t, conn)
		if ev.Type == "error" {
			t.Fatalf("unexpected error on retry: %s", ev.Message)
		}
		if ev.Type == "message_done" {
			break
		}
	}

	last := provider.Requests[len(provider.Requests)-1].Messages
	if len(last) != 2 { // system + user "again"
		t.Errorf("expected clean history on retry, got %d messages", len(last))
	}
}

func TestLoadLogosMissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ollama.png"), []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadLogos(dir)
	if err == nil {
		t.Fatal("expected missing minimax.png to fail")
	}
	if !strings.Contains(err.Error(), "minimax.png") {
		t.Errorf("error should name the missing file, got %v", err)
	}
}

func TestLoadLogosEncodesBoth(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ollama.png", "minimax.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}

	logos, err := LoadLogos(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logos.Ollama == "" || logos.Minimax == "" {
		t.Error("expected both logos encoded")
	}
}
