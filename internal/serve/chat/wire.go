package chat

// WireEvent is the JSON envelope sent server->client over the
// WebSocket connection.
type WireEvent struct {
	Type string `json:"type"`

	// session_ready
	SessionID string `json:"session_id,omitempty"`
	Model     string `json:"model,omitempty"`

	// phase_change
	Phase string `json:"phase,omitempty"`

	// thinking_delta / text_delta / error
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`

	// message_done
	AnswerHTML   string `json:"answer_html,omitempty"`
	ThinkingHTML string `json:"thinking_html,omitempty"`
	InputTokens  int    `json:"input_tokens,omitempty"`
	OutputTokens int    `json:"output_tokens,omitempty"`
}

// ClientEvent is the JSON envelope sent client->server.
type ClientEvent struct {
	Type string `json:"type"`

	// message
	Text string `json:"text,omitempty"`
}
