// Package chat runs conversation turns against a provider. A Session
// is the explicit per-session context object: it owns the history and
// the provider handle, so no state lives in package globals.
package chat

import (
	"context"
	"fmt"

	"github.com/bharath8080/thinkingui/internal/conversation"
	"github.com/bharath8080/thinkingui/internal/llm"
)

// Session ties a conversation store to a provider. One turn runs
// synchronously from submission to completion; there are no parallel
// turns and no mid-stream cancellation beyond the context.
type Session struct {
	provider llm.Provider
	store    *conversation.Store
	model    string
}

// New creates a session seeded with the system prompt.
func New(provider llm.Provider, model, systemPrompt string) *Session {
	return &Session{
		provider: provider,
		store:    conversation.NewStore(systemPrompt),
		model:    model,
	}
}

// Store exposes the session history for rendering.
func (s *Session) Store() *conversation.Store {
	return s.store
}

// Model returns the model this session requests.
func (s *Session) Model() string {
	return s.model
}

// Send runs one turn: the pending user text plus the full history is
// submitted to the provider, the streamed response is classified into
// thinking and answer, and on success both the user and assistant
// messages are committed to the store. On failure nothing is
// committed, so the store is unchanged and the user may resubmit.
func (s *Session) Send(ctx context.Context, text string, obs *llm.Observer) (conversation.Message, error) {
	messages := append(s.store.ToLLMMessages(), llm.UserText(text))

	stream, err := s.provider.Stream(ctx, llm.Request{Model: s.model, Messages: messages})
	if err != nil {
		return conversation.Message{}, fmt.Errorf("failed to start stream: %w", err)
	}
	defer stream.Close()

	thinking, answer, err := llm.Collect(stream, obs)
	if err != nil {
		return conversation.Message{}, err
	}

	if err := s.store.Append(conversation.NewUserMessage(text)); err != nil {
		return conversation.Message{}, err
	}
	reply := conversation.NewAssistantMessage(answer, thinking)
	if err := s.store.Append(reply); err != nil {
		return conversation.Message{}, err
	}
	return reply, nil
}
