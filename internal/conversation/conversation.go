// Package conversation holds the ordered message history of one chat
// session. The store is append-only and lives in process memory for
// the lifetime of the session; nothing is persisted.
package conversation

import (
	"fmt"
	"time"

	"github.com/bharath8080/thinkingui/internal/llm"
)

// Message is one committed entry in the conversation. Thinking is only
// ever populated on assistant messages.
type Message struct {
	Role      llm.Role
	Content   string
	Thinking  string
	CreatedAt time.Time
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: llm.RoleUser, Content: content, CreatedAt: time.Now()}
}

// NewAssistantMessage creates an assistant message with its thinking trace.
func NewAssistantMessage(content, thinking string) Message {
	return Message{Role: llm.RoleAssistant, Content: content, Thinking: thinking, CreatedAt: time.Now()}
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: llm.RoleSystem, Content: content, CreatedAt: time.Now()}
}

// Store is the ordered, append-only history of a session.
type Store struct {
	messages []Message
}

// NewStore creates an empty store. When systemPrompt is non-empty the
// store is seeded with a leading system message.
func NewStore(systemPrompt string) *Store {
	s := &Store{}
	if systemPrompt != "" {
		s.messages = append(s.messages, NewSystemMessage(systemPrompt))
	}
	return s
}

// Append adds a message at the end of the history. Messages other than
// assistant messages must not carry a thinking trace.
func (s *Store) Append(msg Message) error {
	if msg.Thinking != "" && msg.Role != llm.RoleAssistant {
		return fmt.Errorf("thinking content is only valid on assistant messages, got role %q", msg.Role)
	}
	s.messages = append(s.messages, msg)
	return nil
}

// All returns the full ordered history, system message included. This
// is the sequence submitted to the provider.
func (s *Store) All() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Rendered returns the history for display: everything except the
// system message.
func (s *Store) Rendered() []Message {
	out := make([]Message, 0, len(s.messages))
	for _, msg := range s.messages {
		if msg.Role == llm.RoleSystem {
			continue
		}
		out = append(out, msg)
	}
	return out
}

// Len returns the number of messages, system message included.
func (s *Store) Len() int {
	return len(s.messages)
}

// ToLLMMessages converts the full history into provider messages.
func (s *Store) ToLLMMessages() []llm.Message {
	out := make([]llm.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		out = append(out, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return out
}
