package llm

import (
	"context"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry sent to the provider.
type Message struct {
	Role    Role
	Content string
}

// SystemText creates a system message.
func SystemText(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// UserText creates a user message.
func UserText(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// AssistantText creates an assistant message.
func AssistantText(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// Request describes one streaming chat request.
type Request struct {
	Model    string
	Messages []Message
}

// EventType discriminates stream events.
type EventType int

const (
	// EventThinkingDelta carries a chunk of the model's reasoning trace.
	EventThinkingDelta EventType = iota
	// EventTextDelta carries a chunk of the final answer.
	EventTextDelta
	// EventDone signals the provider finished the response.
	EventDone
	// EventError carries a transport failure.
	EventError
)

// Event is one incremental unit of a streamed model response.
type Event struct {
	Type EventType
	Text string
	Err  error

	// Token counts, populated on EventDone when the provider reports them.
	InputTokens  int
	OutputTokens int
}

// Stream delivers events until io.EOF.
type Stream interface {
	Recv() (Event, error)
	Close() error
}

// Provider abstracts the hosted inference endpoint.
type Provider interface {
	Name() string
	Stream(ctx context.Context, req Request) (Stream, error)
}
