package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockTurn represents a single scripted response from the mock provider.
type MockTurn struct {
	Thinking string        // Thinking text to emit (chunked for realistic streaming)
	Text     string        // Answer text to emit (chunked likewise)
	Delay    time.Duration // Optional delay before responding
	Error    error         // Return this error instead of responding
	ErrAfter int           // With Error set: emit this many answer chunks first
}

// MockProvider is a configurable provider for testing. It returns
// scripted turns in order and records every request it receives.
type MockProvider struct {
	name      string
	turns     []MockTurn
	turnIndex int
	Requests  []Request // Recorded requests for verification
	mu        sync.Mutex
}

// NewMockProvider creates a new mock provider with the given name.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{name: name}
}

// Name returns the provider name.
func (m *MockProvider) Name() string {
	return m.name
}

// AddTurn appends a scripted turn and returns the provider for chaining.
func (m *MockProvider) AddTurn(t MockTurn) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, t)
	return m
}

// AddResponse is a convenience method to add a thinking+answer turn.
func (m *MockProvider) AddResponse(thinking, text string) *MockProvider {
	return m.AddTurn(MockTurn{Thinking: thinking, Text: text})
}

// AddError adds a turn that fails immediately.
func (m *MockProvider) AddError(err error) *MockProvider {
	return m.AddTurn(MockTurn{Error: err})
}

// Reset clears recorded requests and restarts the script.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turnIndex = 0
	m.Requests = nil
}

// Stream implements the Provider interface.
func (m *MockProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)

	if m.turnIndex >= len(m.turns) {
		m.mu.Unlock()
		return nil, fmt.Errorf("mock provider: no more turns configured (expected turn %d, have %d)", m.turnIndex, len(m.turns))
	}

	turn := m.turns[m.turnIndex]
	m.turnIndex++
	m.mu.Unlock()

	return newEventStream(ctx, func(ctx context.Context, ch chan<- Event) error {
		if turn.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(turn.Delay):
			}
		}

		if turn.Error != nil && turn.ErrAfter == 0 {
			return turn.Error
		}

		for _, chunk := range chunkText(turn.Thinking, 10) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ch <- Event{Type: EventThinkingDelta, Text: chunk}:
			}
		}

		emitted := 0
		for _, chunk := range chunkText(turn.Text, 10) {
			if turn.Error != nil && emitted >= turn.ErrAfter {
				return turn.Error
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ch <- Event{Type: EventTextDelta, Text: chunk}:
			}
			emitted++
		}
		if turn.Error != nil {
			return turn.Error
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch <- Event{Type: EventDone}:
		}
		return nil
	}), nil
}

// chunkText splits text into chunks of approximately the given size,
// preferring to break at word boundaries.
func chunkText(text string, chunkSize int) []string {
	if len(text) == 0 {
		return nil
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= chunkSize {
			chunks = append(chunks, text)
			break
		}

		breakPoint := chunkSize
		for i := chunkSize; i > chunkSize/2; i-- {
			if text[i] == ' ' {
				breakPoint = i + 1
				break
			}
		}

		chunks = append(chunks, text[:breakPoint])
		text = text[breakPoint:]
	}
	return chunks
}
