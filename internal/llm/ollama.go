package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

// OllamaProvider streams chat completions from an Ollama endpoint,
// local or hosted. The HTTP framing, NDJSON decoding and retry-free
// request handling all live in the official client.
type OllamaProvider struct {
	client *api.Client
	model  string
}

// NewOllamaProvider creates a provider for the given host. When apiKey
// is non-empty it is sent as a bearer token on every request, which is
// what the ollama.com hosted endpoint expects.
func NewOllamaProvider(host, apiKey, model string) (*OllamaProvider, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}

	httpClient := http.DefaultClient
	if apiKey != "" {
		httpClient = &http.Client{Transport: &bearerTransport{apiKey: apiKey}}
	}

	return &OllamaProvider{
		client: api.NewClient(base, httpClient),
		model:  model,
	}, nil
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Model returns the model requests are sent to when the request does
// not override it.
func (p *OllamaProvider) Model() string {
	return p.model
}

// Stream implements the Provider interface.
func (p *OllamaProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	messages := make([]api.Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	stream := true
	chatReq := &api.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   &stream,
		Think:    &api.ThinkValue{Value: true},
	}

	return newEventStream(ctx, func(ctx context.Context, ch chan<- Event) error {
		// The client returns nil when the connection drops mid-body, so
		// a turn only counts as complete once done:true has arrived.
		completed := false
		err := p.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
			if resp.Message.Thinking != "" {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case ch <- Event{Type: EventThinkingDelta, Text: resp.Message.Thinking}:
				}
			}
			if resp.Message.Content != "" {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case ch <- Event{Type: EventTextDelta, Text: resp.Message.Content}:
				}
			}
			if resp.Done {
				completed = true
				select {
				case <-ctx.Done():
					return ctx.Err()
				case ch <- Event{
					Type:         EventDone,
					InputTokens:  resp.Metrics.PromptEvalCount,
					OutputTokens: resp.Metrics.EvalCount,
				}:
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		if !completed {
			return fmt.Errorf("stream ended before completion")
		}
		return nil
	}), nil
}

// ListModels returns the model names the endpoint advertises.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	resp, err := p.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// IsAuthError reports whether err is an authentication failure from
// the endpoint (missing or rejected bearer token). The client reports
// 401s as api.AuthorizationError; other 4xx codes come back as
// api.StatusError.
func IsAuthError(err error) bool {
	var authErr api.AuthorizationError
	if errors.As(err, &authErr) {
		return true
	}
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden
	}
	return false
}

// bearerTransport injects the Authorization header on every request.
type bearerTransport struct {
	apiKey string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.apiKey)
	return http.DefaultTransport.RoundTrip(clone)
}
