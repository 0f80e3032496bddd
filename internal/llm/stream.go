package llm

import (
	"context"
	"io"
)

// eventStream bridges a producer goroutine and the pull-based Stream
// consumed by Collect. The producer owns the channel and closes it
// when the turn ends; a produce error is turned into a trailing
// EventError so the consumer sees it before io.EOF.
type eventStream struct {
	ctx    context.Context
	cancel context.CancelFunc
	ch     chan Event
}

func newEventStream(ctx context.Context, produce func(context.Context, chan<- Event) error) Stream {
	ctx, cancel := context.WithCancel(ctx)
	s := &eventStream{
		ctx:    ctx,
		cancel: cancel,
		ch:     make(chan Event, 16),
	}
	go func() {
		defer close(s.ch)
		if err := produce(ctx, s.ch); err != nil {
			s.ch <- Event{Type: EventError, Err: err}
		}
	}()
	return s
}

func (s *eventStream) Recv() (Event, error) {
	// Anything already buffered wins over cancellation, otherwise a
	// trailing EventError could be lost to a racing ctx.Done.
	select {
	case event, ok := <-s.ch:
		return s.deliver(event, ok)
	default:
	}

	select {
	case event, ok := <-s.ch:
		return s.deliver(event, ok)
	case <-s.ctx.Done():
		return Event{}, s.ctx.Err()
	}
}

func (s *eventStream) deliver(event Event, ok bool) (Event, error) {
	if !ok {
		return Event{}, io.EOF
	}
	return event, nil
}

func (s *eventStream) Close() error {
	s.cancel()
	return nil
}
