package llm

import (
	"errors"
	"io"
	"testing"
)

type testStream struct {
	events []Event
	index  int
	err    error // returned after events are exhausted, instead of io.EOF
}

func (s *testStream) Recv() (Event, error) {
	if s.index >= len(s.events) {
		if s.err != nil {
			return Event{}, s.err
		}
		return Event{}, io.EOF
	}
	event := s.events[s.index]
	s.index++
	return event, nil
}

func (s *testStream) Close() error {
	return nil
}

func TestCollectSeparatesThinkingFromAnswer(t *testing.T) {
	stream := &testStream{
		events: []Event{
			{Type: EventThinkingDelta, Text: "Let me "},
			{Type: EventThinkingDelta, Text: "think."},
			{Type: EventTextDelta, Text: "42"},
			{Type: EventDone},
		},
	}

	thinking, answer, err := Collect(stream, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if thinking != "Let me think." {
		t.Errorf("expected thinking %q, got %q", "Let me think.", thinking)
	}
	if answer != "42" {
		t.Errorf("expected answer %q, got %q", "42", answer)
	}
}

func TestCollectPreservesOrderAcrossInterleaving(t *testing.T) {
	stream := &testStream{
		events: []Event{
			{Type: EventThinkingDelta, Text: "a"},
			{Type: EventTextDelta, Text: "1"},
			{Type: EventThinkingDelta, Text: "b"},
			{Type: EventTextDelta, Text: "2"},
			{Type: EventThinkingDelta, Text: "c"},
			{Type: EventDone},
		},
	}

	thinking, answer, err := Collect(stream, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if thinking != "abc" {
		t.Errorf("expected thinking %q, got %q", "abc", thinking)
	}
	if answer != "12" {
		t.Errorf("expected answer %q, got %q", "12", answer)
	}
}

func TestCollectEmptyStream(t *testing.T) {
	thinking, answer, err := Collect(&testStream{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if thinking != "" || answer != "" {
		t.Errorf("expected two empty strings, got thinking=%q answer=%q", thinking, answer)
	}
}

func TestCollectIgnoresUnknownEvents(t *testing.T) {
	stream := &testStream{
		events: []Event{
			{Type: EventType(99), Text: "should be dropped"},
			{Type: EventTextDelta, Text: "kept"},
		},
	}

	thinking, answer, err := Collect(stream, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if thinking != "" {
		t.Errorf("expected empty thinking, got %q", thinking)
	}
	if answer != "kept" {
		t.Errorf("expected answer %q, got %q", "kept", answer)
	}
}

func TestCollectSurfacesStreamError(t *testing.T) {
	streamErr := errors.New("connection reset")
	stream := &testStream{
		events: []Event{
			{Type: EventTextDelta, Text: "partial"},
		},
		err: streamErr,
	}

	thinking, answer, err := Collect(stream, nil)
	if !errors.Is(err, streamErr) {
		t.Fatalf("expected stream error, got %v", err)
	}
	if thinking != "" || answer != "" {
		t.Errorf("partial buffers must be discarded on error, got thinking=%q answer=%q", thinking, answer)
	}
}

func TestCollectSurfacesErrorEvent(t *testing.T) {
	eventErr := errors.New("upstream failure")
	stream := &testStream{
		events: []Event{
			{Type: EventThinkingDelta, Text: "hmm"},
			{Type: EventError, Err: eventErr},
		},
	}

	_, _, err := Collect(stream, nil)
	if !errors.Is(err, eventErr) {
		t.Fatalf("expected error event to surface, got %v", err)
	}
}

func TestCollectNotifiesObserver(t *testing.T) {
	stream := &testStream{
		events: []Event{
			{Type: EventThinkingDelta, Text: "pondering"},
			{Type: EventTextDelta, Text: "answer"},
			{Type: EventDone, InputTokens: 7, OutputTokens: 11},
		},
	}

	var phases []string
	var thinkingDeltas, answerDeltas []string
	var inTokens, outTokens int
	obs := &Observer{
		OnPhase:    func(p string) { phases = append(phases, p) },
		OnThinking: func(d string) { thinkingDeltas = append(thinkingDeltas, d) },
		OnAnswer:   func(d string) { answerDeltas = append(answerDeltas, d) },
		OnUsage:    func(in, out int) { inTokens, outTokens = in, out },
	}

	thinking, answer, err := Collect(stream, obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if thinking != "pondering" || answer != "answer" {
		t.Errorf("unexpected buffers: thinking=%q answer=%q", thinking, answer)
	}

	wantPhases := []string{PhaseThinking, PhaseResponding, PhaseDone}
	if len(phases) != len(wantPhases) {
		t.Fatalf("expected phases %v, got %v", wantPhases, phases)
	}
	for i, want := range wantPhases {
		if phases[i] != want {
			t.Errorf("phase %d: expected %q, got %q", i, want, phases[i])
		}
	}
	if len(thinkingDeltas) != 1 || thinkingDeltas[0] != "pondering" {
		t.Errorf("unexpected thinking deltas: %v", thinkingDeltas)
	}
	if len(answerDeltas) != 1 || answerDeltas[0] != "answer" {
		t.Errorf("unexpected answer deltas: %v", answerDeltas)
	}
	if inTokens != 7 || outTokens != 11 {
		t.Errorf("expected usage 7/11, got %d/%d", inTokens, outTokens)
	}
}

func TestCollectEndsWithDonePhaseOnError(t *testing.T) {
	stream := &testStream{err: errors.New("boom")}

	var phases []string
	obs := &Observer{OnPhase: func(p string) { phases = append(phases, p) }}

	_, _, err := Collect(stream, obs)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(phases) != 2 || phases[0] != PhaseThinking || phases[1] != PhaseDone {
		t.Errorf("expected thinking then done, got %v", phases)
	}
}
