package llm

import (
	"io"
)

// Phase labels for observer notifications while a response streams.
const (
	PhaseThinking   = "thinking"
	PhaseResponding = "responding"
	PhaseDone       = "done"
)

// Observer receives side-channel notifications while a stream is
// collected. All fields are optional; classification never depends on
// them being set or handled.
type Observer struct {
	OnPhase    func(phase string)
	OnThinking func(delta string)
	OnAnswer   func(delta string)
	OnUsage    func(inputTokens, outputTokens int)
}

func (o *Observer) phase(phase string) {
	if o != nil && o.OnPhase != nil {
		o.OnPhase(phase)
	}
}

func (o *Observer) thinking(delta string) {
	if o != nil && o.OnThinking != nil {
		o.OnThinking(delta)
	}
}

func (o *Observer) answer(delta string) {
	if o != nil && o.OnAnswer != nil {
		o.OnAnswer(delta)
	}
}

func (o *Observer) usage(inputTokens, outputTokens int) {
	if o != nil && o.OnUsage != nil {
		o.OnUsage(inputTokens, outputTokens)
	}
}

// Collect drains stream to exhaustion, concatenating thinking deltas
// and answer deltas into two separate buffers. Events carrying neither
// kind of delta are ignored. A transport failure mid-stream is
// returned as-is; callers must not commit the partial buffers.
func Collect(stream Stream, obs *Observer) (thinking string, answer string, err error) {
	var thinkingBuf, answerBuf []byte

	obs.phase(PhaseThinking)
	defer obs.phase(PhaseDone)

	responding := false
	for {
		event, recvErr := stream.Recv()
		if recvErr == io.EOF {
			break
		}
		if recvErr != nil {
			return "", "", recvErr
		}

		switch event.Type {
		case EventThinkingDelta:
			thinkingBuf = append(thinkingBuf, event.Text...)
			obs.thinking(event.Text)
		case EventTextDelta:
			answerBuf = append(answerBuf, event.Text...)
			if !responding {
				responding = true
				obs.phase(PhaseResponding)
			}
			obs.answer(event.Text)
		case EventDone:
			obs.usage(event.InputTokens, event.OutputTokens)
		case EventError:
			if event.Err != nil {
				return "", "", event.Err
			}
		}
	}

	return string(thinkingBuf), string(answerBuf), nil
}
