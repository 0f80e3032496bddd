package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	appchat "github.com/bharath8080/thinkingui/internal/chat"
	"github.com/bharath8080/thinkingui/internal/conversation"
	"github.com/bharath8080/thinkingui/internal/llm"
)

type phaseMsg string

type thinkingDeltaMsg string

type answerDeltaMsg string

type turnDoneMsg struct {
	reply        conversation.Message
	outputTokens int
}

type turnErrMsg struct {
	err error
}

// startTurn runs one conversation turn on a goroutine, forwarding
// observer notifications into the bubbletea loop through a channel.
func startTurn(sess *appchat.Session, text string) (chan tea.Msg, tea.Cmd) {
	updates := make(chan tea.Msg, 32)

	go func() {
		defer close(updates)

		obs := &llm.Observer{
			OnPhase:    func(phase string) { updates <- phaseMsg(phase) },
			OnThinking: func(delta string) { updates <- thinkingDeltaMsg(delta) },
			OnAnswer:   func(delta string) { updates <- answerDeltaMsg(delta) },
		}

		var outputTokens int
		obs.OnUsage = func(in, out int) { outputTokens = out }

		reply, err := sess.Send(context.Background(), text, obs)
		if err != nil {
			updates <- turnErrMsg{err: err}
			return
		}
		updates <- turnDoneMsg{reply: reply, outputTokens: outputTokens}
	}()

	return updates, waitForUpdate(updates)
}

// waitForUpdate delivers the next stream message to Update.
func waitForUpdate(updates chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return nil
		}
		return msg
	}
}
