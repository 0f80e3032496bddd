// Package chat implements the terminal chat surface: a viewport over
// the conversation history, a textarea for input, and a spinner shown
// while the model is thinking.
package chat

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	appchat "github.com/bharath8080/thinkingui/internal/chat"
	"github.com/bharath8080/thinkingui/internal/llm"
	"github.com/bharath8080/thinkingui/internal/ui"
)

// Model is the bubbletea model for the chat TUI.
type Model struct {
	session *appchat.Session
	styles  *ui.Styles

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	updates     chan tea.Msg
	streaming   bool
	pendingUser string
	phase       string
	thinkingBuf strings.Builder
	answerBuf   strings.Builder
	startedAt   time.Time
	tokens      int

	err    error
	width  int
	height int
	ready  bool
}

// New creates the chat model for a session.
func New(session *appchat.Session) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.Prompt = "> "
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		session:  session,
		styles:   ui.NewStyles(os.Stdout),
		textarea: ta,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.textarea.SetWidth(msg.Width - 4)
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.streaming {
				break
			}
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" {
				break
			}
			m.err = nil
			m.textarea.Reset()
			m.streaming = true
			m.phase = llm.PhaseThinking
			m.thinkingBuf.Reset()
			m.answerBuf.Reset()
			m.startedAt = time.Now()
			m.tokens = 0

			var cmd tea.Cmd
			m.updates, cmd = startTurn(m.session, text)
			m.pendingUser = text
			m.refreshViewport()
			return m, tea.Batch(cmd, m.spinner.Tick)
		}

	case spinner.TickMsg:
		if m.streaming {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case phaseMsg:
		m.phase = string(msg)
		cmds = append(cmds, waitForUpdate(m.updates))

	case thinkingDeltaMsg:
		m.thinkingBuf.WriteString(string(msg))
		m.refreshViewport()
		cmds = append(cmds, waitForUpdate(m.updates))

	case answerDeltaMsg:
		m.answerBuf.WriteString(string(msg))
		m.refreshViewport()
		cmds = append(cmds, waitForUpdate(m.updates))

	case turnDoneMsg:
		m.streaming = false
		m.pendingUser = ""
		m.tokens = msg.outputTokens
		m.refreshViewport()

	case turnErrMsg:
		m.streaming = false
		m.pendingUser = ""
		m.err = msg.err
		m.refreshViewport()
	}

	if !m.streaming {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.textarea.View())
	return b.String()
}

func (m *Model) header() string {
	return m.styles.Title.Render("Ollama Thinking Chat") + " " + m.styles.Model.Render(m.session.Model())
}

func (m *Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render("error: " + m.err.Error())
	}
	if m.streaming {
		label := "Thinking"
		if m.phase == llm.PhaseResponding {
			label = "Responding"
		}
		elapsed := time.Since(m.startedAt)
		return fmt.Sprintf("%s %s... %.1fs", m.spinner.View(), label, elapsed.Seconds())
	}
	if m.tokens > 0 {
		return m.styles.Muted.Render(fmt.Sprintf("%d tokens | enter to send, ctrl+c to quit", m.tokens))
	}
	return m.styles.Muted.Render("enter to send, ctrl+c to quit")
}

// refreshViewport re-renders the transcript, including the live
// buffers of an in-flight turn.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.viewport.Width
	var b strings.Builder

	for _, msg := range m.session.Store().Rendered() {
		switch msg.Role {
		case llm.RoleUser:
			b.WriteString(m.styles.User.Render("You") + "\n")
			b.WriteString(msg.Content + "\n\n")
		case llm.RoleAssistant:
			b.WriteString(m.styles.Model.Render("Assistant") + "\n")
			if msg.Thinking != "" {
				b.WriteString(m.styles.Thinking.Render(msg.Thinking) + "\n")
			}
			b.WriteString(ui.RenderMarkdown(msg.Content, width) + "\n\n")
		}
	}

	if m.streaming {
		if m.pendingUser != "" {
			b.WriteString(m.styles.User.Render("You") + "\n")
			b.WriteString(m.pendingUser + "\n\n")
		}
		b.WriteString(m.styles.Model.Render("Assistant") + "\n")
		if m.thinkingBuf.Len() > 0 {
			b.WriteString(m.styles.Thinking.Render(m.thinkingBuf.String()) + "\n")
		}
		if m.answerBuf.Len() > 0 {
			b.WriteString(m.answerBuf.String() + "\n")
		}
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}
