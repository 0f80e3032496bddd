package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	appchat "github.com/bharath8080/thinkingui/internal/chat"
	"github.com/bharath8080/thinkingui/internal/config"
	"github.com/bharath8080/thinkingui/internal/llm"
	tuichat "github.com/bharath8080/thinkingui/internal/tui/chat"
)

var chatModel string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive terminal chat session",
	Long: `Start an interactive chat session in the terminal.

Examples:
  thinkingui chat
  thinkingui chat --model qwen3:cloud

Keyboard shortcuts:
  Enter   - Send message
  Ctrl+C  - Quit`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatModel, "model", "", "Override the model")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if chatModel != "" {
		cfg.Model = chatModel
	}

	provider, err := llm.NewOllamaProvider(cfg.Host, cfg.APIKey, cfg.Model)
	if err != nil {
		return err
	}

	session := appchat.New(provider, cfg.Model, cfg.SystemPrompt)
	model := tuichat.New(session)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run chat: %w", err)
	}
	return nil
}
