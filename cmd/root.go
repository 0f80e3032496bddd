package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "thinkingui",
	Short: "Chat with a reasoning model, thinking tokens separated from the answer",
	Long: `thinkingui is a chat interface for Ollama cloud models that stream a
reasoning trace ("thinking") alongside the final answer.

Examples:
  thinkingui serve              # single-page web chat on 127.0.0.1:8080
  thinkingui chat               # terminal chat
  thinkingui models             # list models the endpoint advertises

The API key is read from OLLAMA_API_KEY.`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
