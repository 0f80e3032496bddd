package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bharath8080/thinkingui/internal/config"
	"github.com/bharath8080/thinkingui/internal/llm"
	"github.com/bharath8080/thinkingui/internal/signal"
	"github.com/bharath8080/thinkingui/internal/ui"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available on the endpoint",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext()
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	provider, err := llm.NewOllamaProvider(cfg.Host, cfg.APIKey, cfg.Model)
	if err != nil {
		return err
	}

	names, err := provider.ListModels(ctx)
	if err != nil {
		return err
	}

	styles := ui.NewStyles(os.Stdout)
	for _, name := range names {
		marker := " "
		if name == cfg.Model {
			marker = styles.Model.Render("*")
		}
		fmt.Printf("%s %s\n", marker, name)
	}
	return nil
}
