package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/bharath8080/thinkingui/internal/chat"
	"github.com/bharath8080/thinkingui/internal/config"
	"github.com/bharath8080/thinkingui/internal/llm"
	servechat "github.com/bharath8080/thinkingui/internal/serve/chat"
	"github.com/bharath8080/thinkingui/internal/signal"
)

var (
	serveListen string
	serveModel  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the single-page web chat",
	Long: `Serve the web chat UI.

Examples:
  thinkingui serve
  thinkingui serve --listen 0.0.0.0:8080
  thinkingui serve --model qwen3:cloud`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default from config)")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Override the model")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext()
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.Listen = serveListen
	}
	if serveModel != "" {
		cfg.Model = serveModel
	}

	// Missing assets are fatal at startup; there is no degraded mode.
	logos, err := servechat.LoadLogos(cfg.AssetsDir)
	if err != nil {
		return err
	}

	provider, err := llm.NewOllamaProvider(cfg.Host, cfg.APIKey, cfg.Model)
	if err != nil {
		return err
	}

	server := servechat.NewServer(cfg.Model, logos, func() *chat.Session {
		return chat.New(provider, cfg.Model, cfg.SystemPrompt)
	})

	httpServer := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.HTTPHandler(),
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	fmt.Printf("thinkingui listening on http://%s (model %s)\n", cfg.Listen, cfg.Model)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
