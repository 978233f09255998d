// Command lawbot is a terminal client for Korean legal consultations
// backed by Gemini with search grounding.
//
// Usage:
//
//	GEMINI_API_KEY=AIza... lawbot [flags]
//
// Flags:
//
//	-model string    Model ID (default: gemini-3-flash-preview)
//	-api-key string  API key (overrides GEMINI_API_KEY and the config file)
//	-config string   Path to config file (default: user config dir)
//	-docs string     Comma-separated glob patterns for review documents
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lawbot"
	bt "lawbot/bubbletea"
	"lawbot/chat"
	"lawbot/config"
	"lawbot/docs"
	"lawbot/gemini"
	"lawbot/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lawbot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		model      = flag.String("model", "", "Model ID")
		apiKey     = flag.String("api-key", "", "API key (overrides GEMINI_API_KEY and the config file)")
		configPath = flag.String("config", "", "Path to config file")
		docGlobs   = flag.String("docs", "", "Comma-separated glob patterns for review documents")
	)
	flag.Parse()

	// Optional .env in the working directory. Ignored when absent.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Flag wins over env, env wins over the stored key.
	override := *apiKey
	if override == "" {
		override = os.Getenv("GEMINI_API_KEY")
	}
	cred := config.NewCredential(override, cfg.APIKey, path)

	provider := gemini.New(gemini.WithModel(*model))

	opts := []chat.Option{
		chat.WithLogger(logger),
		chat.WithPersona(cfg.DefaultPersona()),
	}
	switch {
	case *model != "":
		opts = append(opts, chat.WithModel(*model))
	case cfg.Model != "":
		opts = append(opts, chat.WithModel(cfg.Model))
	}
	orch := chat.New(provider, cred.Get, opts...)

	if *docGlobs != "" {
		if err := loadDocuments(orch, *docGlobs); err != nil {
			return err
		}
	}

	logger.Info("starting", zap.String("config", path))

	m := bt.New(orch, cred, lawbot.DefaultTheme())
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// loadDocuments registers files matching the glob patterns as review
// documents on the initial session.
func loadDocuments(orch *chat.Orchestrator, globs string) error {
	patterns := strings.Split(globs, ",")
	for i, p := range patterns {
		patterns[i] = strings.TrimSpace(p)
	}
	loaded, err := docs.Load(patterns, orch.Active().CreatedAt)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	for _, d := range loaded {
		orch.AddDocument(d.Title, d.Content)
	}
	return nil
}
