// Package server provides the public entry point for initializing the
// analysis service: configuration, telemetry, the analysis pipeline, the
// repository-listing collaborator, and the HTTP router.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rivecs/rivecs.github.io/internal/analysis"
	"github.com/rivecs/rivecs.github.io/internal/api"
	"github.com/rivecs/rivecs.github.io/internal/api/handlers"
	"github.com/rivecs/rivecs.github.io/internal/config"
	"github.com/rivecs/rivecs.github.io/internal/llm"
	"github.com/rivecs/rivecs.github.io/internal/repos"
	"github.com/rivecs/rivecs.github.io/internal/telemetry"
)

// snapshotCacheSize bounds how many usernames keep a last-known-good
// repository snapshot in memory.
const snapshotCacheSize = 128

// Server holds the initialized analysis service.
type Server struct {
	// Handler is the HTTP handler with all routes and middleware.
	Handler http.Handler

	// Config is the loaded configuration.
	Config *config.Config

	// Port is the port the server should listen on.
	Port int

	// ShutdownFunc should be called on graceful shutdown to flush telemetry.
	ShutdownFunc func(context.Context) error
}

// New loads configuration from the environment and initializes all
// components.
func New(ctx context.Context) (*Server, error) {
	return NewWithConfig(ctx, config.Load())
}

// NewWithConfig initializes the service with an explicit configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*Server, error) {
	shutdown, err := telemetry.Init(cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	client := llm.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model,
		llm.WithEndpoint(cfg.OpenAI.Endpoint),
		llm.WithTimeout(cfg.OpenAI.Timeout),
		llm.WithMaxOutputTokens(cfg.OpenAI.MaxOutputTokens),
		llm.WithTemperature(cfg.OpenAI.Temperature),
	)
	analyzer := analysis.New(client, cfg.OpenAI.APIKey)
	if cfg.OpenAI.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set; analyze requests will fail with a configuration error")
	}

	reposService, err := repos.NewService(repos.NewClient(cfg.GitHub.APIURL, cfg.GitHub.Token), snapshotCacheSize)
	if err != nil {
		return nil, fmt.Errorf("init repos service: %w", err)
	}

	h := handlers.New(analyzer, reposService, cfg.Version)

	return &Server{
		Handler:      api.NewRouter(h),
		Config:       cfg,
		Port:         cfg.Port,
		ShutdownFunc: shutdown,
	}, nil
}
