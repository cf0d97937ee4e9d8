package main

import (
	"context"
	"fmt"
	"path/filepath"

	"aria/internal/assistant"
	"aria/internal/automation"
	"aria/internal/chat"
	"aria/internal/config"
	"aria/internal/content"
	"aria/internal/dispatch"
	"aria/internal/image"
	"aria/internal/notify"
	"aria/internal/perception"
	"aria/internal/search"
	"aria/internal/store"
)

// app bundles the wired assistant and everything that needs shutdown.
type app struct {
	pipeline      *assistant.Pipeline
	notifications *notify.Service
	history       *store.ChatStore
}

// newApp wires every collaborator from configuration. The sink receives
// reminder and timer notifications when they fire.
func newApp(ctx context.Context, cfg *config.Config, sink notify.Sink) (*app, error) {
	client, err := perception.NewClient(ctx, perception.ClientOptions{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLMTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("building model client: %w", err)
	}

	dataDir := cfg.Storage.DataDir

	history, err := store.NewChatStore(filepath.Join(dataDir, "chat.db"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening chat history: %w", err)
	}

	notifications := notify.NewService(
		notify.NewStore(dataDir, logger), sink, cfg.Username, logger)
	if err := notifications.Recover(); err != nil {
		logger.Warn("recovering scheduled notifications: " + err.Error())
	}

	engine := search.NewEngine(client, logger)
	engine.SetMaxResults(cfg.Search.MaxResults)
	engine.SetTimeout(cfg.SearchTimeout())

	dispatcher := dispatch.New(
		automation.NewRunner(nil, logger),
		chat.NewBot(client, history, cfg.Username, cfg.Name, logger),
		engine,
		content.NewWriter(client, filepath.Join(dataDir, "content"), logger),
		image.NewGenerator(image.Config{
			Endpoint: cfg.Image.Endpoint,
			APIKey:   cfg.Image.APIKey,
			Dir:      filepath.Join(dataDir, "generated_images"),
			Timeout:  cfg.ImageTimeout(),
		}, logger),
		notifications,
		logger,
	)

	classifier := perception.NewClassifier(client, logger)

	return &app{
		pipeline:      assistant.NewPipeline(classifier, dispatcher, logger),
		notifications: notifications,
		history:       history,
	}, nil
}

// close shuts down background workers and storage.
func (a *app) close() {
	a.notifications.Close()
	if err := a.history.Close(); err != nil {
		logger.Warn("closing chat history: " + err.Error())
	}
}
