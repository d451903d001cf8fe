package main

import (
	"fmt"
	"log/slog"

	"github.com/hsinyulin/ledgerchat/internal/answer"
	"github.com/hsinyulin/ledgerchat/internal/classify"
	"github.com/hsinyulin/ledgerchat/internal/common"
	appconfig "github.com/hsinyulin/ledgerchat/internal/config"
	"github.com/hsinyulin/ledgerchat/internal/confidence"
	"github.com/hsinyulin/ledgerchat/internal/guard"
	"github.com/hsinyulin/ledgerchat/internal/journal"
	"github.com/hsinyulin/ledgerchat/internal/lang"
	"github.com/hsinyulin/ledgerchat/internal/llm"
	"github.com/hsinyulin/ledgerchat/internal/pipeline"
	"github.com/hsinyulin/ledgerchat/internal/service"
	"github.com/hsinyulin/ledgerchat/internal/storage"
)

// app holds everything a chat-style command needs, built once per
// invocation and torn down in Close.
type app struct {
	cfg   appconfig.Config
	store *storage.SQLiteStore
	sink  service.TurnSink
	pipe  *pipeline.Pipeline
}

func initStore() (appconfig.Config, *storage.SQLiteStore, error) {
	cfg, err := appconfig.Load()
	if err != nil {
		return appconfig.Config{}, nil, err
	}

	store, err := storage.NewSQLiteStore(cfg.Database)
	if err != nil {
		return appconfig.Config{}, nil, common.NewUserError(
			fmt.Sprintf("could not open the spending database at %s", cfg.Database), err)
	}
	return cfg, store, nil
}

func buildApp(journaling bool) (*app, error) {
	cfg, store, err := initStore()
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		store.Close()
		return nil, common.NewUserError(
			"could not set up the language model client; check the llm section of your config", err)
	}

	logger := slog.Default()
	var sink service.TurnSink = journal.NopSink{}
	if journaling && cfg.Journal != "" {
		fileSink, err := journal.NewFileSink(cfg.Journal)
		if err != nil {
			slog.Warn("Journal disabled", "path", cfg.Journal, "error", err)
		} else {
			sink = fileSink
		}
	}

	g := guard.New(store, guard.DefaultConfig(), logger)
	engine := answer.New(store,
		llm.NewExtractionService(client, logger),
		llm.NewReasoningService(client, logger),
		logger)
	pipeCfg := pipeline.DefaultConfig()
	pipeCfg.ShowConfidence = cfg.ShowConfidence

	pipe := pipeline.New(
		lang.New(cfg.ForcedLanguage()),
		classify.New(),
		g,
		engine,
		confidence.New(logger),
		store,
		sink,
		pipeCfg,
		logger,
	)

	return &app{cfg: cfg, store: store, sink: sink, pipe: pipe}, nil
}

func (a *app) Close() {
	if err := a.sink.Close(); err != nil {
		slog.Warn("Failed to close journal", "error", err)
	}
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}
