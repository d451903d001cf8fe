// Package guard implements the four-layer guardrail pipeline: topic
// whitelist, conversation-boundary enforcement, data-scope validation,
// and post-answer response verification. Any layer that disallows
// short-circuits the rest of the pipeline, before any external service
// is paid for.
package guard

import (
	"log/slog"

	"github.com/hsinyulin/ledgerchat/internal/service"
)

// Config tunes the guardrail heuristics.
type Config struct {
	// MinTopicsWithForbidden is the minimum number of distinct allowed
	// topic buckets a question must match to survive also matching the
	// forbidden table (mixed-intent bias toward rejection). The source
	// system hard-coded 2 without documenting why, so it stays
	// configurable rather than re-derived.
	MinTopicsWithForbidden int
	// DriftWindow is how many recent questions the boundary layer
	// re-examines.
	DriftWindow int
	// DriftThreshold is how many of those must be off-topic to block.
	DriftThreshold int
	// MinTurnsForDrift disables drift enforcement early in a session.
	MinTurnsForDrift int
}

// DefaultConfig returns the production guardrail thresholds.
func DefaultConfig() Config {
	return Config{
		MinTopicsWithForbidden: 2,
		DriftWindow:            5,
		DriftThreshold:         3,
		MinTurnsForDrift:       3,
	}
}

// Guard evaluates questions and answers against the data scope served
// by the store. It holds no per-request state.
type Guard struct {
	store  service.DataStore
	logger *slog.Logger
	cfg    Config
}

// New creates a guard over the given data store.
func New(store service.DataStore, cfg Config, logger *slog.Logger) *Guard {
	if cfg.MinTopicsWithForbidden <= 0 {
		cfg.MinTopicsWithForbidden = 2
	}
	if cfg.DriftWindow <= 0 {
		cfg.DriftWindow = 5
	}
	if cfg.DriftThreshold <= 0 {
		cfg.DriftThreshold = 3
	}
	if cfg.MinTurnsForDrift <= 0 {
		cfg.MinTurnsForDrift = 3
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{store: store, cfg: cfg, logger: logger}
}
