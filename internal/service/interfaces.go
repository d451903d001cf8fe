// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/hsinyulin/ledgerchat/internal/model"
)

// DataStore is the query surface over the monthly spending records.
// All calls are synchronous and expected to be cheap (in-memory or
// local SQLite).
type DataStore interface {
	// AvailableMonths lists every month with data, in calendar order.
	AvailableMonths(ctx context.Context) ([]model.MonthKey, error)
	// AvailableCategories lists the known category set, sorted.
	AvailableCategories(ctx context.Context) ([]string, error)
	// LoadMonth returns all records for one month. A month without
	// data yields common.ErrNotFound.
	LoadMonth(ctx context.Context, key model.MonthKey) ([]model.TransactionRecord, error)
	// SummaryStats returns top-level aggregates across all months.
	SummaryStats(ctx context.Context) (model.SummaryStats, error)
	Close() error
}

// TextService is a synchronous text-in/text-out capability with a
// caller-supplied timeout baked into its construction. The pipeline
// consumes two instances: an extraction service (short timeout, cheap
// structured interpretation) and a reasoning service (longer timeout,
// narrative and advisory answers).
type TextService interface {
	Call(ctx context.Context, prompt string) (string, error)
}

// TurnSink receives one structured record per answered turn for
// offline pattern analysis. Implementations must be append-only.
type TurnSink interface {
	Record(ctx context.Context, rec TurnRecord) error
	Close() error
}

// TurnRecord is the journal entry written after each answered turn.
type TurnRecord struct {
	Timestamp     time.Time      `json:"timestamp"`
	Question      string         `json:"question"`
	AnswerPreview string         `json:"answer_preview"`
	Intent        model.Intent   `json:"intent"`
	Handler       model.Handler  `json:"handler"`
	Entities      model.Entities `json:"entities"`
	Success       bool           `json:"success"`
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
