// Package answer implements the escalating answer tiers: deterministic
// computation over the records first, a summarized-data text service
// second, and the full-data reasoning service last. Cheaper tiers are
// always preferred; a tier escalates only when it cannot answer.
package answer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hsinyulin/ledgerchat/internal/locale"
	"github.com/hsinyulin/ledgerchat/internal/model"
	"github.com/hsinyulin/ledgerchat/internal/service"
)

// Tier identifiers recorded on results.
const (
	TierDeterministic = 1
	TierSummarized    = 2
	TierFullData      = 3
)

// minServiceReply is the shortest trimmed reply the summarized tier
// accepts; anything shorter is treated as a non-answer and escalated.
// The terminal tier has no such gate: whatever it says is the answer.
const minServiceReply = 10

// Result is one produced answer plus its provenance.
type Result struct {
	Text string
	// Source holds every figure the text is grounded on, for
	// post-answer verification.
	Source        []float64
	Tier          int
	Deterministic bool
	// Degraded marks the canned fallback produced when every tier
	// failed; it caps the confidence score instead of raising an
	// error.
	Degraded bool
}

// Engine routes classified questions through the tiers. Either text
// service may be nil, in which case its tier is skipped.
type Engine struct {
	store      service.DataStore
	extraction service.TextService
	reasoning  service.TextService
	logger     *slog.Logger
}

// New creates an answer engine.
func New(store service.DataStore, extraction, reasoning service.TextService, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:      store,
		extraction: extraction,
		reasoning:  reasoning,
		logger:     logger,
	}
}

// Answer produces a response for one classified question. Scope is
// assumed validated: months and categories in the entities exist.
func (e *Engine) Answer(ctx context.Context, question string, c model.Classification, lang model.Language) (Result, error) {
	switch c.Handler {
	case model.HandlerRedirectVisual:
		return deterministic(locale.VisualRedirect(lang)), nil
	case model.HandlerNoAnswer:
		return deterministic(locale.TooComplex(lang)), nil
	case model.HandlerCompare:
		return e.compare(ctx, c.Entities, lang)
	case model.HandlerForecast:
		return e.forecast(ctx, lang)
	case model.HandlerTrend:
		return e.trend(ctx, c.Entities, lang)
	case model.HandlerInsight, model.HandlerAdvice, model.HandlerOptimize:
		// Open-ended analysis never has a deterministic form.
		return e.escalate(ctx, question, c.Entities, lang)
	default:
		res, ok, err := e.instant(ctx, question, c.Entities, lang)
		if err != nil {
			return Result{}, err
		}
		if ok {
			return res, nil
		}
		return e.escalate(ctx, question, c.Entities, lang)
	}
}

// escalate tries the summarized tier, then the full-data tier. It
// never fails: when both tiers are down the caller still gets a
// graceful decline, marked degraded so the score reflects it.
func (e *Engine) escalate(ctx context.Context, question string, entities model.Entities, lang model.Language) (Result, error) {
	if e.extraction != nil {
		res, err := e.summarized(ctx, question, entities, lang)
		if err == nil {
			return res, nil
		}
		e.logger.Warn("summarized tier failed, escalating", "error", err)
	}

	if e.reasoning != nil {
		res, err := e.fullData(ctx, question, entities, lang)
		if err == nil {
			return res, nil
		}
		e.logger.Warn("full-data tier failed", "error", err)
	}

	return Result{
		Text:     locale.ServiceUnavailable(lang),
		Tier:     TierFullData,
		Degraded: true,
	}, nil
}

func deterministic(text string, source ...float64) Result {
	return Result{
		Text:          text,
		Source:        source,
		Tier:          TierDeterministic,
		Deterministic: true,
	}
}

// acceptReply decides whether a text-service reply counts as an
// answer.
func acceptReply(reply string) bool {
	return len(strings.TrimSpace(reply)) > minServiceReply
}
