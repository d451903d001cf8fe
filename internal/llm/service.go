package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hsinyulin/ledgerchat/internal/common"
	"github.com/hsinyulin/ledgerchat/internal/service"
)

// Per-role deadlines. Extraction restates pre-aggregated figures and
// should return fast; reasoning reads the full dataset and gets three
// times as long.
const (
	ExtractionTimeout = 30 * time.Second
	ReasoningTimeout  = 90 * time.Second
)

const extractionSystemPrompt = `You are a precise assistant for a household spending tracker.
You are given pre-computed spending figures. Interpret them for the user.
Do not recompute, estimate or invent numbers. Only restate the figures you were given.
Answer in the same language as the question.`

const reasoningSystemPrompt = `You are an analyst for a household spending tracker.
You are given the complete spending records. Base every statement on them.
Do not invent numbers, months or categories that are not in the data.
Answer in the same language as the question.`

// textService adapts a Client to service.TextService, pinning a system
// prompt, a deadline and retry behavior per role.
type textService struct {
	client  Client
	logger  *slog.Logger
	system  string
	role    string
	timeout time.Duration
	retry   service.RetryOptions
}

// NewExtractionService wraps a client as the short-deadline tier-two
// text service.
func NewExtractionService(client Client, logger *slog.Logger) service.TextService {
	return newTextService(client, logger, "extraction", extractionSystemPrompt, ExtractionTimeout)
}

// NewReasoningService wraps a client as the long-deadline tier-three
// text service.
func NewReasoningService(client Client, logger *slog.Logger) service.TextService {
	return newTextService(client, logger, "reasoning", reasoningSystemPrompt, ReasoningTimeout)
}

func newTextService(client Client, logger *slog.Logger, role, system string, timeout time.Duration) service.TextService {
	if logger == nil {
		logger = slog.Default()
	}
	return &textService{
		client:  client,
		logger:  logger,
		system:  system,
		role:    role,
		timeout: timeout,
		retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// Call sends one prompt under the role's deadline. A deadline hit or
// exhausted retries surface as an error so the caller can escalate.
func (s *textService) Call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	var result string
	err := common.WithRetry(ctx, func() error {
		text, callErr := s.client.Complete(ctx, s.system, prompt)
		if callErr != nil {
			return callErr
		}
		result = text
		return nil
	}, s.retry)
	if err != nil {
		s.logger.Warn("text service call failed",
			"role", s.role,
			"elapsed", time.Since(start),
			"error", err)
		return "", fmt.Errorf("%s service: %w", s.role, err)
	}

	s.logger.Debug("text service call complete",
		"role", s.role,
		"elapsed", time.Since(start),
		"response_bytes", len(result))
	return result, nil
}
