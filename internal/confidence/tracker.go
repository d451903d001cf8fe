// Package confidence combines five per-stage signals into one weighted
// trust score and picks the matching uncertainty disclosure.
package confidence

import (
	"log/slog"
	"strings"

	"github.com/hsinyulin/ledgerchat/internal/locale"
	"github.com/hsinyulin/ledgerchat/internal/model"
)

// Component weights. Data availability dominates: an answer grounded
// in real records is worth more than a fluent one.
const (
	weightDataAvailable    = 0.40
	weightQuestionClear    = 0.20
	weightLLMConfident     = 0.20
	weightGuardrailPassed  = 0.10
	weightResponseVerified = 0.10
)

// Level thresholds over the weighted score.
const (
	thresholdHigh   = 0.8
	thresholdMedium = 0.6
	thresholdLow    = 0.4
)

// DegradedScore is the fixed score for fallback answers produced after
// every answer tier failed. It sits below thresholdLow so such answers
// always present as very low confidence.
const DegradedScore = 0.2

// hedgeCues mark non-committal phrasing in generated answers.
var hedgeCues = []string{
	"可能", "大概", "或許", "也許", "應該是", "不確定",
	"maybe", "perhaps", "might", "possibly", "not sure", "i think",
}

// Tracker scores answers. It is stateless; a single instance serves
// all sessions.
type Tracker struct {
	logger *slog.Logger
}

// New creates a confidence tracker.
func New(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{logger: logger}
}

// Score combines the components into a weighted value and its level.
// Components are clamped to [0,1] first, so a buggy upstream stage can
// never push the score outside the unit interval.
func (t *Tracker) Score(c model.ConfidenceComponents) (float64, model.ConfidenceLevel) {
	value := clamp01(c.DataAvailable)*weightDataAvailable +
		clamp01(c.QuestionClear)*weightQuestionClear +
		clamp01(c.LLMConfident)*weightLLMConfident +
		clamp01(c.GuardrailPassed)*weightGuardrailPassed +
		clamp01(c.ResponseVerified)*weightResponseVerified

	level := Level(value)
	t.logger.Debug("confidence scored",
		"value", value,
		"level", string(level),
		"data_available", c.DataAvailable,
		"question_clear", c.QuestionClear)
	return value, level
}

// Level maps a combined score to its ordinal band.
func Level(value float64) model.ConfidenceLevel {
	switch {
	case value >= thresholdHigh:
		return model.ConfidenceHigh
	case value >= thresholdMedium:
		return model.ConfidenceMedium
	case value >= thresholdLow:
		return model.ConfidenceLow
	default:
		return model.ConfidenceVeryLow
	}
}

// Reason picks the uncertainty disclosure for the weakest component.
// A uniformly strong set of components yields the generic reason.
func (t *Tracker) Reason(c model.ConfidenceComponents) locale.UncertaintyReason {
	lowest := clamp01(c.DataAvailable)
	reason := locale.ReasonPartialData
	if lowest < 0.5 {
		reason = locale.ReasonNoData
	}

	if v := clamp01(c.QuestionClear); v < lowest {
		lowest, reason = v, locale.ReasonUnclearQuestion
	}
	if v := clamp01(c.LLMConfident); v < lowest {
		lowest, reason = v, locale.ReasonLLMUncertain
	}
	if v := clamp01(c.GuardrailPassed); v < lowest {
		lowest, reason = v, locale.ReasonOffTopic
	}
	if v := clamp01(c.ResponseVerified); v < lowest {
		lowest, reason = v, locale.ReasonUnverified
	}

	if lowest >= 0.7 {
		return locale.ReasonGeneral
	}
	return reason
}

// AssessDataAvailability scores how much of the referenced data the
// store actually holds. Questions with no data references at all get a
// middling score rather than full credit.
func AssessDataAvailability(entities model.Entities, available []model.MonthKey, categories []string) float64 {
	if entities.IsEmpty() {
		return 0.7
	}

	// Penalties compound: a missing month and an unknown category
	// together leave almost nothing to answer from.
	score := 1.0
	if entities.Month != nil && !entities.Month.MatchesAny(available) {
		score *= 0.2
	}
	if entities.Category != "" && !containsString(categories, entities.Category) {
		score *= 0.5
	}
	if len(entities.Months) > 0 {
		present := 0
		for _, key := range entities.Months {
			if key.MatchesAny(available) {
				present++
			}
		}
		fraction := float64(present) / float64(len(entities.Months))
		if fraction < score {
			score = fraction
		}
	}
	return score
}

// AssessQuestionClarity steps the classifier's own confidence into a
// coarse clarity band.
func AssessQuestionClarity(classifierConfidence float64) float64 {
	switch {
	case classifierConfidence >= 0.8:
		return 0.95
	case classifierConfidence >= 0.6:
		return 0.75
	case classifierConfidence >= 0.4:
		return 0.55
	default:
		return 0.35
	}
}

// AssessLLMConfidence counts hedge phrases in a generated answer.
// Deterministic answers never hedge and score full.
func AssessLLMConfidence(answer string, deterministic bool) float64 {
	if deterministic {
		return 1.0
	}
	lower := strings.ToLower(answer)
	hedges := 0
	for _, cue := range hedgeCues {
		hedges += strings.Count(lower, cue)
	}
	switch {
	case hedges == 0:
		return 0.95
	case hedges == 1:
		return 0.75
	case hedges == 2:
		return 0.55
	default:
		return 0.35
	}
}

// AssessGuardrails scores the pipeline's guardrail outcome: full when
// every layer passed cleanly, degraded once any layer had to warn.
func AssessGuardrails(warnings int) float64 {
	if warnings == 0 {
		return 1.0
	}
	return 0.6
}

// AssessVerification scores the response-verification outcome.
func AssessVerification(v model.ResponseVerification) float64 {
	if !v.Valid {
		return 0.0
	}
	if len(v.Warnings) > 0 {
		return 0.7
	}
	return 1.0
}

// Bar renders a ten-segment gauge for the confidence footer.
func Bar(value float64) string {
	filled := int(clamp01(value)*10 + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func containsString(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
