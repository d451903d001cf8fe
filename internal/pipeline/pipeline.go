// Package pipeline orchestrates one question through language
// detection, the guardrail layers, classification, the answer tiers,
// verification, confidence scoring and response assembly.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hsinyulin/ledgerchat/internal/answer"
	"github.com/hsinyulin/ledgerchat/internal/classify"
	"github.com/hsinyulin/ledgerchat/internal/confidence"
	"github.com/hsinyulin/ledgerchat/internal/guard"
	"github.com/hsinyulin/ledgerchat/internal/lang"
	"github.com/hsinyulin/ledgerchat/internal/locale"
	"github.com/hsinyulin/ledgerchat/internal/model"
	"github.com/hsinyulin/ledgerchat/internal/service"
	"github.com/hsinyulin/ledgerchat/internal/session"
)

// Config tunes response assembly.
type Config struct {
	// ShowConfidence appends the confidence footer to every answer.
	ShowConfidence bool
	// UncertaintyThreshold is the score below which answers get an
	// uncertainty disclosure prefixed.
	UncertaintyThreshold float64
}

// DefaultConfig returns the production assembly settings.
func DefaultConfig() Config {
	return Config{
		ShowConfidence:       true,
		UncertaintyThreshold: 0.6,
	}
}

// Response is the fully assembled reply for one question.
type Response struct {
	Text       string
	Language   model.Language
	Level      model.ConfidenceLevel
	Warnings   []string
	Confidence float64
	Tier       int
	Blocked    bool
}

// Pipeline wires the stages together. One Pipeline serves one session
// at a time; concurrent sessions get their own Session but share the
// stateless stages.
type Pipeline struct {
	detector   *lang.Detector
	classifier *classify.Classifier
	guard      *guard.Guard
	engine     *answer.Engine
	tracker    *confidence.Tracker
	store      service.DataStore
	sink       service.TurnSink
	logger     *slog.Logger
	cfg        Config
}

// New creates a pipeline. sink may be nil to disable journaling.
func New(
	detector *lang.Detector,
	classifier *classify.Classifier,
	g *guard.Guard,
	engine *answer.Engine,
	tracker *confidence.Tracker,
	store service.DataStore,
	sink service.TurnSink,
	cfg Config,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.UncertaintyThreshold <= 0 {
		cfg.UncertaintyThreshold = 0.6
	}
	return &Pipeline{
		detector:   detector,
		classifier: classifier,
		guard:      g,
		engine:     engine,
		tracker:    tracker,
		store:      store,
		sink:       sink,
		logger:     logger,
		cfg:        cfg,
	}
}

// Diagnostics summarizes the bounded classifier and language histories
// for the stats command.
type Diagnostics struct {
	Classifier classify.Stats
	Language   lang.Stats
}

// Diagnostics returns the current diagnostic counters.
func (p *Pipeline) Diagnostics(sess *session.Session) Diagnostics {
	return Diagnostics{
		Classifier: p.classifier.Stats(),
		Language:   lang.StatsFor(sess),
	}
}

// Ask runs one question through every stage. Guardrail blocks are not
// errors: they come back as a Blocked response with the decline text.
func (p *Pipeline) Ask(ctx context.Context, sess *session.Session, question string) (Response, error) {
	start := time.Now()
	tag := p.detector.Detect(question, sess)
	language := tag.Code

	if topic := p.guard.CheckTopic(question, language); !topic.Allowed {
		p.logger.Info("question blocked by topic whitelist",
			"category", string(topic.Category))
		return p.blocked(ctx, sess, question, topic.Message, language), nil
	}

	if boundary := p.guard.EnforceBoundary(sess, language); !boundary.Allowed {
		p.logger.Info("question blocked by conversation drift")
		return p.blocked(ctx, sess, question, boundary.Message, language), nil
	}

	classification := p.classifier.Classify(question)

	scope, err := p.guard.ValidateScope(ctx, classification.Entities, language)
	if err != nil {
		return Response{}, fmt.Errorf("scope validation: %w", err)
	}
	if !scope.Valid {
		return p.blocked(ctx, sess, question, scope.Message, language), nil
	}

	result, err := p.engine.Answer(ctx, question, classification, language)
	if err != nil {
		return Response{}, fmt.Errorf("answering: %w", err)
	}

	components, verification, err := p.assess(ctx, question, classification, result, language)
	if err != nil {
		return Response{}, err
	}
	if !verification.Valid {
		result.Text = verification.Corrected
		result.Source = nil
	} else if verification.Corrected != "" {
		result.Text = verification.Corrected
	}

	value, level := p.tracker.Score(components)
	if result.Degraded {
		// The canned fallback carries no real answer; pin it well
		// below every threshold regardless of component scores.
		value = confidence.DegradedScore
		level = confidence.Level(value)
	}
	text := p.assemble(result.Text, value, level, components, classification, language)

	p.record(ctx, sess, question, text, classification, true)
	p.logger.Debug("question answered",
		"tier", result.Tier,
		"confidence", value,
		"elapsed", time.Since(start))

	return Response{
		Text:       text,
		Language:   language,
		Level:      level,
		Warnings:   verification.Warnings,
		Confidence: value,
		Tier:       result.Tier,
	}, nil
}

// assess derives the confidence components and, for generated answers,
// runs response verification.
func (p *Pipeline) assess(ctx context.Context, question string, c model.Classification, result answer.Result, language model.Language) (model.ConfidenceComponents, model.ResponseVerification, error) {
	components := model.FullConfidence()
	components.QuestionClear = confidence.AssessQuestionClarity(c.Confidence)
	components.LLMConfident = confidence.AssessLLMConfidence(result.Text, result.Deterministic)

	months, err := p.store.AvailableMonths(ctx)
	if err != nil {
		return components, model.ResponseVerification{}, err
	}
	categories, err := p.store.AvailableCategories(ctx)
	if err != nil {
		return components, model.ResponseVerification{}, err
	}
	components.DataAvailable = confidence.AssessDataAvailability(c.Entities, months, categories)

	// Deterministic answers restate store values; verification is for
	// generated text only.
	verification := model.ResponseVerification{Valid: true, Corrected: result.Text}
	if !result.Deterministic {
		verification, err = p.guard.VerifyResponse(ctx, result.Text, result.Source, language)
		if err != nil {
			return components, model.ResponseVerification{}, fmt.Errorf("response verification: %w", err)
		}
	}
	components.ResponseVerified = confidence.AssessVerification(verification)
	components.GuardrailPassed = confidence.AssessGuardrails(len(verification.Warnings))

	return components, verification, nil
}

// blocked assembles a decline response and records the turn.
func (p *Pipeline) blocked(ctx context.Context, sess *session.Session, question, message string, language model.Language) Response {
	p.record(ctx, sess, question, message, model.Classification{
		Intent:  model.IntentTooComplex,
		Handler: model.HandlerNoAnswer,
	}, false)
	return Response{
		Text:     message,
		Language: language,
		Level:    model.ConfidenceVeryLow,
		Blocked:  true,
	}
}

// record appends the turn to the session window and the journal.
func (p *Pipeline) record(ctx context.Context, sess *session.Session, question, answerText string, c model.Classification, success bool) {
	sess.AddTurn(model.ConversationTurn{
		Timestamp:      time.Now(),
		Question:       question,
		Answer:         answerText,
		Classification: c,
	})

	if p.sink == nil {
		return
	}
	if err := p.sink.Record(ctx, service.TurnRecord{
		Timestamp:     time.Now(),
		Question:      question,
		AnswerPreview: answerText,
		Intent:        c.Intent,
		Handler:       c.Handler,
		Entities:      c.Entities,
		Success:       success,
	}); err != nil {
		p.logger.Warn("failed to journal turn", "error", err)
	}
}

// assemble prefixes the uncertainty disclosure and appends the
// confidence footer.
func (p *Pipeline) assemble(text string, value float64, level model.ConfidenceLevel, components model.ConfidenceComponents, c model.Classification, language model.Language) string {
	if value < p.cfg.UncertaintyThreshold {
		reason := p.tracker.Reason(components)
		text = locale.Uncertainty(language, reason) + "\n\n" + text
	}
	if followUp := locale.FollowUp(language, c.Intent); followUp != "" {
		text += "\n\n" + followUp
	}
	if p.cfg.ShowConfidence {
		text += "\n\n" + fmt.Sprintf("%s %s (%.0f%%)",
			confidence.Bar(value), locale.ConfidenceLabel(language, level), value*100)
	}
	return text
}
