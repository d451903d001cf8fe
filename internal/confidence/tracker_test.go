package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hsinyulin/ledgerchat/internal/locale"
	"github.com/hsinyulin/ledgerchat/internal/model"
)

func TestScorePerfectComponents(t *testing.T) {
	tracker := New(nil)

	value, level := tracker.Score(model.FullConfidence())
	assert.InDelta(t, 1.0, value, 1e-9)
	assert.Equal(t, model.ConfidenceHigh, level)
}

func TestScoreWeighting(t *testing.T) {
	tracker := New(nil)

	// Only data availability contributes.
	value, level := tracker.Score(model.ConfidenceComponents{DataAvailable: 1.0})
	assert.InDelta(t, 0.40, value, 1e-9)
	assert.Equal(t, model.ConfidenceLow, level)
}

func TestScoreClampsComponents(t *testing.T) {
	tracker := New(nil)

	value, _ := tracker.Score(model.ConfidenceComponents{
		DataAvailable:    3.0,
		QuestionClear:    -1.0,
		LLMConfident:     1.0,
		GuardrailPassed:  1.0,
		ResponseVerified: 1.0,
	})
	assert.InDelta(t, 0.40+0.20+0.10+0.10, value, 1e-9)
}

func TestScoreMonotonic(t *testing.T) {
	tracker := New(nil)

	weak := model.FullConfidence()
	weak.DataAvailable = 0.2
	lowValue, _ := tracker.Score(weak)

	strong := model.FullConfidence()
	strong.DataAvailable = 0.8
	highValue, _ := tracker.Score(strong)

	assert.Less(t, lowValue, highValue)
}

func TestLevelBands(t *testing.T) {
	tests := []struct {
		value float64
		want  model.ConfidenceLevel
	}{
		{0.95, model.ConfidenceHigh},
		{0.80, model.ConfidenceHigh},
		{0.79, model.ConfidenceMedium},
		{0.60, model.ConfidenceMedium},
		{0.59, model.ConfidenceLow},
		{0.40, model.ConfidenceLow},
		{0.39, model.ConfidenceVeryLow},
		{0.0, model.ConfidenceVeryLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.value), "value %v", tt.value)
	}
}

func TestReasonTracksWeakestComponent(t *testing.T) {
	tracker := New(nil)

	tests := []struct {
		name       string
		components model.ConfidenceComponents
		want       locale.UncertaintyReason
	}{
		{
			"missing data",
			model.ConfidenceComponents{DataAvailable: 0.2, QuestionClear: 1, LLMConfident: 1, GuardrailPassed: 1, ResponseVerified: 1},
			locale.ReasonNoData,
		},
		{
			"partial data",
			model.ConfidenceComponents{DataAvailable: 0.5, QuestionClear: 1, LLMConfident: 1, GuardrailPassed: 1, ResponseVerified: 1},
			locale.ReasonPartialData,
		},
		{
			"mostly missing data",
			model.ConfidenceComponents{DataAvailable: 0.4, QuestionClear: 1, LLMConfident: 1, GuardrailPassed: 1, ResponseVerified: 1},
			locale.ReasonNoData,
		},
		{
			"vague question",
			model.ConfidenceComponents{DataAvailable: 1, QuestionClear: 0.35, LLMConfident: 1, GuardrailPassed: 1, ResponseVerified: 1},
			locale.ReasonUnclearQuestion,
		},
		{
			"hedged answer",
			model.ConfidenceComponents{DataAvailable: 1, QuestionClear: 1, LLMConfident: 0.35, GuardrailPassed: 1, ResponseVerified: 1},
			locale.ReasonLLMUncertain,
		},
		{
			"guardrail warnings",
			model.ConfidenceComponents{DataAvailable: 1, QuestionClear: 1, LLMConfident: 1, GuardrailPassed: 0.6, ResponseVerified: 1},
			locale.ReasonOffTopic,
		},
		{
			"unverified numbers",
			model.ConfidenceComponents{DataAvailable: 1, QuestionClear: 1, LLMConfident: 1, GuardrailPassed: 1, ResponseVerified: 0.6},
			locale.ReasonUnverified,
		},
		{
			"uniformly strong",
			model.ConfidenceComponents{DataAvailable: 0.9, QuestionClear: 0.9, LLMConfident: 0.9, GuardrailPassed: 1, ResponseVerified: 1},
			locale.ReasonGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tracker.Reason(tt.components))
		})
	}
}

func TestAssessDataAvailability(t *testing.T) {
	available := []model.MonthKey{
		{Name: "六月", Year: 2025},
		{Name: "七月", Year: 2025},
	}
	categories := []string{"交通費", "伙食費"}

	tests := []struct {
		name     string
		entities model.Entities
		want     float64
	}{
		{"no references", model.Entities{}, 0.7},
		{"month present", model.Entities{Month: &model.MonthKey{Name: "七月"}}, 1.0},
		{"month missing", model.Entities{Month: &model.MonthKey{Name: "三月"}}, 0.2},
		{"category unknown", model.Entities{Category: "寵物"}, 0.5},
		{
			"month missing and category unknown",
			model.Entities{Month: &model.MonthKey{Name: "三月"}, Category: "寵物"},
			0.1,
		},
		{
			"comparison half present",
			model.Entities{Months: []model.MonthKey{{Name: "七月"}, {Name: "三月"}}},
			0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessDataAvailability(tt.entities, available, categories)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAssessQuestionClarity(t *testing.T) {
	assert.Equal(t, 0.95, AssessQuestionClarity(0.9))
	assert.Equal(t, 0.75, AssessQuestionClarity(0.65))
	assert.Equal(t, 0.55, AssessQuestionClarity(0.5))
	assert.Equal(t, 0.35, AssessQuestionClarity(0.1))
}

func TestAssessLLMConfidence(t *testing.T) {
	assert.Equal(t, 1.0, AssessLLMConfidence("可能是 NT$3,000", true))
	assert.Equal(t, 0.95, AssessLLMConfidence("七月總支出 NT$25,100", false))
	assert.Equal(t, 0.75, AssessLLMConfidence("七月大概花了兩萬五", false))
	assert.Equal(t, 0.55, AssessLLMConfidence("可能是交通費，也許是伙食費", false))
	assert.Equal(t, 0.35, AssessLLMConfidence("maybe, perhaps, not sure", false))
}

func TestAssessVerification(t *testing.T) {
	assert.Equal(t, 1.0, AssessVerification(model.ResponseVerification{Valid: true}))
	assert.Equal(t, 0.7, AssessVerification(model.ResponseVerification{Valid: true, Warnings: []string{"w"}}))
	assert.Equal(t, 0.0, AssessVerification(model.ResponseVerification{Valid: false}))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "██████████", Bar(1.0))
	assert.Equal(t, "████████░░", Bar(0.8))
	assert.Equal(t, "░░░░░░░░░░", Bar(0.0))
}
