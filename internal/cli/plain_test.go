package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hsinyulin/ledgerchat/internal/model"
	"github.com/hsinyulin/ledgerchat/internal/pipeline"
)

func TestIsExitCommand(t *testing.T) {
	for _, cmd := range []string{"exit", "QUIT", "bye", "離開", "再見"} {
		assert.True(t, isExitCommand(cmd), cmd)
	}
	assert.False(t, isExitCommand("七月花了多少"))
	assert.False(t, isExitCommand("exit the loop"))
}

func TestIsStatsCommand(t *testing.T) {
	assert.True(t, isStatsCommand("stats"))
	assert.True(t, isStatsCommand("統計"))
	assert.False(t, isStatsCommand("statistics"))
}

func TestRenderWarnings(t *testing.T) {
	out := Render(pipeline.Response{
		Text:     "七月總支出 NT$9,000",
		Warnings: []string{"warn-a", "warn-b"},
	})
	assert.Contains(t, out, "NT$9,000")
	assert.Contains(t, out, "warn-a")
	assert.Contains(t, out, "warn-b")
}

func TestRenderBlocked(t *testing.T) {
	out := Render(pipeline.Response{Text: "decline", Blocked: true})
	assert.Contains(t, out, "decline")
}

func TestRenderDiagnostics(t *testing.T) {
	out := renderDiagnostics(pipeline.Diagnostics{})
	assert.Contains(t, out, "questions classified: 0")

	d := pipeline.Diagnostics{}
	d.Classifier.Total = 2
	d.Classifier.MostCommon = model.IntentInstant
	d.Classifier.AvgConfidence = 0.5
	d.Language.Total = 2
	d.Language.ChineseCount = 1
	d.Language.EnglishCount = 1
	d.Language.Primary = model.LangChinese
	out = renderDiagnostics(d)
	assert.Contains(t, out, "instant_answer")
	assert.Contains(t, out, "zh 1 / en 1")
}