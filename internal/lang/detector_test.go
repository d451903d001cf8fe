package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hsinyulin/ledgerchat/internal/model"
	"github.com/hsinyulin/ledgerchat/internal/session"
)

func TestDetectChinese(t *testing.T) {
	d := New("")
	sess := session.New(session.DefaultMaxTurns)

	tag := d.Detect("七月花了多少錢？", sess)
	assert.Equal(t, model.LangChinese, tag.Code)
	assert.Greater(t, tag.Confidence, 0.7)
	assert.Equal(t, model.LangChinese, sess.RememberedLanguage())
}

func TestDetectEnglish(t *testing.T) {
	d := New("")
	sess := session.New(session.DefaultMaxTurns)

	tag := d.Detect("How much did I spend on food in July?", sess)
	assert.Equal(t, model.LangEnglish, tag.Code)
	assert.Greater(t, tag.Confidence, 0.7)
	assert.Equal(t, model.LangEnglish, sess.RememberedLanguage())
}

func TestDetectForced(t *testing.T) {
	d := New(model.LangEnglish)
	sess := session.New(session.DefaultMaxTurns)

	tag := d.Detect("七月花了多少錢？", sess)
	assert.Equal(t, model.LangEnglish, tag.Code)
	assert.Equal(t, 1.0, tag.Confidence)
}

func TestDetectShortFollowUpKeepsLanguage(t *testing.T) {
	d := New("")
	sess := session.New(session.DefaultMaxTurns)

	d.Detect("How much did I spend on food in July?", sess)
	tag := d.Detect("and August?", sess)
	assert.Equal(t, model.LangEnglish, tag.Code)
	assert.InDelta(t, 0.8, tag.Confidence, 0.001)
}

func TestDetectNoSignalFallsBack(t *testing.T) {
	d := New("")
	sess := session.New(session.DefaultMaxTurns)

	tag := d.Detect("12345 67890 11111 22222 33333 44444", sess)
	assert.Equal(t, model.LangChinese, tag.Code)
	assert.InDelta(t, 0.5, tag.Confidence, 0.001)
}

func TestStatsFor(t *testing.T) {
	d := New("")
	sess := session.New(session.DefaultMaxTurns)
	assert.Equal(t, Stats{}, StatsFor(sess))

	// Short follow-ups ride the continuity path and stay out of the
	// detection history.
	d.Detect("七月花了多少錢？", sess)
	d.Detect("八月呢？", sess)
	d.Detect("How much did I spend on transport in September?", sess)

	stats := StatsFor(sess)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ChineseCount)
	assert.Equal(t, 1, stats.EnglishCount)
	assert.Equal(t, model.LangChinese, stats.Primary)
	assert.Greater(t, stats.AvgConfidence, 0.5)
}
