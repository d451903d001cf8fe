package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsinyulin/ledgerchat/internal/model"
)

func TestAddTurnTrimsWindow(t *testing.T) {
	s := New(3)

	for _, q := range []string{"q1", "q2", "q3", "q4", "q5"} {
		s.AddTurn(model.ConversationTurn{Question: q})
	}

	assert.Equal(t, 3, s.Len())
	turns := s.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, "q3", turns[0].Question)
	assert.Equal(t, "q5", turns[2].Question)
	assert.False(t, turns[0].Timestamp.IsZero())
}

func TestRecentQuestions(t *testing.T) {
	s := New(5)
	s.AddTurn(model.ConversationTurn{Question: "q1"})
	s.AddTurn(model.ConversationTurn{Question: "q2"})
	s.AddTurn(model.ConversationTurn{Question: "q3"})

	assert.Equal(t, []string{"q2", "q3"}, s.RecentQuestions(2))
	assert.Equal(t, []string{"q1", "q2", "q3"}, s.RecentQuestions(10))
	assert.Empty(t, s.RecentQuestions(0))
}

func TestDefaultWindowSize(t *testing.T) {
	s := New(0)
	for i := 0; i < DefaultMaxTurns+5; i++ {
		s.AddTurn(model.ConversationTurn{Question: "q"})
	}
	assert.Equal(t, DefaultMaxTurns, s.Len())
}

func TestRememberedLanguage(t *testing.T) {
	s := New(DefaultMaxTurns)
	assert.Equal(t, model.Language(""), s.RememberedLanguage())

	s.RememberLanguage(model.LangEnglish)
	assert.Equal(t, model.LangEnglish, s.RememberedLanguage())
}

func TestLanguageHistoryBounded(t *testing.T) {
	s := New(DefaultMaxTurns)
	for i := 0; i < maxLanguageHistory+3; i++ {
		s.PushLanguage(model.LanguageTag{Code: model.LangChinese, Confidence: 0.9})
	}
	assert.Len(t, s.LanguageHistory(), maxLanguageHistory)
}

func TestReset(t *testing.T) {
	s := New(DefaultMaxTurns)
	s.AddTurn(model.ConversationTurn{Question: "q1"})
	s.RememberLanguage(model.LangChinese)
	s.PushLanguage(model.LanguageTag{Code: model.LangChinese, Confidence: 0.9})

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, model.Language(""), s.RememberedLanguage())
	assert.Empty(t, s.LanguageHistory())
}
