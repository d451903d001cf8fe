// Package session holds per-conversation state: the bounded turn
// window used for drift detection and the remembered language used for
// short follow-up questions. A session is owned by exactly one
// conversation; questions within it are processed sequentially.
package session

import (
	"sync"
	"time"

	"github.com/hsinyulin/ledgerchat/internal/model"
)

// DefaultMaxTurns is the default sliding-window size.
const DefaultMaxTurns = 10

// maxLanguageHistory bounds the trailing language-confidence history
// kept for diagnostics.
const maxLanguageHistory = 10

// Session is the only stateful piece of the pipeline. It is passed
// explicitly to the stages that need it, never shared process-wide.
type Session struct {
	started      time.Time
	remembered   model.Language
	turns        []model.ConversationTurn
	langHistory  []model.LanguageTag
	maxTurns     int
	mu           sync.Mutex
}

// New creates a session with the given window size; sizes <= 0 use
// DefaultMaxTurns.
func New(maxTurns int) *Session {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Session{
		started:  time.Now(),
		maxTurns: maxTurns,
	}
}

// AddTurn appends an answered turn, trimming FIFO at the window bound.
func (s *Session) AddTurn(turn model.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}
	s.turns = append(s.turns, turn)
	if len(s.turns) > s.maxTurns {
		s.turns = s.turns[len(s.turns)-s.maxTurns:]
	}
}

// Turns returns a copy of the current window, oldest first.
func (s *Session) Turns() []model.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// RecentQuestions returns up to n question strings from the end of the
// window, oldest first.
func (s *Session) RecentQuestions(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := len(s.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, 0, len(s.turns)-start)
	for _, turn := range s.turns[start:] {
		out = append(out, turn.Question)
	}
	return out
}

// Len returns the number of turns currently in the window.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// RememberedLanguage returns the continuity language, or "" if none
// has been established.
func (s *Session) RememberedLanguage() model.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remembered
}

// RememberLanguage sets the continuity language.
func (s *Session) RememberLanguage(lang model.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remembered = lang
}

// PushLanguage appends a detection result to the bounded diagnostics
// history.
func (s *Session) PushLanguage(tag model.LanguageTag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.langHistory = append(s.langHistory, tag)
	if len(s.langHistory) > maxLanguageHistory {
		s.langHistory = s.langHistory[len(s.langHistory)-maxLanguageHistory:]
	}
}

// LanguageHistory returns a copy of the detection history, oldest first.
func (s *Session) LanguageHistory() []model.LanguageTag {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.LanguageTag, len(s.langHistory))
	copy(out, s.langHistory)
	return out
}

// Reset discards all state, as at the start of a new conversation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = nil
	s.langHistory = nil
	s.remembered = ""
	s.started = time.Now()
}
