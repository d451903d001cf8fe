package model

import "time"

// ConversationTurn records one answered question in the session window.
// The window feeds drift detection and language continuity, so turns
// carry the classification metadata alongside the raw text.
type ConversationTurn struct {
	Timestamp      time.Time
	Question       string
	Answer         string
	Classification Classification
}
