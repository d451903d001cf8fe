package model

// ConfidenceComponents are the five independently scored signals that
// combine into one trust score. Each value is clamped to [0,1] before
// weighting.
type ConfidenceComponents struct {
	DataAvailable    float64
	QuestionClear    float64
	LLMConfident     float64
	GuardrailPassed  float64
	ResponseVerified float64
}

// FullConfidence returns components with every signal at 1.0, the
// starting point before any stage degrades them.
func FullConfidence() ConfidenceComponents {
	return ConfidenceComponents{
		DataAvailable:    1.0,
		QuestionClear:    1.0,
		LLMConfident:     1.0,
		GuardrailPassed:  1.0,
		ResponseVerified: 1.0,
	}
}

// ConfidenceLevel is the ordinal band a combined score falls into.
type ConfidenceLevel string

// Confidence levels.
const (
	ConfidenceHigh    ConfidenceLevel = "high"
	ConfidenceMedium  ConfidenceLevel = "medium"
	ConfidenceLow     ConfidenceLevel = "low"
	ConfidenceVeryLow ConfidenceLevel = "very_low"
)
