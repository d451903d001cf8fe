package model

// TopicCategory names a whitelist bucket or forbidden table entry
// matched by the topic layer.
type TopicCategory string

// TopicDecision is the topic-relevance layer's verdict on a question.
type TopicDecision struct {
	Category TopicCategory
	Message  string
	Allowed  bool
}

// ScopeDecision is the data-scope layer's verdict on extracted entities.
type ScopeDecision struct {
	Message string
	Valid   bool
}

// ResponseVerification is the post-answer layer's verdict on raw
// answer text. Warnings annotate without blocking; Valid is false only
// for the hard out-of-scope rejection, in which case Corrected holds
// the replacement text.
type ResponseVerification struct {
	Corrected string
	Warnings  []string
	Valid     bool
}
