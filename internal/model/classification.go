package model

// Intent is the classified purpose of a question. The set is closed:
// every intent maps to exactly one handler via Handler().
type Intent string

// Intent values.
const (
	IntentInstant       Intent = "instant_answer"
	IntentDataQuery     Intent = "data_query"
	IntentVisualization Intent = "visualization"
	IntentComparison    Intent = "comparison"
	IntentForecast      Intent = "forecast"
	IntentTrend         Intent = "trend"
	IntentInsight       Intent = "insight"
	IntentAdvice        Intent = "advice"
	IntentOptimization  Intent = "optimization"
	IntentTooComplex    Intent = "too_complex"
)

// Handler names the processing path an intent routes to.
type Handler string

// Handler values.
const (
	HandlerInstant        Handler = "instant"
	HandlerData           Handler = "data"
	HandlerRedirectVisual Handler = "redirect_visual"
	HandlerCompare        Handler = "compare"
	HandlerForecast       Handler = "forecast"
	HandlerTrend          Handler = "trend"
	HandlerInsight        Handler = "insight"
	HandlerAdvice         Handler = "advice"
	HandlerOptimize       Handler = "optimize"
	HandlerNoAnswer       Handler = "no_answer"
)

// Handler returns the processing path for the intent. The mapping is
// exhaustive over the Intent constants; unknown values route to
// HandlerNoAnswer so a bad intent can never reach an expensive tier.
func (i Intent) Handler() Handler {
	switch i {
	case IntentInstant:
		return HandlerInstant
	case IntentDataQuery:
		return HandlerData
	case IntentVisualization:
		return HandlerRedirectVisual
	case IntentComparison:
		return HandlerCompare
	case IntentForecast:
		return HandlerForecast
	case IntentTrend:
		return HandlerTrend
	case IntentInsight:
		return HandlerInsight
	case IntentAdvice:
		return HandlerAdvice
	case IntentOptimization:
		return HandlerOptimize
	case IntentTooComplex:
		return HandlerNoAnswer
	default:
		return HandlerNoAnswer
	}
}

// Classification is the immutable result of classifying one question.
type Classification struct {
	Intent     Intent
	Handler    Handler
	Entities   Entities
	Matches    []Intent
	Confidence float64
}
