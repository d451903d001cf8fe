package model

// Timeframe is a coarse relative time reference extracted from a question.
type Timeframe string

// Timeframe values, stored in their canonical Chinese form.
const (
	TimeframeNone      Timeframe = ""
	TimeframeThisMonth Timeframe = "本月"
	TimeframeLastMonth Timeframe = "上月"
	TimeframeNextMonth Timeframe = "下月"
	TimeframeThisYear  Timeframe = "今年"
	TimeframeLastYear  Timeframe = "去年"
)

// Entities holds the structured values extracted from a free-text
// question. Category names are always normalized to their canonical
// Traditional Chinese form before they land here.
type Entities struct {
	Month     *MonthKey
	Category  string
	Timeframe Timeframe
	Months    []MonthKey
	Amount    *float64
}

// HasMonth reports whether a single month was extracted.
func (e Entities) HasMonth() bool { return e.Month != nil }

// HasCategory reports whether a category was extracted.
func (e Entities) HasCategory() bool { return e.Category != "" }

// IsEmpty reports whether nothing at all was extracted.
func (e Entities) IsEmpty() bool {
	return e.Month == nil && len(e.Months) == 0 && e.Category == "" &&
		e.Amount == nil && e.Timeframe == TimeframeNone
}
