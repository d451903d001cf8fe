package classify

import "github.com/hsinyulin/ledgerchat/internal/model"

// intentPattern is one row of the intent keyword table. Priority
// breaks score ties: 1 is the highest priority (fastest handler),
// larger values mark intents that need heavier reasoning.
type intentPattern struct {
	intent   model.Intent
	keywords []string
	priority int
}

// intentPatterns is evaluated in fixed order so classification is
// deterministic. Keyword lists are bilingual.
var intentPatterns = []intentPattern{
	{
		intent:   model.IntentInstant,
		keywords: []string{"how much", "多少", "total", "總", "總共", "sum", "加總"},
		priority: 1,
	},
	{
		intent:   model.IntentDataQuery,
		keywords: []string{"show", "list", "顯示", "給我看", "列出", "get", "查", "看"},
		priority: 2,
	},
	{
		intent:   model.IntentVisualization,
		keywords: []string{"chart", "graph", "plot", "圖表", "圖", "視覺", "visual"},
		priority: 2,
	},
	{
		intent:   model.IntentComparison,
		keywords: []string{"compare", "vs", "versus", "比較", "對比", "difference", "差異"},
		priority: 3,
	},
	{
		intent:   model.IntentForecast,
		keywords: []string{"forecast", "predict", "預測", "預計", "estimate", "估計", "下個月", "next month"},
		priority: 3,
	},
	{
		intent: model.IntentTrend,
		keywords: []string{
			"trend", "pattern", "趨勢", "模式",
			"change", "changing", "changed", "變化", "改變",
			"increase", "increasing", "increased", "decrease", "decreasing", "decreased",
			"growth", "growing", "decline", "declining", "risen", "falling",
			"rising", "going up", "going down", "progression",
			"增加", "減少", "上升", "下降", "成長", "衰退",
			"over time", "recently", "lately", "最近",
		},
		priority: 4,
	},
	{
		intent:   model.IntentInsight,
		keywords: []string{"why", "reason", "because", "為什麼", "原因", "explain", "解釋"},
		priority: 4,
	},
	{
		intent:   model.IntentAdvice,
		keywords: []string{"should", "recommend", "suggest", "應該", "建議", "advice", "tip", "how to", "怎麼"},
		priority: 4,
	},
	{
		intent:   model.IntentOptimization,
		keywords: []string{"save", "reduce", "cut", "optimize", "節省", "省錢", "減少", "降低", "優化"},
		priority: 4,
	},
}

// complexityMarkers flag questions too open-ended for the pipeline:
// multi-part connectors, conditionals, universal quantifiers,
// superlatives, opinion words, and future speculation.
var complexityMarkers = []string{
	"and", "和", "還有", "also", "以及",
	"if", "如果", "假如", "when", "當",
	"all", "every", "所有", "每個", "each",
	"best", "worst", "最好", "最差", "optimal",
	"think", "believe", "認為", "覺得",
	"will", "would", "會", "將會",
}

// trendCues re-checked during refinement; a category plus any of these
// forces the trend intent.
var trendCues = []string{
	"trend", "趨勢", "pattern", "模式",
	"changing", "change", "changed", "變化", "改變",
	"increasing", "increase", "decreasing", "decrease",
	"增加", "減少", "上升", "下降",
	"growth", "decline", "rising", "falling",
	"over time", "recently", "lately", "最近",
	"going up", "going down", "progression",
}

// strongTrendCues force the trend intent even without a category.
var strongTrendCues = []string{"trend", "趨勢", "over time", "progression"}

// forecastCues force the forecast intent during refinement.
var forecastCues = []string{"forecast", "預測", "下月", "next month"}

// howMuchCues mark a direct quantity question.
var howMuchCues = []string{"多少", "how much"}

// categorySynonyms maps every accepted spelling of a category
// (canonical Traditional Chinese, Simplified Chinese, English
// synonyms) to the canonical form used by the data files. Lookup is
// case-insensitive for the Latin entries.
var categorySynonyms = map[string]string{
	// Traditional (canonical).
	"交通費":   "交通費",
	"伙食費":   "伙食費",
	"休閒/娛樂": "休閒/娛樂",
	"家務":    "家務",
	"其它":    "其它",
	// Simplified variants.
	"交通费":   "交通費",
	"伙食费":   "伙食費",
	"休闲/娱乐": "休閒/娛樂",
	"家务":    "家務",
	// Bare short forms seen in hand-edited exports.
	"交通": "交通費",
	"伙食": "伙食費",
	"娛樂": "休閒/娛樂",
	"休閒": "休閒/娛樂",
	// English synonyms.
	"transport":      "交通費",
	"transportation": "交通費",
	"commute":        "交通費",
	"food":           "伙食費",
	"meal":           "伙食費",
	"meals":          "伙食費",
	"dining":         "伙食費",
	"eating":         "伙食費",
	"entertainment":  "休閒/娛樂",
	"leisure":        "休閒/娛樂",
	"recreation":     "休閒/娛樂",
	"household":      "家務",
	"housework":      "家務",
	"chores":         "家務",
	"other":          "其它",
	"others":         "其它",
	"misc":           "其它",
	"miscellaneous":  "其它",
}

// categoryScanOrder fixes the scan sequence: canonical script first,
// then simplified, then English, so the first match is deterministic.
var categoryScanOrder = []string{
	"交通費", "伙食費", "休閒/娛樂", "家務", "其它",
	"交通费", "伙食费", "休闲/娱乐", "家务",
	"transport", "transportation", "commute",
	"food", "meal", "meals", "dining", "eating",
	"entertainment", "leisure", "recreation",
	"household", "housework", "chores",
	"other", "others", "misc", "miscellaneous",
}

// timeframeVocabulary maps bilingual timeframe phrases to the
// canonical timeframe value.
var timeframeVocabulary = []struct {
	phrase string
	value  model.Timeframe
}{
	{"this month", model.TimeframeThisMonth},
	{"last month", model.TimeframeLastMonth},
	{"next month", model.TimeframeNextMonth},
	{"this year", model.TimeframeThisYear},
	{"last year", model.TimeframeLastYear},
	{"本月", model.TimeframeThisMonth},
	{"上月", model.TimeframeLastMonth},
	{"下月", model.TimeframeNextMonth},
	{"今年", model.TimeframeThisYear},
	{"去年", model.TimeframeLastYear},
}
