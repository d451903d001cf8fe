// Package lang infers the language of a question from lexical signals
// and keeps short follow-ups in the conversation's established language.
package lang

import (
	"regexp"
	"strings"

	"github.com/hsinyulin/ledgerchat/internal/model"
	"github.com/hsinyulin/ledgerchat/internal/session"
)

// Signal weights. CJK characters are the strongest single signal.
const (
	indicatorWeight   = 1
	cjkWeight         = 5
	latinStrongWeight = 3
	latinWeakWeight   = 1
	questionWeight    = 1
)

// continuityConfidence is the fixed confidence assigned when a short
// follow-up reuses the session's remembered language.
const continuityConfidence = 0.8

// fallbackConfidence is the fixed confidence when no signal fired.
const fallbackConfidence = 0.5

// rememberThreshold is the confidence above which a detection becomes
// the session's continuity language.
const rememberThreshold = 0.7

// simpleQueryMaxWords bounds what counts as a short follow-up.
const simpleQueryMaxWords = 5

var (
	cjkRange    = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)
	englishWord = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
)

// Indicator words that strongly suggest one language.
var indicators = map[model.Language][]string{
	model.LangChinese: {
		"的", "是", "嗎", "什麼", "為什麼", "怎麼", "多少", "哪",
		"請", "幫我", "給我", "看", "顯示", "月", "費", "總共",
		"伙食", "交通", "支出", "預算", "分析", "趨勢", "比較",
	},
	model.LangEnglish: {
		"the", "is", "are", "what", "why", "how", "show", "please",
		"tell", "give", "can", "would", "month", "expense", "total",
		"food", "transport", "spending", "budget", "analyze", "trend", "compare",
	},
}

// Detector infers question language. The detector itself is stateless;
// continuity state lives on the session passed to Detect.
type Detector struct {
	forced model.Language
}

// New creates a detector. A non-empty forced language short-circuits
// detection entirely (config "zh" or "en" instead of "auto").
func New(forced model.Language) *Detector {
	return &Detector{forced: forced}
}

// Detect infers the language of text, updating the session's
// continuity language and diagnostics history.
func (d *Detector) Detect(text string, sess *session.Session) model.LanguageTag {
	if d.forced == model.LangChinese || d.forced == model.LangEnglish {
		return model.LanguageTag{Code: d.forced, Confidence: 1.0}
	}

	// Short follow-ups ("and August?") reuse the established language
	// rather than re-deriving it from too few tokens.
	if remembered := sess.RememberedLanguage(); remembered != "" && isSimpleQuery(text) {
		return model.LanguageTag{Code: remembered, Confidence: continuityConfidence}
	}

	scores := map[model.Language]int{}
	lower := strings.ToLower(text)

	for code, words := range indicators {
		for _, word := range words {
			if strings.Contains(lower, word) {
				scores[code] += indicatorWeight
			}
		}
	}

	hasCJK := cjkRange.MatchString(text)
	if hasCJK {
		scores[model.LangChinese] += cjkWeight
	}

	switch latinWords := len(englishWord.FindAllString(text, -1)); {
	case latinWords > 2:
		scores[model.LangEnglish] += latinStrongWeight
	case latinWords > 0:
		scores[model.LangEnglish] += latinWeakWeight
	}

	if strings.Contains(text, "？") {
		scores[model.LangChinese] += questionWeight
	}
	if strings.Contains(text, "?") && !hasCJK {
		scores[model.LangEnglish] += questionWeight
	}

	zh, en := scores[model.LangChinese], scores[model.LangEnglish]
	total := zh + en

	var tag model.LanguageTag
	switch {
	case total == 0 || zh == en:
		// No signal or a tie: fall back to the conversation language,
		// defaulting to Chinese.
		code := sess.RememberedLanguage()
		if code == "" {
			code = model.LangChinese
		}
		tag = model.LanguageTag{Code: code, Confidence: fallbackConfidence}
	case zh > en:
		tag = model.LanguageTag{Code: model.LangChinese, Confidence: capConfidence(zh, total)}
	default:
		tag = model.LanguageTag{Code: model.LangEnglish, Confidence: capConfidence(en, total)}
	}

	if tag.Confidence > rememberThreshold {
		sess.RememberLanguage(tag.Code)
	}
	sess.PushLanguage(tag)

	return tag
}

func capConfidence(score, total int) float64 {
	c := float64(score) / float64(total)
	if c > 0.95 {
		return 0.95
	}
	return c
}

func isSimpleQuery(text string) bool {
	return len(strings.Fields(text)) <= simpleQueryMaxWords
}

// Stats summarizes a session's detection history.
type Stats struct {
	Primary       model.Language
	Total         int
	ChineseCount  int
	EnglishCount  int
	AvgConfidence float64
}

// StatsFor computes diagnostics from the session's language history.
func StatsFor(sess *session.Session) Stats {
	history := sess.LanguageHistory()
	if len(history) == 0 {
		return Stats{}
	}

	var stats Stats
	var sum float64
	for _, tag := range history {
		if tag.Code == model.LangChinese {
			stats.ChineseCount++
		} else {
			stats.EnglishCount++
		}
		sum += tag.Confidence
	}
	stats.Total = len(history)
	stats.AvgConfidence = sum / float64(len(history))
	stats.Primary = model.LangChinese
	if stats.EnglishCount > stats.ChineseCount {
		stats.Primary = model.LangEnglish
	}
	return stats
}
