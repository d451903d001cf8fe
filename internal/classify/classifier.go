// Package classify determines a question's intent and extracts the
// structured entities it mentions. This is deliberately simple keyword
// matching, not a model: the pipeline's contracts depend on
// classification being deterministic and auditable.
package classify

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/hsinyulin/ledgerchat/internal/model"
)

// Complexity gate thresholds.
const (
	maxComplexityMarkers = 2
	maxTokens            = 15
)

// tooComplexConfidence is the fixed confidence for the complexity gate.
const tooComplexConfidence = 0.9

// defaultConfidence applies when no intent keywords match at all.
const defaultConfidence = 0.5

// historyLimit bounds the diagnostics history.
const historyLimit = 20

var amountPattern = regexp.MustCompile(`NT?\$?\s*([\d,]+)`)

// Classifier classifies questions against fixed keyword tables. It
// never returns an error: absence of signal degrades confidence
// instead of failing.
type Classifier struct {
	history []model.Classification
	mu      sync.Mutex
}

// New creates a classifier.
func New() *Classifier {
	return &Classifier{}
}

// Classify determines the question's intent and entities. The same
// question always yields the same result.
func (c *Classifier) Classify(question string) model.Classification {
	lower := strings.ToLower(question)

	// Complexity gate: open-ended questions are rejected before any
	// entity extraction so they never reach the expensive tiers.
	markers := 0
	for _, marker := range complexityMarkers {
		if strings.Contains(lower, marker) {
			markers++
		}
	}
	if markers >= maxComplexityMarkers || len(strings.Fields(question)) > maxTokens {
		result := model.Classification{
			Intent:     model.IntentTooComplex,
			Handler:    model.HandlerNoAnswer,
			Confidence: tooComplexConfidence,
		}
		c.remember(result)
		return result
	}

	intent, confidence, matches := c.scoreIntents(lower)
	entities := ExtractEntities(question)
	intent = refineIntent(intent, entities, lower)

	result := model.Classification{
		Intent:     intent,
		Handler:    intent.Handler(),
		Confidence: confidence,
		Entities:   entities,
		Matches:    matches,
	}
	c.remember(result)
	return result
}

// scoreIntents counts keyword hits per intent. Highest score wins;
// ties go to the higher-priority intent (smaller priority value, i.e.
// the cheaper handler).
func (c *Classifier) scoreIntents(lower string) (model.Intent, float64, []model.Intent) {
	type scored struct {
		pattern intentPattern
		score   int
	}
	var hits []scored
	var matches []model.Intent

	for _, pattern := range intentPatterns {
		score := 0
		for _, keyword := range pattern.keywords {
			if strings.Contains(lower, keyword) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{pattern: pattern, score: score})
			matches = append(matches, pattern.intent)
		}
	}

	if len(hits) == 0 {
		return model.IntentInsight, defaultConfidence, nil
	}

	best := hits[0]
	for _, hit := range hits[1:] {
		if hit.score > best.score ||
			(hit.score == best.score && hit.pattern.priority < best.pattern.priority) {
			best = hit
		}
	}

	confidence := float64(best.score) / 3
	if confidence > 0.95 {
		confidence = 0.95
	}
	return best.pattern.intent, confidence, matches
}

// refineIntent applies the entity-based promotion rules exactly once.
func refineIntent(intent model.Intent, entities model.Entities, lower string) model.Intent {
	if len(entities.Months) >= 2 {
		return model.IntentComparison
	}

	if entities.HasMonth() && entities.HasCategory() && containsAny(lower, howMuchCues) {
		return model.IntentInstant
	}

	if containsAny(lower, forecastCues) {
		return model.IntentForecast
	}

	if entities.HasCategory() && containsAny(lower, trendCues) {
		return model.IntentTrend
	}
	if containsAny(lower, strongTrendCues) {
		return model.IntentTrend
	}

	return intent
}

// ExtractEntities scans the question for months, a category, an
// amount, and a timeframe. Extraction is idempotent and side-effect
// free.
func ExtractEntities(question string) model.Entities {
	lower := strings.ToLower(question)
	var entities model.Entities

	months := extractMonths(question, lower)
	if len(months) > 0 {
		first := months[0]
		entities.Month = &first
		entities.Months = months
	}

	entities.Category = extractCategory(question, lower)

	if m := amountPattern.FindStringSubmatch(question); m != nil {
		if amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			entities.Amount = &amount
		}
	}

	for _, tf := range timeframeVocabulary {
		if strings.Contains(lower, strings.ToLower(tf.phrase)) || strings.Contains(question, tf.phrase) {
			entities.Timeframe = tf.value
			break
		}
	}

	return entities
}

// extractMonths finds every month mention in any supported spelling,
// normalized and deduplicated in first-seen order. Two-character
// months (十一月, 11月) are masked before their one-character
// substrings are scanned so "十一月" never also yields "一月".
func extractMonths(question, lower string) []model.MonthKey {
	var months []model.MonthKey
	seen := map[string]bool{}
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		months = append(months, model.MonthKey{Name: name})
	}

	masked := question
	scan := func(variant, canonical string) {
		if strings.Contains(masked, variant) {
			masked = strings.ReplaceAll(masked, variant, "\x00")
			add(canonical)
		}
	}

	// Double-digit forms first.
	scan("十一月", "十一月")
	scan("十二月", "十二月")
	for i, name := range model.MonthNames[:10] {
		scan(name, model.MonthNames[i])
	}
	scan("11月", "十一月")
	scan("12月", "十二月")
	scan("10月", "十月")
	for i := 1; i <= 9; i++ {
		scan(strconv.Itoa(i)+"月", model.MonthNames[i-1])
	}

	for _, variant := range append(append([]string{}, monthEnglish...), monthEnglishShort...) {
		if strings.Contains(lower, variant) {
			add(model.NormalizeMonthName(variant))
		}
	}

	return months
}

// monthEnglish and monthEnglishShort mirror the orderings in model so
// abbreviations resolve after full names.
var monthEnglish = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var monthEnglishShort = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// extractCategory returns the canonical category for the first
// recognized spelling, or "".
func extractCategory(question, lower string) string {
	for _, variant := range categoryScanOrder {
		haystack := question
		if variant[0] < 0x80 {
			haystack = lower
		}
		if strings.Contains(haystack, variant) {
			return categorySynonyms[variant]
		}
	}
	return ""
}

// NormalizeCategory maps any accepted category spelling to its
// canonical form, returning the input unchanged when unrecognized.
func NormalizeCategory(category string) string {
	if canonical, ok := categorySynonyms[category]; ok {
		return canonical
	}
	if canonical, ok := categorySynonyms[strings.ToLower(category)]; ok {
		return canonical
	}
	return category
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func (c *Classifier) remember(result model.Classification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = append(c.history, result)
	if len(c.history) > historyLimit {
		c.history = c.history[len(c.history)-historyLimit:]
	}
}

// Stats summarizes the bounded classification history.
type Stats struct {
	Distribution  map[model.Intent]int
	MostCommon    model.Intent
	Total         int
	AvgConfidence float64
}

// Stats returns diagnostics over the recent classification history.
func (c *Classifier) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.history) == 0 {
		return Stats{Distribution: map[model.Intent]int{}}
	}

	stats := Stats{Distribution: map[model.Intent]int{}, Total: len(c.history)}
	var sum float64
	for _, item := range c.history {
		stats.Distribution[item.Intent]++
		sum += item.Confidence
	}
	stats.AvgConfidence = sum / float64(len(c.history))

	best := 0
	for intent, count := range stats.Distribution {
		if count > best || (count == best && intent < stats.MostCommon) {
			best = count
			stats.MostCommon = intent
		}
	}
	return stats
}
