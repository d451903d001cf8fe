package guard

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hsinyulin/ledgerchat/internal/locale"
	"github.com/hsinyulin/ledgerchat/internal/model"
)

// numberTolerance is the relative slack allowed when matching a number
// in generated text against a source figure. LLMs round; 1% keeps
// honest rounding while catching fabrication.
const numberTolerance = 0.01

// minVerifiedForAdvice: advice phrasing in an answer is flagged as
// speculative unless more than half of its numbers trace to the data.
const minVerifiedForAdvice = 0.5

var (
	// Every numeric token counts, not just currency-marked ones; a
	// fabricated amount rarely arrives with a NT$ prefix. Values at or
	// below 100 are exempted in the caller (counts, percentages).
	numberPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

	adviceCues = []string{"建議", "應該", "recommend", "you should", "suggest"}

	generalCues = []string{"一般來說", "通常", "大多數人", "generally", "typically", "most people", "on average people"}

	hardRejectCues = []string{"股票", "投資報酬", "利率", "房地產", "stock", "interest rate", "real estate", "investment return"}
)

// VerifyResponse is Layer D: the last gate before a generated answer
// reaches the user. source carries every numeric figure that was
// handed to the model, so any large currency amount in the answer
// must trace back to one of them.
func (g *Guard) VerifyResponse(ctx context.Context, answer string, source []float64, lang model.Language) (model.ResponseVerification, error) {
	lower := strings.ToLower(answer)

	for _, cue := range hardRejectCues {
		if strings.Contains(lower, strings.ToLower(cue)) {
			g.logger.Warn("response rejected, out-of-scope content", "cue", cue)
			return model.ResponseVerification{
				Valid:     false,
				Corrected: locale.OutOfScopeReplacement(lang),
			}, nil
		}
	}

	verification := model.ResponseVerification{Valid: true, Corrected: answer}

	numbers := extractAmounts(answer)
	verified := 0
	for _, n := range numbers {
		if n <= 100 {
			verified++
			continue
		}
		if matchesSource(n, source) {
			verified++
		} else {
			verification.Warnings = append(verification.Warnings, locale.UnverifiedNumber(lang, n))
		}
	}

	available, err := g.store.AvailableMonths(ctx)
	if err != nil {
		return model.ResponseVerification{}, err
	}
	verification.Corrected = g.annotateUnknownMonths(verification.Corrected, available, lang, &verification.Warnings)

	if len(numbers) > 0 && containsAny(lower, adviceCues) {
		ratio := float64(verified) / float64(len(numbers))
		if ratio <= minVerifiedForAdvice {
			verification.Warnings = append(verification.Warnings, locale.SpeculativeAdvice(lang))
		}
	}

	if containsAny(lower, generalCues) {
		verification.Warnings = append(verification.Warnings, locale.GeneralKnowledge(lang))
	}

	return verification, nil
}

// monthScanOrder lists month names longest-first so that 一月 and 二月
// are never matched inside 十一月 or 十二月.
var monthScanOrder = []string{
	"十一月", "十二月", "十月",
	"一月", "二月", "三月", "四月", "五月", "六月",
	"七月", "八月", "九月",
}

// annotateUnknownMonths appends an inline no-data marker after the
// first mention of any month the store does not cover. Matched names
// are masked out using unique tokens so shorter names cannot re-match
// inside longer ones, then restored at the end.
func (g *Guard) annotateUnknownMonths(answer string, available []model.MonthKey, lang model.Language, warnings *[]string) string {
	known := make(map[string]bool, len(available))
	for _, key := range available {
		known[key.Name] = true
	}

	type restore struct {
		token string
		text  string
	}
	var restores []restore

	for i, name := range monthScanOrder {
		if !strings.Contains(answer, name) {
			continue
		}
		token := "\x00" + strconv.Itoa(i) + "\x01"
		answer = strings.ReplaceAll(answer, name, token)
		if !known[name] {
			*warnings = append(*warnings, locale.UnknownMonthMention(lang, name))
			annotated := "\x00" + strconv.Itoa(i) + "a\x01"
			answer = strings.Replace(answer, token, annotated, 1)
			restores = append(restores, restore{annotated, name + " " + locale.NoDataAnnotation(lang)})
		}
		restores = append(restores, restore{token, name})
	}

	for _, r := range restores {
		answer = strings.ReplaceAll(answer, r.token, r.text)
	}
	return answer
}

func extractAmounts(text string) []float64 {
	var amounts []float64
	seen := map[float64]bool{}
	for _, m := range numberPattern.FindAllString(text, -1) {
		raw := strings.ReplaceAll(m, ",", "")
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		amounts = append(amounts, n)
	}
	return amounts
}

func matchesSource(n float64, source []float64) bool {
	for _, s := range source {
		if s == 0 {
			if n == 0 {
				return true
			}
			continue
		}
		if math.Abs(n-s)/math.Abs(s) <= numberTolerance {
			return true
		}
	}
	return false
}

func containsAny(haystack string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(haystack, strings.ToLower(cue)) {
			return true
		}
	}
	return false
}
