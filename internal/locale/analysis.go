package locale

import (
	"fmt"
	"math"

	"github.com/hsinyulin/ledgerchat/internal/model"
)

// Comparison renders a two-month comparison with direction and
// percentage change relative to the first month.
func Comparison(lang model.Language, monthA, monthB string, totalA, totalB float64) string {
	diff := totalB - totalA
	pct := 0.0
	if totalA != 0 {
		pct = math.Abs(diff) / totalA * 100
	}

	if lang == model.LangEnglish {
		switch {
		case diff > 0:
			return fmt.Sprintf("%s: %s, %s: %s. %s was %s higher (%.1f%%).",
				monthA, FormatNTD(totalA), monthB, FormatNTD(totalB), monthB, FormatNTD(diff), pct)
		case diff < 0:
			return fmt.Sprintf("%s: %s, %s: %s. %s was %s lower (%.1f%%).",
				monthA, FormatNTD(totalA), monthB, FormatNTD(totalB), monthB, FormatNTD(-diff), pct)
		default:
			return fmt.Sprintf("%s and %s both total %s.", monthA, monthB, FormatNTD(totalA))
		}
	}
	switch {
	case diff > 0:
		return fmt.Sprintf("%s支出 %s，%s支出 %s。%s多了 %s (%.1f%%)。",
			monthA, FormatNTD(totalA), monthB, FormatNTD(totalB), monthB, FormatNTD(diff), pct)
	case diff < 0:
		return fmt.Sprintf("%s支出 %s，%s支出 %s。%s少了 %s (%.1f%%)。",
			monthA, FormatNTD(totalA), monthB, FormatNTD(totalB), monthB, FormatNTD(-diff), pct)
	default:
		return fmt.Sprintf("%s和%s支出相同，都是 %s。", monthA, monthB, FormatNTD(totalA))
	}
}

// CategoryDelta is one per-category line of a two-month comparison.
func CategoryDelta(lang model.Language, category string, amountA, amountB float64) string {
	diff := amountB - amountA
	if lang == model.LangEnglish {
		switch {
		case diff > 0:
			return fmt.Sprintf("%s: %s vs %s (up %s)", category, FormatNTD(amountA), FormatNTD(amountB), FormatNTD(diff))
		case diff < 0:
			return fmt.Sprintf("%s: %s vs %s (down %s)", category, FormatNTD(amountA), FormatNTD(amountB), FormatNTD(-diff))
		default:
			return fmt.Sprintf("%s: unchanged at %s", category, FormatNTD(amountA))
		}
	}
	switch {
	case diff > 0:
		return fmt.Sprintf("%s：%s 對 %s（多 %s）", category, FormatNTD(amountA), FormatNTD(amountB), FormatNTD(diff))
	case diff < 0:
		return fmt.Sprintf("%s：%s 對 %s（少 %s）", category, FormatNTD(amountA), FormatNTD(amountB), FormatNTD(-diff))
	default:
		return fmt.Sprintf("%s：維持 %s", category, FormatNTD(amountA))
	}
}

// Forecast renders a next-month estimate with its buffer range.
func Forecast(lang model.Language, amount, low, high float64) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("Based on your last three months, next month's spending should be around %s (range %s ~ %s).",
			FormatNTD(amount), FormatNTD(low), FormatNTD(high))
	}
	return fmt.Sprintf("根據最近三個月的支出，預估下月支出約 %s (範圍 %s ~ %s)。",
		FormatNTD(amount), FormatNTD(low), FormatNTD(high))
}

// TrendRising reports spending going up between first and last month.
func TrendRising(lang model.Language, subject string, pct float64) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("%s is trending up, about %.1f%% higher than at the start of your data.", subject, pct)
	}
	return fmt.Sprintf("%s呈上升趨勢，比資料起始時高出約 %.1f%%。", subject, pct)
}

// TrendFalling reports spending going down between first and last month.
func TrendFalling(lang model.Language, subject string, pct float64) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("%s is trending down, about %.1f%% lower than at the start of your data.", subject, pct)
	}
	return fmt.Sprintf("%s呈下降趨勢，比資料起始時低約 %.1f%%。", subject, pct)
}

// TrendStable reports no meaningful movement.
func TrendStable(lang model.Language, subject string) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("%s has stayed roughly stable across your data.", subject)
	}
	return fmt.Sprintf("%s大致持平，沒有明顯變化。", subject)
}

// TrendSubjectOverall names the whole-budget trend subject.
func TrendSubjectOverall(lang model.Language) string {
	if lang == model.LangEnglish {
		return "Overall spending"
	}
	return "整體支出"
}
