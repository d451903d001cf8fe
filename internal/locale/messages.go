// Package locale holds the bilingual user-facing strings. Every
// message is a typed function of a language plus its slots, so call
// sites cannot misspell a template key.
package locale

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hsinyulin/ledgerchat/internal/model"
)

// FormatNTD renders an amount in New Taiwan dollars with thousand
// separators, e.g. "NT$12,345". Amounts are rounded to whole dollars.
func FormatNTD(amount float64) string {
	return "NT$" + groupDigits(int64(math.Round(amount)))
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// MonthTotal is the instant answer for one month's total spending.
func MonthTotal(lang model.Language, month string, amount float64) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("%s total: %s", month, FormatNTD(amount))
	}
	return fmt.Sprintf("%s總支出 %s", month, FormatNTD(amount))
}

// MonthCategoryTotal is the instant answer for one month and category.
func MonthCategoryTotal(lang model.Language, month, category string, amount float64) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("%s in %s: %s", category, month, FormatNTD(amount))
	}
	return fmt.Sprintf("%s的%s總共 %s", month, category, FormatNTD(amount))
}

// CategoryTotalAll is the instant answer for a category summed across
// every month that has it.
func CategoryTotalAll(lang model.Language, category string, amount float64, monthCount int) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("Total %s: %s (across %d months)", category, FormatNTD(amount), monthCount)
	}
	return fmt.Sprintf("%s總共 %s (跨 %d 個月)", category, FormatNTD(amount), monthCount)
}

// OverallTotal is the instant answer for total spending across all months.
func OverallTotal(lang model.Language, amount float64, monthCount int) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("Total spending: %s (%d months)", FormatNTD(amount), monthCount)
	}
	return fmt.Sprintf("總支出 %s (共 %d 個月)", FormatNTD(amount), monthCount)
}

// TransactionCount is the instant answer for a month's record count.
func TransactionCount(lang model.Language, month string, count int) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("%d transactions in %s", count, month)
	}
	return fmt.Sprintf("%s共有 %d 筆交易", month, count)
}

// AverageMonthly is the instant answer for mean monthly spending.
func AverageMonthly(lang model.Language, amount float64) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("Monthly average: %s", FormatNTD(amount))
	}
	return fmt.Sprintf("每月平均支出 %s", FormatNTD(amount))
}

// MultiMonthSum is the instant answer for a sum over named months.
func MultiMonthSum(lang model.Language, months []string, amount float64) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("%s combined: %s", strings.Join(months, " + "), FormatNTD(amount))
	}
	return fmt.Sprintf("%s合計 %s", strings.Join(months, "加"), FormatNTD(amount))
}

// MultiMonthAverage is the instant answer for an average over named months.
func MultiMonthAverage(lang model.Language, months []string, amount float64) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("Average across %s: %s", strings.Join(months, ", "), FormatNTD(amount))
	}
	return fmt.Sprintf("%s平均支出 %s", strings.Join(months, "、"), FormatNTD(amount))
}

// NoData reports missing months, enumerating what is available.
func NoData(lang model.Language, months string, available []string) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("No data for %s. Available months: %s", months, strings.Join(available, ", "))
	}
	return fmt.Sprintf("%s暫無資料。可用月份: %s", months, strings.Join(available, "、"))
}

// InvalidCategory reports an unknown category, enumerating the known set.
func InvalidCategory(lang model.Language, category string, available []string) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("Category %q not found. Available categories: %s", category, strings.Join(available, ", "))
	}
	return fmt.Sprintf("找不到類別「%s」。可用類別: %s", category, strings.Join(available, "、"))
}

// ServiceUnavailable is the terminal-tier fallback when no answer
// could be produced at all.
func ServiceUnavailable(lang model.Language) string {
	if lang == model.LangEnglish {
		return "Sorry, I could not produce an answer for that right now. Please try again later."
	}
	return "抱歉，目前無法產生這個問題的答案，請稍後再試。"
}

// FollowUp suggests a natural next question after an answered intent,
// or "" when none fits.
func FollowUp(lang model.Language, intent model.Intent) string {
	switch intent {
	case model.IntentInstant:
		if lang == model.LangEnglish {
			return `You can also compare months, e.g. "compare July and August".`
		}
		return "也可以比較月份，例如「比較七月和八月」。"
	case model.IntentComparison:
		if lang == model.LangEnglish {
			return "For the bigger picture, ask about your spending trend."
		}
		return "想看整體走向，可以問「最近的支出趨勢」。"
	case model.IntentForecast:
		if lang == model.LangEnglish {
			return "To spend less next month, ask for saving suggestions."
		}
		return "想降低下月支出，可以問「怎麼節省伙食費」。"
	default:
		return ""
	}
}

// InsufficientData reports too few months for an operation.
func InsufficientData(lang model.Language, required int) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("Insufficient data, need at least %d months", required)
	}
	return fmt.Sprintf("資料不足，需要至少 %d 個月的資料", required)
}

// NeedTwoMonths asks for two months to compare.
func NeedTwoMonths(lang model.Language) string {
	if lang == model.LangEnglish {
		return "Please specify two months to compare, e.g. \"compare July and August\""
	}
	return "請指定要比較的月份，例如：「比較七月和八月」"
}

// DeclineTopic rejects a question matched against a forbidden topic.
func DeclineTopic(lang model.Language, topicLabel string) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("Sorry, %s questions are outside my scope. I can only answer questions about your spending data.", topicLabel)
	}
	return fmt.Sprintf("抱歉，「%s」不在我的服務範圍內。我只能回答關於您的支出資料的問題。", topicLabel)
}

// DeclineGeneric rejects a question that matched no allowed topic.
func DeclineGeneric(lang model.Language) string {
	if lang == model.LangEnglish {
		return "Sorry, that question is outside my scope. I am a budget analysis assistant and can only answer questions about your spending data.\n\n" +
			"Try asking:\n" +
			"- How much did I spend in July?\n" +
			"- Compare July and August\n" +
			"- What is the trend for food spending?\n" +
			"- Where can I save money?"
	}
	return "抱歉，這個問題超出我的專業範圍。我是預算分析助手，只能回答關於您的支出資料的問題。\n\n" +
		"您可以問：\n" +
		"• 七月花了多少？\n" +
		"• 比較七月和八月\n" +
		"• 伙食費趨勢如何？\n" +
		"• 哪裡可以省錢？"
}

// TopicDrift redirects a conversation that has wandered off topic.
func TopicDrift(lang model.Language) string {
	if lang == model.LangEnglish {
		return "We seem to have drifted away from your budget. Let's get back to your spending data — ask me about a month, a category, or a trend."
	}
	return "我們的對話似乎偏離了預算主題。讓我們回到您的支出資料——可以問我某個月份、類別或趨勢。"
}

// TooComplex declines a question the complexity gate rejected.
func TooComplex(lang model.Language) string {
	if lang == model.LangEnglish {
		return "That question is too broad for me to answer reliably. Try asking about one month or one category at a time."
	}
	return "這個問題範圍太大，我無法可靠回答。請一次詢問一個月份或一個類別。"
}

// VisualRedirect points chart requests at the visualization mode.
func VisualRedirect(lang model.Language) string {
	if lang == model.LangEnglish {
		return "For charts and visualizations, please use the visual analysis mode from the main menu."
	}
	return "圖表和視覺化功能請使用主選單的「視覺化分析」模式。"
}

// OutOfScopeReplacement is the hard-rejection text when a raw answer
// strays into financial-market territory.
func OutOfScopeReplacement(lang model.Language) string {
	if lang == model.LangEnglish {
		return "Response out of scope: I can only discuss your own spending data."
	}
	return "回應超出預算範圍：我只能討論您自己的支出資料。"
}

// UnverifiedNumber warns about a number absent from the source data.
func UnverifiedNumber(lang model.Language, number float64) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("Number %s not verified in data", groupDigits(int64(number+0.5)))
	}
	return fmt.Sprintf("數字 %s 未在資料中確認", groupDigits(int64(number+0.5)))
}

// UnknownMonthMention warns about a month the answer cites without data.
func UnknownMonthMention(lang model.Language, month string) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("No data for %s", month)
	}
	return fmt.Sprintf("%s無資料", month)
}

// NoDataAnnotation is appended inline after an unsupported month mention.
func NoDataAnnotation(lang model.Language) string {
	if lang == model.LangEnglish {
		return "(no data)"
	}
	return "(無資料)"
}

// SpeculativeAdvice warns that cited advice lacks verified numbers.
func SpeculativeAdvice(lang model.Language) string {
	if lang == model.LangEnglish {
		return "Advice may be speculative, not data-based"
	}
	return "建議可能基於推測而非實際資料"
}

// GeneralKnowledge notes that the answer leans on external knowledge.
func GeneralKnowledge(lang model.Language) string {
	if lang == model.LangEnglish {
		return "Response includes general advice (not your data)"
	}
	return "回應包含一般性建議(非您的資料)"
}

// UncertaintyReason identifies the canned uncertainty message to use.
type UncertaintyReason string

// Uncertainty reasons, keyed by the weakest confidence component.
const (
	ReasonNoData          UncertaintyReason = "no_data"
	ReasonPartialData     UncertaintyReason = "partial_data"
	ReasonUnclearQuestion UncertaintyReason = "unclear_question"
	ReasonLLMUncertain    UncertaintyReason = "llm_uncertain"
	ReasonOffTopic        UncertaintyReason = "off_topic"
	ReasonUnverified      UncertaintyReason = "unverified"
	ReasonGeneral         UncertaintyReason = "general"
)

// Uncertainty returns the canned low-confidence warning for a reason.
func Uncertainty(lang model.Language, reason UncertaintyReason) string {
	if lang == model.LangEnglish {
		switch reason {
		case ReasonNoData:
			return "I don't have relevant data; this answer is speculative."
		case ReasonPartialData:
			return "I only have partial data; the answer may be incomplete."
		case ReasonUnclearQuestion:
			return "The question is unclear. I tried my best but may be inaccurate."
		case ReasonLLMUncertain:
			return "I'm not very confident about this answer. Please verify."
		case ReasonOffTopic:
			return "This question is outside my expertise (budget analysis)."
		case ReasonUnverified:
			return "This answer contains unverified information."
		default:
			return "I have low confidence in this answer. Please use with caution."
		}
	}
	switch reason {
	case ReasonNoData:
		return "我沒有找到相關資料，這個回答基於推測。"
	case ReasonPartialData:
		return "我只有部分資料，答案可能不完整。"
	case ReasonUnclearQuestion:
		return "問題不太清楚，我盡力回答了，但可能不準確。"
	case ReasonLLMUncertain:
		return "我不太確定這個答案，建議您驗證一下。"
	case ReasonOffTopic:
		return "這個問題超出我的專業範圍（預算分析），無法準確回答。"
	case ReasonUnverified:
		return "這個答案包含未經驗證的資訊。"
	default:
		return "我對這個答案的信心度較低，請謹慎參考。"
	}
}

// ConfidenceLabel names a confidence level for the footer.
func ConfidenceLabel(lang model.Language, level model.ConfidenceLevel) string {
	if lang == model.LangEnglish {
		switch level {
		case model.ConfidenceHigh:
			return "High"
		case model.ConfidenceMedium:
			return "Medium"
		case model.ConfidenceLow:
			return "Low"
		default:
			return "Very Low"
		}
	}
	switch level {
	case model.ConfidenceHigh:
		return "高"
	case model.ConfidenceMedium:
		return "中等"
	case model.ConfidenceLow:
		return "偏低"
	default:
		return "很低"
	}
}
