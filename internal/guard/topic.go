package guard

import (
	"strings"

	"github.com/hsinyulin/ledgerchat/internal/locale"
	"github.com/hsinyulin/ledgerchat/internal/model"
)

// allowedTopic is one whitelist bucket. Only questions matching at
// least one bucket may proceed; everything else is denied by default.
type allowedTopic struct {
	name     model.TopicCategory
	keywords []string
}

var allowedTopics = []allowedTopic{
	{"spending", []string{"花費", "支出", "spending", "expense", "開銷", "費用", "花", "用"}},
	{"budget", []string{"預算", "budget", "規劃", "planning", "計劃"}},
	{"category", []string{"伙食", "交通", "娛樂", "家務", "其它", "food", "transport", "entertainment", "類別", "category"}},
	{"analysis", []string{"分析", "趨勢", "比較", "analyze", "trend", "compare", "統計", "stats"}},
	{"forecast", []string{"預測", "預計", "forecast", "predict", "估計", "未來"}},
	{"savings", []string{"節省", "省錢", "save", "reduce", "優化", "減少", "降低"}},
	{"transaction", []string{"交易", "帳單", "transaction", "bill", "收據", "記錄", "明細"}},
	{"month", []string{
		"一月", "二月", "三月", "四月", "五月", "六月",
		"七月", "八月", "九月", "十月", "十一月", "十二月", "month", "月",
	}},
	{"total", []string{"總", "全部", "total", "all", "合計", "加總"}},
	{"details", []string{"詳細", "明細", "detail", "breakdown", "列出", "show", "顯示", "看"}},
	{"question_words", []string{"多少", "什麼", "為什麼", "怎麼", "如何", "how", "what", "why", "when", "which", "where"}},
}

// forbiddenTopic is one entry of the forbidden table, used both to
// reject and to pick a specific decline message.
type forbiddenTopic struct {
	name     model.TopicCategory
	labelZH  string
	labelEN  string
	keywords []string
}

var forbiddenTopics = []forbiddenTopic{
	{"general_chat", "閒聊", "small talk",
		[]string{"你好", "天氣", "weather", "新聞", "news", "怎麼樣", "how are you", "聊天", "閒聊"}},
	{"unrelated_finance", "投資理財", "investing",
		[]string{"股票", "stock", "投資", "invest", "加密", "crypto", "基金", "fund", "利率", "interest rate", "房貸", "mortgage"}},
	{"personal", "個人資訊", "personal information",
		[]string{"年齡", "age", "住址", "address", "電話", "phone", "密碼", "password", "個人資料"}},
	{"technical", "技術問題", "technical questions",
		[]string{"代碼", "code", "bug", "error", "系統", "system", "資料庫", "database", "程式"}},
	{"entertainment", "娛樂", "entertainment topics",
		[]string{"電影", "movie", "音樂", "music", "遊戲", "game", "運動", "sport", "旅遊", "travel"}},
	{"general_knowledge", "一般知識", "general knowledge",
		[]string{"歷史", "history", "地理", "geography", "科學", "science", "數學", "math"}},
}

// CheckTopic is Layer A: whitelist-only topic relevance. A question
// matching no allowed bucket is rejected outright; one that matches
// both tables is rejected unless enough distinct allowed buckets
// matched to outweigh the forbidden hit.
func (g *Guard) CheckTopic(question string, lang model.Language) model.TopicDecision {
	lower := strings.ToLower(question)

	var matched []model.TopicCategory
	for _, topic := range allowedTopics {
		for _, keyword := range topic.keywords {
			if strings.Contains(lower, keyword) {
				matched = append(matched, topic.name)
				break
			}
		}
	}

	forbidden := identifyForbidden(lower)

	if len(matched) == 0 {
		if forbidden != nil {
			return model.TopicDecision{
				Allowed:  false,
				Category: forbidden.name,
				Message:  locale.DeclineTopic(lang, forbidden.label(lang)),
			}
		}
		return model.TopicDecision{
			Allowed: false,
			Message: locale.DeclineGeneric(lang),
		}
	}

	if forbidden != nil && len(matched) < g.cfg.MinTopicsWithForbidden {
		return model.TopicDecision{
			Allowed:  false,
			Category: forbidden.name,
			Message:  locale.DeclineTopic(lang, forbidden.label(lang)),
		}
	}

	return model.TopicDecision{
		Allowed:  true,
		Category: matched[0],
	}
}

func (f *forbiddenTopic) label(lang model.Language) string {
	if lang == model.LangEnglish {
		return f.labelEN
	}
	return f.labelZH
}

func identifyForbidden(lower string) *forbiddenTopic {
	for i := range forbiddenTopics {
		for _, keyword := range forbiddenTopics[i].keywords {
			if strings.Contains(lower, keyword) {
				return &forbiddenTopics[i]
			}
		}
	}
	return nil
}
