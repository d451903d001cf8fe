package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hsinyulin/ledgerchat/internal/model"
)

func TestFormatNTD(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "NT$0"},
		{950, "NT$950"},
		{1490, "NT$1,490"},
		{25100.4, "NT$25,100"},
		{25100.6, "NT$25,101"},
		{1234567, "NT$1,234,567"},
		{-1234.4, "NT$-1,234"},
		{-1234.6, "NT$-1,235"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNTD(tt.amount))
	}
}

func TestMessagesFollowLanguage(t *testing.T) {
	assert.Equal(t, "七月總支出 NT$9,000", MonthTotal(model.LangChinese, "七月", 9000))
	assert.Equal(t, "七月 total: NT$9,000", MonthTotal(model.LangEnglish, "七月", 9000))

	assert.Contains(t, MonthCategoryTotal(model.LangChinese, "七月", "伙食費", 2350), "NT$2,350")
	assert.Contains(t, NoData(model.LangChinese, "三月", []string{"六月", "七月"}), "三月")
	assert.Contains(t, NoData(model.LangEnglish, "三月", []string{"六月", "七月"}), "六月")
}

func TestComparisonDirection(t *testing.T) {
	msg := Comparison(model.LangChinese, "七月", "八月", 9000, 8400)
	assert.Contains(t, msg, "少了")
	assert.Contains(t, msg, "NT$600")

	msg = Comparison(model.LangEnglish, "七月", "八月", 8400, 9000)
	assert.Contains(t, msg, "higher")

	msg = Comparison(model.LangChinese, "七月", "八月", 5000, 5000)
	assert.Contains(t, msg, "相同")
}
