package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsinyulin/ledgerchat/internal/answer"
	"github.com/hsinyulin/ledgerchat/internal/classify"
	"github.com/hsinyulin/ledgerchat/internal/confidence"
	"github.com/hsinyulin/ledgerchat/internal/guard"
	"github.com/hsinyulin/ledgerchat/internal/lang"
	"github.com/hsinyulin/ledgerchat/internal/llm"
	"github.com/hsinyulin/ledgerchat/internal/model"
	"github.com/hsinyulin/ledgerchat/internal/service"
	"github.com/hsinyulin/ledgerchat/internal/session"
	"github.com/hsinyulin/ledgerchat/internal/storage"
)

func seedStore() *storage.MemoryStore {
	month := func(name string) model.MonthKey {
		return model.MonthKey{Name: name, Year: 2025}
	}
	return storage.NewMemoryStoreWith([]model.TransactionRecord{
		{Date: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), Description: "加油", Category: "交通費", Month: month("六月"), Amount: 1500},
		{Date: time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC), Description: "超市", Category: "伙食費", Month: month("六月"), Amount: 6000},
		{Date: time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC), Description: "聚餐", Category: "伙食費", Month: month("七月"), Amount: 8200},
		{Date: time.Date(2025, 7, 21, 0, 0, 0, 0, time.UTC), Description: "捷運", Category: "交通費", Month: month("七月"), Amount: 800},
		{Date: time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC), Description: "晚餐", Category: "伙食費", Month: month("八月"), Amount: 7000},
	})
}

type recordingSink struct {
	records []service.TurnRecord
}

func (s *recordingSink) Record(_ context.Context, rec service.TurnRecord) error {
	s.records = append(s.records, rec)
	return nil
}

func (s *recordingSink) Close() error { return nil }

func newTestPipeline(t *testing.T, extraction, reasoning service.TextService, sink service.TurnSink) *Pipeline {
	t.Helper()
	store := seedStore()
	g := guard.New(store, guard.DefaultConfig(), nil)
	engine := answer.New(store, extraction, reasoning, nil)
	return New(
		lang.New(""),
		classify.New(),
		g,
		engine,
		confidence.New(nil),
		store,
		sink,
		DefaultConfig(),
		nil,
	)
}

func textService(client *llm.MockClient) service.TextService {
	return llm.NewExtractionService(client, nil)
}

func TestAskInstantAnswer(t *testing.T) {
	p := newTestPipeline(t, nil, nil, nil)
	sess := session.New(session.DefaultMaxTurns)

	resp, err := p.Ask(context.Background(), sess, "七月花了多少？")
	require.NoError(t, err)
	assert.False(t, resp.Blocked)
	assert.Equal(t, answer.TierDeterministic, resp.Tier)
	assert.Equal(t, model.LangChinese, resp.Language)
	assert.Contains(t, resp.Text, "NT$9,000")
	assert.Contains(t, resp.Text, "也可以比較月份")
	assert.Equal(t, model.ConfidenceHigh, resp.Level)
	assert.Equal(t, 1, sess.Len())
}

func TestAskComparison(t *testing.T) {
	p := newTestPipeline(t, nil, nil, nil)
	sess := session.New(session.DefaultMaxTurns)

	resp, err := p.Ask(context.Background(), sess, "比較七月和八月的支出")
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "NT$9,000")
	assert.Contains(t, resp.Text, "NT$7,000")
}

func TestAskEnglishQuestion(t *testing.T) {
	p := newTestPipeline(t, nil, nil, nil)
	sess := session.New(session.DefaultMaxTurns)

	resp, err := p.Ask(context.Background(), sess, "What is the total spending overall?")
	require.NoError(t, err)
	assert.Equal(t, model.LangEnglish, resp.Language)
	assert.Contains(t, resp.Text, "NT$23,500")
}

func TestAskBlockedByTopicWhitelist(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(t, nil, nil, sink)
	sess := session.New(session.DefaultMaxTurns)

	resp, err := p.Ask(context.Background(), sess, "What is the best stock to buy right now")
	require.NoError(t, err)
	assert.True(t, resp.Blocked)
	assert.Contains(t, resp.Text, "investing")

	require.Len(t, sink.records, 1)
	assert.False(t, sink.records[0].Success)
}

func TestAskBlockedByScope(t *testing.T) {
	p := newTestPipeline(t, nil, nil, nil)
	sess := session.New(session.DefaultMaxTurns)

	resp, err := p.Ask(context.Background(), sess, "三月花了多少？")
	require.NoError(t, err)
	assert.True(t, resp.Blocked)
	assert.Contains(t, resp.Text, "三月暫無資料")
	assert.Contains(t, resp.Text, "七月")
}

func TestAskDriftBlocksAfterOffTopicRun(t *testing.T) {
	p := newTestPipeline(t, nil, nil, nil)
	sess := session.New(session.DefaultMaxTurns)

	for _, q := range []string{"你好嗎", "今天天氣如何", "推薦一部電影"} {
		resp, err := p.Ask(context.Background(), sess, q)
		require.NoError(t, err)
		assert.True(t, resp.Blocked)
	}

	// The window is now saturated with off-topic turns, so even an
	// on-topic question is redirected.
	resp, err := p.Ask(context.Background(), sess, "七月花了多少？")
	require.NoError(t, err)
	assert.True(t, resp.Blocked)
	assert.Contains(t, resp.Text, "回到")
}

func TestAskGeneratedAnswerVerified(t *testing.T) {
	client := llm.NewMockClient().Script("您的主要支出是伙食費，三個月合計 NT$21,200，建議持續關注這個類別。")
	p := newTestPipeline(t, textService(client), nil, nil)
	sess := session.New(session.DefaultMaxTurns)

	resp, err := p.Ask(context.Background(), sess, "分析一下我的伙食費支出")
	require.NoError(t, err)
	assert.False(t, resp.Blocked)
	assert.Equal(t, answer.TierSummarized, resp.Tier)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, model.ConfidenceHigh, resp.Level)
}

func TestAskRestatedTotalVerifies(t *testing.T) {
	// The reasoning prompt carries the overall total, so an answer
	// quoting it must pass verification without warnings.
	client := llm.NewMockClient().Script("三個月整體支出合計 NT$23,500，其中伙食費佔最大宗。")
	p := newTestPipeline(t, nil, llm.NewReasoningService(client, nil), nil)
	sess := session.New(session.DefaultMaxTurns)

	resp, err := p.Ask(context.Background(), sess, "分析一下我這幾個月的支出")
	require.NoError(t, err)
	assert.Equal(t, answer.TierFullData, resp.Tier)
	assert.Empty(t, resp.Warnings)
}

func TestAskDegradedWhenNoServiceAvailable(t *testing.T) {
	p := newTestPipeline(t, nil, nil, nil)
	sess := session.New(session.DefaultMaxTurns)

	resp, err := p.Ask(context.Background(), sess, "給我一些省錢建議")
	require.NoError(t, err)
	assert.False(t, resp.Blocked)
	assert.Contains(t, resp.Text, "稍後再試")
	assert.Equal(t, model.ConfidenceVeryLow, resp.Level)
	assert.InDelta(t, confidence.DegradedScore, resp.Confidence, 1e-9)
}

func TestAskUnverifiedNumberLowersConfidence(t *testing.T) {
	client := llm.NewMockClient().Script("您七月大約花了 NT$999,999，建議減少支出。")
	p := newTestPipeline(t, textService(client), nil, nil)
	sess := session.New(session.DefaultMaxTurns)

	resp, err := p.Ask(context.Background(), sess, "分析一下我的支出狀況")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Warnings)
	assert.Less(t, resp.Confidence, 0.8)
}

func TestAskConfidenceFooterPresent(t *testing.T) {
	p := newTestPipeline(t, nil, nil, nil)
	sess := session.New(session.DefaultMaxTurns)

	resp, err := p.Ask(context.Background(), sess, "七月花了多少？")
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "█")
	assert.Contains(t, resp.Text, "%")
}

func TestAskJournalRecordsTurn(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(t, nil, nil, sink)
	sess := session.New(session.DefaultMaxTurns)

	_, err := p.Ask(context.Background(), sess, "七月花了多少？")
	require.NoError(t, err)

	require.Len(t, sink.records, 1)
	rec := sink.records[0]
	assert.Equal(t, "七月花了多少？", rec.Question)
	assert.True(t, rec.Success)
	assert.Equal(t, model.HandlerInstant, rec.Handler)
}

func TestAskLanguageContinuity(t *testing.T) {
	p := newTestPipeline(t, nil, nil, nil)
	sess := session.New(session.DefaultMaxTurns)

	_, err := p.Ask(context.Background(), sess, "How much did I spend in total overall months?")
	require.NoError(t, err)
	assert.Equal(t, model.LangEnglish, sess.RememberedLanguage())
}
