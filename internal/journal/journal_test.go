package journal

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsinyulin/ledgerchat/internal/model"
	"github.com/hsinyulin/ledgerchat/internal/service"
)

func TestFileSinkAppendsJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	sink, err := NewFileSink(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sink.Record(ctx, service.TurnRecord{
		Timestamp: time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC),
		Question:  "七月花了多少",
		Intent:    model.IntentInstant,
		Handler:   model.HandlerInstant,
		Success:   true,
	}))
	require.NoError(t, sink.Record(ctx, service.TurnRecord{
		Question: "比較七月和八月",
		Intent:   model.IntentComparison,
		Handler:  model.HandlerCompare,
		Success:  true,
	}))
	require.NoError(t, sink.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	var lines []service.TurnRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var rec service.TurnRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		lines = append(lines, rec)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 2)
	assert.Equal(t, "七月花了多少", lines[0].Question)
	assert.Equal(t, model.IntentComparison, lines[1].Intent)
}

func TestFileSinkReopensAppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")

	for i := 0; i < 2; i++ {
		sink, err := NewFileSink(path)
		require.NoError(t, err)
		require.NoError(t, sink.Record(context.Background(), service.TurnRecord{Question: "q"}))
		require.NoError(t, sink.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestFileSinkTruncatesAnswerPreview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	sink, err := NewFileSink(path)
	require.NoError(t, err)

	long := strings.Repeat("支出分析", 100)
	require.NoError(t, sink.Record(context.Background(), service.TurnRecord{
		Question:      "分析",
		AnswerPreview: long,
	}))
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec service.TurnRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.LessOrEqual(t, len(rec.AnswerPreview), 200)
	// Truncation must not split a UTF-8 sequence.
	assert.True(t, strings.HasPrefix(long, rec.AnswerPreview))
}

func TestNopSink(t *testing.T) {
	sink := NopSink{}
	assert.NoError(t, sink.Record(context.Background(), service.TurnRecord{}))
	assert.NoError(t, sink.Close())
}
