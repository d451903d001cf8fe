package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsinyulin/ledgerchat/internal/common"
	"github.com/hsinyulin/ledgerchat/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecords() []model.TransactionRecord {
	return []model.TransactionRecord{
		{
			Date:        time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
			Description: "高鐵票",
			Category:    "交通費",
			Month:       model.MonthKey{Name: "六月", Year: 2025},
			Amount:      1490,
		},
		{
			Date:        time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			Description: "超市採買",
			Category:    "伙食費",
			Month:       model.MonthKey{Name: "七月", Year: 2025},
			Amount:      2350,
		},
		{
			Date:        time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			Description: "捷運儲值",
			Category:    "交通費",
			Month:       model.MonthKey{Name: "七月", Year: 2025},
			Amount:      500,
		},
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inserted, err := store.SaveRecords(ctx, testRecords())
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	months, err := store.AvailableMonths(ctx)
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "六月", months[0].Name)
	assert.Equal(t, "七月", months[1].Name)
	assert.Equal(t, 2025, months[0].Year)

	categories, err := store.AvailableCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"交通費", "伙食費"}, categories)
}

func TestSQLiteStoreImportIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.SaveRecords(ctx, testRecords())
	require.NoError(t, err)
	assert.Equal(t, 3, first)

	second, err := store.SaveRecords(ctx, testRecords())
	require.NoError(t, err)
	assert.Equal(t, 0, second)
}

func TestSQLiteStoreLoadMonth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveRecords(ctx, testRecords())
	require.NoError(t, err)

	records, err := store.LoadMonth(ctx, model.MonthKey{Name: "七月", Year: 2025})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "超市採買", records[0].Description)
	assert.Equal(t, 500.0, records[1].Amount)
}

func TestSQLiteStoreLoadMonthYearWildcard(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveRecords(ctx, testRecords())
	require.NoError(t, err)

	records, err := store.LoadMonth(ctx, model.MonthKey{Name: "六月"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSQLiteStoreLoadMonthNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadMonth(context.Background(), model.MonthKey{Name: "一月", Year: 2025})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStoreSummaryStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveRecords(ctx, testRecords())
	require.NoError(t, err)

	stats, err := store.SummaryStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.MonthCount)
	assert.InDelta(t, 4340, stats.TotalSpending, 1e-9)
	assert.InDelta(t, 1990, stats.ByCategory["交通費"], 1e-9)
	assert.InDelta(t, 2850, stats.ByMonth["2025-七月"], 1e-9)
}

func TestSQLiteStoreRejectsUnknownMonth(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveRecords(context.Background(), []model.TransactionRecord{
		{Month: model.MonthKey{Name: "bogus"}, Amount: 1},
	})
	assert.Error(t, err)
}
