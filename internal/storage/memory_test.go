package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsinyulin/ledgerchat/internal/common"
	"github.com/hsinyulin/ledgerchat/internal/model"
)

func TestMemoryStoreMonthsInCalendarOrder(t *testing.T) {
	store := NewMemoryStoreWith(testRecords())

	months, err := store.AvailableMonths(context.Background())
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "六月", months[0].Name)
	assert.Equal(t, "七月", months[1].Name)
}

func TestMemoryStoreLoadMonth(t *testing.T) {
	store := NewMemoryStoreWith(testRecords())

	records, err := store.LoadMonth(context.Background(), model.MonthKey{Name: "七月"})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = store.LoadMonth(context.Background(), model.MonthKey{Name: "一月"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemoryStoreSummaryStats(t *testing.T) {
	store := NewMemoryStoreWith(testRecords())

	stats, err := store.SummaryStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.MonthCount)
	assert.InDelta(t, 4340, stats.TotalSpending, 1e-9)
	assert.InDelta(t, 2170, stats.AverageMonthly(), 1e-9)
}

func TestMemoryStoreEmpty(t *testing.T) {
	store := NewMemoryStore()

	months, err := store.AvailableMonths(context.Background())
	require.NoError(t, err)
	assert.Empty(t, months)

	stats, err := store.SummaryStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.MonthCount)
	assert.Zero(t, stats.AverageMonthly())
}
