package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hsinyulin/ledgerchat/internal/common"
	"github.com/hsinyulin/ledgerchat/internal/model"
)

// MemoryStore is an in-memory service.DataStore, used by tests and by
// one-shot imports that never touch disk.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.TransactionRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates a store pre-loaded with records.
func NewMemoryStoreWith(records []model.TransactionRecord) *MemoryStore {
	return &MemoryStore{records: append([]model.TransactionRecord(nil), records...)}
}

// AvailableMonths lists every month with data, in calendar order.
func (m *MemoryStore) AvailableMonths(_ context.Context) ([]model.MonthKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]model.MonthKey)
	for _, rec := range m.records {
		seen[rec.Month.String()] = rec.Month
	}
	months := make([]model.MonthKey, 0, len(seen))
	for _, key := range seen {
		months = append(months, key)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Ordinal() < months[j].Ordinal()
	})
	return months, nil
}

// AvailableCategories lists the known category set, sorted.
func (m *MemoryStore) AvailableCategories(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	for _, rec := range m.records {
		seen[rec.Category] = true
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

// LoadMonth returns all records for one month.
func (m *MemoryStore) LoadMonth(_ context.Context, key model.MonthKey) ([]model.TransactionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var records []model.TransactionRecord
	for _, rec := range m.records {
		if key.Matches(rec.Month) {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records for %s: %w", key, common.ErrNotFound)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}

// SummaryStats returns top-level aggregates across all months.
func (m *MemoryStore) SummaryStats(_ context.Context) (model.SummaryStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := model.SummaryStats{
		ByCategory: make(map[string]float64),
		ByMonth:    make(map[string]float64),
	}
	for _, rec := range m.records {
		stats.ByCategory[rec.Category] += rec.Amount
		stats.ByMonth[rec.Month.String()] += rec.Amount
		stats.TotalSpending += rec.Amount
	}
	stats.MonthCount = len(stats.ByMonth)
	return stats, nil
}

// SaveRecords appends records. Unlike the SQLite store it does not
// deduplicate; tests control their own inputs.
func (m *MemoryStore) SaveRecords(_ context.Context, records []model.TransactionRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
	return len(records), nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
