package model

import "time"

// TransactionRecord is one categorized spending record from the data store.
type TransactionRecord struct {
	Date        time.Time
	Description string
	Category    string
	Month       MonthKey
	Amount      float64
}

// SummaryStats holds top-level aggregates across all loaded months.
type SummaryStats struct {
	ByCategory    map[string]float64
	ByMonth       map[string]float64
	TotalSpending float64
	MonthCount    int
}

// AverageMonthly returns mean spending per month with data, or 0.
func (s SummaryStats) AverageMonthly() float64 {
	if s.MonthCount == 0 {
		return 0
	}
	return s.TotalSpending / float64(s.MonthCount)
}
