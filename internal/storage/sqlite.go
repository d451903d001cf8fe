// Package storage provides the SQLite-backed data store for monthly
// spending records, plus an in-memory implementation for tests.
package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hsinyulin/ledgerchat/internal/common"
	"github.com/hsinyulin/ledgerchat/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements service.DataStore over a local SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: database path is empty", common.ErrInvalidConfig)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db, dbPath: dbPath}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AvailableMonths lists every month with data, in calendar order.
func (s *SQLiteStore) AvailableMonths(ctx context.Context) ([]model.MonthKey, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT year, month, month_ordinal
		FROM records
		ORDER BY year, month_ordinal`)
	if err != nil {
		return nil, fmt.Errorf("failed to query months: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var months []model.MonthKey
	for rows.Next() {
		var key model.MonthKey
		var ordinal int
		if err := rows.Scan(&key.Year, &key.Name, &ordinal); err != nil {
			return nil, fmt.Errorf("failed to scan month row: %w", err)
		}
		months = append(months, key)
	}
	return months, rows.Err()
}

// AvailableCategories lists the known category set, sorted.
func (s *SQLiteStore) AvailableCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM records ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// LoadMonth returns all records for one month, date-ordered. A zero
// Year on the key matches any year.
func (s *SQLiteStore) LoadMonth(ctx context.Context, key model.MonthKey) ([]model.TransactionRecord, error) {
	query := `
		SELECT date, description, category, month, year, amount
		FROM records
		WHERE month = ?`
	args := []any{key.Name}
	if key.Year != 0 {
		query += ` AND year = ?`
		args = append(args, key.Year)
	}
	query += ` ORDER BY date, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.TransactionRecord
	for rows.Next() {
		var rec model.TransactionRecord
		if err := rows.Scan(&rec.Date, &rec.Description, &rec.Category,
			&rec.Month.Name, &rec.Month.Year, &rec.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records for %s: %w", key, common.ErrNotFound)
	}
	return records, nil
}

// SummaryStats returns top-level aggregates across all months.
func (s *SQLiteStore) SummaryStats(ctx context.Context) (model.SummaryStats, error) {
	stats := model.SummaryStats{
		ByCategory: make(map[string]float64),
		ByMonth:    make(map[string]float64),
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(amount) FROM records GROUP BY category`)
	if err != nil {
		return model.SummaryStats{}, fmt.Errorf("failed to query category totals: %w", err)
	}
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			_ = rows.Close()
			return model.SummaryStats{}, fmt.Errorf("failed to scan category total: %w", err)
		}
		stats.ByCategory[category] = total
		stats.TotalSpending += total
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return model.SummaryStats{}, err
	}
	_ = rows.Close()

	rows, err = s.db.QueryContext(ctx, `
		SELECT year, month, SUM(amount)
		FROM records
		GROUP BY year, month_ordinal
		ORDER BY year, month_ordinal`)
	if err != nil {
		return model.SummaryStats{}, fmt.Errorf("failed to query month totals: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var key model.MonthKey
		var total float64
		if err := rows.Scan(&key.Year, &key.Name, &total); err != nil {
			return model.SummaryStats{}, fmt.Errorf("failed to scan month total: %w", err)
		}
		stats.ByMonth[key.String()] = total
		stats.MonthCount++
	}
	return stats, rows.Err()
}

// SaveRecords inserts records inside one transaction. Records are
// deduplicated by content hash, so re-importing the same file is a
// no-op. Returns the number of newly inserted rows.
func (s *SQLiteStore) SaveRecords(ctx context.Context, records []model.TransactionRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO records
			(hash, date, description, category, month, month_ordinal, year, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, rec := range records {
		ordinal := rec.Month.Ordinal()
		if ordinal == 0 {
			return 0, fmt.Errorf("record has unknown month %q", rec.Month.Name)
		}
		result, execErr := stmt.ExecContext(ctx,
			recordHash(rec), rec.Date, rec.Description, rec.Category,
			rec.Month.Name, ordinal, rec.Month.Year, rec.Amount)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert record: %w", execErr)
		}
		n, raErr := result.RowsAffected()
		if raErr != nil {
			return 0, fmt.Errorf("failed to read insert result: %w", raErr)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit records: %w", err)
	}
	return inserted, nil
}

// recordHash identifies a record by its content, for idempotent imports.
func recordHash(rec model.TransactionRecord) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%.2f",
		rec.Date.Format("2006-01-02"), rec.Description, rec.Category,
		rec.Month.String(), rec.Amount)
	return hex.EncodeToString(h.Sum(nil))
}
