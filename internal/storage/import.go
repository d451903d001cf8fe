package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/xuri/excelize/v2"

	"github.com/hsinyulin/ledgerchat/internal/classify"
	"github.com/hsinyulin/ledgerchat/internal/model"
)

// RecordSaver is the write surface an import needs.
type RecordSaver interface {
	SaveRecords(ctx context.Context, records []model.TransactionRecord) (int, error)
}

// ImportResult summarizes one file import.
type ImportResult struct {
	Parsed   int
	Inserted int
	Skipped  int
}

// header spellings accepted in spending exports.
var (
	dateHeaders        = []string{"date", "日期"}
	descriptionHeaders = []string{"description", "item", "項目", "說明", "品項"}
	categoryHeaders    = []string{"category", "類別", "分類"}
	amountHeaders      = []string{"amount", "金額"}
)

var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/2006",
	"2006年1月2日",
}

// ImportFile loads an .xlsx or .csv spending export into the store.
// Every sheet of a workbook is read, so one-sheet-per-month exports
// import in one go. The first row must be a header with date,
// description, category and amount columns in either language; later
// sheets may repeat it.
func ImportFile(ctx context.Context, saver RecordSaver, path string, logger *slog.Logger) (ImportResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	rows, err := readRows(path)
	if err != nil {
		return ImportResult{}, err
	}
	if len(rows) < 2 {
		return ImportResult{}, fmt.Errorf("file %s has no data rows", path)
	}

	header := rows[0]
	dateIdx := findColumn(header, dateHeaders)
	descIdx := findColumn(header, descriptionHeaders)
	categoryIdx := findColumn(header, categoryHeaders)
	amountIdx := findColumn(header, amountHeaders)
	if dateIdx < 0 || categoryIdx < 0 || amountIdx < 0 {
		return ImportResult{}, fmt.Errorf("file %s is missing required columns (date, category, amount)", path)
	}

	bar := progressbar.NewOptions(len(rows)-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing records..."),
		progressbar.OptionClearOnFinish(),
	)

	var result ImportResult
	var records []model.TransactionRecord
	for i, row := range rows[1:] {
		_ = bar.Add(1)

		rec, rowErr := parseRow(row, dateIdx, descIdx, categoryIdx, amountIdx)
		if rowErr != nil {
			logger.Warn("skipping row", "row", i+2, "error", rowErr)
			result.Skipped++
			continue
		}
		records = append(records, rec)
		result.Parsed++
	}

	inserted, err := saver.SaveRecords(ctx, records)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to save records: %w", err)
	}
	result.Inserted = inserted

	logger.Info("import complete",
		"file", path,
		"parsed", result.Parsed,
		"inserted", result.Inserted,
		"skipped", result.Skipped)
	return result, nil
}

func readRows(path string) ([][]string, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook: %w", err)
		}
		defer func() { _ = f.Close() }()
		var all [][]string
		for _, sheet := range f.GetSheetList() {
			rows, err := f.GetRows(sheet)
			if err != nil {
				return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
			}
			// Later sheets often repeat the header row; drop it.
			if len(all) > 0 && len(rows) > 0 && equalRow(rows[0], all[0]) {
				rows = rows[1:]
			}
			all = append(all, rows...)
		}
		return all, nil
	case strings.HasSuffix(lower, ".csv"):
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unsupported file type %s, expected .xlsx or .csv", path)
	}
}

func parseRow(row []string, dateIdx, descIdx, categoryIdx, amountIdx int) (model.TransactionRecord, error) {
	date, err := parseDate(cell(row, dateIdx))
	if err != nil {
		return model.TransactionRecord{}, err
	}

	category := classify.NormalizeCategory(cell(row, categoryIdx))
	if category == "" {
		return model.TransactionRecord{}, fmt.Errorf("empty category")
	}

	amount, err := parseAmount(cell(row, amountIdx))
	if err != nil {
		return model.TransactionRecord{}, err
	}

	return model.TransactionRecord{
		Date:        date,
		Description: cell(row, descIdx),
		Category:    category,
		Month:       model.MonthKey{Name: model.MonthNames[date.Month()-1], Year: date.Year()},
		Amount:      amount,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "NT$")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q", s)
	}
	return amount, nil
}

func findColumn(header []string, names []string) int {
	for i, col := range header {
		lower := strings.ToLower(strings.TrimSpace(col))
		for _, name := range names {
			if lower == name {
				return i
			}
		}
	}
	return -1
}

func equalRow(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(strings.TrimSpace(a[i]), strings.TrimSpace(b[i])) {
			return false
		}
	}
	return true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
