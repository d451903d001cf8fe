package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/hsinyulin/ledgerchat/internal/locale"
	"github.com/hsinyulin/ledgerchat/internal/model"
)

// Cue words that pick between the deterministic answer shapes.
var (
	countCues   = []string{"幾筆", "多少筆", "筆數", "how many transaction", "how many record", "number of transaction"}
	averageCues = []string{"平均", "average", "mean"}
	totalCues   = []string{"總共", "一共", "全部", "合計", "總支出", "total", "altogether", "overall", "combined"}
)

// instant is the deterministic tier. It answers the closed set of
// single-fact questions directly from the store and reports ok=false
// for anything that needs interpretation.
func (e *Engine) instant(ctx context.Context, question string, entities model.Entities, lang model.Language) (Result, bool, error) {
	lower := strings.ToLower(question)

	switch {
	case len(entities.Months) >= 2 && hasCue(lower, averageCues):
		res, err := e.multiMonth(ctx, entities.Months, lang, true)
		return res, err == nil, err
	case len(entities.Months) >= 2 && hasCue(lower, totalCues):
		res, err := e.multiMonth(ctx, entities.Months, lang, false)
		return res, err == nil, err
	case entities.HasMonth() && entities.HasCategory():
		res, err := e.monthCategory(ctx, *entities.Month, entities.Category, lang)
		return res, err == nil, err
	case entities.HasMonth() && hasCue(lower, countCues):
		res, err := e.transactionCount(ctx, *entities.Month, lang)
		return res, err == nil, err
	case entities.HasMonth():
		res, err := e.monthTotal(ctx, *entities.Month, lang)
		return res, err == nil, err
	case entities.HasCategory():
		res, err := e.categoryTotal(ctx, entities.Category, lang)
		return res, err == nil, err
	case hasCue(lower, averageCues):
		res, err := e.monthlyAverage(ctx, lang)
		return res, err == nil, err
	case hasCue(lower, totalCues):
		res, err := e.overallTotal(ctx, lang)
		return res, err == nil, err
	default:
		return Result{}, false, nil
	}
}

func (e *Engine) monthTotal(ctx context.Context, key model.MonthKey, lang model.Language) (Result, error) {
	total, err := e.sumMonth(ctx, key, "")
	if err != nil {
		return Result{}, err
	}
	return deterministic(locale.MonthTotal(lang, key.Name, total), total), nil
}

func (e *Engine) monthCategory(ctx context.Context, key model.MonthKey, category string, lang model.Language) (Result, error) {
	total, err := e.sumMonth(ctx, key, category)
	if err != nil {
		return Result{}, err
	}
	return deterministic(locale.MonthCategoryTotal(lang, key.Name, category, total), total), nil
}

func (e *Engine) transactionCount(ctx context.Context, key model.MonthKey, lang model.Language) (Result, error) {
	records, err := e.store.LoadMonth(ctx, key)
	if err != nil {
		return Result{}, err
	}
	return deterministic(locale.TransactionCount(lang, key.Name, len(records)), float64(len(records))), nil
}

func (e *Engine) categoryTotal(ctx context.Context, category string, lang model.Language) (Result, error) {
	stats, err := e.store.SummaryStats(ctx)
	if err != nil {
		return Result{}, err
	}
	total := stats.ByCategory[category]
	return deterministic(locale.CategoryTotalAll(lang, category, total, stats.MonthCount), total), nil
}

func (e *Engine) overallTotal(ctx context.Context, lang model.Language) (Result, error) {
	stats, err := e.store.SummaryStats(ctx)
	if err != nil {
		return Result{}, err
	}
	return deterministic(locale.OverallTotal(lang, stats.TotalSpending, stats.MonthCount), stats.TotalSpending), nil
}

func (e *Engine) monthlyAverage(ctx context.Context, lang model.Language) (Result, error) {
	stats, err := e.store.SummaryStats(ctx)
	if err != nil {
		return Result{}, err
	}
	average := stats.AverageMonthly()
	return deterministic(locale.AverageMonthly(lang, average), average), nil
}

func (e *Engine) multiMonth(ctx context.Context, keys []model.MonthKey, lang model.Language, average bool) (Result, error) {
	var sum float64
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		total, err := e.sumMonth(ctx, key, "")
		if err != nil {
			return Result{}, err
		}
		sum += total
		names = append(names, key.Name)
	}
	if average {
		mean := sum / float64(len(keys))
		return deterministic(locale.MultiMonthAverage(lang, names, mean), mean), nil
	}
	return deterministic(locale.MultiMonthSum(lang, names, sum), sum), nil
}

// sumMonth totals a month's records, optionally restricted to one
// category.
func (e *Engine) sumMonth(ctx context.Context, key model.MonthKey, category string) (float64, error) {
	records, err := e.store.LoadMonth(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", key, err)
	}
	var total float64
	for _, rec := range records {
		if category != "" && rec.Category != category {
			continue
		}
		total += rec.Amount
	}
	return total, nil
}

func hasCue(lower string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
