package answer

import (
	"context"
	"fmt"
	"sort"

	"github.com/hsinyulin/ledgerchat/internal/locale"
	"github.com/hsinyulin/ledgerchat/internal/model"
)

// forecastWindow is how many trailing months feed the moving average.
const forecastWindow = 3

// forecastBuffer widens the estimate by ±10% to avoid false precision.
const forecastBuffer = 0.10

// trendThreshold is the relative change below which spending counts as
// stable.
const trendThreshold = 0.05

// compare answers a two-month comparison deterministically.
func (e *Engine) compare(ctx context.Context, entities model.Entities, lang model.Language) (Result, error) {
	if len(entities.Months) < 2 {
		return deterministic(locale.NeedTwoMonths(lang)), nil
	}

	first, second := entities.Months[0], entities.Months[1]
	totalA, err := e.sumMonth(ctx, first, entities.Category)
	if err != nil {
		return Result{}, err
	}
	totalB, err := e.sumMonth(ctx, second, entities.Category)
	if err != nil {
		return Result{}, err
	}

	text := locale.Comparison(lang, first.Name, second.Name, totalA, totalB)
	diff := totalB - totalA
	if diff < 0 {
		diff = -diff
	}
	source := []float64{totalA, totalB, diff}

	// Whole-month comparisons get a per-category breakdown.
	if entities.Category == "" {
		byCatA, catErr := e.categoryTotals(ctx, first)
		if catErr != nil {
			return Result{}, catErr
		}
		byCatB, catErr := e.categoryTotals(ctx, second)
		if catErr != nil {
			return Result{}, catErr
		}
		for _, category := range categoryUnion(byCatA, byCatB) {
			a, b := byCatA[category], byCatB[category]
			text += "\n" + locale.CategoryDelta(lang, category, a, b)
			source = append(source, a, b)
		}
	}

	return deterministic(text, source...), nil
}

// categoryTotals sums one month's records per category.
func (e *Engine) categoryTotals(ctx context.Context, key model.MonthKey) (map[string]float64, error) {
	records, err := e.store.LoadMonth(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}
	totals := map[string]float64{}
	for _, rec := range records {
		totals[rec.Category] += rec.Amount
	}
	return totals, nil
}

func categoryUnion(a, b map[string]float64) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range []map[string]float64{a, b} {
		for category := range m {
			if !seen[category] {
				seen[category] = true
				out = append(out, category)
			}
		}
	}
	sort.Strings(out)
	return out
}

// forecast estimates next month from a trailing moving average.
func (e *Engine) forecast(ctx context.Context, lang model.Language) (Result, error) {
	totals, err := e.monthlyTotals(ctx, "")
	if err != nil {
		return Result{}, err
	}
	if len(totals) < forecastWindow {
		return deterministic(locale.InsufficientData(lang, forecastWindow)), nil
	}

	var sum float64
	for _, total := range totals[len(totals)-forecastWindow:] {
		sum += total
	}
	estimate := sum / forecastWindow
	low := estimate * (1 - forecastBuffer)
	high := estimate * (1 + forecastBuffer)

	return deterministic(locale.Forecast(lang, estimate, low, high), estimate, low, high), nil
}

// trend reports the direction of spending between the first and last
// month with data, optionally restricted to one category.
func (e *Engine) trend(ctx context.Context, entities model.Entities, lang model.Language) (Result, error) {
	totals, err := e.monthlyTotals(ctx, entities.Category)
	if err != nil {
		return Result{}, err
	}
	if len(totals) < 2 {
		return deterministic(locale.InsufficientData(lang, 2)), nil
	}

	subject := entities.Category
	if subject == "" {
		subject = locale.TrendSubjectOverall(lang)
	}

	first, last := totals[0], totals[len(totals)-1]
	if first == 0 {
		return deterministic(locale.TrendStable(lang, subject), first, last), nil
	}
	change := (last - first) / first
	pct := change * 100
	if pct < 0 {
		pct = -pct
	}

	var text string
	switch {
	case change > trendThreshold:
		text = locale.TrendRising(lang, subject, pct)
	case change < -trendThreshold:
		text = locale.TrendFalling(lang, subject, pct)
	default:
		text = locale.TrendStable(lang, subject)
	}
	return deterministic(text, first, last), nil
}

// monthlyTotals returns per-month sums in calendar order, optionally
// restricted to one category.
func (e *Engine) monthlyTotals(ctx context.Context, category string) ([]float64, error) {
	months, err := e.store.AvailableMonths(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Ordinal() < months[j].Ordinal()
	})

	totals := make([]float64, 0, len(months))
	for _, key := range months {
		total, sumErr := e.sumMonth(ctx, key, category)
		if sumErr != nil {
			return nil, sumErr
		}
		totals = append(totals, total)
	}
	return totals, nil
}
