package answer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hsinyulin/ledgerchat/internal/common"
	"github.com/hsinyulin/ledgerchat/internal/locale"
	"github.com/hsinyulin/ledgerchat/internal/model"
)

// sampleRows is how many representative records each month contributes
// to the full-data snapshot.
const sampleRows = 5

// summarized is tier two: the question plus pre-computed aggregates
// go to the short-deadline text service. The model interprets the
// figures; it never sees raw records.
func (e *Engine) summarized(ctx context.Context, question string, entities model.Entities, lang model.Language) (Result, error) {
	stats, err := e.store.SummaryStats(ctx)
	if err != nil {
		return Result{}, err
	}
	if stats.MonthCount == 0 {
		return Result{}, common.ErrNoData
	}

	named, namedSource, err := e.namedMonthFigures(ctx, entities)
	if err != nil {
		return Result{}, err
	}

	prompt, source := summaryPrompt(question, stats, named, lang)
	source = append(source, namedSource...)

	reply, err := e.extraction.Call(ctx, prompt)
	if err != nil {
		return Result{}, err
	}
	if !acceptReply(reply) {
		return Result{}, fmt.Errorf("reply too short: %w", common.ErrServiceEmpty)
	}

	return Result{Text: strings.TrimSpace(reply), Source: source, Tier: TierSummarized}, nil
}

// fullData is tier three: a statistical snapshot of the relevant
// months goes to the long-deadline reasoning service. This is the
// terminal tier; a short reply is still an answer here, it just earns
// a low confidence score downstream.
func (e *Engine) fullData(ctx context.Context, question string, entities model.Entities, lang model.Language) (Result, error) {
	stats, err := e.store.SummaryStats(ctx)
	if err != nil {
		return Result{}, err
	}
	if stats.MonthCount == 0 {
		return Result{}, common.ErrNoData
	}

	months, err := e.store.AvailableMonths(ctx)
	if err != nil {
		return Result{}, err
	}
	relevant := relevantMonths(months, entities)

	var sb strings.Builder
	average := stats.AverageMonthly()
	source := []float64{stats.TotalSpending, average}
	fmt.Fprintf(&sb, "Spending snapshot across %d months. Overall total %s, monthly average %s.\n",
		stats.MonthCount, locale.FormatNTD(stats.TotalSpending), locale.FormatNTD(average))

	for _, key := range relevant {
		records, loadErr := e.store.LoadMonth(ctx, key)
		if loadErr != nil {
			return Result{}, loadErr
		}
		monthSource := describeMonth(&sb, key, records)
		source = append(source, monthSource...)
	}

	fmt.Fprintf(&sb, "\nQuestion (%s): %s\n", langName(lang), question)
	sb.WriteString("Answer using only the figures above. Do not recompute totals that are already given.")

	reply, err := e.reasoning.Call(ctx, sb.String())
	if err != nil {
		return Result{}, err
	}

	return Result{Text: strings.TrimSpace(reply), Source: source, Tier: TierFullData}, nil
}

// describeMonth appends one month's statistics to the snapshot: total,
// mean, max, min, per-category totals and a few sample rows. Returns
// every figure written, for verification.
func describeMonth(sb *strings.Builder, key model.MonthKey, records []model.TransactionRecord) []float64 {
	var total, maxAmount, minAmount float64
	byCategory := map[string]float64{}
	for i, rec := range records {
		total += rec.Amount
		byCategory[rec.Category] += rec.Amount
		if i == 0 || rec.Amount > maxAmount {
			maxAmount = rec.Amount
		}
		if i == 0 || rec.Amount < minAmount {
			minAmount = rec.Amount
		}
	}
	mean := 0.0
	if len(records) > 0 {
		mean = total / float64(len(records))
	}

	fmt.Fprintf(sb, "\n[%s] %d records, total %s, mean %s, max %s, min %s\n",
		key, len(records), locale.FormatNTD(total), locale.FormatNTD(mean),
		locale.FormatNTD(maxAmount), locale.FormatNTD(minAmount))
	source := []float64{total, mean, maxAmount, minAmount}

	for _, category := range sortedKeys(byCategory) {
		fmt.Fprintf(sb, "  %s: %s\n", category, locale.FormatNTD(byCategory[category]))
		source = append(source, byCategory[category])
	}

	sb.WriteString("  Sample rows:\n")
	for i, rec := range records {
		if i == sampleRows {
			break
		}
		fmt.Fprintf(sb, "  %s | %s | %s | %.0f\n",
			rec.Date.Format("2006-01-02"), rec.Category, rec.Description, rec.Amount)
		source = append(source, rec.Amount)
	}
	return source
}

// relevantMonths narrows the snapshot to the months the question
// names, falling back to all of them.
func relevantMonths(available []model.MonthKey, entities model.Entities) []model.MonthKey {
	if len(entities.Months) == 0 {
		return available
	}
	var out []model.MonthKey
	for _, key := range available {
		for _, named := range entities.Months {
			if named.Matches(key) {
				out = append(out, key)
				break
			}
		}
	}
	if len(out) == 0 {
		return available
	}
	return out
}

// namedMonthFigures pre-computes totals for the months the question
// names, plus their sum and mean, so tier two never has to derive
// them.
func (e *Engine) namedMonthFigures(ctx context.Context, entities model.Entities) (string, []float64, error) {
	if len(entities.Months) == 0 {
		return "", nil, nil
	}

	var sb strings.Builder
	var source []float64
	sb.WriteString("\nMonths named in the question:\n")

	var sum float64
	for _, key := range entities.Months {
		total, err := e.sumMonth(ctx, key, entities.Category)
		if err != nil {
			return "", nil, err
		}
		label := key.Name
		if entities.Category != "" {
			label += " " + entities.Category
		}
		fmt.Fprintf(&sb, "  %s: %s\n", label, locale.FormatNTD(total))
		source = append(source, total)
		sum += total
	}
	if len(entities.Months) > 1 {
		mean := sum / float64(len(entities.Months))
		fmt.Fprintf(&sb, "  Sum: %s, average: %s\n", locale.FormatNTD(sum), locale.FormatNTD(mean))
		source = append(source, sum, mean)
	}
	return sb.String(), source, nil
}

// summaryPrompt renders the aggregate snapshot and collects every
// figure in it for later verification.
func summaryPrompt(question string, stats model.SummaryStats, named string, lang model.Language) (string, []float64) {
	var sb strings.Builder
	var source []float64

	fmt.Fprintf(&sb, "Spending summary across %d months:\n", stats.MonthCount)
	fmt.Fprintf(&sb, "Total: %s\n", locale.FormatNTD(stats.TotalSpending))
	source = append(source, stats.TotalSpending)

	average := stats.AverageMonthly()
	fmt.Fprintf(&sb, "Monthly average: %s\n", locale.FormatNTD(average))
	source = append(source, average)

	sb.WriteString("\nBy month:\n")
	for _, key := range sortedMonthKeys(stats.ByMonth) {
		fmt.Fprintf(&sb, "  %s: %s\n", key, locale.FormatNTD(stats.ByMonth[key]))
		source = append(source, stats.ByMonth[key])
	}

	sb.WriteString("\nBy category:\n")
	for _, key := range sortedKeys(stats.ByCategory) {
		fmt.Fprintf(&sb, "  %s: %s\n", key, locale.FormatNTD(stats.ByCategory[key]))
		source = append(source, stats.ByCategory[key])
	}

	if named != "" {
		sb.WriteString(named)
	}

	fmt.Fprintf(&sb, "\nQuestion (%s): %s\n", langName(lang), question)
	sb.WriteString("Answer using only the figures above. Do not recompute or estimate new numbers.")
	return sb.String(), source
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// sortedMonthKeys orders "2025-七月" style keys by calendar, not
// lexically; unparseable keys sort last.
func sortedMonthKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, errA := model.ParseMonthKey(keys[i])
		b, errB := model.ParseMonthKey(keys[j])
		if errA != nil || errB != nil {
			if (errA == nil) != (errB == nil) {
				return errA == nil
			}
			return keys[i] < keys[j]
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Ordinal() < b.Ordinal()
	})
	return keys
}

func langName(lang model.Language) string {
	if lang == model.LangEnglish {
		return "English"
	}
	return "Traditional Chinese"
}
