package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hsinyulin/ledgerchat/internal/locale"
)

func monthsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the months and categories with data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, store, err := initStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			months, err := store.AvailableMonths(ctx)
			if err != nil {
				return err
			}
			if len(months) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No data imported yet. Run `ledgerchat import <file>` first.")
				return nil
			}

			categories, err := store.AvailableCategories(ctx)
			if err != nil {
				return err
			}
			stats, err := store.SummaryStats(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, key := range months {
				fmt.Fprintf(out, "%-12s %s\n", key.String(), locale.FormatNTD(stats.ByMonth[key.String()]))
			}
			fmt.Fprintf(out, "\nTotal: %s across %d months (avg %s/month)\n",
				locale.FormatNTD(stats.TotalSpending), stats.MonthCount, locale.FormatNTD(stats.AverageMonthly()))
			fmt.Fprintf(out, "Categories: %s\n", strings.Join(categories, ", "))
			return nil
		},
	}
}
