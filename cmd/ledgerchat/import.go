package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hsinyulin/ledgerchat/internal/common"
	"github.com/hsinyulin/ledgerchat/internal/storage"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import spending records from a CSV or Excel file",
		Long: `Import categorized spending records into the local database.
Accepts .csv and .xlsx files with date, description, category and
amount columns (Chinese or English headers). Every sheet of an Excel
workbook is read. Rows already imported are skipped, so re-running an
import is safe.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := initStore()
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := storage.ImportFile(cmd.Context(), store, args[0], slog.Default())
			if err != nil {
				return common.NewUserError(fmt.Sprintf("could not import %s", args[0]), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d records (%d duplicates skipped)\n",
				result.Inserted, result.Parsed, result.Skipped)
			return nil
		},
	}
}
