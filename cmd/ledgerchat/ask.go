package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hsinyulin/ledgerchat/internal/cli"
	"github.com/hsinyulin/ledgerchat/internal/session"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question and exit",
		Example: `  ledgerchat ask "七月花了多少？"
  ledgerchat ask how much did I spend on food in July`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			question := strings.Join(args, " ")
			sess := session.New(session.DefaultMaxTurns)
			resp, err := a.pipe.Ask(cmd.Context(), sess, question)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.Render(resp))
			return nil
		},
	}
}
