package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hsinyulin/ledgerchat/internal/cli"
	"github.com/hsinyulin/ledgerchat/internal/session"
	"github.com/hsinyulin/ledgerchat/internal/tui"
)

func chatCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive Q&A session",
		Long: `Start an interactive session answering questions about your spending.
Questions can be asked in Traditional Chinese or English; answers follow
the language of the question.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			sess := session.New(session.DefaultMaxTurns)
			if plain {
				return cli.Loop(cmd.Context(), a.pipe, sess, os.Stdin, os.Stdout)
			}
			return tui.Run(cmd.Context(), a.pipe, sess)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "line-based REPL instead of the full-screen UI")
	return cmd
}
