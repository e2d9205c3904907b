package cli

import (
	"github.com/Brendon-Hablutzel/api-client/internal/ui/tui"
	"github.com/Brendon-Hablutzel/api-client/internal/usecase"
	"github.com/spf13/cobra"
)

func interactiveCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "interactive",
		Short: "Compose and send requests in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, a)
		},
	}

	c.Flags().String("log-file", "", "append every response to this file")
	c.Flags().String("history-db", "", "also record responses in this SQLite database")
	return c
}

func runInteractive(cmd *cobra.Command, a *app) error {
	sink, err := a.historySink()
	if err != nil {
		return err
	}

	deps := tui.Deps{
		Submitter: usecase.NewSubmitRequest(a.executor(), sink, usecase.WithLogger(a.log())),
		LogFile:   a.cfg.LogFile,
		Crash:     a.crash,
		Logger:    a.log(),
		Debug:     a.cfg.Debug,
	}
	return tui.Run(cmd.Context(), deps)
}
