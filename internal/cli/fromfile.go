package cli

import (
	"fmt"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/reqfile"
	"github.com/Brendon-Hablutzel/api-client/internal/usecase"
	"github.com/spf13/cobra"
)

func fromFileCmd(a *app) *cobra.Command {
	var stopEarly bool

	c := &cobra.Command{
		Use:   "from-file FILE",
		Short: "Send every request listed in a JSON (or YAML) file, in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := reqfile.Load(args[0])
			if err != nil {
				return err
			}

			sink, err := a.historySink()
			if err != nil {
				return err
			}

			policy := domain.BatchPolicy{
				StopEarlyOnFail: stopEarly,
				LogFile:         a.cfg.LogFile,
				Timestamps:      a.cfg.Timestamps,
			}

			out := cmd.OutOrStdout()
			uc := usecase.NewRunBatch(a.executor(), sink, usecase.WithLogger(a.log()))
			summary, err := uc.Execute(cmd.Context(), file, policy, func(r usecase.Report) error {
				_, werr := fmt.Fprintln(out, r.Text)
				return werr
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "%d request(s): %d ok, %d failed\n",
				summary.Total, summary.Succeeded, summary.Failed)
			return err
		},
	}

	c.Flags().BoolVar(&stopEarly, "stop-early-on-fail", false, "stop at the first request that fails to send")
	c.Flags().String("log-file", "", "append every result to this file")
	c.Flags().Bool("timestamps", false, "prefix each printed result with its timestamp")
	c.Flags().String("history-db", "", "also record results in this SQLite database")
	return c
}
