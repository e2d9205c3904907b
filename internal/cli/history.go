package cli

import (
	"fmt"
	"io"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/usecase"
	"github.com/spf13/cobra"
)

func historyCmd(a *app) *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "history",
		Short: "List recent requests recorded in the history database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			printHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	c.Flags().String("history-db", "", "SQLite history database to read")
	c.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all)")
	return c
}

func printHistory(w io.Writer, entries []domain.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no history")
		return
	}
	for _, e := range entries {
		r := e.Result
		ts := r.Timestamp.UTC().Format(usecase.TimestampLayout)
		if r.Failed() {
			fmt.Fprintf(w, "%s  %-6s %s  ERROR (%s): %s\n", ts, r.Method, r.URL, r.Err.Kind, r.Err.Message)
			continue
		}
		fmt.Fprintf(w, "%s  %-6s %s  %d %s  %dms\n", ts, r.Method, r.URL, r.StatusCode, r.StatusReason, r.LatencyMS)
	}
}
