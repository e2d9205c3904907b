package cli

import (
	"fmt"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/reqfile"
	"github.com/Brendon-Hablutzel/api-client/internal/usecase"
	"github.com/spf13/cobra"
)

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a request file without sending anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := usecase.NewValidateRequests(reqfile.Loader{})
			file, invalid, err := uc.Execute(cmd.Context(), args[0])

			out := cmd.OutOrStdout()
			for _, in := range invalid {
				fmt.Fprintf(out, "requests[%d]: %s\n", in.Index, domain.Message(in.Err))
			}
			if err != nil {
				return err
			}

			a.log().Info("validate.ok", "path", args[0], "entries", len(file.Entries))
			fmt.Fprintf(out, "OK (%d request(s))\n", len(file.Entries))
			return nil
		},
	}
}
