package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/config"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/crash"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/logger"
	"github.com/spf13/cobra"
)

// flagKeys maps command-line flags onto config keys. Flags are bound for the
// command being executed, so commands may share flag names.
var flagKeys = map[string]string{
	"log-file":   config.KeyLogFile,
	"history-db": config.KeyHistoryDB,
	"panic-log":  config.KeyPanicLog,
	"log-dir":    config.KeyLogDir,
	"timeout":    config.KeyTimeout,
	"timestamps": config.KeyTimestamps,
	"debug":      config.KeyDebug,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := newApp(os.Stdout, os.Stderr).run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code. Panics
// anywhere below are recorded to the crash log.
func (a *app) run(ctx context.Context, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	err := a.crash.Guard("cli", func() error {
		return cmd.ExecuteContext(ctx)
	})

	var pe *crash.PanicError
	if errors.As(err, &pe) {
		logger.L().Error("panic.recovered",
			"id", pe.Report.ID,
			"where", pe.Report.Where,
			"panic", pe.Report.Panic,
			"crash_log", a.crash.Path,
		)
	}
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}

	if err != nil {
		reportError(a.stderr, err, a.crash.Path)
	}
	return ExitCode(err)
}

func reportError(w io.Writer, err error, crashLog string) {
	var pe *crash.PanicError
	var be *domain.BatchError
	switch {
	case errors.As(err, &pe):
		if pe.WriteErr != nil {
			fmt.Fprintf(w, "fatal: %s (crash log not written: %v)\n", pe.Report.Panic, pe.WriteErr)
			return
		}
		fmt.Fprintf(w, "fatal: %s (details in %s)\n", pe.Report.Panic, crashLog)
	case errors.As(err, &be):
		// The failing entry has already been printed.
		fmt.Fprintf(w, "stopped at entry %d: %s\n", be.Index+1, be.Reason)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func newRootCmd(a *app) *cobra.Command {
	d := domain.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "apiclient",
		Short:         "apiclient: send HTTP requests interactively or from a file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			bindFlags(a, cmd)
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, a)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configOpts.File, "config", "", "config file (default is $HOME/.apiclient.yaml)")
	pf.StringVar(&a.configOpts.EnvFile, "env-file", config.DefaultEnvFile, "dotenv file read at startup when present")
	pf.Bool("debug", false, "enable verbose logging to the diagnostic log")
	pf.String("panic-log", d.PanicLog, "file receiving crash reports (env PANIC_LOG)")
	pf.String("log-dir", "", "directory for apiclient.log (default is $HOME/.apiclient/logs)")
	pf.Duration("timeout", d.Timeout, "per-request timeout")

	cmd.AddCommand(
		interactiveCmd(a),
		fromFileCmd(a),
		validateCmd(a),
		historyCmd(a),
		versionCmd(),
	)
	return cmd
}

func bindFlags(a *app, cmd *cobra.Command) {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			_ = a.v.BindPFlag(key, f)
		}
	}
}
