package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/config"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/crash"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/history"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/httpclient"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/httprunner"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/logger"
	"github.com/Brendon-Hablutzel/api-client/internal/ports"
	"github.com/spf13/viper"
)

// app carries what every command needs once config has been resolved.
type app struct {
	v          *viper.Viper
	configOpts config.Options
	cfg        domain.Config

	crash *crash.Boundary

	stdout io.Writer
	stderr io.Writer

	closers []func() error
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		v:      config.New(),
		crash:  crash.NewBoundary(domain.DefaultConfig().PanicLog),
		stdout: stdout,
		stderr: stderr,
	}
}

// setup loads config, starts the diagnostic logger and points the crash
// boundary at the configured path.
func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.configOpts)
	if err != nil {
		return err
	}
	a.cfg = cfg

	cleanup, _ := logger.Setup(logger.Config{Dir: cfg.LogDir, Debug: cfg.Debug})
	if cleanup != nil {
		a.closers = append(a.closers, cleanup)
	}

	// The boundary is already guarding this call; retarget it in place.
	a.crash.Path = cfg.PanicLog

	logger.L().Debug("config.loaded",
		"config_file", a.v.ConfigFileUsed(),
		"timeout", cfg.Timeout.String(),
		"log_file", cfg.LogFile,
		"history_db", cfg.HistoryDB,
		"panic_log", cfg.PanicLog,
	)
	return nil
}

func (a *app) log() *slog.Logger {
	return logger.L()
}

func (a *app) httpClient() *http.Client {
	return httpclient.New(httpclient.ConfigFrom(a.cfg))
}

func (a *app) executor() *httprunner.Runner {
	return httprunner.New(a.httpClient(),
		httprunner.WithMaxBodyBytes(a.cfg.MaxBodyBytes),
		httprunner.WithBodyPlaceholder(a.cfg.BodyPlaceholder),
		httprunner.WithLogger(a.log()),
	)
}

// historySink combines the text log and the SQLite store. It returns nil
// when neither is configured.
func (a *app) historySink() (ports.HistorySink, error) {
	var sinks history.Multi
	if a.cfg.LogFile != "" {
		sinks = append(sinks, history.NewFileSink(a.cfg.LogFile))
	}
	if a.cfg.HistoryDB != "" {
		store, err := a.openStore()
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, store)
	}
	if len(sinks) == 0 {
		return nil, nil
	}
	return sinks, nil
}

func (a *app) openStore() (*history.SQLiteStore, error) {
	if a.cfg.HistoryDB == "" {
		return nil, &domain.OpError{
			Op:   "cli.history",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("no history database configured (use --history-db or history_db): %w", domain.ErrInvalidConfig),
		}
	}
	store, err := history.OpenSQLite(a.cfg.HistoryDB)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.Close)
	return store, nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
