package domain

import "time"

// DefaultBodyPlaceholder replaces a response body that could not be read.
const DefaultBodyPlaceholder = "<no body>"

// Config is the resolved runtime configuration (file, env and flags merged).
type Config struct {
	// LogFile is the history log; empty disables it.
	LogFile string
	// HistoryDB is an optional SQLite history store.
	HistoryDB string
	// PanicLog receives crash records.
	PanicLog string
	// LogDir holds the diagnostic log (apiclient.log).
	LogDir string

	Timeout         time.Duration
	BodyPlaceholder string
	MaxBodyBytes    int64
	Timestamps      bool
	Debug           bool
}

// DefaultConfig provides sane defaults for anything left unset.
func DefaultConfig() Config {
	return Config{
		PanicLog:        "panic.log",
		LogDir:          ".apiclient/logs",
		Timeout:         30 * time.Second,
		BodyPlaceholder: DefaultBodyPlaceholder,
		MaxBodyBytes:    1 << 20,
	}
}
