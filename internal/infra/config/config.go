// Package config resolves runtime settings from defaults, a .env file, the
// YAML config file, APICLIENT_* environment variables and command flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "APICLIENT"
	ConfigFileName = ".apiclient"
	DefaultEnvFile = ".env"
)

// Keys understood in the config file and as APICLIENT_<KEY> env vars.
const (
	KeyLogFile         = "log_file"
	KeyHistoryDB       = "history_db"
	KeyPanicLog        = "panic_log"
	KeyLogDir          = "log_dir"
	KeyTimeout         = "timeout"
	KeyBodyPlaceholder = "body_placeholder"
	KeyMaxBodyBytes    = "max_body_bytes"
	KeyTimestamps      = "timestamps"
	KeyDebug           = "debug"
)

// Options locates the config sources. Zero values mean the defaults:
// $HOME/.apiclient.yaml and ./.env.
type Options struct {
	File    string
	EnvFile string
	Home    string
}

// New returns a viper instance with defaults and env bindings in place.
// Flags are bound by the caller before Load.
func New() *viper.Viper {
	v := viper.New()

	d := domain.DefaultConfig()
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyHistoryDB, d.HistoryDB)
	v.SetDefault(KeyPanicLog, d.PanicLog)
	v.SetDefault(KeyLogDir, "")
	v.SetDefault(KeyTimeout, d.Timeout)
	v.SetDefault(KeyBodyPlaceholder, d.BodyPlaceholder)
	v.SetDefault(KeyMaxBodyBytes, d.MaxBodyBytes)
	v.SetDefault(KeyTimestamps, d.Timestamps)
	v.SetDefault(KeyDebug, d.Debug)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// PANIC_LOG is honoured without the prefix as well.
	_ = v.BindEnv(KeyPanicLog, EnvPrefix+"_PANIC_LOG", "PANIC_LOG")

	return v
}

// Load reads the optional .env and config files into v and resolves the
// final configuration.
func Load(v *viper.Viper, opts Options) (domain.Config, error) {
	if err := loadDotEnv(v, opts.EnvFile); err != nil {
		return domain.Config{}, err
	}
	if err := readConfigFile(v, opts); err != nil {
		return domain.Config{}, err
	}
	return resolve(v)
}

// loadDotEnv layers .env values just above the built-in defaults. A missing
// file is not an error.
func loadDotEnv(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultEnvFile
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return invalidConfig(path, err)
	}

	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("dotenv")
	if err := env.ReadInConfig(); err != nil {
		return invalidConfig(path, err)
	}

	prefix := strings.ToLower(EnvPrefix) + "_"
	for _, k := range env.AllKeys() {
		key := strings.TrimPrefix(k, prefix)
		if !isKnownKey(key) {
			continue
		}
		v.SetDefault(key, env.Get(k))
	}
	return nil
}

func readConfigFile(v *viper.Viper, opts Options) error {
	if opts.File != "" {
		path, err := homedir.Expand(opts.File)
		if err != nil {
			return invalidConfig(opts.File, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return invalidConfig(path, err)
		}
		return nil
	}

	home := opts.Home
	if home == "" {
		h, err := homedir.Dir()
		if err != nil {
			// No home directory means no config file; defaults still apply.
			return nil
		}
		home = h
	}

	v.AddConfigPath(home)
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return invalidConfig(v.ConfigFileUsed(), err)
	}
	return nil
}

func resolve(v *viper.Viper) (domain.Config, error) {
	cfg := domain.Config{
		LogFile:         strings.TrimSpace(v.GetString(KeyLogFile)),
		HistoryDB:       strings.TrimSpace(v.GetString(KeyHistoryDB)),
		PanicLog:        strings.TrimSpace(v.GetString(KeyPanicLog)),
		LogDir:          strings.TrimSpace(v.GetString(KeyLogDir)),
		Timeout:         v.GetDuration(KeyTimeout),
		BodyPlaceholder: v.GetString(KeyBodyPlaceholder),
		MaxBodyBytes:    v.GetInt64(KeyMaxBodyBytes),
		Timestamps:      v.GetBool(KeyTimestamps),
		Debug:           v.GetBool(KeyDebug),
	}

	if cfg.Timeout <= 0 {
		return domain.Config{}, invalidField(KeyTimeout, fmt.Sprintf("must be a positive duration, got %s", cfg.Timeout))
	}
	if cfg.MaxBodyBytes <= 0 {
		return domain.Config{}, invalidField(KeyMaxBodyBytes, fmt.Sprintf("must be positive, got %d", cfg.MaxBodyBytes))
	}
	if cfg.Timeout > 24*time.Hour {
		return domain.Config{}, invalidField(KeyTimeout, "must not exceed 24h")
	}
	return cfg, nil
}

func isKnownKey(k string) bool {
	switch k {
	case KeyLogFile, KeyHistoryDB, KeyPanicLog, KeyLogDir, KeyTimeout,
		KeyBodyPlaceholder, KeyMaxBodyBytes, KeyTimestamps, KeyDebug:
		return true
	default:
		return false
	}
}

func invalidField(field, msg string) error {
	return &domain.OpError{
		Op:   "config.resolve",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}

func invalidConfig(path string, err error) error {
	return &domain.OpError{
		Op:   "config.load",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  err,
	}
}
