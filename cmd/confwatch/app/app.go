// Package app provides the application context and dependency management
// for the confwatch CLI. It centralizes configuration, logging, and the
// lazily created confwatch client.
package app

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/confwatch/confwatch"
	"github.com/confwatch/confwatch/pkg/errors"
	"github.com/confwatch/confwatch/pkg/validate"
)

// App represents the confwatch application with all its dependencies.
type App struct {
	version string
	commit  string
	date    string

	config *Config
	logger *zerolog.Logger

	// confwatch client (lazy-initialized, singleton)
	mu     sync.Mutex
	client confwatch.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date string) (*App, error) {
	a := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
	}
	a.config = config

	logger := NewLogger(config)
	a.logger = &logger

	return a, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// ReloadLogger rebuilds the logger after flag parsing updated the config.
func (a *App) ReloadLogger() {
	logger := NewLogger(a.config)
	a.logger = &logger
}

// Client returns the confwatch client, creating it lazily.
func (a *App) Client() (confwatch.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	opts := []confwatch.Option{
		confwatch.WithDataPath(a.config.DataPath),
		confwatch.WithSourcesPath(a.config.SourcesPath),
	}
	if a.config.BackupDir != "" {
		opts = append(opts, confwatch.WithBackupDir(a.config.BackupDir))
	}

	var validatorOpts []validate.Option
	if a.config.ToleranceDays > 0 {
		validatorOpts = append(validatorOpts, validate.WithToleranceDays(a.config.ToleranceDays))
	}
	if a.config.FuzzyThreshold > 0 {
		validatorOpts = append(validatorOpts, validate.WithFuzzyGrouping(a.config.FuzzyThreshold))
	}
	if len(validatorOpts) > 0 {
		opts = append(opts, confwatch.WithValidatorOptions(validatorOpts...))
	}

	client, err := confwatch.New(opts...)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
