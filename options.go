package confwatch

import (
	"github.com/confwatch/confwatch/internal/store"
	"github.com/confwatch/confwatch/pkg/errors"
	"github.com/confwatch/confwatch/pkg/sources"
	"github.com/confwatch/confwatch/pkg/validate"
)

// Default file locations, relative to the working directory.
const (
	DefaultDataPath    = "conferences.json"
	DefaultSourcesPath = "sources.json"

	// DefaultFallbackSource tags catalog entries that carry no per-source
	// verification records.
	DefaultFallbackSource = "manual"
)

// config holds client configuration built from options.
type config struct {
	dataPath       string
	sourcesPath    string
	fallbackSource string
	configs        *sources.Configs
	validatorOpts  []validate.Option
	storeOpts      []store.StoreOption
}

func defaultConfig() *config {
	return &config{
		dataPath:       DefaultDataPath,
		sourcesPath:    DefaultSourcesPath,
		fallbackSource: DefaultFallbackSource,
	}
}

func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// Option is a function that configures a confwatch client.
type Option func(*config) error

// WithDataPath sets the catalog data file location.
func WithDataPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return &errors.ValidationError{Field: "data_path", Message: "cannot be empty"}
		}
		c.dataPath = path
		return nil
	}
}

// WithSourcesPath sets the source configuration file location.
func WithSourcesPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return &errors.ValidationError{Field: "sources_path", Message: "cannot be empty"}
		}
		c.sourcesPath = path
		return nil
	}
}

// WithSourceConfigs bypasses the sources file and uses the given configs.
func WithSourceConfigs(cfgs *sources.Configs) Option {
	return func(c *config) error {
		if cfgs == nil {
			return &errors.ValidationError{Field: "sources", Message: "cannot be nil"}
		}
		c.configs = cfgs
		return nil
	}
}

// WithFallbackSource sets the source ID used for catalog entries without
// verification records.
func WithFallbackSource(id string) Option {
	return func(c *config) error {
		if id == "" {
			return &errors.ValidationError{Field: "fallback_source", Message: "cannot be empty"}
		}
		c.fallbackSource = id
		return nil
	}
}

// WithValidatorOptions passes extra options to the underlying validator,
// such as validate.WithToleranceDays or validate.WithFuzzyGrouping.
func WithValidatorOptions(opts ...validate.Option) Option {
	return func(c *config) error {
		c.validatorOpts = append(c.validatorOpts, opts...)
		return nil
	}
}

// WithBackupDir overrides the catalog backup directory.
func WithBackupDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return &errors.ValidationError{Field: "backup_dir", Message: "cannot be empty"}
		}
		c.storeOpts = append(c.storeOpts, store.WithBackupDir(dir))
		return nil
	}
}
