// Package confwatch tracks academic conference and journal metadata
// reported by multiple independent data sources and reconciles the sources
// into one verified catalog.
//
// The package wraps the reconciliation engine (pkg/validate), the catalog
// schemas (pkg/catalogs) and JSON persistence behind a single client:
//
//	cw, err := confwatch.New(
//	    confwatch.WithDataPath("./conferences.json"),
//	    confwatch.WithSourcesPath("./sources.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := cw.Validate(ctx, multi)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Statistics.VerificationRate)
package confwatch

import (
	"context"
	"sync"

	"github.com/confwatch/confwatch/internal/store"
	"github.com/confwatch/confwatch/pkg/catalogs"
	"github.com/confwatch/confwatch/pkg/errors"
	"github.com/confwatch/confwatch/pkg/sources"
	"github.com/confwatch/confwatch/pkg/validate"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client manages a conference catalog and its cross-source validation.
type Client interface {
	// Catalog returns the current catalog, loading it from disk on first use.
	Catalog() (*catalogs.Catalog, error)

	// Sources returns the configured data sources.
	Sources() *sources.Configs

	// Validate runs the reconciliation engine over a multi-source input.
	Validate(ctx context.Context, multi validate.MultiSource) (*validate.Report, error)

	// ValidateCatalog validates the stored catalog against the source
	// records embedded in each entry's verification state.
	ValidateCatalog(ctx context.Context) (*validate.Report, error)

	// Fix applies each conflicted result's recommended data back to the
	// catalog and saves it with a backup. Returns how many entries changed.
	Fix(ctx context.Context, report *validate.Report) (int, error)

	// Save persists the catalog with a backup of the previous file.
	Save() error

	// Backups lists up to limit catalog backups, newest first.
	Backups(limit int) ([]string, error)

	// Restore replaces the catalog file with a backup.
	Restore(backupPath string) error
}

// client is the internal implementation of the Client interface.
type client struct {
	mu        sync.RWMutex
	config    *config
	store     *store.Store
	catalog   *catalogs.Catalog
	cfgs      *sources.Configs
	validator validate.Validator
}

// New creates a new confwatch client with the given options.
func New(opts ...Option) (Client, error) {
	c := &client{config: defaultConfig()}
	if err := c.config.apply(opts...); err != nil {
		return nil, err
	}

	c.store = store.New(c.config.dataPath, c.config.storeOpts...)

	c.cfgs = c.config.configs
	if c.cfgs == nil {
		// Missing or malformed source config degrades to an empty set.
		c.cfgs = sources.Load(c.config.sourcesPath)
	}

	validatorOpts := append([]validate.Option{validate.WithSources(c.cfgs)}, c.config.validatorOpts...)
	v, err := validate.New(validatorOpts...)
	if err != nil {
		return nil, err
	}
	c.validator = v

	return c, nil
}

// Catalog implements Client.
func (c *client) Catalog() (*catalogs.Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadCatalog()
}

func (c *client) loadCatalog() (*catalogs.Catalog, error) {
	if c.catalog != nil {
		return c.catalog, nil
	}

	cat := catalogs.NewCatalog()
	if err := c.store.Load(cat); err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		// No data file yet: start empty.
	}
	c.catalog = cat
	return cat, nil
}

// Sources implements Client.
func (c *client) Sources() *sources.Configs {
	return c.cfgs
}

// Validate implements Client.
func (c *client) Validate(ctx context.Context, multi validate.MultiSource) (*validate.Report, error) {
	if multi == nil {
		return nil, &errors.ValidationError{Field: "multi", Message: "cannot be nil"}
	}
	return c.validator.Validate(ctx, multi), nil
}

// ValidateCatalog implements Client.
func (c *client) ValidateCatalog(ctx context.Context) (*validate.Report, error) {
	cat, err := c.Catalog()
	if err != nil {
		return nil, err
	}
	return c.validator.Validate(ctx, cat.MultiSource(c.config.fallbackSource)), nil
}

// Fix implements Client.
func (c *client) Fix(_ context.Context, report *validate.Report) (int, error) {
	if report == nil {
		return 0, &errors.ValidationError{Field: "report", Message: "cannot be nil"}
	}

	cat, err := c.Catalog()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, res := range report.Conflicts {
		if err := cat.ApplyResult(res, c.config.fallbackSource); err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return applied, err
		}
		applied++
	}

	if applied > 0 {
		if err := c.Save(); err != nil {
			return applied, err
		}
	}
	return applied, nil
}

// Save implements Client.
func (c *client) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.catalog == nil {
		return &errors.ValidationError{Field: "catalog", Message: "nothing loaded to save"}
	}
	return c.store.Save(c.catalog, true)
}

// Backups implements Client.
func (c *client) Backups(limit int) ([]string, error) {
	return c.store.ListBackups(limit)
}

// Restore implements Client.
func (c *client) Restore(backupPath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Restore(backupPath); err != nil {
		return err
	}
	// Force a reload on next access.
	c.catalog = nil
	return nil
}
