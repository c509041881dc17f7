package validate

import (
	"github.com/agentstation/utc"

	"github.com/confwatch/confwatch/pkg/errors"
	"github.com/confwatch/confwatch/pkg/sources"
)

// options configures a validator.
type options struct {
	configs       *sources.Configs
	strategy      Strategy
	toleranceDays int
	fuzzy         float64
	now           func() utc.Time
}

func defaultOptions() *options {
	return &options{
		configs:       sources.NewConfigs(nil),
		toleranceDays: DefaultToleranceDays,
		now:           utc.Now,
	}
}

// Option is a function that configures a Validator.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns validator options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithSources sets the source configurations used for priority and authority
// lookups.
func WithSources(cfgs *sources.Configs) Option {
	return func(o *options) error {
		if cfgs == nil {
			return &errors.ValidationError{
				Field:   "sources",
				Message: "cannot be nil",
			}
		}
		o.configs = cfgs
		return nil
	}
}

// WithStrategy sets the conflict-resolution strategy. The default is
// authority-priority resolution over the configured authoritative sources.
func WithStrategy(strategy Strategy) Option {
	return func(o *options) error {
		if strategy == nil {
			return &errors.ValidationError{
				Field:   "strategy",
				Message: "cannot be nil",
			}
		}
		o.strategy = strategy
		return nil
	}
}

// WithToleranceDays sets the allowed spread between reported deadlines
// before a deadline mismatch is flagged.
func WithToleranceDays(days int) Option {
	return func(o *options) error {
		if days < 0 {
			return &errors.ValidationError{
				Field:   "tolerance_days",
				Message: "cannot be negative",
			}
		}
		if days == 0 {
			days = DefaultToleranceDays
		}
		o.toleranceDays = days
		return nil
	}
}

// WithFuzzyGrouping enables similarity-threshold grouping: records whose
// canonical keys are not byte-identical but score at or above threshold are
// folded into the same group. Disabled by default.
func WithFuzzyGrouping(threshold float64) Option {
	return func(o *options) error {
		if threshold <= 0 || threshold > 1 {
			return &errors.ValidationError{
				Field:   "fuzzy_threshold",
				Value:   threshold,
				Message: "must be in (0, 1]",
			}
		}
		o.fuzzy = threshold
		return nil
	}
}

// WithClock overrides the time source, used for deterministic report
// timestamps and check dates in tests.
func WithClock(now func() utc.Time) Option {
	return func(o *options) error {
		if now == nil {
			return &errors.ValidationError{
				Field:   "clock",
				Message: "cannot be nil",
			}
		}
		o.now = now
		return nil
	}
}
