package validate

import (
	"context"
	"fmt"

	"github.com/agentstation/utc"

	"github.com/confwatch/confwatch/pkg/logging"
	"github.com/confwatch/confwatch/pkg/sources"
)

// Validator is the main interface for validating multi-source entity data.
type Validator interface {
	// Validate groups, cross-checks and scores an entire multi-source input
	// and aggregates the per-group results into a report.
	Validate(ctx context.Context, multi MultiSource) *Report
}

// validator is the default implementation of Validator.
type validator struct {
	cfgs     *sources.Configs
	detector *Detector
	scorer   *Scorer
	strategy Strategy
	fuzzy    float64
	now      func() utc.Time
}

// New creates a new Validator with options.
func New(opts ...Option) (Validator, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	strategy := options.strategy
	if strategy == nil {
		strategy = NewAuthorityPriorityStrategy(options.configs.AuthoritativeOrder())
	}

	return &validator{
		cfgs:     options.configs,
		detector: NewDetector(options.toleranceDays),
		scorer:   NewScorer(options.configs),
		strategy: strategy,
		fuzzy:    options.fuzzy,
		now:      options.now,
	}, nil
}

// Validate implements Validator.
func (v *validator) Validate(ctx context.Context, multi MultiSource) *Report {
	logger := logging.FromContext(ctx)
	now := v.now()

	groups := group(multi, v.cfgs, now.Format(deadlineLayout), v.fuzzy)
	logger.Debug().
		Int("source_count", len(multi)).
		Int("group_count", len(groups)).
		Msg("Grouped multi-source records")

	report := &Report{GeneratedAt: now}
	for _, g := range groups {
		result, err := v.validateGroup(g)
		if err != nil {
			// One malformed group must not abort the batch.
			logger.Error().
				Err(err).
				Str("group_key", g.Key).
				Msg("Skipping group after validation failure")
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("group %q skipped: %v", g.Key, err))
			continue
		}
		report.add(result)
	}
	report.finalize()

	logger.Info().
		Int("total", report.Statistics.TotalConferences).
		Int("verified", report.Statistics.VerifiedCount).
		Int("conflicts", report.Statistics.ConflictCount).
		Int("unverified", report.Statistics.UnverifiedCount).
		Float64("average_confidence", report.Statistics.AverageConfidence).
		Msg("Validation complete")

	return report
}

// validateGroup runs the per-group pipeline: conflict detection, confidence
// scoring, status classification and conflict resolution. Panics are
// contained here so a single bad group cannot take down the run.
func (v *validator) validateGroup(g *EntityGroup) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("validating group %q: %v", g.Key, r)
		}
	}()

	conflicts := v.detector.Detect(g)
	confidence := v.scorer.Confidence(g.Records, conflicts)

	name := g.Key
	if len(g.Records) > 0 && g.Records[0].Data.Name != "" {
		name = g.Records[0].Data.Name
	}

	return &Result{
		Key:             g.Key,
		Name:            name,
		Status:          classify(g.Records, conflicts, confidence),
		Sources:         g.Records,
		Conflicts:       conflicts,
		Confidence:      confidence,
		RecommendedData: v.strategy.Recommend(g, conflicts),
	}, nil
}

// classify determines the verification status of a group. Evaluated in
// order, first match wins: any conflict marks the group conflicted
// regardless of confidence; verification requires both high confidence and
// at least two corroborating sources.
func classify(records []SourceRecord, conflicts []Conflict, confidence float64) Status {
	switch {
	case len(conflicts) > 0:
		return StatusConflict
	case confidence >= 0.8 && len(records) >= 2:
		return StatusVerified
	case len(records) >= 1:
		return StatusUnverified
	default:
		return StatusOutdated
	}
}
