package validate

import (
	"time"

	"github.com/confwatch/confwatch/pkg/sources"
)

// Kind identifies the type of a detected conflict.
//
// The taxonomy is wider than what the detector currently produces: only
// KindDeadlineMismatch and KindRankMismatch are emitted today, the remaining
// kinds are reserved for future detectors.
type Kind string

// Conflict kinds.
const (
	KindDeadlineMismatch Kind = "deadline_mismatch"
	KindRankMismatch     Kind = "rank_mismatch"
	KindMissingField     Kind = "missing_field"
	KindDuplicateEntry   Kind = "duplicate_entry"
	KindNameMismatch     Kind = "name_mismatch"
)

// String returns the string representation of a conflict kind.
func (k Kind) String() string {
	return string(k)
}

// Severity grades how serious a conflict is.
type Severity string

// Conflict severities.
const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Conflict records a disagreement between sources on a specific field.
// Values and Sources are parallel slices listing every participating value
// with its reporting source, duplicates included.
type Conflict struct {
	Kind           Kind         `json:"type"`
	Field          string       `json:"field"`
	Values         []string     `json:"values"`
	Sources        []sources.ID `json:"sources"`
	Severity       Severity     `json:"severity"`
	DaysDifference int          `json:"days_difference,omitempty"`
}

// DefaultToleranceDays is the allowed spread between reported deadlines
// before a deadline mismatch is flagged.
const DefaultToleranceDays = 3

// deadlineLayout is the calendar date format deadlines are reported in.
const deadlineLayout = "2006-01-02"

// Detector inspects one entity group's per-source field values and emits
// zero or more typed conflicts.
type Detector struct {
	toleranceDays int
}

// NewDetector creates a detector with the given deadline tolerance in days.
// Non-positive tolerances fall back to DefaultToleranceDays.
func NewDetector(toleranceDays int) *Detector {
	if toleranceDays <= 0 {
		toleranceDays = DefaultToleranceDays
	}
	return &Detector{toleranceDays: toleranceDays}
}

// Detect runs all conflict checks over a group. Groups with fewer than two
// records cannot conflict.
func (d *Detector) Detect(g *EntityGroup) []Conflict {
	if g == nil || len(g.Records) < 2 {
		return nil
	}

	var conflicts []Conflict
	if c := d.deadlineConflict(g.Records); c != nil {
		conflicts = append(conflicts, *c)
	}
	if c := d.rankConflict(g.Records); c != nil {
		conflicts = append(conflicts, *c)
	}
	return conflicts
}

// deadlineConflict flags deadline disagreement beyond the tolerance.
// Unparseable deadline strings are skipped silently: a record with a bad
// date simply does not participate in the comparison.
func (d *Detector) deadlineConflict(records []SourceRecord) *Conflict {
	type dated struct {
		raw    string
		date   time.Time
		source sources.ID
	}

	var deadlines []dated
	for _, rec := range records {
		raw := rec.Data.Deadline
		if raw == "" {
			continue
		}
		date, err := time.Parse(deadlineLayout, raw)
		if err != nil {
			continue
		}
		deadlines = append(deadlines, dated{raw: raw, date: date, source: rec.SourceID})
	}

	if len(deadlines) < 2 {
		return nil
	}

	earliest, latest := deadlines[0].date, deadlines[0].date
	for _, d := range deadlines[1:] {
		if d.date.Before(earliest) {
			earliest = d.date
		}
		if d.date.After(latest) {
			latest = d.date
		}
	}

	daysDiff := int(latest.Sub(earliest) / (24 * time.Hour))
	if daysDiff <= d.toleranceDays {
		return nil
	}

	severity := SeverityMedium
	if daysDiff > 7 {
		severity = SeverityHigh
	}

	values := make([]string, len(deadlines))
	srcs := make([]sources.ID, len(deadlines))
	for i, d := range deadlines {
		values[i] = d.raw
		srcs[i] = d.source
	}

	return &Conflict{
		Kind:           KindDeadlineMismatch,
		Field:          FieldDeadline,
		Values:         values,
		Sources:        srcs,
		Severity:       severity,
		DaysDifference: daysDiff,
	}
}

// rankConflict flags rank disagreement. "N/A" and absent ranks do not
// participate; duplicate reportings of the same value are listed, not
// deduplicated.
func (d *Detector) rankConflict(records []SourceRecord) *Conflict {
	var values []string
	var srcs []sources.ID
	distinct := make(map[string]bool)

	for _, rec := range records {
		rank := rec.Data.Rank
		if rank == "" || rank == "N/A" {
			continue
		}
		values = append(values, rank)
		srcs = append(srcs, rec.SourceID)
		distinct[rank] = true
	}

	if len(distinct) <= 1 {
		return nil
	}

	return &Conflict{
		Kind:     KindRankMismatch,
		Field:    FieldRank,
		Values:   values,
		Sources:  srcs,
		Severity: SeverityMedium,
	}
}
