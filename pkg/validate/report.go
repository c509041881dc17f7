package validate

import (
	"fmt"

	"github.com/agentstation/utc"
)

// Status classifies the verification outcome of one entity group.
type Status string

// Verification statuses.
const (
	// StatusVerified marks a group corroborated by at least two sources with
	// high confidence and no conflicts.
	StatusVerified Status = "verified"
	// StatusConflict marks a group whose sources disagree on some field.
	StatusConflict Status = "conflict"
	// StatusUnverified marks a group backed by too few sources or too little
	// confidence to verify.
	StatusUnverified Status = "unverified"
	// StatusOutdated marks a group without any backing source.
	StatusOutdated Status = "outdated"
)

// String returns the string representation of a status.
func (s Status) String() string {
	return string(s)
}

// Result is the validation outcome for one entity group. It is produced once
// per group per run and immutable thereafter.
type Result struct {
	Key             string            `json:"key"`
	Name            string            `json:"name"`
	Status          Status            `json:"status"`
	Sources         []SourceRecord    `json:"sources"`
	Conflicts       []Conflict        `json:"conflicts"`
	Confidence      float64           `json:"confidence"`
	RecommendedData map[string]string `json:"recommended_data"`
}

// Statistics aggregates counts and rates over a whole validation run.
type Statistics struct {
	TotalConferences  int     `json:"total_conferences"`
	VerifiedCount     int     `json:"verified_count"`
	ConflictCount     int     `json:"conflict_count"`
	UnverifiedCount   int     `json:"unverified_count"`
	OutdatedCount     int     `json:"outdated_count"`
	VerificationRate  string  `json:"verification_rate"`
	ConflictRate      string  `json:"conflict_rate"`
	AverageConfidence float64 `json:"average_confidence"`
}

// Report is the aggregate outcome of validating a multi-source input:
// per-group results bucketed by status plus run statistics.
type Report struct {
	GeneratedAt utc.Time   `json:"generated_at"`
	Statistics  Statistics `json:"statistics"`
	Verified    []*Result  `json:"verified"`
	Conflicts   []*Result  `json:"conflicts"`
	Unverified  []*Result  `json:"unverified"`
	Outdated    []*Result  `json:"outdated"`
	Warnings    []string   `json:"warnings,omitempty"`
}

// Total returns the number of validated groups across all buckets.
func (r *Report) Total() int {
	return len(r.Verified) + len(r.Conflicts) + len(r.Unverified) + len(r.Outdated)
}

// Results returns every result in bucket order: verified, conflicts,
// unverified, outdated.
func (r *Report) Results() []*Result {
	out := make([]*Result, 0, r.Total())
	out = append(out, r.Verified...)
	out = append(out, r.Conflicts...)
	out = append(out, r.Unverified...)
	out = append(out, r.Outdated...)
	return out
}

// add buckets a result by its status.
func (r *Report) add(res *Result) {
	switch res.Status {
	case StatusVerified:
		r.Verified = append(r.Verified, res)
	case StatusConflict:
		r.Conflicts = append(r.Conflicts, res)
	case StatusOutdated:
		r.Outdated = append(r.Outdated, res)
	default:
		r.Unverified = append(r.Unverified, res)
	}
}

// finalize computes the aggregate statistics from the buckets.
func (r *Report) finalize() {
	total := r.Total()
	r.Statistics = Statistics{
		TotalConferences:  total,
		VerifiedCount:     len(r.Verified),
		ConflictCount:     len(r.Conflicts),
		UnverifiedCount:   len(r.Unverified),
		OutdatedCount:     len(r.Outdated),
		VerificationRate:  rate(len(r.Verified), total),
		ConflictRate:      rate(len(r.Conflicts), total),
		AverageConfidence: r.averageConfidence(),
	}
}

// averageConfidence averages over the verified, conflict and unverified
// buckets. Outdated groups carry no sources and are excluded.
func (r *Report) averageConfidence() float64 {
	count := len(r.Verified) + len(r.Conflicts) + len(r.Unverified)
	if count == 0 {
		return 0.0
	}
	sum := 0.0
	for _, res := range r.Verified {
		sum += res.Confidence
	}
	for _, res := range r.Conflicts {
		sum += res.Confidence
	}
	for _, res := range r.Unverified {
		sum += res.Confidence
	}
	return sum / float64(count)
}

// rate formats a bucket fraction as "NN.N%", or "0%" for an empty run.
func rate(part, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}
