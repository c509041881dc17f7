package validate

import (
	"github.com/confwatch/confwatch/pkg/sources"
)

// Scorer combines source count, source authority, source priority and
// conflict count into a bounded confidence score. More corroborating sources
// and authoritative or high-priority sources raise confidence; each detected
// conflict subtracts, capped so a single conflict cannot zero out an
// otherwise strong group and many conflicts cannot push the score below 0.
type Scorer struct {
	cfgs *sources.Configs
}

// NewScorer creates a scorer backed by the given source configurations.
func NewScorer(cfgs *sources.Configs) *Scorer {
	if cfgs == nil {
		cfgs = sources.NewConfigs(nil)
	}
	return &Scorer{cfgs: cfgs}
}

// Confidence returns a score in [0.0, 1.0] for a group's records and its
// detected conflicts. Zero records score 0.
func (s *Scorer) Confidence(records []SourceRecord, conflicts []Conflict) float64 {
	if len(records) == 0 {
		return 0.0
	}

	sourceScore := min(float64(len(records))*0.3, 0.6)

	authoritative := 0
	for _, rec := range records {
		if s.cfgs.Authoritative(rec.SourceID) {
			authoritative++
		}
	}
	authorityScore := min(float64(authoritative)*0.2, 0.2)

	prioritySum := 0
	for _, rec := range records {
		prioritySum += rec.Priority
	}
	avgPriority := float64(prioritySum) / float64(len(records))
	priorityScore := max(0, (10-avgPriority)/50)

	conflictPenalty := min(float64(len(conflicts))*0.3, 0.6)

	confidence := sourceScore + authorityScore + priorityScore - conflictPenalty
	return max(0.0, min(1.0, confidence))
}
