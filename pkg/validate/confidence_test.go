package validate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/confwatch/confwatch/pkg/sources"
)

func testConfigs() *sources.Configs {
	return sources.NewConfigs([]sources.Config{
		{ID: "ccf_official", Name: "CCF Official", Priority: 1, Enabled: true, Authoritative: true},
		{ID: "manual", Name: "Manual Curation", Priority: 2, Enabled: true, Authoritative: true},
		{ID: "ccfddl", Name: "CCF DDL", Priority: 5, Enabled: true},
	})
}

func scoredRec(source sources.ID, priority int) SourceRecord {
	return SourceRecord{SourceID: source, Priority: priority}
}

func TestConfidenceFormula(t *testing.T) {
	s := NewScorer(testConfigs())

	tests := []struct {
		name      string
		records   []SourceRecord
		conflicts []Conflict
		want      float64
	}{
		{
			name: "two corroborating sources, one authoritative",
			// source 0.6, authority 0.2, priority (10-3)/50 = 0.14
			records: []SourceRecord{
				scoredRec("ccf_official", 1),
				scoredRec("ccfddl", 5),
			},
			want: 0.94,
		},
		{
			name: "single unknown source",
			// source 0.3, priority floor at 0
			records: []SourceRecord{scoredRec("unknown", sources.DefaultPriority)},
			want:    0.3,
		},
		{
			name: "conflict penalty applies",
			// 0.94 - 0.3
			records: []SourceRecord{
				scoredRec("ccf_official", 1),
				scoredRec("ccfddl", 5),
			},
			conflicts: []Conflict{{Kind: KindRankMismatch}},
			want:      0.64,
		},
		{
			name: "penalty capped at 0.6",
			records: []SourceRecord{
				scoredRec("ccf_official", 1),
				scoredRec("manual", 2),
				scoredRec("ccfddl", 5),
			},
			// source 0.6 (capped), authority 0.2 (capped), priority (10-8/3)/50
			conflicts: []Conflict{
				{Kind: KindRankMismatch},
				{Kind: KindDeadlineMismatch},
				{Kind: KindNameMismatch},
			},
			want: 0.6 + 0.2 + (10-8.0/3)/50 - 0.6,
		},
		{
			name: "no sources",
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Confidence(tt.records, tt.conflicts)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Confidence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfidenceUnknownSourceDefaults(t *testing.T) {
	s := NewScorer(sources.NewConfigs(nil))

	// Degraded mode: every source is treated as non-authoritative with
	// default priority. Two sources: 0.6 + 0 + 0 - 0.
	got := s.Confidence([]SourceRecord{
		scoredRec("ghost_a", sources.DefaultPriority),
		scoredRec("ghost_b", sources.DefaultPriority),
	}, nil)
	if math.Abs(got-0.6) > 1e-9 {
		t.Errorf("Confidence = %v, want 0.6", got)
	}
}

// Confidence must stay in [0, 1] for any combination of source counts,
// authority flags, priorities and conflict counts.
func TestConfidenceBoundsProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cfgs := testConfigs()
	ids := []sources.ID{"ccf_official", "manual", "ccfddl", "unknown_a", "unknown_b"}
	s := NewScorer(cfgs)

	for i := 0; i < 1000; i++ {
		records := make([]SourceRecord, rng.Intn(8))
		for j := range records {
			id := ids[rng.Intn(len(ids))]
			priority := rng.Intn(2000) - 500 // negative priorities included
			records[j] = scoredRec(id, priority)
		}
		conflicts := make([]Conflict, rng.Intn(6))

		got := s.Confidence(records, conflicts)
		if got < 0.0 || got > 1.0 {
			t.Fatalf("iteration %d: confidence %v out of [0,1] for %d records, %d conflicts",
				i, got, len(records), len(conflicts))
		}
	}
}

func TestNewScorerNilConfigs(t *testing.T) {
	s := NewScorer(nil)
	if got := s.Confidence([]SourceRecord{scoredRec("any", 999)}, nil); got < 0 || got > 1 {
		t.Errorf("nil-config scorer must still bound the score, got %v", got)
	}
}
