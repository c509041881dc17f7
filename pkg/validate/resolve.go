package validate

import (
	"fmt"

	"github.com/confwatch/confwatch/pkg/sources"
)

// ByPriority scans order (source IDs in caller-supplied precedence order)
// and returns the first record whose source matches. When no record matches
// any ordered ID the first record wins; an empty record list yields the zero
// SourceRecord.
func ByPriority(records []SourceRecord, order []sources.ID) SourceRecord {
	for _, id := range order {
		for _, rec := range records {
			if rec.SourceID == id {
				return rec
			}
		}
	}
	if len(records) > 0 {
		return records[0]
	}
	return SourceRecord{}
}

// ByMajority returns the most frequent non-empty value of a field across
// records together with its occurrence count. Ties break toward the value
// seen first; no value at all yields ("", 0).
func ByMajority(records []SourceRecord, field string) (string, int) {
	counts := make(map[string]int)
	var seen []string

	for _, rec := range records {
		value := rec.Data.EntryFields()[field]
		if value == "" {
			continue
		}
		if counts[value] == 0 {
			seen = append(seen, value)
		}
		counts[value]++
	}

	best, bestCount := "", 0
	for _, value := range seen {
		if counts[value] > bestCount {
			best, bestCount = value, counts[value]
		}
	}
	return best, bestCount
}

// ByRecency returns the record with the greatest last-checked date string.
// Records without a last-checked date are excluded; when none qualify the
// first record wins, and an empty record list yields the zero SourceRecord.
func ByRecency(records []SourceRecord) SourceRecord {
	var best *SourceRecord
	for i := range records {
		if records[i].LastChecked == "" {
			continue
		}
		if best == nil || records[i].LastChecked > best.LastChecked {
			best = &records[i]
		}
	}
	if best != nil {
		return *best
	}
	if len(records) > 0 {
		return records[0]
	}
	return SourceRecord{}
}

// StrategyType represents the type of a conflict-resolution strategy.
type StrategyType string

// Strategy types.
const (
	// StrategyTypeAuthorityPriority resolves conflicted groups by taking the
	// highest-precedence authoritative source wholesale.
	StrategyTypeAuthorityPriority StrategyType = "authority-priority"
	// StrategyTypeMajority takes each field's most frequent value.
	StrategyTypeMajority StrategyType = "majority"
	// StrategyTypeRecency takes the most recently checked source wholesale.
	StrategyTypeRecency StrategyType = "recency"
)

// String returns the string representation of a strategy type.
func (s StrategyType) String() string {
	return string(s)
}

// Strategy selects or derives one recommended field set for an entity group
// given its detected conflicts.
type Strategy interface {
	// Type returns the strategy type
	Type() StrategyType

	// Description returns a human-readable description
	Description() string

	// Recommend returns the merged field map for a group
	Recommend(g *EntityGroup, conflicts []Conflict) map[string]string
}

// AuthorityPriorityStrategy is the default strategy: a conflicted group is
// resolved by the highest-precedence authoritative source that reported it;
// a conflict-free group keeps its first-seen record.
type AuthorityPriorityStrategy struct {
	order []sources.ID
}

// NewAuthorityPriorityStrategy creates the default strategy with the given
// authoritative source IDs in precedence order.
func NewAuthorityPriorityStrategy(order []sources.ID) Strategy {
	return &AuthorityPriorityStrategy{order: order}
}

// Type returns the strategy type.
func (s *AuthorityPriorityStrategy) Type() StrategyType {
	return StrategyTypeAuthorityPriority
}

// Description returns a human-readable description.
func (s *AuthorityPriorityStrategy) Description() string {
	return fmt.Sprintf("Resolves conflicts using authoritative source precedence: %v", s.order)
}

// Recommend implements Strategy.
func (s *AuthorityPriorityStrategy) Recommend(g *EntityGroup, conflicts []Conflict) map[string]string {
	if len(g.Records) == 0 {
		return map[string]string{}
	}
	if len(conflicts) > 0 {
		return ByPriority(g.Records, s.order).Data.EntryFields()
	}
	// No conflict: first source wins.
	return g.Records[0].Data.EntryFields()
}

// MajorityStrategy merges a group field by field, taking each field's most
// frequent value and falling back to the first record's value when no source
// reported the field.
type MajorityStrategy struct{}

// NewMajorityStrategy creates a majority-vote strategy.
func NewMajorityStrategy() Strategy {
	return &MajorityStrategy{}
}

// Type returns the strategy type.
func (s *MajorityStrategy) Type() StrategyType {
	return StrategyTypeMajority
}

// Description returns a human-readable description.
func (s *MajorityStrategy) Description() string {
	return "Resolves conflicts by per-field majority vote"
}

// Recommend implements Strategy.
func (s *MajorityStrategy) Recommend(g *EntityGroup, _ []Conflict) map[string]string {
	if len(g.Records) == 0 {
		return map[string]string{}
	}
	merged := g.Records[0].Data.EntryFields()
	for field := range merged {
		if value, count := ByMajority(g.Records, field); count > 0 {
			merged[field] = value
		}
	}
	return merged
}

// RecencyStrategy takes the most recently checked source's record wholesale.
type RecencyStrategy struct{}

// NewRecencyStrategy creates a recency strategy.
func NewRecencyStrategy() Strategy {
	return &RecencyStrategy{}
}

// Type returns the strategy type.
func (s *RecencyStrategy) Type() StrategyType {
	return StrategyTypeRecency
}

// Description returns a human-readable description.
func (s *RecencyStrategy) Description() string {
	return "Resolves conflicts using the most recently checked source"
}

// Recommend implements Strategy.
func (s *RecencyStrategy) Recommend(g *EntityGroup, _ []Conflict) map[string]string {
	if len(g.Records) == 0 {
		return map[string]string{}
	}
	return ByRecency(g.Records).Data.EntryFields()
}
