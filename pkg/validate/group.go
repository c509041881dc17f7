package validate

import (
	"sort"

	"github.com/confwatch/confwatch/pkg/sources"
)

// Group partitions per-source record lists into entity groups sharing a
// canonical key. Two records group together iff their normalized names are
// byte-identical; no approximate matching happens here.
//
// Sources are visited in configuration order, then any unconfigured source
// IDs in lexicographic order; within a source the record order is kept.
// Group order follows first appearance. Each record is stamped with its
// source's configured priority and the supplied check date.
func Group(multi MultiSource, cfgs *sources.Configs, lastChecked string) []*EntityGroup {
	return group(multi, cfgs, lastChecked, 0)
}

// GroupSimilar groups like Group but additionally folds a record whose exact
// key is new into the first existing group (in insertion order) whose key
// similarity meets threshold. Empty keys are degenerate and never folded.
func GroupSimilar(multi MultiSource, cfgs *sources.Configs, lastChecked string, threshold float64) []*EntityGroup {
	return group(multi, cfgs, lastChecked, threshold)
}

func group(multi MultiSource, cfgs *sources.Configs, lastChecked string, threshold float64) []*EntityGroup {
	var groups []*EntityGroup
	byKey := make(map[string]*EntityGroup)

	for _, id := range sourceOrder(multi, cfgs) {
		for _, rec := range multi[id] {
			key := Key(rec.Name)

			g, ok := byKey[key]
			if !ok && threshold > 0 && key != "" {
				for _, cand := range groups {
					if cand.Key != "" && ratio(key, cand.Key) >= threshold {
						g, ok = cand, true
						break
					}
				}
			}
			if !ok {
				g = &EntityGroup{Key: key}
				byKey[key] = g
				groups = append(groups, g)
			}

			g.Records = append(g.Records, SourceRecord{
				SourceID:    id,
				Data:        rec,
				LastChecked: lastChecked,
				Priority:    cfgs.Priority(id),
			})
		}
	}

	return groups
}

// sourceOrder returns the deterministic iteration order for a MultiSource:
// configured sources first in configuration order, then the rest sorted.
func sourceOrder(multi MultiSource, cfgs *sources.Configs) []sources.ID {
	order := make([]sources.ID, 0, len(multi))
	seen := make(map[sources.ID]bool, len(multi))

	for _, cfg := range cfgs.List() {
		if _, ok := multi[cfg.ID]; ok && !seen[cfg.ID] {
			order = append(order, cfg.ID)
			seen[cfg.ID] = true
		}
	}

	var rest []sources.ID
	for id := range multi {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })

	return append(order, rest...)
}
