package engine

import "github.com/loomtext/dedupweave/grouping"

// WireDuplicateGroup is one group's external JSON shape per spec.md
// section 6: the representative index as "original", the rest of the
// group's members as "duplicates", and the group's reported similarity.
type WireDuplicateGroup struct {
	Original   int     `json:"original"`
	Duplicates []int   `json:"duplicates"`
	Similarity float64 `json:"similarity"`
}

// WireStats is grouping.Stats under its external snake_case field names.
type WireStats struct {
	TotalItems      int `json:"total_items"`
	UniqueItems     int `json:"unique_items"`
	DuplicateGroups int `json:"duplicate_groups"`
}

// WireDedupResult is the external JSON shape the deduplicate operation
// returns: `{ duplicate_groups: [...], stats: {...} }`.
type WireDedupResult struct {
	DuplicateGroups []WireDuplicateGroup `json:"duplicate_groups"`
	Stats           WireStats            `json:"stats"`
}

// ToWire renders a grouping.Result in the external wire shape.
func ToWire(result grouping.Result) WireDedupResult {
	groups := make([]WireDuplicateGroup, 0, len(result.Groups))
	for _, g := range result.Groups {
		duplicates := make([]int, 0, len(g.Members)-1)
		for _, m := range g.Members {
			if m != g.Representative {
				duplicates = append(duplicates, m)
			}
		}
		groups = append(groups, WireDuplicateGroup{
			Original:   g.Representative,
			Duplicates: duplicates,
			Similarity: g.Similarity,
		})
	}
	return WireDedupResult{
		DuplicateGroups: groups,
		Stats: WireStats{
			TotalItems:      result.Stats.TotalItems,
			UniqueItems:     result.Stats.UniqueItems,
			DuplicateGroups: result.Stats.DuplicateGroups,
		},
	}
}
