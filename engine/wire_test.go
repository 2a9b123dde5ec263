package engine

import (
	"testing"

	"github.com/loomtext/dedupweave/grouping"
)

func TestToWireMapsRepresentativeAndMembers(t *testing.T) {
	result := grouping.Result{
		Groups: []grouping.Group{
			{Representative: 0, Members: []int{0, 1, 3}, Similarity: 0.9},
		},
		Stats: grouping.Stats{TotalItems: 4, UniqueItems: 2, DuplicateGroups: 1},
	}

	wire := ToWire(result)
	if len(wire.DuplicateGroups) != 1 {
		t.Fatalf("expected 1 duplicate group, got %d", len(wire.DuplicateGroups))
	}
	g := wire.DuplicateGroups[0]
	if g.Original != 0 {
		t.Errorf("expected original 0, got %d", g.Original)
	}
	if len(g.Duplicates) != 2 || g.Duplicates[0] != 1 || g.Duplicates[1] != 3 {
		t.Errorf("expected duplicates [1 3], got %v", g.Duplicates)
	}
	if g.Similarity != 0.9 {
		t.Errorf("expected similarity 0.9, got %v", g.Similarity)
	}
	if wire.Stats != (WireStats{TotalItems: 4, UniqueItems: 2, DuplicateGroups: 1}) {
		t.Errorf("unexpected stats: %+v", wire.Stats)
	}
}

func TestToWireEmptyResult(t *testing.T) {
	wire := ToWire(grouping.Result{})
	if len(wire.DuplicateGroups) != 0 {
		t.Errorf("expected no duplicate groups, got %+v", wire.DuplicateGroups)
	}
}
