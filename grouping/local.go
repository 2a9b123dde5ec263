package grouping

import (
	"github.com/loomtext/dedupweave/langres"
	"github.com/loomtext/dedupweave/similarity"
	"github.com/loomtext/dedupweave/split"
	"github.com/loomtext/dedupweave/strategy"
)

// GroupUnits applies the same greedy single-linkage algorithm as
// Deduplicate, but to the comparison units produced by splitting a
// single document with s.SplitStrategy, rather than to whole corpus
// items. This is where comparison_scope's Local/Global distinction is
// actually meaningful (spec.md notes Local "degenerates to Global" at
// the whole-item level): each unit is tagged with the index of its
// containing unit — one split level up, per s.SplitStrategy.
// ContainingScope() — and Local restricts candidates to units sharing
// the same container.
func GroupUnits(text string, s strategy.Strategy, resources *langres.Resources) (Result, error) {
	units, containerOf := splitWithContainers(text, s, resources)

	var candidatesFor CandidatesFunc
	if s.ComparisonScope == strategy.Local {
		candidatesFor = func(n, i int, processed []bool) []int {
			candidates := make([]int, 0)
			for j := i + 1; j < n; j++ {
				if !processed[j] && containerOf[j] == containerOf[i] {
					candidates = append(candidates, j)
				}
			}
			return candidates
		}
	} else {
		candidatesFor = GlobalCandidates
	}

	scoreFn := func(i, j int) (float64, error) {
		return similarity.Compare(units[i], units[j], s, resources)
	}
	thresholdFn := func(i, j int) float64 {
		return similarity.EffectiveThreshold(s, len(units[i]), len(units[j]))
	}

	return runTimed(len(units), candidatesFor, scoreFn, thresholdFn, s.UseParallel)
}

// splitWithContainers splits text at the containing scope one level
// above s.SplitStrategy, then splits each containing chunk at
// s.SplitStrategy, returning the flattened unit sequence alongside a
// parallel slice recording each unit's containing-chunk index.
func splitWithContainers(text string, s strategy.Strategy, resources *langres.Resources) ([]string, []int) {
	if s.SplitStrategy == strategy.WholeText {
		return split.Units(text, strategy.WholeText, resources), []int{0}
	}

	containing := s.SplitStrategy.ContainingScope()
	chunks := split.Units(text, containing, resources)
	if len(chunks) == 0 {
		chunks = []string{text}
	}

	var units []string
	var containerOf []int
	for ci, chunk := range chunks {
		sub := split.Units(chunk, s.SplitStrategy, resources)
		for _, u := range sub {
			units = append(units, u)
			containerOf = append(containerOf, ci)
		}
	}
	return units, containerOf
}
