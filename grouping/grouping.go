// Package grouping implements C5: turning pairwise similarity scores
// into equivalence classes over a corpus, via greedy single-linkage
// seeded at each unprocessed item in ascending index order.
//
// The greedy algorithm itself (RunGreedy) is scoring-agnostic: it takes
// a ScoreFunc/ThresholdFunc pair by index rather than hardcoding package
// similarity, so the engine façade can supply a cache-aware scorer for
// the Semantic method (§4.6's embedding cache) while reusing the exact
// same determinism and parallelism guarantees as the plain-text path.
package grouping

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/loomtext/dedupweave/langres"
	"github.com/loomtext/dedupweave/similarity"
	"github.com/loomtext/dedupweave/strategy"
	"github.com/loomtext/dedupweave/telemetry"
	"github.com/loomtext/dedupweave/telemetry/metrics"
)

// Group is a set of ≥2 item indices judged similar under the active
// strategy. Members is sorted ascending and always includes
// Representative, the smallest index by convention. Similarity is the
// maximum pairwise score observed among members against Representative.
type Group struct {
	Representative int
	Members        []int
	Similarity     float64
}

// Stats summarizes a grouping run over a corpus of size TotalItems.
type Stats struct {
	TotalItems      int
	UniqueItems     int
	DuplicateGroups int
}

// Result is the outcome of a grouping run: groups in ascending
// representative order (singletons are never reported), plus stats.
type Result struct {
	Groups []Group
	Stats  Stats
}

// ScoreFunc reports the similarity of items i and j (i < j).
type ScoreFunc func(i, j int) (float64, error)

// ThresholdFunc reports the effective pair-threshold for items i and j.
type ThresholdFunc func(i, j int) float64

// CandidatesFunc returns the scope candidates for index i (always > i)
// given the processed-index snapshot taken at the start of the outer
// step, out of n total items.
type CandidatesFunc func(n, i int, processed []bool) []int

// GlobalCandidates is the Global-scope candidate rule: every later,
// not-yet-processed index.
func GlobalCandidates(n, i int, processed []bool) []int {
	candidates := make([]int, 0, n-i-1)
	for j := i + 1; j < n; j++ {
		if !processed[j] {
			candidates = append(candidates, j)
		}
	}
	return candidates
}

// Deduplicate groups the items of corpus (whole texts, as held by the
// engine façade's corpus) under strategy s. Per spec.md's note that
// "Local degenerates to Global for top-level deduplication" — each
// corpus item is an independent whole text with no containing scope —
// comparison_scope is not consulted here; every later item is a
// candidate for every earlier one, as under Global.
func Deduplicate(corpus []string, s strategy.Strategy, resources *langres.Resources) (Result, error) {
	scoreFn := func(i, j int) (float64, error) {
		return similarity.Compare(corpus[i], corpus[j], s, resources)
	}
	thresholdFn := func(i, j int) float64 {
		return similarity.EffectiveThreshold(s, len(corpus[i]), len(corpus[j]))
	}
	return runTimed(len(corpus), GlobalCandidates, scoreFn, thresholdFn, s.UseParallel)
}

func runTimed(n int, candidatesFor CandidatesFunc, scoreFn ScoreFunc, thresholdFn ThresholdFunc, useParallel bool) (Result, error) {
	start := time.Now()
	result, err := RunGreedy(n, candidatesFor, scoreFn, thresholdFn, useParallel)
	telemetry.EmitHistogram(metrics.GroupingRunMs, time.Since(start), nil)
	telemetry.EmitCounter(metrics.GroupingRunsTotal, 1, nil)
	telemetry.EmitCounter(metrics.GroupingGroupsFound, float64(len(result.Groups)), nil)
	return result, err
}

// RunGreedy implements spec.md's greedy single-linkage algorithm over n
// indices: for each unprocessed i in ascending order, every candidate j
// scoring ≥ its effective threshold joins i's group and is marked
// processed. Pair evaluation within one outer step may run in parallel
// (useParallel) against a processed-index snapshot taken at the step's
// start; final group membership is still resolved in ascending-j order
// so composition and the reported max similarity stay deterministic
// regardless of evaluation order.
func RunGreedy(n int, candidatesFor CandidatesFunc, scoreFn ScoreFunc, thresholdFn ThresholdFunc, useParallel bool) (Result, error) {
	processed := make([]bool, n)
	var groups []Group
	var comparisons int

	for i := 0; i < n; i++ {
		if processed[i] {
			continue
		}
		processed[i] = true

		snapshot := make([]bool, n)
		copy(snapshot, processed)
		candidates := candidatesFor(n, i, snapshot)
		comparisons += len(candidates)

		matched, bestScore, err := evaluateCandidates(i, candidates, scoreFn, thresholdFn, useParallel)
		if err != nil {
			return Result{}, err
		}

		if len(matched) == 0 {
			continue
		}

		for _, j := range matched {
			processed[j] = true
		}

		members := make([]int, 0, len(matched)+1)
		members = append(members, i)
		members = append(members, matched...)
		sort.Ints(members)

		groups = append(groups, Group{
			Representative: i,
			Members:        members,
			Similarity:     bestScore,
		})
	}

	telemetry.EmitCounter(metrics.GroupingComparisonsTotal, float64(comparisons), nil)

	return Result{Groups: groups, Stats: computeStats(n, groups)}, nil
}

type pairOutcome struct {
	j     int
	score float64
	pass  bool
	err   error
}

// evaluateCandidates scores item i against each candidate, honoring
// use_parallel by fanning the scoring across a GOMAXPROCS-sized worker
// pool; membership is still resolved in ascending-j order afterward.
func evaluateCandidates(i int, candidates []int, scoreFn ScoreFunc, thresholdFn ThresholdFunc, useParallel bool) ([]int, float64, error) {
	outcomes := make([]pairOutcome, len(candidates))

	score := func(idx int, j int) {
		result, err := scoreFn(i, j)
		if err != nil {
			outcomes[idx] = pairOutcome{j: j, err: err}
			return
		}
		threshold := thresholdFn(i, j)
		outcomes[idx] = pairOutcome{j: j, score: result, pass: result >= threshold}
	}

	if useParallel && len(candidates) > 1 {
		workers := runtime.GOMAXPROCS(0)
		if workers > len(candidates) {
			workers = len(candidates)
		}
		var wg sync.WaitGroup
		jobs := make(chan int)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for idx := range jobs {
					score(idx, candidates[idx])
				}
			}()
		}
		for idx := range candidates {
			jobs <- idx
		}
		close(jobs)
		wg.Wait()
	} else {
		for idx, j := range candidates {
			score(idx, j)
		}
	}

	var matched []int
	bestScore := 0.0
	for _, o := range outcomes {
		if o.err != nil {
			return nil, 0, o.err
		}
		if o.pass {
			matched = append(matched, o.j)
			if o.score > bestScore {
				bestScore = o.score
			}
		}
	}
	return matched, bestScore, nil
}

func computeStats(total int, groups []Group) Stats {
	duplicates := 0
	for _, g := range groups {
		duplicates += len(g.Members) - 1
	}
	return Stats{
		TotalItems:      total,
		UniqueItems:     total - duplicates,
		DuplicateGroups: len(groups),
	}
}
