package transform

import (
	"fmt"

	"github.com/matzehuels/deprank/pkg/graph"
)

// Strategy selects a rank assignment algorithm.
type Strategy string

const (
	// StrategySweep repeats full sweeps over unranked projects until a
	// fixed point is reached. This is the reference algorithm.
	StrategySweep Strategy = "sweep"
	// StrategyWorklist ranks projects in O(V+E) with a queue of projects
	// whose references just became fully ranked.
	StrategyWorklist Strategy = "worklist"
)

// ParseStrategy converts a strategy name into a Strategy. The empty string
// selects StrategySweep.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategySweep:
		return StrategySweep, nil
	case StrategyWorklist:
		return StrategyWorklist, nil
	}
	return "", fmt.Errorf("invalid strategy: %q (must be 'sweep' or 'worklist')", s)
}

// Result describes a completed rank assignment.
type Result struct {
	Sweeps  int // Full passes over the unranked set (1 for the worklist strategy)
	MaxRank int // Highest assigned rank
}

// Assign ranks every project in r using the given strategy.
func Assign(r *graph.Registry, s Strategy) (Result, error) {
	switch s {
	case "", StrategySweep:
		return AssignRanks(r)
	case StrategyWorklist:
		return AssignRanksWorklist(r)
	}
	return Result{}, fmt.Errorf("invalid strategy: %q", s)
}

// AssignRanks assigns every project its topological rank by fixed-point
// iteration.
//
// Each sweep visits all unranked projects. A project with no project
// references gets rank 0; a project whose references all resolve to
// projects ranked in an earlier sweep gets one plus the maximum of their
// ranks; any other project waits for the next sweep. Ranks assigned during
// a sweep only become visible to the following sweep, so both the final
// ranks and the number of sweeps (MaxRank+1) are independent of visit
// order.
//
// A sweep that ranks nothing means the remaining projects sit on a cycle or
// depend on a project that is not registered. AssignRanks then returns a
// *CycleError naming them instead of looping forever. Projects ranked
// before the failure keep their ranks.
//
// Existing rank assignments are cleared first.
//
// # Performance
//
// Each sweep is O(V + E) and at most V sweeps run, so the worst case is
// O(V * (V + E)). Use [AssignRanksWorklist] for large graphs.
func AssignRanks(r *graph.Registry) (Result, error) {
	r.ResetRanks()

	var res Result
	pending := r.Sorted()
	for len(pending) > 0 {
		res.Sweeps++

		assigned := make(map[string]int, len(pending))
		var next []*graph.Project
		for _, p := range pending {
			if rank, ok := resolve(r, p); ok {
				assigned[p.Name] = rank
			} else {
				next = append(next, p)
			}
		}

		if len(assigned) == 0 {
			return res, newCycleError(r)
		}
		for name, rank := range assigned {
			if err := r.SetRank(name, rank); err != nil {
				return res, err
			}
			res.MaxRank = max(res.MaxRank, rank)
		}
		pending = next
	}
	return res, nil
}

// resolve computes p's rank from the ranks already assigned in r. It
// reports false if any reference is unregistered or still unranked.
func resolve(r *graph.Registry, p *graph.Project) (int, bool) {
	if p.IsLeaf() {
		return 0, true
	}
	highest := 0
	for _, name := range p.ProjectRefs {
		ref, err := r.Get(name)
		if err != nil {
			return 0, false
		}
		rank, ok := ref.Rank()
		if !ok {
			return 0, false
		}
		highest = max(highest, rank)
	}
	return highest + 1, true
}

// AssignRanksWorklist assigns the same ranks as [AssignRanks] using a
// Kahn-style traversal from the leaves.
//
// Every project tracks how many of its references are still unranked.
// Leaves seed the queue at rank 0; popping a project raises each referrer
// to at least rank+1 and decrements its counter, enqueueing it when the
// counter reaches zero. References to unregistered projects never
// decrement, so such projects (and everything above them) stay unranked
// and produce a *CycleError, as do projects on a cycle.
//
// Time complexity is O(V + E).
func AssignRanksWorklist(r *graph.Registry) (Result, error) {
	r.ResetRanks()

	projects := r.Sorted()
	remaining := make(map[string]int, len(projects))
	referrers := make(map[string][]string, len(projects))
	ranks := make(map[string]int, len(projects))
	queue := make([]string, 0, len(projects))

	for _, p := range projects {
		remaining[p.Name] = len(p.ProjectRefs)
		for _, ref := range p.ProjectRefs {
			referrers[ref] = append(referrers[ref], p.Name)
		}
		if p.IsLeaf() {
			queue = append(queue, p.Name)
		}
	}

	res := Result{Sweeps: 1}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if err := r.SetRank(curr, ranks[curr]); err != nil {
			return res, err
		}
		res.MaxRank = max(res.MaxRank, ranks[curr])

		for _, parent := range referrers[curr] {
			if rank := ranks[curr] + 1; rank > ranks[parent] {
				ranks[parent] = rank
			}
			remaining[parent]--
			if remaining[parent] == 0 {
				queue = append(queue, parent)
			}
		}
	}

	if !r.Ranked() {
		return res, newCycleError(r)
	}
	return res, nil
}
