package transform

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/deprank/pkg/graph"
)

// ErrCycle is the cause of a *CycleError when no dangling reference
// exists, so the unranked projects must lie on or above a cycle.
var ErrCycle = errors.New("reference cycle")

// CycleError is returned when rank assignment stops making progress. The
// projects in Unranked either sit on a reference cycle, reference a
// project that is not registered (possibly because it was excluded), or
// depend on a project in one of those two situations.
type CycleError struct {
	Unranked []string          // Projects left without a rank, sorted
	Missing  []graph.Reference // References to unregistered projects
	Cycle    []string          // One cycle as a closed path (first == last), if any
}

func newCycleError(r *graph.Registry) *CycleError {
	return &CycleError{
		Unranked: r.Unranked(),
		Missing:  r.Missing(),
		Cycle:    FindCycle(r),
	}
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cycle or missing reference: %d unranked project(s): %s",
		len(e.Unranked), strings.Join(e.Unranked, ", "))
	if len(e.Missing) > 0 {
		refs := make([]string, len(e.Missing))
		for i, m := range e.Missing {
			refs[i] = m.From + " -> " + m.To
		}
		fmt.Fprintf(&b, "; missing: %s", strings.Join(refs, ", "))
	}
	if len(e.Cycle) > 0 {
		fmt.Fprintf(&b, "; cycle: %s", strings.Join(e.Cycle, " -> "))
	}
	return b.String()
}

// Unwrap returns graph.ErrUnknownProject when a dangling reference was
// found and ErrCycle otherwise.
func (e *CycleError) Unwrap() error {
	if len(e.Missing) > 0 {
		return graph.ErrUnknownProject
	}
	return ErrCycle
}

// FindCycle returns one reference cycle in r as a closed path such as
// [A B C A], or nil if the registered projects form a DAG. References to
// unregistered projects are ignored. Projects are visited in name order, so
// the result is deterministic.
//
// Cycle detection uses depth-first search with white/gray/black coloring
// and runs in O(V + E).
func FindCycle(r *graph.Registry) []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, r.Len())
	var stack, cycle []string

	var dfs func(name string) bool
	dfs = func(name string) bool {
		color[name] = gray
		stack = append(stack, name)

		p, err := r.Get(name)
		if err != nil {
			return false
		}
		for _, ref := range p.ProjectRefs {
			if !r.Has(ref) {
				continue
			}
			switch color[ref] {
			case white:
				if dfs(ref) {
					return true
				}
			case gray:
				i := slices.Index(stack, ref)
				cycle = append(slices.Clone(stack[i:]), ref)
				return true
			}
		}

		stack = stack[:len(stack)-1]
		color[name] = black
		return false
	}

	for _, name := range r.Names() {
		if color[name] == white && dfs(name) {
			return cycle
		}
	}
	return nil
}
