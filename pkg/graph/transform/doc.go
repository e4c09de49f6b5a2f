// Package transform assigns topological ranks to a project registry.
//
// # Overview
//
// A project's rank is the length of the longest reference chain from it
// down to a leaf, a project that references nothing else in the tree.
// Ranks order a solution bottom-up: every project has a strictly higher
// rank than anything it references, so building rank by rank never builds
// a project before its dependencies.
//
// # Algorithms
//
// [AssignRanks] is the reference fixed-point algorithm: it sweeps the
// unranked projects repeatedly, ranking each one whose references are all
// ranked already, until none remain. [AssignRanksWorklist] computes the
// same ranks in linear time with a queue seeded by the leaves. Both are
// reachable through [Assign] with a [Strategy].
//
// # Failure
//
// Neither algorithm can rank a project that sits on a reference cycle or
// references a project that is not registered. When that happens they
// return a [*CycleError] listing the unranked projects, every dangling
// reference, and one concrete cycle found by [FindCycle]. The error
// unwraps to [graph.ErrUnknownProject] when a dangling reference exists
// and to [ErrCycle] otherwise.
//
// # Usage
//
//	res, err := transform.Assign(registry, transform.StrategySweep)
//	var cycleErr *transform.CycleError
//	if errors.As(err, &cycleErr) {
//	    fmt.Println("unranked:", cycleErr.Unranked)
//	}
package transform
