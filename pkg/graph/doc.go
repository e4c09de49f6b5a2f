// Package graph provides the project registry: an in-memory directed graph
// of projects keyed by name.
//
// # Overview
//
// Each [Project] is one node. Its ProjectRefs are outgoing edges to other
// projects in the same source tree; its PackageRefs are external packages
// that never become nodes. A project's rank is its topological layer and
// is absent until a rank assignor (package transform) computes it:
//
//	rank(p) = 0                               if p references no project
//	rank(p) = 1 + max(rank(r) for r in refs)  otherwise
//
// # Basic Usage
//
// Build the registry once, rank it once, then treat it as read-only:
//
//	r := graph.New()
//	_, _ = r.Register("Core", nil, nil)
//	_, _ = r.Register("Api", []string{"Core"}, nil)
//	_, err := transform.AssignRanks(r)
//
// [Registry.Register] rejects duplicate names with [ErrDuplicateProject];
// [Registry.Get] reports missing names with [ErrUnknownProject]. A
// reference to a name that was never registered is left in place and
// surfaces later as a ranking failure, never as an implicit rank 0.
//
// # Ordering
//
// Map iteration order is unspecified, so [Registry.All] is unordered.
// Everything that produces output ([Registry.Sorted], [Registry.Names],
// [Registry.References]) orders by project name for determinism.
//
// # Concurrency
//
// Registry is not safe for concurrent use. The analysis pipeline is
// single-threaded: construction, ranking and reporting run in sequence.
package graph
