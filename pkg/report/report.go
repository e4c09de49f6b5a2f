// Package report summarizes a ranked project registry.
//
// [Summarize] computes the aggregate counts printed after every run.
// [Layers] groups projects by rank for the listing and rank table, and
// [UniquePackages] produces the deduplicated external package set. The
// text writers in this package render those values for the console.
package report

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/deprank/pkg/graph"
	"github.com/matzehuels/deprank/pkg/manifest"
)

// Order controls the direction in which rank layers are listed.
type Order string

const (
	// OrderAsc lists leaves first, which is a valid build order.
	OrderAsc Order = "asc"
	// OrderDesc lists the highest rank first, matching the DOT cluster order.
	OrderDesc Order = "desc"
)

// ParseOrder converts an order name into an Order. The empty string
// selects OrderAsc.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", OrderAsc:
		return OrderAsc, nil
	case OrderDesc:
		return OrderDesc, nil
	}
	return "", fmt.Errorf("invalid order: %q (must be 'asc' or 'desc')", s)
}

// Stats holds aggregate counts for a run.
type Stats struct {
	Discovered        int // Manifests found before exclusion
	Selected          int // Projects registered after exclusion
	ProjectRefs       int // Project references across all projects
	PackageRefs       int // Package references across all projects
	UniquePackageRefs int // Distinct (name, version) package references
	UniquePackages    int // Distinct package names
	MaxRank           int // Highest assigned rank
}

// Summarize computes Stats for r. discovered is the number of manifests
// found before the exclusion filter was applied.
func Summarize(discovered int, r *graph.Registry) Stats {
	s := Stats{
		Discovered: discovered,
		Selected:   r.Len(),
		MaxRank:    r.MaxRank(),
	}

	refs := make(map[manifest.PackageRef]struct{})
	names := make(map[string]struct{})
	for _, p := range r.All() {
		s.ProjectRefs += len(p.ProjectRefs)
		s.PackageRefs += len(p.PackageRefs)
		for _, ref := range p.PackageRefs {
			refs[ref] = struct{}{}
			names[ref.Name] = struct{}{}
		}
	}
	s.UniquePackageRefs = len(refs)
	s.UniquePackages = len(names)
	return s
}

// Layer is the set of projects sharing one rank.
type Layer struct {
	Rank     int
	Projects []*graph.Project // Sorted by name
}

// Names returns the names of the projects in the layer.
func (l Layer) Names() []string {
	names := make([]string, len(l.Projects))
	for i, p := range l.Projects {
		names[i] = p.Name
	}
	return names
}

// Layers groups the ranked projects of r by rank. Projects inside a layer
// are sorted by name; layers follow order. Unranked projects are omitted.
func Layers(r *graph.Registry, order Order) []Layer {
	byRank := make(map[int][]*graph.Project)
	for _, p := range r.Sorted() {
		if rank, ok := p.Rank(); ok {
			byRank[rank] = append(byRank[rank], p)
		}
	}

	ranks := slices.Sorted(maps.Keys(byRank))
	if order == OrderDesc {
		slices.Reverse(ranks)
	}

	layers := make([]Layer, len(ranks))
	for i, rank := range ranks {
		layers[i] = Layer{Rank: rank, Projects: byRank[rank]}
	}
	return layers
}

// UniquePackages returns the distinct package references of r ordered by
// name and then version.
func UniquePackages(r *graph.Registry) []manifest.PackageRef {
	seen := make(map[manifest.PackageRef]struct{})
	for _, p := range r.All() {
		for _, ref := range p.PackageRefs {
			seen[ref] = struct{}{}
		}
	}
	return slices.SortedFunc(maps.Keys(seen), func(a, b manifest.PackageRef) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Version, b.Version))
	})
}
