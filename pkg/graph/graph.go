package graph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/deprank/pkg/manifest"
)

var (
	// ErrInvalidName is returned by [Registry.Register] when the project
	// name is empty. All projects must have non-empty identifiers.
	ErrInvalidName = errors.New("project name must not be empty")

	// ErrDuplicateProject is returned by [Registry.Register] when a project
	// with the same name already exists. Two manifests resolving to the
	// same base name make the graph ambiguous, so this is never resolved by
	// overwriting.
	ErrDuplicateProject = errors.New("duplicate project")

	// ErrUnknownProject is returned by [Registry.Get] when no project with
	// the given name is registered.
	ErrUnknownProject = errors.New("unknown project")
)

// Project is a node in the dependency graph.
//
// The zero value is not usable - projects are created by [Registry.Register].
type Project struct {
	Name        string                // Unique identifier derived from the manifest file name
	Path        string                // Manifest the project was loaded from (optional)
	ProjectRefs []string              // Referenced in-repo projects, in declaration order
	PackageRefs []manifest.PackageRef // External packages, in declaration order

	rank   int
	ranked bool
}

// Rank returns the project's topological layer and whether it has been
// assigned. Leaves (no project references) have rank 0.
func (p *Project) Rank() (int, bool) { return p.rank, p.ranked }

// IsLeaf reports whether the project references no other project.
func (p *Project) IsLeaf() bool { return len(p.ProjectRefs) == 0 }

// Reference is a single project reference edge.
type Reference struct {
	From string // Referencing project
	To   string // Referenced project
}

// Registry holds every discovered project keyed by name.
//
// The zero value is not usable - use [New]. Registry is not safe for
// concurrent use; it is built once, ranked once, then read.
type Registry struct {
	projects map[string]*Project
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{projects: make(map[string]*Project)}
}

// Register inserts a new project. Returns ErrInvalidName if name is empty
// and ErrDuplicateProject if name is already registered. The reference
// slices are stored as given.
func (r *Registry) Register(name string, projectRefs []string, packageRefs []manifest.PackageRef) (*Project, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if existing, ok := r.projects[name]; ok {
		if existing.Path != "" {
			return nil, fmt.Errorf("%w: %s (already loaded from %s)", ErrDuplicateProject, name, existing.Path)
		}
		return nil, fmt.Errorf("%w: %s", ErrDuplicateProject, name)
	}
	p := &Project{
		Name:        name,
		ProjectRefs: projectRefs,
		PackageRefs: packageRefs,
	}
	r.projects[name] = p
	return p, nil
}

// Get returns the project with the given name, or ErrUnknownProject.
func (r *Registry) Get(name string) (*Project, error) {
	p, ok := r.projects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProject, name)
	}
	return p, nil
}

// Has reports whether a project named name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.projects[name]
	return ok
}

// All returns every project. The order is not guaranteed. The returned
// slice contains pointers to the registered projects.
func (r *Registry) All() []*Project {
	return slices.Collect(maps.Values(r.projects))
}

// Sorted returns every project ordered by name.
func (r *Registry) Sorted() []*Project {
	return slices.SortedFunc(maps.Values(r.projects), func(a, b *Project) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// Names returns all project names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.projects))
}

// Len returns the number of registered projects.
func (r *Registry) Len() int { return len(r.projects) }

// References returns every project reference, ordered by referencing
// project name and then declaration order. Duplicate declarations yield
// duplicate references.
func (r *Registry) References() []Reference {
	var refs []Reference
	for _, p := range r.Sorted() {
		for _, to := range p.ProjectRefs {
			refs = append(refs, Reference{From: p.Name, To: to})
		}
	}
	return refs
}

// Missing returns references whose target is not registered, in the same
// order as [Registry.References].
func (r *Registry) Missing() []Reference {
	var missing []Reference
	for _, ref := range r.References() {
		if !r.Has(ref.To) {
			missing = append(missing, ref)
		}
	}
	return missing
}

// SetRank assigns a rank to the named project. It is intended for rank
// assignment algorithms; see package transform.
func (r *Registry) SetRank(name string, rank int) error {
	p, err := r.Get(name)
	if err != nil {
		return err
	}
	if rank < 0 {
		return fmt.Errorf("negative rank %d for %s", rank, name)
	}
	p.rank, p.ranked = rank, true
	return nil
}

// ResetRanks clears all rank assignments.
func (r *Registry) ResetRanks() {
	for _, p := range r.projects {
		p.rank, p.ranked = 0, false
	}
}

// Unranked returns the names of projects without a rank, sorted.
func (r *Registry) Unranked() []string {
	var names []string
	for name, p := range r.projects {
		if !p.ranked {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Ranked reports whether every project has a rank.
func (r *Registry) Ranked() bool {
	for _, p := range r.projects {
		if !p.ranked {
			return false
		}
	}
	return true
}

// MaxRank returns the highest assigned rank, or 0 if none is assigned.
func (r *Registry) MaxRank() int {
	maxRank := 0
	for _, p := range r.projects {
		if p.ranked && p.rank > maxRank {
			maxRank = p.rank
		}
	}
	return maxRank
}
