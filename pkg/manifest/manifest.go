package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// PackageRef is a reference to an external, pre-built package.
// Version is empty when the manifest does not pin one.
type PackageRef struct {
	Name    string
	Version string
}

// String returns "Name" or "Name/Version".
func (p PackageRef) String() string {
	if p.Version == "" {
		return p.Name
	}
	return p.Name + "/" + p.Version
}

// Refs holds the references declared by a single manifest.
type Refs struct {
	ProjectRefs []string     // Names of referenced in-repo projects, in document order
	PackageRefs []PackageRef // External packages, in document order
}

// Parser reads references from a project manifest.
type Parser interface {
	// Parse reads the manifest from r. Project references whose derived name
	// is excluded by filter are omitted.
	Parse(r io.Reader, filter Filter) (*Refs, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest type identifier (e.g., "msbuild").
	Type() string
}

// Load opens the manifest at path and parses it with p.
func Load(path string, p Parser, filter Filter) (*Refs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	refs, err := p.Parse(f, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return refs, nil
}

// ProjectName derives the canonical project name from a manifest path by
// stripping the directory and the final extension. Both '/' and '\'
// separators are recognized because MSBuild Include attributes use
// Windows-style paths regardless of the host OS.
func ProjectName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// Filter is a set of case-insensitive substring patterns. A project whose
// name contains any pattern is excluded from the graph, and so is every
// reference to it.
type Filter struct {
	patterns []string
}

// NewFilter builds a Filter from patterns. Empty patterns are ignored.
func NewFilter(patterns ...string) Filter {
	var f Filter
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			f.patterns = append(f.patterns, strings.ToLower(p))
		}
	}
	return f
}

// Excludes reports whether name matches any pattern.
func (f Filter) Excludes(name string) bool {
	if len(f.patterns) == 0 {
		return false
	}
	lower := strings.ToLower(name)
	return slices.ContainsFunc(f.patterns, func(p string) bool {
		return strings.Contains(lower, p)
	})
}

// Patterns returns the normalized (lower-cased) patterns.
func (f Filter) Patterns() []string { return slices.Clone(f.patterns) }
