package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/deprank/pkg/graph"
)

type document struct {
	Projects []project `json:"projects"`
}

type project struct {
	Name        string       `json:"name"`
	Path        string       `json:"path,omitempty"`
	Rank        *int         `json:"rank,omitempty"`
	ProjectRefs []string     `json:"project_refs,omitempty"`
	PackageRefs []packageRef `json:"package_refs,omitempty"`
}

type packageRef struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// WriteJSON encodes r as indented JSON and writes it to w.
func WriteJSON(r *graph.Registry, w io.Writer) error {
	projects := r.Sorted()
	out := document{Projects: make([]project, len(projects))}

	for i, p := range projects {
		pr := project{Name: p.Name, Path: p.Path, ProjectRefs: p.ProjectRefs}
		if rank, ok := p.Rank(); ok {
			pr.Rank = &rank
		}
		for _, ref := range p.PackageRefs {
			pr.PackageRefs = append(pr.PackageRefs, packageRef{Name: ref.Name, Version: ref.Version})
		}
		out.Projects[i] = pr
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes r to a JSON file at path.
func ExportJSON(r *graph.Registry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(r, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
