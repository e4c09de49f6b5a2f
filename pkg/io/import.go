package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/deprank/pkg/graph"
	"github.com/matzehuels/deprank/pkg/graph/transform"
	"github.com/matzehuels/deprank/pkg/manifest"
)

// ErrInconsistentRank is returned when stored ranks do not follow the
// project references: 0 for a project without references, otherwise one
// more than the highest rank it references.
var ErrInconsistentRank = errors.New("inconsistent rank")

// ReadJSON decodes a registry written by [WriteJSON].
//
// It returns an error if the JSON is malformed, a project has an empty or
// duplicate name, a rank is negative, or a reference names a project that
// is not in the document ([graph.ErrUnknownProject]). Stored ranks are
// kept when every project has one and they are consistent; otherwise
// [ErrInconsistentRank] is returned. A document without any ranks is
// ranked on import, which fails with *transform.CycleError on a cycle.
// Errors are wrapped with the name of the offending project; use errors.Is
// to check for sentinels. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Registry, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	reg := graph.New()
	for _, pr := range data.Projects {
		var pkgs []manifest.PackageRef
		for _, ref := range pr.PackageRefs {
			pkgs = append(pkgs, manifest.PackageRef{Name: ref.Name, Version: ref.Version})
		}
		p, err := reg.Register(pr.Name, pr.ProjectRefs, pkgs)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", pr.Name, err)
		}
		p.Path = pr.Path
		if pr.Rank != nil {
			if err := reg.SetRank(pr.Name, *pr.Rank); err != nil {
				return nil, fmt.Errorf("project %q: %w", pr.Name, err)
			}
		}
	}

	if err := checkRanks(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// checkRanks rejects dangling references and verifies or assigns ranks.
func checkRanks(reg *graph.Registry) error {
	if missing := reg.Missing(); len(missing) > 0 {
		m := missing[0]
		return fmt.Errorf("project %q references %q: %w", m.From, m.To, graph.ErrUnknownProject)
	}

	if len(reg.Unranked()) == reg.Len() {
		_, err := transform.AssignRanks(reg)
		return err
	}

	for _, p := range reg.Sorted() {
		got, ok := p.Rank()
		if !ok {
			return fmt.Errorf("project %q: no rank: %w", p.Name, ErrInconsistentRank)
		}
		want := 0
		for _, name := range p.ProjectRefs {
			ref, err := reg.Get(name)
			if err != nil {
				return fmt.Errorf("project %q: %w", p.Name, err)
			}
			// Every project is ranked at this point.
			r, _ := ref.Rank()
			want = max(want, r+1)
		}
		if got != want {
			return fmt.Errorf("project %q: rank %d, want %d: %w", p.Name, got, want, ErrInconsistentRank)
		}
	}
	return nil
}

// ImportJSON reads a registry from the JSON file at path.
func ImportJSON(path string) (*graph.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
