// Package discover finds project manifests under a root directory.
//
// The walk is recursive and deterministic: results are returned in lexical
// path order. Directories matching any skip pattern (doublestar globs,
// evaluated against slash-separated paths relative to the root) are pruned
// without being descended into.
//
//	paths, err := discover.Find(ctx, "src", discover.Options{
//	    Match: parser.Supports,
//	    Skip:  []string{"**/bin", "**/obj"},
//	})
package discover

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSkip lists build-output and tooling directories that never contain
// source manifests worth scanning.
var DefaultSkip = []string{"**/bin", "**/obj", "**/node_modules", "**/.git", "**/.vs"}

// Options configures a manifest search.
type Options struct {
	// Match reports whether a file name is a manifest. Required.
	Match func(filename string) bool

	// Skip holds doublestar patterns for directories to prune. A pattern
	// matches a directory if it matches the directory's path relative to
	// the root, or any of that path with trailing content ("bin" prunes
	// "bin/Debug" too).
	Skip []string

	// OnSkip, if set, is called for each pruned directory.
	OnSkip func(rel string)
}

// Find walks root and returns the paths of all matching manifest files,
// sorted lexically. Returned paths are root joined with the relative path.
func Find(ctx context.Context, root string, opts Options) ([]string, error) {
	if opts.Match == nil {
		return nil, fmt.Errorf("discover: no match function")
	}
	for _, p := range opts.Skip {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("discover: invalid skip pattern %q", p)
		}
	}

	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && skipped(opts.Skip, rel) {
				if opts.OnSkip != nil {
					opts.OnSkip(rel)
				}
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() && opts.Match(d.Name()) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(found)
	return found, nil
}

func skipped(patterns []string, rel string) bool {
	for _, p := range patterns {
		if matched, _ := doublestar.Match(p, rel); matched {
			return true
		}
		if !strings.HasSuffix(p, "/**") {
			if matched, _ := doublestar.Match(p+"/**", rel); matched {
				return true
			}
		}
	}
	return false
}
