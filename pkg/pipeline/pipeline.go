// Package pipeline runs the discover → load → register → rank analysis.
//
// All settings travel in an explicit [Options] value; nothing is read from
// package-level state. The CLI builds Options from flags and an optional
// TOML file (see [LoadConfig]) and hands them to [Runner.Analyze]:
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Analyze(ctx, pipeline.Options{
//	    Root:    "src",
//	    Exclude: []string{"tests"},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Stats.MaxRank)
//
// # Exclusion
//
// Exclusion patterns are case-insensitive substrings. A project whose name
// matches is never registered, and references to it are dropped from every
// other project while its manifest is parsed, so the registry never holds
// a dangling reference caused by exclusion.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deprank/pkg/discover"
	pkgerrors "github.com/matzehuels/deprank/pkg/errors"
	"github.com/matzehuels/deprank/pkg/graph"
	"github.com/matzehuels/deprank/pkg/graph/transform"
	"github.com/matzehuels/deprank/pkg/manifest"
	"github.com/matzehuels/deprank/pkg/report"
)

// DefaultStrategy is the rank assignment strategy used when none is set.
const DefaultStrategy = transform.StrategySweep

// Options contains all configuration for an analysis run.
type Options struct {
	Root       string             // Directory to scan (required)
	Extensions []string           // Manifest extensions; defaults to manifest.DefaultExtension
	Exclude    []string           // Case-insensitive name substrings to drop
	Skip       []string           // Directory globs to prune; defaults to discover.DefaultSkip
	Strategy   transform.Strategy // Rank assignment strategy

	// Runtime options
	Logger *log.Logger

	validated bool
}

// Result contains the outputs of an analysis run.
type Result struct {
	// Manifests lists every discovered manifest before exclusion, sorted.
	Manifests []string

	// Excluded lists the names of projects dropped by the exclusion filter.
	Excluded []string

	// Registry holds the selected projects with ranks assigned.
	Registry *graph.Registry

	// Stats holds aggregate counts for reporting.
	Stats report.Stats

	// Rank describes the rank assignment run.
	Rank transform.Result

	// Duration is the wall time of the run.
	Duration time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Validation failures are coded errors from package errors. The method is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := pkgerrors.ValidateRoot(o.Root); err != nil {
		return err
	}

	if len(o.Extensions) == 0 {
		o.Extensions = []string{manifest.DefaultExtension}
	}
	for _, ext := range o.Extensions {
		if err := pkgerrors.ValidateExtension(ext); err != nil {
			return err
		}
	}
	for _, p := range o.Exclude {
		if err := pkgerrors.ValidatePattern(p); err != nil {
			return err
		}
	}

	if o.Skip == nil {
		o.Skip = discover.DefaultSkip
	}

	s, err := transform.ParseStrategy(string(o.Strategy))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "invalid strategy")
	}
	o.Strategy = s

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// String summarizes the options for debug logging.
func (o Options) String() string {
	return fmt.Sprintf("root=%s ext=%v exclude=%v strategy=%s", o.Root, o.Extensions, o.Exclude, o.Strategy)
}
