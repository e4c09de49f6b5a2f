package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deprank/pkg/discover"
	pkgerrors "github.com/matzehuels/deprank/pkg/errors"
	"github.com/matzehuels/deprank/pkg/graph"
	"github.com/matzehuels/deprank/pkg/graph/transform"
	"github.com/matzehuels/deprank/pkg/manifest"
	"github.com/matzehuels/deprank/pkg/observability"
	"github.com/matzehuels/deprank/pkg/report"
)

// Runner executes analysis runs.
//
// The Runner holds no run state; a single Runner may be reused for
// several runs with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Analyze discovers manifests under opts.Root, builds the project registry
// and assigns ranks.
//
// Errors are returned unchanged from the step that failed, so callers can
// match graph.ErrDuplicateProject or *transform.CycleError with errors.Is
// and errors.As. Unreadable or malformed manifests yield a coded
// INVALID_MANIFEST error.
func (r *Runner) Analyze(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	start := time.Now()

	logger.Debug("analyzing", "options", opts.String())

	parser := &manifest.MSBuildParser{Extensions: opts.Extensions}
	paths, err := discover.Find(ctx, opts.Root, discover.Options{
		Match: parser.Supports,
		Skip:  opts.Skip,
		OnSkip: func(rel string) {
			logger.Debug("skipping directory", "dir", rel)
		},
	})
	if err != nil {
		return nil, err
	}
	observability.Pipeline().OnDiscoverComplete(ctx, opts.Root, len(paths), time.Since(start))
	logger.Info("discovered manifests", "count", len(paths), "root", opts.Root)

	result := &Result{Manifests: paths}

	reg, excluded, err := r.load(ctx, paths, parser, manifest.NewFilter(opts.Exclude...), logger)
	if err != nil {
		return nil, err
	}
	result.Registry = reg
	result.Excluded = excluded
	logger.Info("loaded projects", "selected", reg.Len(), "excluded", len(excluded))

	rankStart := time.Now()
	rank, err := transform.Assign(reg, opts.Strategy)
	observability.Pipeline().OnRankComplete(ctx, string(opts.Strategy), reg.Len(), rank.Sweeps, time.Since(rankStart), err)
	if err != nil {
		return nil, err
	}
	result.Rank = rank
	logger.Info("ranked projects",
		"projects", reg.Len(),
		"max_rank", rank.MaxRank,
		"sweeps", rank.Sweeps,
		"strategy", opts.Strategy)

	result.Stats = report.Summarize(len(paths), reg)
	result.Duration = time.Since(start)
	return result, nil
}

// load parses every non-excluded manifest and registers it.
func (r *Runner) load(ctx context.Context, paths []string, parser manifest.Parser, filter manifest.Filter, logger *log.Logger) (*graph.Registry, []string, error) {
	reg := graph.New()
	var excluded []string

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		name := manifest.ProjectName(path)
		if filter.Excludes(name) {
			logger.Debug("excluded project", "project", name, "path", path)
			excluded = append(excluded, name)
			continue
		}

		refs, err := manifest.Load(path, parser, filter)
		if err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidManifest, err, "cannot load manifest")
		}

		p, err := reg.Register(name, refs.ProjectRefs, refs.PackageRefs)
		if err != nil {
			return nil, nil, fmt.Errorf("register %s: %w", path, err)
		}
		p.Path = path

		logger.Debug("loaded project",
			"project", name,
			"project_refs", len(refs.ProjectRefs),
			"package_refs", len(refs.PackageRefs))
	}
	return reg, excluded, nil
}

// applyLogger uses the runner's logger if opts does not carry one.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
