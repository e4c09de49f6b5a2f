package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/deprank/pkg/discover"
	pkgerrors "github.com/matzehuels/deprank/pkg/errors"
	"github.com/matzehuels/deprank/pkg/graph"
	"github.com/matzehuels/deprank/pkg/graph/transform"
	"github.com/matzehuels/deprank/pkg/io"
	"github.com/matzehuels/deprank/pkg/manifest"
	"github.com/matzehuels/deprank/pkg/pipeline"
	"github.com/matzehuels/deprank/pkg/render"
	"github.com/matzehuels/deprank/pkg/render/nodelink"
	"github.com/matzehuels/deprank/pkg/report"
)

// defaultDOTFile is written to the working directory when --dot is set.
const defaultDOTFile = "ProjectRefs.gv"

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	config     string   // TOML config file; deprank.toml in the working directory if empty
	path       string   // root directory to scan
	exclude    []string // case-insensitive name substrings to drop
	extensions []string // manifest file extensions
	skip       []string // doublestar globs of directories to prune
	strategy   string   // rank assignment: sweep or worklist

	list     bool   // print every project with its references
	packages bool   // print the unique package references
	order    string // rank order for listings: asc or desc

	dot      bool   // write a DOT file and render it
	dotFile  string // DOT output file
	ranked   bool   // group DOT nodes into rank=same clusters
	styled   bool   // add layout attributes and node labels to the DOT
	noRender bool   // write the DOT file only
	renderer string // exec or builtin
	format   string // image format: pdf, svg or png
	output   string // image file; derived from dotFile if empty
	json     string // JSON export file
}

func defaultAnalyzeOpts() analyzeOpts {
	return analyzeOpts{
		extensions: []string{manifest.DefaultExtension},
		skip:       slices.Clone(discover.DefaultSkip),
		strategy:   string(pipeline.DefaultStrategy),
		order:      string(report.OrderAsc),
		dotFile:    defaultDOTFile,
		ranked:     true,
		renderer:   string(render.KindExec),
		format:     string(render.FormatPDF),
	}
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := defaultAnalyzeOpts()

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rank the projects under a directory and report on them",
		Long: `Scan a directory tree for project manifests, build the project reference
graph and assign every project a rank. Projects without project references
have rank 0; every other project ranks one above its highest-ranked reference.

A summary and the rank table are always printed. With --dot, the graph is
written as Graphviz DOT and rendered to an image.

Settings can also be read from a TOML file (deprank.toml in the working
directory, or --config). Flags given on the command line take precedence.`,
		Example: `  deprank analyze -p src
  deprank analyze -p src -x tests -x samples --list --order desc
  deprank analyze -p src --dot --format svg --renderer builtin
  deprank analyze -p src --dot --no-render --json graph.json`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipeline.FindConfig(opts.config, ".")
			if err != nil {
				return err
			}
			opts.applyConfig(cmd.Flags(), cfg)
			return c.runAnalyze(cmd.Context(), &opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.config, "config", "", "config file (default ./"+pipeline.ConfigFile+" if present)")
	f.StringVarP(&opts.path, "path", "p", "", "root directory to scan (required)")
	f.StringArrayVarP(&opts.exclude, "exclude", "x", nil, "exclude projects whose name contains this text (repeatable)")
	f.StringSliceVar(&opts.extensions, "ext", opts.extensions, "manifest file extensions")
	f.StringSliceVar(&opts.skip, "skip", opts.skip, "directory globs to skip")
	f.StringVar(&opts.strategy, "strategy", opts.strategy, "rank assignment: sweep, worklist")
	f.BoolVarP(&opts.list, "list", "l", false, "list every project with its references")
	f.BoolVar(&opts.packages, "packages", false, "list unique package references")
	f.StringVar(&opts.order, "order", opts.order, "rank order for listings: asc, desc")
	f.BoolVarP(&opts.dot, "dot", "d", false, "write the graph as DOT and render it")
	f.StringVar(&opts.dotFile, "dot-file", opts.dotFile, "DOT output file")
	f.BoolVar(&opts.ranked, "ranked", opts.ranked, "group projects of equal rank in the DOT output")
	f.BoolVar(&opts.styled, "styled", false, "add layout attributes and labels to the DOT output")
	f.BoolVar(&opts.noRender, "no-render", false, "write the DOT file without rendering it")
	f.StringVar(&opts.renderer, "renderer", opts.renderer, "renderer: exec (Graphviz dot), builtin")
	f.StringVar(&opts.format, "format", opts.format, "image format: pdf, svg, png")
	f.StringVarP(&opts.output, "output", "o", "", "image file (default: DOT file name with the format extension)")
	f.StringVar(&opts.json, "json", "", "also export the ranked graph as JSON to this file")

	_ = cmd.MarkFlagDirname("path")
	_ = cmd.MarkFlagFilename("config", "toml")

	return cmd
}

// fromConfig copies val into dst when the config file set it and the flag
// was not given on the command line.
func fromConfig[T any](flags *pflag.FlagSet, name string, dst *T, val T, set bool) {
	if set && !flags.Changed(name) {
		*dst = val
	}
}

// applyConfig fills options the user did not pass as flags from cfg.
func (o *analyzeOpts) applyConfig(flags *pflag.FlagSet, cfg *pipeline.Config) {
	fromConfig(flags, "path", &o.path, cfg.Path, cfg.Path != "")
	fromConfig(flags, "exclude", &o.exclude, cfg.Exclude, len(cfg.Exclude) > 0)
	fromConfig(flags, "ext", &o.extensions, cfg.Extensions, len(cfg.Extensions) > 0)
	fromConfig(flags, "skip", &o.skip, cfg.Skip, cfg.Skip != nil)
	fromConfig(flags, "strategy", &o.strategy, cfg.Strategy, cfg.Strategy != "")

	fromConfig(flags, "list", &o.list, true, cfg.Report.List)
	fromConfig(flags, "packages", &o.packages, true, cfg.Report.Packages)
	fromConfig(flags, "order", &o.order, cfg.Report.Order, cfg.Report.Order != "")

	out := cfg.Output
	fromConfig(flags, "dot", &o.dot, true, out.DOT)
	fromConfig(flags, "dot-file", &o.dotFile, out.DOTFile, out.DOTFile != "")
	if out.Ranked != nil {
		fromConfig(flags, "ranked", &o.ranked, *out.Ranked, true)
	}
	fromConfig(flags, "styled", &o.styled, true, out.Styled)
	fromConfig(flags, "no-render", &o.noRender, true, out.NoRender)
	fromConfig(flags, "renderer", &o.renderer, out.Renderer, out.Renderer != "")
	fromConfig(flags, "format", &o.format, out.Format, out.Format != "")
	fromConfig(flags, "output", &o.output, out.File, out.File != "")
	fromConfig(flags, "json", &o.json, out.JSON, out.JSON != "")
}

// runAnalyze executes the analysis and prints the report. Rendering runs
// last so a renderer failure never hides the report.
func (c *CLI) runAnalyze(ctx context.Context, o *analyzeOpts) error {
	logger := loggerFromContext(ctx)

	if o.path == "" {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "--path is required (or set path in %s)", pipeline.ConfigFile)
	}
	order, err := report.ParseOrder(o.order)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "invalid --order")
	}
	format, err := render.ParseFormat(o.format)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidFormat, err, "invalid --format")
	}
	kind, err := render.ParseKind(o.renderer)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "invalid --renderer")
	}
	if o.dot {
		if err := pkgerrors.ValidateOutputName(o.dotFile); err != nil {
			return err
		}
	}

	prog := newProgress(logger)
	res, err := pipeline.NewRunner(logger).Analyze(ctx, pipeline.Options{
		Root:       o.path,
		Extensions: o.extensions,
		Exclude:    o.exclude,
		Skip:       o.skip,
		Strategy:   transform.Strategy(o.strategy),
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ranked %d projects", res.Registry.Len()))

	c.printReport(res, order, o)

	if o.json != "" {
		if err := io.ExportJSON(res.Registry, o.json); err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidPath, err, "cannot export JSON")
		}
		printFile(c.Out, o.json)
	}

	if !o.dot {
		return nil
	}
	return c.writeGraph(ctx, res.Registry, o, format, kind)
}

// printReport writes the summary, the rank table or listing, and the
// package list.
func (c *CLI) printReport(res *pipeline.Result, order report.Order, o *analyzeOpts) {
	out := c.Out

	if res.Stats.Discovered == 0 {
		printWarning(out, "no %v manifests found under %s", o.extensions, o.path)
	}
	if n := len(res.Excluded); n > 0 {
		printInfo(out, "excluded %d project(s) matching %v", n, o.exclude)
	}

	printTitle(out, "Summary")
	report.WriteSummary(out, res.Stats)

	layers := report.Layers(res.Registry, order)
	if len(layers) > 0 {
		if o.list {
			printTitle(out, "Projects by rank")
			report.WriteListing(out, layers)
		} else {
			printTitle(out, "Ranks")
			report.WriteLayers(out, layers)
		}
	}

	if o.packages {
		printTitle(out, "Packages")
		report.WritePackages(out, report.UniquePackages(res.Registry))
	}
}

// writeGraph writes the DOT file and, unless disabled, renders it.
func (c *CLI) writeGraph(ctx context.Context, reg *graph.Registry, o *analyzeOpts, format render.Format, kind render.Kind) error {
	dot, err := nodelink.ToDOT(reg, nodelink.Options{Ranked: o.ranked, Styled: o.styled})
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.dotFile, []byte(dot), 0o644); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidPath, err, "cannot write DOT file")
	}
	printFile(c.Out, o.dotFile)

	if o.noRender {
		printNextStep(c.Out, "Render with", appName+" render "+o.dotFile)
		return nil
	}

	output := o.output
	if output == "" {
		output = render.OutputPath(o.dotFile, format)
	}
	return c.renderFile(ctx, o.dotFile, output, format, kind)
}

// renderFile renders a DOT file with a spinner on the status stream.
func (c *CLI) renderFile(ctx context.Context, in, out string, format render.Format, kind render.Kind) error {
	r := render.New(kind, loggerFromContext(ctx))

	spin := newSpinner(ctx, c.Err, "Rendering "+out)
	spin.Start()
	if err := r.Render(ctx, in, out, format); err != nil {
		spin.StopWithError("Rendering failed")
		return err
	}
	spin.Stop()

	printSuccess(c.Out, "Rendered %s with %s", format, kind)
	printFile(c.Out, out)
	return nil
}
