package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgerrors "github.com/matzehuels/deprank/pkg/errors"
	"github.com/matzehuels/deprank/pkg/io"
	"github.com/matzehuels/deprank/pkg/render"
	"github.com/matzehuels/deprank/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	renderer string // exec or builtin
	format   string // image format: pdf, svg or png
	output   string // image file; derived from the input if empty
	ranked   bool   // rank clusters when converting JSON input
	styled   bool   // layout attributes when converting JSON input
}

// renderCommand creates the render command, which renders a DOT file or a
// JSON export from analyze --json.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		renderer: string(render.KindExec),
		format:   string(render.FormatPDF),
		ranked:   true,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a DOT file or JSON graph to an image",
		Long: `Render an existing graph to an image.

The input is either a Graphviz DOT file (as written by analyze --dot) or a
JSON graph (as written by analyze --json). JSON input is converted to DOT
first, keeping the ranks stored in the file.`,
		Example: `  deprank render ProjectRefs.gv
  deprank render graph.json --format svg --renderer builtin -o graph.svg`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.renderer, "renderer", opts.renderer, "renderer: exec (Graphviz dot), builtin")
	f.StringVar(&opts.format, "format", opts.format, "image format: pdf, svg, png")
	f.StringVarP(&opts.output, "output", "o", "", "image file (default: input name with the format extension)")
	f.BoolVar(&opts.ranked, "ranked", opts.ranked, "group projects of equal rank (JSON input)")
	f.BoolVar(&opts.styled, "styled", false, "add layout attributes and labels (JSON input)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, o *renderOpts) error {
	format, err := render.ParseFormat(o.format)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidFormat, err, "invalid --format")
	}
	kind, err := render.ParseKind(o.renderer)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "invalid --renderer")
	}

	output := o.output
	if output == "" {
		output = render.OutputPath(input, format)
	}
	if output == input {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidPath, "output %s would overwrite the input", output)
	}

	dotFile := input
	if strings.EqualFold(filepath.Ext(input), ".json") {
		dotFile, err = c.jsonToDOT(input, nodelink.Options{Ranked: o.ranked, Styled: o.styled})
		if err != nil {
			return err
		}
		defer os.Remove(dotFile)
	} else if _, err := os.Stat(input); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidPath, err, "cannot read input")
	}

	printKeyValue(c.Out, "input", input)
	printKeyValue(c.Out, "renderer", string(kind))
	return c.renderFile(ctx, dotFile, output, format, kind)
}

// jsonToDOT converts a JSON graph into a temporary DOT file and returns
// its path. The caller removes the file.
func (c *CLI) jsonToDOT(path string, opts nodelink.Options) (string, error) {
	reg, err := io.ImportJSON(path)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "cannot import graph")
	}
	dot, err := nodelink.ToDOT(reg, opts)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", appName+"-*.gv")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(dot); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
