package render

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deprank/pkg/render/nodelink"
)

// Builtin renders in-process with go-graphviz. Only FormatSVG and
// FormatPNG are supported.
type Builtin struct {
	Logger *log.Logger
}

// Render reads dotFile, lays it out and writes the image to outFile.
func (b *Builtin) Render(ctx context.Context, dotFile, outFile string, format Format) (err error) {
	defer observe(ctx, KindBuiltin, format)(&err)

	fail := func(err error) error {
		return &RenderError{Command: string(KindBuiltin), Args: []string{dotFile}, ExitCode: -1, Err: err}
	}

	src, err := os.ReadFile(dotFile)
	if err != nil {
		return fail(err)
	}

	var out []byte
	switch format {
	case FormatSVG:
		out, err = nodelink.RenderSVG(ctx, string(src))
	case FormatPNG:
		out, err = nodelink.RenderPNG(ctx, string(src))
	default:
		return fail(fmt.Errorf("format %q requires the dot executable (use --renderer exec)", format))
	}
	if err != nil {
		return fail(err)
	}

	if err := os.WriteFile(outFile, out, 0o644); err != nil {
		return fail(err)
	}
	if b.Logger != nil {
		b.Logger.Debug("rendered", "file", outFile, "bytes", len(out))
	}
	return nil
}
