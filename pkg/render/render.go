package render

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deprank/pkg/observability"
)

// Format is an output image format.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat converts a format name into a Format. Matching is
// case-insensitive and the empty string selects FormatPDF.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatPDF, nil
	case FormatPDF, FormatSVG, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %q (must be 'pdf', 'svg' or 'png')", s)
}

// OutputPath returns the default output file for a DOT file: the same
// path with its extension replaced by the format.
func OutputPath(dotFile string, f Format) string {
	return strings.TrimSuffix(dotFile, filepath.Ext(dotFile)) + "." + string(f)
}

// Kind selects a Renderer implementation.
type Kind string

const (
	KindExec    Kind = "exec"
	KindBuiltin Kind = "builtin"
)

// ParseKind converts a renderer name into a Kind. The empty string selects
// KindExec.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case "":
		return KindExec, nil
	case KindExec, KindBuiltin:
		return k, nil
	}
	return "", fmt.Errorf("invalid renderer: %q (must be 'exec' or 'builtin')", s)
}

// Renderer converts a DOT file on disk into an image file.
type Renderer interface {
	Render(ctx context.Context, dotFile, outFile string, format Format) error
}

// New returns the Renderer for kind. A nil logger discards output.
func New(kind Kind, logger *log.Logger) Renderer {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if kind == KindBuiltin {
		return &Builtin{Logger: logger}
	}
	return &Exec{Logger: logger}
}

// observe reports the start of a render to the registered hooks and
// returns a function that reports its completion.
func observe(ctx context.Context, kind Kind, format Format) func(*error) {
	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, string(kind), string(format))
	return func(err *error) {
		hooks.OnRenderComplete(ctx, string(kind), string(format), time.Since(start), *err)
	}
}

// RenderError describes a failed render.
type RenderError struct {
	Command  string   // Renderer command, or "builtin"
	Args     []string // Arguments passed to the command
	ExitCode int      // Process exit code, -1 if the process did not run
	Stderr   string   // Captured standard error, trimmed
	Err      error    // Underlying error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	var b strings.Builder
	b.WriteString("render failed: ")
	b.WriteString(e.Command)
	if len(e.Args) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(e.Args, " "))
	}
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " (exit %d)", e.ExitCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Stderr != "" {
		b.WriteString(": ")
		b.WriteString(e.Stderr)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error { return e.Err }
