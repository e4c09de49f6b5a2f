// Package render turns DOT files into images.
//
// Two [Renderer] implementations are available:
//
//   - [Exec] runs the Graphviz dot executable (dot -T<format> in -o out).
//     It supports every format dot does, including PDF.
//   - [Builtin] lays the graph out in-process with Graphviz compiled to
//     WebAssembly (see package nodelink). It needs no external tools but
//     only produces SVG and PNG.
//
// A failed render is reported as *[RenderError], carrying the command
// line, exit code and captured stderr of the renderer:
//
//	r := render.New(render.KindExec, logger)
//	if err := r.Render(ctx, "ProjectRefs.gv", "ProjectRefs.pdf", render.FormatPDF); err != nil {
//	    var re *render.RenderError
//	    if errors.As(err, &re) {
//	        fmt.Println(re.Stderr)
//	    }
//	}
package render
