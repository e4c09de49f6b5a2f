// Package nodelink renders a project registry as a node-link diagram.
//
// # DOT Output
//
// [ToDOT] converts a registry into Graphviz DOT source with one edge
// statement per project reference, drawn from the referencing project to
// the referenced one:
//
//	dot, err := nodelink.ToDOT(reg, nodelink.Options{Ranked: true})
//
// With Ranked set, every distinct rank becomes a rank=same group, highest
// rank first, so that projects of the same layer line up horizontally.
//
// # Node Identifiers
//
// Project names are written as bare DOT identifiers. [NodeID] replaces
// every character outside [A-Za-z0-9_] with '_'. Two distinct names that
// sanitize to the same identifier would silently merge in the diagram, so
// [ToDOT] fails with *[NodeNameCollisionError] instead.
//
// # Rendering
//
// [RenderSVG] and [RenderPNG] lay out DOT in-process using
// [github.com/goccy/go-graphviz]. PDF output needs the Graphviz dot
// executable; see package render.
package nodelink
