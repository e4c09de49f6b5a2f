// Package pkg provides the core libraries for deprank project ranking.
//
// # Overview
//
// deprank reads the MSBuild project files of a .NET source tree, builds the
// graph of project references and assigns every project a rank: 0 for
// projects without project references, otherwise one more than the highest
// rank among the projects it references. Sorting by ascending rank yields a
// valid build order.
//
// # Architecture
//
// The data flow through deprank:
//
//	Source tree
//	     ↓
//	[discover] (find manifest files)
//	     ↓
//	[manifest] (parse project and package references)
//	     ↓
//	[graph] (project registry) + [graph/transform] (rank assignment)
//	     ↓
//	[report] / [render/nodelink] / [io]
//	     ↓
//	Console report, DOT, PDF/SVG/PNG, JSON
//
// [pipeline] runs discovery, loading and ranking in one call and is what the
// CLI uses.
//
// # Quick Start
//
//	res, err := pipeline.NewRunner(nil).Analyze(ctx, pipeline.Options{
//	    Root:    "src",
//	    Exclude: []string{"tests"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, layer := range report.Layers(res.Registry, report.OrderAsc) {
//	    fmt.Println(layer.Rank, layer.Names())
//	}
//
// # Main Packages
//
// [discover] - Recursive manifest discovery with doublestar skip globs.
//
// [manifest] - MSBuild project file parsing and the name exclusion filter.
//
// [graph] - The project registry: registration, lookup and rank storage.
//
// [graph/transform] - Rank assignment (sweep and worklist strategies) and
// cycle detection.
//
// [report] - Summary statistics, rank layers and console tables.
//
// [render] - Image rendering through the Graphviz dot command or the
// in-process WebAssembly build.
//
// [render/nodelink] - DOT generation with optional rank clusters.
//
// [io] - JSON export and import of a ranked registry.
//
// [errors] - Coded errors shown at the CLI boundary.
//
// [observability] - Hooks for timing discovery, ranking and rendering.
//
// [discover]: https://pkg.go.dev/github.com/matzehuels/deprank/pkg/discover
// [manifest]: https://pkg.go.dev/github.com/matzehuels/deprank/pkg/manifest
// [graph]: https://pkg.go.dev/github.com/matzehuels/deprank/pkg/graph
// [graph/transform]: https://pkg.go.dev/github.com/matzehuels/deprank/pkg/graph/transform
// [report]: https://pkg.go.dev/github.com/matzehuels/deprank/pkg/report
// [render]: https://pkg.go.dev/github.com/matzehuels/deprank/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/deprank/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/deprank/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/deprank/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/deprank/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/deprank/pkg/observability
package pkg
