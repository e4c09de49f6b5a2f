// Package manifest reads project references out of build manifests.
//
// # Overview
//
// A manifest declares two kinds of dependencies:
//
//   - Project references: other projects in the same source tree, which
//     become edges of the dependency graph.
//   - Package references: external, pre-built packages, which are counted
//     and listed but never become graph nodes.
//
// [MSBuildParser] handles MSBuild project files. It collects every
// ProjectReference and PackageReference element in the document and
// reads their Include attribute. Package versions are taken from the
// Version attribute or a nested Version element.
//
// # Project Names
//
// Project identity is derived from file names by [ProjectName]: the
// directory and the final extension are stripped, so both
// "src/Core/Acme.Core.csproj" and `..\Core\Acme.Core.csproj` resolve to
// "Acme.Core". The same function is used for discovered manifests and for
// the Include paths inside them, which keeps reference resolution
// consistent.
//
// # Exclusion
//
// A [Filter] drops projects by case-insensitive substring match. Parsers
// apply it to project references, and the pipeline applies it to
// discovered manifests, so an excluded project never appears as a node nor
// as the target of an edge.
//
//	filter := manifest.NewFilter("Tests", "Benchmarks")
//	refs, err := manifest.Load(path, &manifest.MSBuildParser{}, filter)
package manifest
