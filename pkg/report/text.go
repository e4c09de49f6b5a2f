package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/matzehuels/deprank/pkg/manifest"
)

// WriteSummary renders s as a two-column table.
func WriteSummary(w io.Writer, s Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Count"})
	t.AppendRows([]table.Row{
		{"Total Projects", s.Discovered},
		{"Selected Projects", s.Selected},
		{"Total ProjectRefs", s.ProjectRefs},
		{"Total PackageRefs", s.PackageRefs},
		{"Unique PackageRefs", s.UniquePackageRefs},
		{"Unique Packages", s.UniquePackages},
		{"Max Rank", s.MaxRank},
	})
	t.Render()
}

// WriteLayers renders one table row per rank layer.
func WriteLayers(w io.Writer, layers []Layer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rank", "Count", "Projects"})
	for _, l := range layers {
		t.AppendRow(table.Row{l.Rank, len(l.Projects), strings.Join(l.Names(), ", ")})
	}
	t.Render()
}

// WriteListing renders every project with its references, grouped by
// rank layer in the given order.
func WriteListing(w io.Writer, layers []Layer) {
	l := list.NewWriter()
	l.SetOutputMirror(w)
	l.SetStyle(list.StyleConnectedLight)

	for _, layer := range layers {
		l.AppendItem("Rank " + strconv.Itoa(layer.Rank))
		l.Indent()
		for _, p := range layer.Projects {
			l.AppendItem(p.Name)
			l.Indent()

			l.AppendItem(fmt.Sprintf("ProjectRefs (%d)", len(p.ProjectRefs)))
			l.Indent()
			for _, ref := range p.ProjectRefs {
				l.AppendItem(ref)
			}
			l.UnIndent()

			l.AppendItem(fmt.Sprintf("PackageRefs (%d)", len(p.PackageRefs)))
			l.Indent()
			for _, ref := range p.PackageRefs {
				l.AppendItem(ref.String())
			}
			l.UnIndent()

			l.UnIndent()
		}
		l.UnIndent()
	}
	l.Render()
}

// WritePackages writes one package reference per line.
func WritePackages(w io.Writer, pkgs []manifest.PackageRef) {
	for _, p := range pkgs {
		fmt.Fprintln(w, p.String())
	}
}
