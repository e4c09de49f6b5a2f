package nodelink

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/deprank/pkg/graph"
	"github.com/matzehuels/deprank/pkg/report"
)

// Options configures DOT generation.
type Options struct {
	// Ranked adds one rank=same group per distinct rank, highest first,
	// so projects of equal rank are laid out side by side.
	Ranked bool

	// Styled adds layout attributes and declares every project as a node,
	// labelled with its original name when sanitizing changed it.
	Styled bool
}

// NodeNameCollisionError is returned when two distinct project names map
// to the same DOT node identifier.
type NodeNameCollisionError struct {
	ID    string   // The shared identifier
	Names []string // The colliding project names, sorted
}

// Error implements the error interface.
func (e *NodeNameCollisionError) Error() string {
	return fmt.Sprintf("node id %q is shared by projects %s", e.ID, strings.Join(e.Names, ", "))
}

// NodeID converts a project name into a bare DOT identifier. Every
// character outside [A-Za-z0-9_] becomes '_' and a leading digit is
// prefixed with '_'. Distinct names can collide ("Acme.Core" and
// "Acme_Core"); use [NodeIDs] to detect that.
func NodeID(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		if i == 0 && r >= '0' && r <= '9' {
			b.WriteByte('_')
		}
		if isIDChar(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

func isIDChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// NodeIDs maps each distinct name to its DOT identifier and verifies that
// no two names share one. Returns *NodeNameCollisionError for the first
// colliding identifier in sorted order.
func NodeIDs(names []string) (map[string]string, error) {
	ids := make(map[string]string, len(names))
	owners := make(map[string][]string, len(names))
	for _, name := range names {
		if _, ok := ids[name]; ok {
			continue
		}
		id := NodeID(name)
		ids[name] = id
		owners[id] = append(owners[id], name)
	}

	var collisions []string
	for id, names := range owners {
		if len(names) > 1 {
			collisions = append(collisions, id)
		}
	}
	if len(collisions) > 0 {
		slices.Sort(collisions)
		id := collisions[0]
		return nil, &NodeNameCollisionError{ID: id, Names: slices.Sorted(slices.Values(owners[id]))}
	}
	return ids, nil
}

// ToDOT converts the registry to Graphviz DOT. It emits one edge statement
// per project reference, ordered by referencing project name and then
// declaration order, so duplicate references produce duplicate edges.
//
// With Ranked set, projects are grouped by rank from highest to lowest;
// unranked projects are left out of the groups.
func ToDOT(r *graph.Registry, opts Options) (string, error) {
	refs := r.References()

	names := r.Names()
	for _, ref := range refs {
		names = append(names, ref.To)
	}
	ids, err := NodeIDs(names)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")

	if opts.Styled {
		buf.WriteString("    rankdir=TB;\n")
		buf.WriteString("    node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
		buf.WriteString("    ranksep=0.5;\n")
		buf.WriteString("    nodesep=0.3;\n")
		buf.WriteString("\n")
		for _, name := range r.Names() {
			if id := ids[name]; id != name {
				fmt.Fprintf(&buf, "    %s [label=%q];\n", id, name)
			} else {
				fmt.Fprintf(&buf, "    %s;\n", id)
			}
		}
		buf.WriteString("\n")
	}

	for _, ref := range refs {
		fmt.Fprintf(&buf, "    %s -> %s;\n", ids[ref.From], ids[ref.To])
	}

	if opts.Ranked {
		layers := report.Layers(r, report.OrderDesc)
		if len(layers) > 0 {
			buf.WriteString("\n")
		}
		for _, l := range layers {
			buf.WriteString("    { rank=same;")
			for _, name := range l.Names() {
				fmt.Fprintf(&buf, " %s;", ids[name])
			}
			buf.WriteString(" }\n")
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}
