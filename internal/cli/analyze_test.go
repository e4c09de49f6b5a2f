package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/matzehuels/deprank/pkg/errors"
)

// writeProject writes root/name/name.csproj with the given project refs.
func writeProject(t *testing.T, root, name string, refs []string, pkgs ...string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("<Project Sdk=\"Microsoft.NET.Sdk\">\n  <ItemGroup>\n")
	for _, ref := range refs {
		fmt.Fprintf(&b, "    <ProjectReference Include=\"..\\%s\\%s.csproj\" />\n", ref, ref)
	}
	for _, pkg := range pkgs {
		fmt.Fprintf(&b, "    <PackageReference Include=%q Version=\"1.0.0\" />\n", pkg)
	}
	b.WriteString("  </ItemGroup>\n</Project>\n")

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".csproj"), []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}

// scenario writes {A: [], B: [A], C: [A, B]} plus two test projects that
// "-x tests" removes, including the reference C holds to one of them.
func scenario(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeProject(t, root, "A", nil, "Serilog")
	writeProject(t, root, "B", []string{"A"}, "Serilog", "Polly")
	writeProject(t, root, "C", []string{"A", "B", "Shared.Tests"})
	writeProject(t, root, "C.Tests", []string{"C"})
	writeProject(t, root, "Shared.Tests", nil)
	return root
}

func TestAnalyze_Report(t *testing.T) {
	out, err := run(t, "analyze", "-p", scenario(t), "-x", "tests")
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	for _, want := range []string{"Summary", "Total Projects", "Selected Projects", "Ranks", "excluded 2 project"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyze_ListingAndPackages(t *testing.T) {
	out, err := run(t, "analyze", "-p", scenario(t), "-x", "tests", "--list", "--order", "desc", "--packages")
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	if strings.Index(out, "Rank 2") > strings.Index(out, "Rank 0") {
		t.Errorf("descending listing should start at rank 2:\n%s", out)
	}
	if !strings.Contains(out, "Polly/1.0.0") || !strings.Contains(out, "ProjectRefs (2)") {
		t.Errorf("listing incomplete:\n%s", out)
	}
	if strings.Contains(out, "C.Tests") {
		t.Errorf("excluded project leaked into listing:\n%s", out)
	}
}

func TestAnalyze_DOTWithoutRender(t *testing.T) {
	dotFile := filepath.Join(t.TempDir(), "refs.gv")
	out, err := run(t, "analyze", "-p", scenario(t), "-x", "tests", "--dot", "--dot-file", dotFile, "--no-render")
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	got, err := os.ReadFile(dotFile)
	if err != nil {
		t.Fatal(err)
	}
	want := `digraph G {
    B -> A;
    C -> A;
    C -> B;

    { rank=same; C; }
    { rank=same; B; }
    { rank=same; A; }
}
`
	if string(got) != want {
		t.Errorf("DOT =\n%s\nwant\n%s", got, want)
	}
	if !strings.Contains(out, "deprank render "+dotFile) {
		t.Errorf("output should suggest the render command:\n%s", out)
	}
}

func TestAnalyze_RenderFailureKeepsReport(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	dir := t.TempDir()
	dotFile := filepath.Join(dir, "refs.gv")

	out, err := run(t, "analyze", "-p", scenario(t), "-x", "tests", "--dot", "--dot-file", dotFile)
	wantCode(t, err, pkgerrors.ErrCodeRendering)

	if !strings.Contains(out, "Total Projects") {
		t.Errorf("report should be printed before rendering:\n%s", out)
	}
	if _, err := os.Stat(dotFile); err != nil {
		t.Errorf("DOT file should be written before rendering: %v", err)
	}
}

func TestAnalyze_BuiltinRenderer(t *testing.T) {
	dir := t.TempDir()
	dotFile := filepath.Join(dir, "refs.gv")

	out, err := run(t, "analyze", "-p", scenario(t), "-x", "tests",
		"--dot", "--dot-file", dotFile, "--renderer", "builtin", "--format", "svg")
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "refs.svg"))
	if err != nil {
		t.Fatalf("image not written: %v\n%s", err, out)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("output is not SVG: %.80s", svg)
	}
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, root string)
		args  []string
		code  pkgerrors.Code
	}{
		{
			name: "missing path",
			code: pkgerrors.ErrCodeInvalidInput,
		},
		{
			name: "root is a file",
			setup: func(t *testing.T, root string) {
				if err := os.WriteFile(filepath.Join(root, "file"), nil, 0o644); err != nil {
					t.Fatal(err)
				}
			},
			args: []string{"-p", "{root}/file"},
			code: pkgerrors.ErrCodeInvalidPath,
		},
		{
			name: "cycle",
			setup: func(t *testing.T, root string) {
				writeProject(t, root, "A", []string{"B"})
				writeProject(t, root, "B", []string{"A"})
			},
			args: []string{"-p", "{root}"},
			code: pkgerrors.ErrCodeCycleOrMissingReference,
		},
		{
			name: "missing reference",
			setup: func(t *testing.T, root string) {
				writeProject(t, root, "A", []string{"Gone"})
			},
			args: []string{"-p", "{root}"},
			code: pkgerrors.ErrCodeCycleOrMissingReference,
		},
		{
			name: "duplicate project",
			setup: func(t *testing.T, root string) {
				writeProject(t, filepath.Join(root, "one"), "A", nil)
				writeProject(t, filepath.Join(root, "two"), "A", nil)
			},
			args: []string{"-p", "{root}"},
			code: pkgerrors.ErrCodeDuplicateProject,
		},
		{
			name: "node name collision",
			setup: func(t *testing.T, root string) {
				writeProject(t, root, "Acme.Core", nil)
				writeProject(t, root, "Acme_Core", nil)
			},
			args: []string{"-p", "{root}", "--dot", "--no-render", "--dot-file", "{root}/g.gv"},
			code: pkgerrors.ErrCodeNodeNameCollision,
		},
		{
			name: "bad format",
			args: []string{"-p", "{root}", "--format", "gif"},
			code: pkgerrors.ErrCodeInvalidFormat,
		},
		{
			name: "bad order",
			args: []string{"-p", "{root}", "--order", "up"},
			code: pkgerrors.ErrCodeInvalidInput,
		},
		{
			name: "bad strategy",
			args: []string{"-p", "{root}", "--strategy", "random"},
			code: pkgerrors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, root)
			}
			args := []string{"analyze"}
			for _, a := range tt.args {
				args = append(args, strings.ReplaceAll(a, "{root}", root))
			}
			_, err := run(t, args...)
			wantCode(t, err, tt.code)
		})
	}
}

func TestAnalyze_Config(t *testing.T) {
	root := scenario(t)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "deprank.toml")
	content := fmt.Sprintf("path = %q\nexclude = [\"tests\"]\n\n[report]\nlist = true\n", root)
	if err := os.WriteFile(cfg, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "analyze", "--config", cfg)
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	if !strings.Contains(out, "Projects by rank") || strings.Contains(out, "C.Tests") {
		t.Errorf("config not applied:\n%s", out)
	}

	// An explicit flag wins over the file.
	out, err = run(t, "analyze", "--config", cfg, "-x", "nothing-matches")
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	if !strings.Contains(out, "C.Tests") {
		t.Errorf("--exclude flag should override config:\n%s", out)
	}
}

func TestAnalyze_ConfigErrors(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "deprank.toml")
	if err := os.WriteFile(cfg, []byte("pth = \"src\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "analyze", "--config", cfg)
	wantCode(t, err, pkgerrors.ErrCodeInvalidConfig)
}

func TestRender_JSON(t *testing.T) {
	dir := t.TempDir()
	jsonFile := filepath.Join(dir, "graph.json")

	if _, err := run(t, "analyze", "-p", scenario(t), "-x", "tests", "--json", jsonFile); err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	out, err := run(t, "render", jsonFile, "--renderer", "builtin", "--format", "svg")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "graph.svg")); err != nil {
		t.Errorf("image not written: %v\n%s", err, out)
	}
}

func TestRender_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "render", filepath.Join(dir, "none.gv"))
	wantCode(t, err, pkgerrors.ErrCodeInvalidPath)

	_, err = run(t, "render", filepath.Join(dir, "g.pdf"), "--format", "pdf")
	wantCode(t, err, pkgerrors.ErrCodeInvalidPath)

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"projects":[{"name":"A"},{"name":"A"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = run(t, "render", bad, "--renderer", "builtin", "--format", "svg")
	wantCode(t, err, pkgerrors.ErrCodeInvalidInput)
}
