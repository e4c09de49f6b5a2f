package discover

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("<Project />"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func isCsproj(name string) bool { return strings.HasSuffix(name, ".csproj") }

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/App/App.csproj",
		"src/Lib/nested/Lib.csproj",
		"src/Lib/bin/Debug/Copy.csproj",
		"src/Lib/obj/Lib.csproj",
		".vs/App/v17/Backup.csproj",
		"tools/Tool.fsproj",
		"README.md",
		"Root.csproj",
	)

	var pruned []string
	got, err := Find(context.Background(), root, Options{
		Match:  isCsproj,
		Skip:   DefaultSkip,
		OnSkip: func(rel string) { pruned = append(pruned, rel) },
	})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	want := []string{
		filepath.Join(root, "Root.csproj"),
		filepath.Join(root, "src", "App", "App.csproj"),
		filepath.Join(root, "src", "Lib", "nested", "Lib.csproj"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("Find() = %v, want %v", got, want)
	}

	slices.Sort(pruned)
	if !slices.Equal(pruned, []string{".vs", "src/Lib/bin", "src/Lib/obj"}) {
		t.Errorf("pruned = %v, want [.vs src/Lib/bin src/Lib/obj]", pruned)
	}
}

func TestDefaultSkip(t *testing.T) {
	want := []string{"**/bin", "**/obj", "**/node_modules", "**/.git", "**/.vs"}
	if !slices.Equal(DefaultSkip, want) {
		t.Errorf("DefaultSkip = %v, want %v", DefaultSkip, want)
	}
}

func TestFindNoSkip(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/A.csproj", "a/bin/B.csproj")

	got, err := Find(context.Background(), root, Options{Match: isCsproj})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Find() = %v, want 2 manifests", got)
	}
}

func TestFindDirectoryPatternPrefix(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "legacy/old/Old.csproj", "modern/New.csproj")

	got, err := Find(context.Background(), root, Options{Match: isCsproj, Skip: []string{"legacy"}})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if !slices.Equal(got, []string{filepath.Join(root, "modern", "New.csproj")}) {
		t.Errorf("Find() = %v", got)
	}
}

func TestFindErrors(t *testing.T) {
	root := t.TempDir()

	if _, err := Find(context.Background(), root, Options{}); err == nil {
		t.Error("Find() without Match should fail")
	}
	if _, err := Find(context.Background(), root, Options{Match: isCsproj, Skip: []string{"[unclosed"}}); err == nil {
		t.Error("Find() with invalid pattern should fail")
	}
	if _, err := Find(context.Background(), filepath.Join(root, "missing"), Options{Match: isCsproj}); err == nil {
		t.Error("Find() on missing root should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Find(ctx, root, Options{Match: isCsproj}); err == nil {
		t.Error("Find() with cancelled context should fail")
	}
}
