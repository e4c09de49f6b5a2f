package errors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"directory", dir, false},
		{"empty", "", true},
		{"missing", filepath.Join(dir, "nope"), true},
		{"file", file, true},
		{"control char", "bad\x01path", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoot(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRoot(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("code = %q, want %q", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidatePattern(t *testing.T) {
	for _, p := range []string{"Test", ".Tests", "legacy"} {
		if err := ValidatePattern(p); err != nil {
			t.Errorf("ValidatePattern(%q) = %v, want nil", p, err)
		}
	}
	for _, p := range []string{"", "   ", "a\tb", "x\x1fy"} {
		if err := ValidatePattern(p); err == nil {
			t.Errorf("ValidatePattern(%q) = nil, want error", p)
		}
	}
}

func TestValidateExtension(t *testing.T) {
	tests := []struct {
		ext     string
		wantErr bool
	}{
		{".csproj", false},
		{".fsproj", false},
		{"", true},
		{"csproj", true},
		{".cs*", true},
		{"./x", true},
		{`.\x`, true},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if err := ValidateExtension(tt.ext); (err != nil) != tt.wantErr {
				t.Errorf("ValidateExtension(%q) error = %v, wantErr %v", tt.ext, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputName(t *testing.T) {
	if err := ValidateOutputName("ProjectRefs.gv"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, name := range []string{"", "out/", `out\`, "a\x00b", "a\nb"} {
		err := ValidateOutputName(name)
		if err == nil {
			t.Errorf("ValidateOutputName(%q) = nil, want error", name)
			continue
		}
		if !strings.HasPrefix(err.Error(), string(ErrCodeInvalidPath)) {
			t.Errorf("error %q should carry %s", err, ErrCodeInvalidPath)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidPath,
		ErrCodeInvalidManifest,
		ErrCodeInvalidConfig,
		ErrCodeInvalidFormat,
		ErrCodeDuplicateProject,
		ErrCodeUnknownProject,
		ErrCodeCycleOrMissingReference,
		ErrCodeNodeNameCollision,
		ErrCodeRendering,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
