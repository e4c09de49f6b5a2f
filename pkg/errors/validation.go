package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidateRoot validates the scan root directory.
//
// Validation rules:
//   - Path cannot be empty
//   - No control characters
//   - Path must exist and be a directory
func ValidateRoot(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "root path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "root path contains invalid characters")
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "cannot access root %s", path)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "root %s is not a directory", path)
	}
	return nil
}

// ValidatePattern validates an exclusion pattern. Patterns are matched as
// case-insensitive substrings of project names, so an empty pattern would
// exclude everything.
func ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return New(ErrCodeInvalidInput, "exclude pattern cannot be empty")
	}
	for _, r := range pattern {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "exclude pattern %q contains control characters", pattern)
		}
	}
	return nil
}

// ValidateExtension validates a manifest file extension such as ".csproj".
func ValidateExtension(ext string) error {
	if ext == "" {
		return New(ErrCodeInvalidInput, "manifest extension cannot be empty")
	}
	if !strings.HasPrefix(ext, ".") {
		return New(ErrCodeInvalidInput, "manifest extension %q must start with '.'", ext)
	}
	if strings.ContainsAny(ext, "/\\*?[") {
		return New(ErrCodeInvalidInput, "manifest extension %q contains invalid characters", ext)
	}
	return nil
}

// ValidateOutputName validates a bare output file name written to the
// working directory.
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "output file name cannot be empty")
	}
	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output file name contains invalid characters")
		}
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, "\\") {
		return New(ErrCodeInvalidPath, "output %s names a directory", name)
	}
	return nil
}
