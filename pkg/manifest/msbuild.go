package manifest

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtension is the manifest extension scanned when none is configured.
const DefaultExtension = ".csproj"

var errNoRoot = errors.New("parse msbuild: document has no root element")

const (
	elemProjectReference = "ProjectReference"
	elemPackageReference = "PackageReference"
	attrInclude          = "Include"
	attrVersion          = "Version"
	attrVersionOverride  = "VersionOverride"
)

// MSBuildParser extracts ProjectReference and PackageReference items from
// MSBuild project files (.csproj, .fsproj, .vbproj, ...).
//
// Items are collected from anywhere in the document, matching on the local
// element name so that both SDK-style and legacy namespaced projects work.
type MSBuildParser struct {
	// Extensions lists the file extensions this parser accepts, including
	// the leading dot. Matching is case-insensitive. Defaults to .csproj.
	Extensions []string
}

// Type returns "msbuild".
func (p *MSBuildParser) Type() string { return "msbuild" }

// Supports reports whether filename has one of the configured extensions.
func (p *MSBuildParser) Supports(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	exts := p.Extensions
	if len(exts) == 0 {
		exts = []string{DefaultExtension}
	}
	return slices.ContainsFunc(exts, func(e string) bool { return strings.ToLower(e) == ext })
}

// Parse reads an MSBuild document from r.
func (p *MSBuildParser) Parse(r io.Reader, filter Filter) (*Refs, error) {
	refs := &Refs{}
	d := xml.NewDecoder(skipBOM(r))
	d.Strict = true

	sawRoot := false
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			if !sawRoot {
				return nil, errNoRoot
			}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse msbuild: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true

		switch se.Name.Local {
		case elemProjectReference:
			include := attr(se, attrInclude)
			if include == "" {
				continue
			}
			name := ProjectName(include)
			if name == "" || filter.Excludes(name) {
				continue
			}
			refs.ProjectRefs = append(refs.ProjectRefs, name)

		case elemPackageReference:
			ref, err := decodePackageReference(d, se)
			if err != nil {
				return nil, fmt.Errorf("parse msbuild: %w", err)
			}
			if ref.Name != "" {
				refs.PackageRefs = append(refs.PackageRefs, ref)
			}
		}
	}

	return refs, nil
}

// decodePackageReference consumes a PackageReference element. The version
// comes from the Version attribute, then VersionOverride, then a nested
// <Version> element.
func decodePackageReference(d *xml.Decoder, se xml.StartElement) (PackageRef, error) {
	var body struct {
		Version string `xml:"Version"`
	}
	if err := d.DecodeElement(&body, &se); err != nil {
		return PackageRef{}, err
	}

	ref := PackageRef{
		Name:    strings.TrimSpace(attr(se, attrInclude)),
		Version: strings.TrimSpace(attr(se, attrVersion)),
	}
	if ref.Version == "" {
		ref.Version = strings.TrimSpace(attr(se, attrVersionOverride))
	}
	if ref.Version == "" {
		ref.Version = strings.TrimSpace(body.Version)
	}
	return ref, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark, which Visual Studio writes
// by default and encoding/xml rejects.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
