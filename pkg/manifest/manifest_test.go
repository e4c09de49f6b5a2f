package manifest

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestProjectName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"Acme.Core.csproj", "Acme.Core"},
		{"src/Core/Acme.Core.csproj", "Acme.Core"},
		{`..\Core\Acme.Core.csproj`, "Acme.Core"},
		{`C:\repo\src\App\App.fsproj`, "App"},
		{"/abs/path/Tool", "Tool"},
		{"mixed/dir\\Lib.vbproj", "Lib"},
		{"NoExt", "NoExt"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ProjectName(tt.path); got != tt.want {
				t.Errorf("ProjectName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	f := NewFilter("tests", " Legacy ", "")

	tests := []struct {
		name string
		want bool
	}{
		{"Acme.Core", false},
		{"Acme.Core.Tests", true},
		{"Acme.UnitTESTS.Helpers", true},
		{"LegacyBridge", true},
		{"Acme.Leg", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Excludes(tt.name); got != tt.want {
				t.Errorf("Excludes(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if got := f.Patterns(); !slices.Equal(got, []string{"tests", "legacy"}) {
		t.Errorf("Patterns() = %v, want [tests legacy]", got)
	}
}

func TestFilterEmpty(t *testing.T) {
	var f Filter
	if f.Excludes("anything") {
		t.Error("zero Filter should exclude nothing")
	}
}

func TestPackageRefString(t *testing.T) {
	if got := (PackageRef{Name: "Serilog"}).String(); got != "Serilog" {
		t.Errorf("String() = %q, want Serilog", got)
	}
	if got := (PackageRef{Name: "Serilog", Version: "3.1.1"}).String(); got != "Serilog/3.1.1" {
		t.Errorf("String() = %q, want Serilog/3.1.1", got)
	}
}

func TestMSBuildParser_Supports(t *testing.T) {
	tests := []struct {
		exts     []string
		filename string
		want     bool
	}{
		{nil, "App.csproj", true},
		{nil, "App.CSPROJ", true},
		{nil, "App.fsproj", false},
		{nil, "App", false},
		{[]string{".fsproj", ".csproj"}, "App.fsproj", true},
		{[]string{".fsproj"}, "App.csproj", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			p := &MSBuildParser{Extensions: tt.exts}
			if got := p.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

const sdkProject = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
  </PropertyGroup>
  <ItemGroup>
    <ProjectReference Include="..\Acme.Core\Acme.Core.csproj" />
    <ProjectReference Include="..\Acme.Core.Tests\Acme.Core.Tests.csproj" />
    <ProjectReference Include="../Acme.Data/Acme.Data.csproj">
      <Private>false</Private>
    </ProjectReference>
    <ProjectReference Include="..\Acme.Core\Acme.Core.csproj" />
    <ProjectReference />
  </ItemGroup>
  <ItemGroup>
    <PackageReference Include="Serilog" Version="3.1.1" />
    <PackageReference Include="Newtonsoft.Json">
      <Version>13.0.3</Version>
    </PackageReference>
    <PackageReference Include="Polly" VersionOverride="8.2.0" />
    <PackageReference Include="Microsoft.SourceLink.GitHub" />
    <PackageReference Update="Ignored" Version="1.0.0" />
  </ItemGroup>
</Project>`

func TestMSBuildParser_Parse(t *testing.T) {
	p := &MSBuildParser{}
	refs, err := p.Parse(strings.NewReader(sdkProject), NewFilter("tests"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantProjects := []string{"Acme.Core", "Acme.Data", "Acme.Core"}
	if !slices.Equal(refs.ProjectRefs, wantProjects) {
		t.Errorf("ProjectRefs = %v, want %v", refs.ProjectRefs, wantProjects)
	}

	wantPackages := []PackageRef{
		{Name: "Serilog", Version: "3.1.1"},
		{Name: "Newtonsoft.Json", Version: "13.0.3"},
		{Name: "Polly", Version: "8.2.0"},
		{Name: "Microsoft.SourceLink.GitHub"},
	}
	if !slices.Equal(refs.PackageRefs, wantPackages) {
		t.Errorf("PackageRefs = %v, want %v", refs.PackageRefs, wantPackages)
	}
}

func TestMSBuildParser_LegacyNamespace(t *testing.T) {
	doc := "\xEF\xBB\xBF" + `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="15.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <ItemGroup>
    <ProjectReference Include="..\Shared\Shared.csproj">
      <Project>{5A1A4B3C-0000-0000-0000-000000000000}</Project>
      <Name>Shared</Name>
    </ProjectReference>
    <PackageReference Include="NUnit">
      <Version>3.14.0</Version>
    </PackageReference>
  </ItemGroup>
</Project>`

	refs, err := (&MSBuildParser{}).Parse(strings.NewReader(doc), Filter{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !slices.Equal(refs.ProjectRefs, []string{"Shared"}) {
		t.Errorf("ProjectRefs = %v, want [Shared]", refs.ProjectRefs)
	}
	if !slices.Equal(refs.PackageRefs, []PackageRef{{Name: "NUnit", Version: "3.14.0"}}) {
		t.Errorf("PackageRefs = %v", refs.PackageRefs)
	}
}

func TestMSBuildParser_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unclosed", "<Project><ItemGroup>"},
		{"garbage", "not xml at all <"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (&MSBuildParser{}).Parse(strings.NewReader(tt.doc), Filter{}); err == nil {
				t.Error("Parse() expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "App.csproj")
	if err := os.WriteFile(path, []byte(sdkProject), 0o644); err != nil {
		t.Fatal(err)
	}

	refs, err := Load(path, &MSBuildParser{}, Filter{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(refs.ProjectRefs) != 4 {
		t.Errorf("ProjectRefs = %v, want 4 entries", refs.ProjectRefs)
	}

	if _, err := Load(filepath.Join(dir, "missing.csproj"), &MSBuildParser{}, Filter{}); err == nil {
		t.Error("Load() of missing file should fail")
	}

	bad := filepath.Join(dir, "Bad.csproj")
	if err := os.WriteFile(bad, []byte("<Project>"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad, &MSBuildParser{}, Filter{})
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("Load() error = %v, want it to name %s", err, bad)
	}
}
