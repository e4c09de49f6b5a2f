package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	pkgerrors "github.com/matzehuels/deprank/pkg/errors"
	"github.com/matzehuels/deprank/pkg/graph/transform"
)

// ConfigFile is the configuration file looked up in the working directory
// when no explicit path is given.
const ConfigFile = "deprank.toml"

// Config is the on-disk configuration. Every field is optional; unset
// fields keep their command-line defaults.
//
//	path = "src"
//	exclude = ["tests", "benchmarks"]
//	strategy = "worklist"
//
//	[report]
//	list = true
//	order = "desc"
//
//	[output]
//	dot = true
//	format = "svg"
//	renderer = "builtin"
type Config struct {
	Path       string   `toml:"path"`
	Exclude    []string `toml:"exclude"`
	Extensions []string `toml:"extensions"`
	Skip       []string `toml:"skip"`
	Strategy   string   `toml:"strategy"`

	Report ReportConfig `toml:"report"`
	Output OutputConfig `toml:"output"`
}

// ReportConfig holds console report settings.
type ReportConfig struct {
	List     bool   `toml:"list"`
	Packages bool   `toml:"packages"`
	Order    string `toml:"order"`
}

// OutputConfig holds DOT, rendering and export settings.
type OutputConfig struct {
	DOT      bool   `toml:"dot"`
	DOTFile  string `toml:"dot_file"`
	Ranked   *bool  `toml:"ranked"`
	Styled   bool   `toml:"styled"`
	NoRender bool   `toml:"no_render"`
	Renderer string `toml:"renderer"`
	Format   string `toml:"format"`
	File     string `toml:"file"`
	JSON     string `toml:"json"`
}

// LoadConfig reads and decodes the TOML file at path. Unknown keys are
// rejected so that typos do not silently fall back to defaults. All
// failures are coded INVALID_CONFIG errors.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "cannot read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// FindConfig loads path if it is non-empty. Otherwise it loads ConfigFile
// from dir when present, and returns an empty Config when it is not.
func FindConfig(path, dir string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	candidate := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "cannot access %s", candidate)
	}
	return LoadConfig(candidate)
}

// Options converts the analysis settings of c into pipeline Options.
func (c *Config) Options() Options {
	return Options{
		Root:       c.Path,
		Extensions: c.Extensions,
		Exclude:    c.Exclude,
		Skip:       c.Skip,
		Strategy:   transform.Strategy(c.Strategy),
	}
}
