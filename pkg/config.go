package minilang

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config controls the ambient, outer-shell behavior of the CLI driver.
// It never affects language semantics — only whether/where the XML AST
// dump is written and how it's indented.
type Config struct {
	XMLDumpPath    string `yaml:"xmlDumpPath"`
	XMLDumpEnabled bool   `yaml:"xmlDumpEnabled"`
	XMLIndent      string `yaml:"xmlIndent"`
}

// DefaultConfig matches spec.md §6: an "AST.xml" dump alongside the
// program, tab-indented, on by default.
func DefaultConfig() Config {
	return Config{
		XMLDumpPath:    "AST.xml",
		XMLDumpEnabled: true,
		XMLIndent:      "\t",
	}
}

// LoadConfig reads path (typically "minilang.yaml") and overlays it onto
// DefaultConfig. A missing file is not an error — the defaults stand.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}

	return cfg, nil
}
