package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/standardbeagle/rootstem/internal/debug"
	rserrors "github.com/standardbeagle/rootstem/internal/errors"
)

// LoadTOML loads configuration from a rootstem.toml file. Keys that are
// absent keep their defaults. A missing file returns nil, nil.
//
//	[stemming]
//	algorithm = "snowball"
//	exclusions = ["api", "http"]
func LoadTOML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, rserrors.NewInputError("read config", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, rserrors.NewConfigError("file", path, err)
	}
	debug.LogConfig("loaded TOML config %s\n", path)
	return cfg, nil
}
