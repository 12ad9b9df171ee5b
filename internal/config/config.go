package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/standardbeagle/rootstem/internal/debug"
	rserrors "github.com/standardbeagle/rootstem/internal/errors"
	"github.com/standardbeagle/rootstem/pkg/stem"
)

// Config file names searched for in a project directory, in order
const (
	KDLFileName  = ".rootstem.kdl"
	TOMLFileName = "rootstem.toml"
)

// Config is the full rootstem configuration
type Config struct {
	Stemming  Stemming  `toml:"stemming"`
	Batch     Batch     `toml:"batch"`
	Reference Reference `toml:"reference"`
}

// Stemming controls how words are reduced
type Stemming struct {
	Algorithm  stem.Algorithm `toml:"algorithm"`
	Enabled    bool           `toml:"enabled"`
	MinLength  int            `toml:"min_length"` // words shorter than this pass through
	CacheSize  int            `toml:"cache_size"` // 0 disables the stem cache
	Exclusions []string       `toml:"exclusions"` // words never stemmed (acronyms, brand names)
}

// Batch controls corpus processing
type Batch struct {
	Workers     int      `toml:"workers"` // 0 = auto-detect (NumCPU-1)
	Include     []string `toml:"include"`
	Exclude     []string `toml:"exclude"`
	MaxFileSize int64    `toml:"max_file_size"`
	// Break camelCase and snake_case identifiers into separate words
	SplitIdentifiers bool `toml:"split_identifiers"`
	// Strip diacritics before tokenizing
	FoldAccents bool `toml:"fold_accents"`
}

// Reference controls the comparison against the porter2 reference stemmer
type Reference struct {
	// Similarity below which a disagreement is reported as a divergence
	Threshold float64 `toml:"threshold"`
	// Maximum number of disagreements listed, 0 = all
	MaxReported int `toml:"max_reported"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Stemming: Stemming{
			Algorithm:  stem.Porter,
			Enabled:    true,
			MinLength:  stem.MinWordLength,
			CacheSize:  4096,
			Exclusions: []string{},
		},
		Batch: Batch{
			Workers:          0,
			Include:          []string{"**/*.txt", "**/*.md"},
			Exclude:          []string{"**/.git/**", "**/node_modules/**", "**/vendor/**"},
			MaxFileSize:      10 * 1024 * 1024,
			SplitIdentifiers: true,
		},
		Reference: Reference{
			Threshold:   0.75,
			MaxReported: 20,
		},
	}
}

// Load reads the config file at path, choosing the format by extension.
// An empty path searches the working directory; a missing file yields the
// defaults. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromDir(".")
	}

	var (
		cfg *Config
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".kdl":
		cfg, err = LoadKDL(path)
	case ".toml":
		cfg, err = LoadTOML(path)
	default:
		return nil, rserrors.NewConfigError("file", path, fmt.Errorf("unsupported config format %q", ext))
	}
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		debug.LogConfig("no config at %s, using defaults\n", path)
		cfg = Default()
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads the global config from the home directory, then the
// project config from dir, and merges them. Project settings win but
// exclusions from both are kept.
func LoadFromDir(dir string) (*Config, error) {
	var baseConfig *Config
	if homeDir, err := os.UserHomeDir(); err == nil {
		if globalCfg, err := findInDir(homeDir); err == nil && globalCfg != nil {
			debug.LogConfig("loaded global config from %s\n", homeDir)
			baseConfig = globalCfg
		}
	}

	projectConfig, err := findInDir(dir)
	if err != nil {
		return nil, err
	}

	var cfg *Config
	switch {
	case baseConfig != nil && projectConfig != nil:
		cfg = mergeConfigs(baseConfig, projectConfig)
	case projectConfig != nil:
		cfg = projectConfig
	case baseConfig != nil:
		cfg = baseConfig
	default:
		cfg = Default()
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Locate returns the config file rootstem would read from dir, or "" if
// there is none
func Locate(dir string) string {
	for _, name := range []string{KDLFileName, TOMLFileName} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func findInDir(dir string) (*Config, error) {
	path := Locate(dir)
	switch filepath.Ext(path) {
	case ".kdl":
		return LoadKDL(path)
	case ".toml":
		return LoadTOML(path)
	}
	return nil, nil
}

// Overrides are command-line settings that win over any config file.
// They are kept so a reloaded file can have them applied again.
type Overrides struct {
	Algorithm string // empty keeps the file's algorithm
	NoStem    bool
}

// Apply writes the overrides into cfg
func (o Overrides) Apply(cfg *Config) error {
	if o.Algorithm != "" {
		alg, err := stem.ParseAlgorithm(o.Algorithm)
		if err != nil {
			return rserrors.NewAlgorithmError(o.Algorithm, err)
		}
		cfg.Stemming.Algorithm = alg
	}
	if o.NoStem {
		cfg.Stemming.Enabled = false
	}
	return nil
}

// mergeConfigs merges a base config with a project config.
// Project config takes precedence, but base exclusions are preserved.
func mergeConfigs(base, project *Config) *Config {
	merged := *project

	merged.Stemming.Exclusions = unionStrings(base.Stemming.Exclusions, project.Stemming.Exclusions)
	merged.Batch.Exclude = unionStrings(base.Batch.Exclude, project.Batch.Exclude)

	// Inclusions: project overrides base completely if specified
	if len(project.Batch.Include) == 0 && len(base.Batch.Include) > 0 {
		merged.Batch.Include = base.Batch.Include
	}

	return &merged
}

// unionStrings keeps first-seen order and drops duplicates
func unionStrings(lists ...[]string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, list := range lists {
		for _, s := range list {
			if seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
