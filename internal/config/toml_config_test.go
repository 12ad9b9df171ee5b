package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rserrors "github.com/standardbeagle/rootstem/internal/errors"
	"github.com/standardbeagle/rootstem/pkg/stem"
)

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), TOMLFileName, `
[stemming]
algorithm = "porter2"
min_length = 4
exclusions = ["api", "json"]

[batch]
workers = 2
include = ["**/*.txt"]
fold_accents = true

[reference]
threshold = 0.9
`)

	cfg, err := LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, stem.Snowball, cfg.Stemming.Algorithm)
	assert.Equal(t, 4, cfg.Stemming.MinLength)
	assert.Equal(t, []string{"api", "json"}, cfg.Stemming.Exclusions)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, []string{"**/*.txt"}, cfg.Batch.Include)
	assert.True(t, cfg.Batch.FoldAccents)
	assert.Equal(t, 0.9, cfg.Reference.Threshold)

	// untouched keys keep their defaults
	assert.True(t, cfg.Stemming.Enabled)
	assert.Equal(t, Default().Stemming.CacheSize, cfg.Stemming.CacheSize)
	assert.Equal(t, Default().Batch.Exclude, cfg.Batch.Exclude)
}

func TestLoadTOML_Missing(t *testing.T) {
	cfg, err := LoadTOML(filepath.Join(t.TempDir(), TOMLFileName))
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadTOML_Invalid(t *testing.T) {
	dir := t.TempDir()
	var cfgErr *rserrors.ConfigError

	_, err := LoadTOML(writeFile(t, dir, "bad.toml", "[stemming\n"))
	require.True(t, errors.As(err, &cfgErr))

	_, err = LoadTOML(writeFile(t, dir, "alg.toml", "[stemming]\nalgorithm = \"lovins\"\n"))
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "file", cfgErr.Field)
}
