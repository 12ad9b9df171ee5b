package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	rserrors "github.com/standardbeagle/rootstem/internal/errors"
	"github.com/standardbeagle/rootstem/pkg/stem"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, stem.Porter, cfg.Stemming.Algorithm)
	assert.True(t, cfg.Stemming.Enabled)
	assert.Equal(t, stem.MinWordLength, cfg.Stemming.MinLength)
	assert.NoError(t, ValidateConfig(cfg))
	assert.GreaterOrEqual(t, cfg.Batch.Workers, 1, "smart default fills workers")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{KDLFileName, TOMLFileName} {
		cfg, err := Load(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, stem.Porter, cfg.Stemming.Algorithm)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("rootstem.yaml")
	var cfgErr *rserrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "file", cfgErr.Field)
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	kdlPath := writeFile(t, dir, KDLFileName, `stemming { algorithm "lancaster"; }`)
	cfg, err := Load(kdlPath)
	require.NoError(t, err)
	assert.Equal(t, stem.Lancaster, cfg.Stemming.Algorithm)

	tomlPath := writeFile(t, dir, TOMLFileName, "[stemming]\nalgorithm = \"snowball\"\n")
	cfg, err = Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, stem.Snowball, cfg.Stemming.Algorithm)
}

func TestLoadFromDirPrefersKDL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	writeFile(t, dir, TOMLFileName, "[stemming]\nalgorithm = \"snowball\"\n")
	writeFile(t, dir, KDLFileName, `stemming { algorithm "lancaster"; }`)

	assert.Equal(t, filepath.Join(dir, KDLFileName), Locate(dir))
	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, stem.Lancaster, cfg.Stemming.Algorithm)
}

func TestLoadFromDirEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	assert.Equal(t, "", Locate(dir))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, Default().Stemming, cfg.Stemming)
}

func TestLoadFromDirMergesGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, home, KDLFileName, `
stemming {
    algorithm "snowball"
    exclusions "api" "http"
}
`)

	dir := t.TempDir()
	writeFile(t, dir, KDLFileName, `
stemming {
    algorithm "porter"
    exclusions "grpc" "api"
}
`)

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, stem.Porter, cfg.Stemming.Algorithm, "project wins")
	assert.Equal(t, []string{"api", "http", "grpc"}, cfg.Stemming.Exclusions)
}

func TestMergeConfigs_Inclusions(t *testing.T) {
	base := &Config{Batch: Batch{Include: []string{"**/*.txt"}}}
	project := &Config{}

	merged := mergeConfigs(base, project)
	assert.Equal(t, []string{"**/*.txt"}, merged.Batch.Include)

	project.Batch.Include = []string{"docs/**"}
	merged = mergeConfigs(base, project)
	assert.Equal(t, []string{"docs/**"}, merged.Batch.Include)
}

func TestMergeConfigs_ExclusionsDeduplication(t *testing.T) {
	base := &Config{Batch: Batch{Exclude: []string{"**/node_modules/**", "**/vendor/**"}}}
	project := &Config{Batch: Batch{Exclude: []string{"**/node_modules/**", "**/dist/**"}}}

	merged := mergeConfigs(base, project)
	assert.Len(t, merged.Batch.Exclude, 3)
	assert.Contains(t, merged.Batch.Exclude, "**/dist/**")
}

func TestOverridesApply(t *testing.T) {
	cfg := Default()
	require.NoError(t, Overrides{}.Apply(cfg))
	assert.Equal(t, Default(), cfg)

	require.NoError(t, Overrides{Algorithm: "paice", NoStem: true}.Apply(cfg))
	assert.Equal(t, stem.Lancaster, cfg.Stemming.Algorithm)
	assert.False(t, cfg.Stemming.Enabled)

	err := Overrides{Algorithm: "lovins"}.Apply(cfg)
	assert.ErrorIs(t, err, stem.ErrUnknownAlgorithm)
	assert.Equal(t, stem.Lancaster, cfg.Stemming.Algorithm)
}
