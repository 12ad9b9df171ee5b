package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitignorePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", `
# build output
/dist/
drafts/
*.log
docs/private.md
!keep.log
`)

	patterns, err := GitignorePatterns(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"dist/**",
		"**/drafts/**",
		"**/*.log",
		"**/*.log/**",
		"docs/private.md",
		"docs/private.md/**",
	}, patterns)
}

func TestGitignorePatterns_Missing(t *testing.T) {
	patterns, err := GitignorePatterns(t.TempDir())
	assert.NoError(t, err)
	assert.Empty(t, patterns)
}

func TestBatchAddGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "node_modules/\ntmp/\n")

	b := Default().Batch
	require.NoError(t, b.AddGitignore(dir))
	assert.Contains(t, b.Exclude, "**/tmp/**")
	// already present in the defaults, so not repeated
	count := 0
	for _, p := range b.Exclude {
		if p == "**/node_modules/**" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
