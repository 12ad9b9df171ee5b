package reference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/rootstem/internal/config"
	rserrors "github.com/standardbeagle/rootstem/internal/errors"
	"github.com/standardbeagle/rootstem/pkg/stem"
)

func newTestComparer(threshold float64, maxReported int, ref func(string) string) *Comparer {
	c := NewComparer(config.Reference{Threshold: threshold, MaxReported: maxReported})
	c.reference = ref
	return c
}

func TestCompareAgainstPorter2(t *testing.T) {
	c := NewComparer(config.Default().Reference)
	for _, word := range []string{"caresses", "running", "national", "connection"} {
		cmp, err := c.Compare(word)
		require.NoError(t, err)
		assert.True(t, cmp.Agree, "%s: engine %q, reference %q", word, cmp.Engine, cmp.Reference)
		assert.Equal(t, float32(1), cmp.Similarity)
	}
}

func TestCompareLowercasesInput(t *testing.T) {
	var seen string
	c := newTestComparer(0.5, 0, func(w string) string {
		seen = w
		return stem.Stem(w, stem.Snowball)
	})
	cmp, err := c.Compare("Running")
	require.NoError(t, err)
	assert.Equal(t, "running", seen)
	assert.Equal(t, "Running", cmp.Word)
	assert.True(t, cmp.Agree)
}

func TestCompareSimilarity(t *testing.T) {
	c := newTestComparer(0.5, 0, func(w string) string { return w })
	cmp, err := c.Compare("national")
	require.NoError(t, err)

	// "nation" vs "national": two edits over eight characters
	assert.False(t, cmp.Agree)
	assert.Equal(t, "nation", cmp.Engine)
	assert.Equal(t, "national", cmp.Reference)
	assert.InDelta(t, 0.75, cmp.Similarity, 1e-6)
}

func TestCompareAllReport(t *testing.T) {
	// reference disagrees only on words starting with "x"
	ref := func(w string) string {
		if strings.HasPrefix(w, "x") {
			return "zzzzzz"
		}
		return stem.Stem(w, stem.Snowball)
	}
	c := newTestComparer(0.5, 1, ref)

	report, err := c.CompareAll([]string{"running", "Running", "national", "xylophones", "xenon", ""})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Total, "duplicates and blanks are skipped")
	assert.Equal(t, 2, report.Agreements)
	assert.Equal(t, 2, report.Disagreements)
	assert.InDelta(t, 0.5, report.AgreementRate, 1e-9)
	assert.Less(t, report.MeanSimilarity, 1.0)
	require.Len(t, report.Divergences, 1, "capped at MaxReported")
}

func TestCompareAllThreshold(t *testing.T) {
	// one character off: similarity well above a low threshold
	c := newTestComparer(0.2, 0, func(w string) string { return stem.Stem(w, stem.Snowball) + "x" })
	report, err := c.CompareAll([]string{"connection"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Disagreements)
	assert.Empty(t, report.Divergences)
}

func TestCompareAllSortsWorstFirst(t *testing.T) {
	ref := func(w string) string {
		if w == "running" {
			return "qqqqqqqq"
		}
		return stem.Stem(w, stem.Snowball) + "x"
	}
	c := newTestComparer(1.0, 0, ref)
	report, err := c.CompareAll([]string{"connection", "running"})
	require.NoError(t, err)
	require.Len(t, report.Divergences, 2)
	assert.Equal(t, "running", report.Divergences[0].Word)
	assert.LessOrEqual(t, report.Divergences[0].Similarity, report.Divergences[1].Similarity)
}

func TestCompareAllEmpty(t *testing.T) {
	report, err := NewComparer(config.Default().Reference).CompareAll(nil)
	require.NoError(t, err)
	assert.Equal(t, "snowball", report.Algorithm)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0.0, report.AgreementRate)
	assert.NotNil(t, report.Divergences)
}

func TestCompareAgainstSnowballPorter(t *testing.T) {
	c, err := NewComparerFor(stem.Porter, config.Default().Reference)
	require.NoError(t, err)
	assert.Equal(t, stem.Porter, c.Algorithm())

	words := []string{"caresses", "hopping", "relational", "conditional", "digitizer", "hopefulness", "electrical", "generalization"}
	report, err := c.CompareAll(words)
	require.NoError(t, err)
	assert.Equal(t, "porter", report.Algorithm)
	assert.Equal(t, len(words), report.Agreements, "divergences: %+v", report.Divergences)
}

func TestNoReferenceForLancaster(t *testing.T) {
	assert.True(t, HasReference(stem.Porter))
	assert.True(t, HasReference(stem.Snowball))
	assert.False(t, HasReference(stem.Lancaster))

	_, err := NewComparerFor(stem.Lancaster, config.Default().Reference)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoReference)

	var algErr *rserrors.AlgorithmError
	require.ErrorAs(t, err, &algErr)
	assert.Equal(t, "lancaster", algErr.Name)
}
