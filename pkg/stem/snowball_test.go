package stem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowballStemming(t *testing.T) {
	tests := []struct {
		word     string
		expected string
	}{
		{"caresses", "caress"},
		{"ponies", "poni"},
		{"ties", "tie"},
		{"tied", "tie"},
		{"kiwis", "kiwi"},
		{"news", "new"},
		{"bus", "bus"},
		{"national", "nation"},
		{"formative", "format"},
		{"generously", "gener"},
		{"quickly", "quick"},
		{"gently", "gent"},
		{"fluently", "fluent"},
		{"happily", "happili"},
		{"played", "play"},
		{"sky", "ski"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Stem(tt.word, Snowball), "Stem(%q)", tt.word)
	}
}

func TestSnowballApostrophes(t *testing.T) {
	assert.Equal(t, "cat", Stem("cats'", Snowball))
	assert.Equal(t, "dog", Stem("dogs's", Snowball))

	_, steps := Trace("cats'", Snowball)
	after, ok := After(steps, "0")
	assert.True(t, ok)
	assert.Equal(t, "cats", after)
}

func TestSnowballShortIes(t *testing.T) {
	// a stem of one letter keeps the e
	_, steps := Trace("ties", Snowball)
	after, ok := After(steps, "1a")
	assert.True(t, ok)
	assert.Equal(t, "tie", after)

	_, steps = Trace("ponies", Snowball)
	after, _ = After(steps, "1a")
	assert.Equal(t, "poni", after)
}

func TestSnowballRegionGating(t *testing.T) {
	// ational is not inside R1 for national, so only al goes in step 4
	out, steps := Trace("national", Snowball)
	assert.Equal(t, "nation", out)
	_, fired := After(steps, "2")
	assert.False(t, fired)
	after, fired := After(steps, "4")
	assert.True(t, fired)
	assert.Equal(t, "nation", after)
}

func TestSnowballLiEnding(t *testing.T) {
	_, steps := Trace("gently", Snowball)
	after, ok := After(steps, "1c")
	assert.True(t, ok)
	assert.Equal(t, "gentli", after)
	after, ok = After(steps, "2")
	assert.True(t, ok)
	assert.Equal(t, "gent", after)
}

func TestSnowballStageOutcomes(t *testing.T) {
	tests := []struct {
		word  string
		stage string
		want  string
		final string
	}{
		{"agreedly", "1b", "agree", "agre"},
		{"markedly", "1b", "mark", "mark"},
		{"exceedingly", "1b", "exceed", "exceed"},
		{"hopingly", "1b-fixup", "hope", "hope"},
		{"proceed", "1b", "procee", "proce"},
		{"ating", "1b-fixup", "ate", "at"},
		{"controll", "5b", "control", "control"},
		{"cease", "5a", "ceas", "ceas"},
		{"create", "5a", "creat", "creat"},
	}
	for _, tt := range tests {
		out, steps := Trace(tt.word, Snowball)
		got, ok := After(steps, tt.stage)
		require.True(t, ok, "%q never fired stage %s", tt.word, tt.stage)
		assert.Equal(t, tt.want, got, "%q after stage %s", tt.word, tt.stage)
		assert.Equal(t, tt.final, out, "Stem(%q)", tt.word)
	}
}

func TestSnowballEedOutsideR1(t *testing.T) {
	// eed outside R1 stops stage 1b, so ed is not tried either
	for _, word := range []string{"feed", "speed", "bleed"} {
		out, steps := Trace(word, Snowball)
		assert.Equal(t, word, out)
		assert.Empty(t, steps, "%q", word)
	}
}

func TestSnowballFinalStageGates(t *testing.T) {
	// 5a keeps e after a CVC stem in R1 only, 5b needs ll in R2
	for _, word := range []string{"hope", "rate", "store", "roll", "tall", "fall"} {
		out, steps := Trace(word, Snowball)
		assert.Equal(t, word, out)
		_, fired5a := After(steps, "5a")
		_, fired5b := After(steps, "5b")
		assert.False(t, fired5a || fired5b, "%q", word)
	}
}
