package stem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasure(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"", 0},
		{"tr", 0},
		{"ee", 0},
		{"tree", 0},
		{"y", 0},
		{"by", 0},
		{"trouble", 1},
		{"oats", 1},
		{"trees", 1},
		{"ivy", 1},
		{"troubles", 2},
		{"private", 2},
		{"oaten", 2},
		{"orrery", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Measure(tt.word), "Measure(%q)", tt.word)
	}
}

func TestRegions(t *testing.T) {
	tests := []struct {
		word   string
		r1, r2 int
	}{
		{"beautiful", 5, 7},
		{"beauty", 5, 6},
		{"animadversion", 2, 4},
		{"sprinkled", 5, 9},
		{"eucharist", 3, 6},
		{"national", 3, 6},
		{"trouble", 5, 7},
		// single syllable words have no region at all
		{"tree", 4, 4},
		{"sky", 3, 3},
		{"cat", 3, 3},
		{"", 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.r1, R1(tt.word), "R1(%q)", tt.word)
		assert.Equal(t, tt.r2, R2(tt.word), "R2(%q)", tt.word)
	}
}

func TestRegionContainment(t *testing.T) {
	assert.True(t, InR1("national", "al"))
	assert.False(t, InR1("national", "ational"))
	assert.False(t, InR1("national", "tional"))
	assert.True(t, InR2("national", "al"))
	assert.False(t, InR2("national", "onal"))
	assert.False(t, InR2("nation", "ion"))

	// the region follows the word, so the same suffix can fall in or out
	assert.True(t, InR1("beautiful", "iful"))
	assert.False(t, InR1("beauty", "uty"))
}
