package stem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVowelPlainLetters(t *testing.T) {
	word := "aeioubcd"
	for i := 0; i < 5; i++ {
		assert.True(t, IsVowel(word, i), "position %d", i)
		assert.False(t, IsConsonant(word, i), "position %d", i)
	}
	for i := 5; i < len(word); i++ {
		assert.False(t, IsVowel(word, i), "position %d", i)
		assert.True(t, IsConsonant(word, i), "position %d", i)
	}
}

func TestClassifyY(t *testing.T) {
	tests := []struct {
		word      string
		index     int
		consonant bool
		message   string
	}{
		{"yes", 0, true, "leading y"},
		{"sky", 2, true, "y after consonant"},
		{"toy", 2, false, "y after vowel"},
		{"sayy", 3, false, "second y follows a vowel y"},
		{"styy", 3, true, "second y follows a consonant y"},
		{"yyy", 2, true, "run of y from the start"},
		{"a-y", 2, false, "y after a non-letter"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.consonant, IsConsonant(tt.word, tt.index), "%s: IsConsonant(%q, %d)", tt.message, tt.word, tt.index)
		assert.Equal(t, !tt.consonant, IsVowel(tt.word, tt.index), "%s: IsVowel(%q, %d)", tt.message, tt.word, tt.index)
	}
}

func TestClassifyOutOfRange(t *testing.T) {
	for _, i := range []int{-1, 3, 100} {
		assert.False(t, IsVowel("abc", i))
		assert.False(t, IsConsonant("abc", i))
	}
	assert.False(t, IsVowel("", 0))
	assert.False(t, IsConsonant("", 0))
}

func TestClassifyNonLetters(t *testing.T) {
	for _, word := range []string{"a-b", "a'b", "a1b", "aBb"} {
		assert.False(t, IsVowel(word, 1), word)
		assert.False(t, IsConsonant(word, 1), word)
	}
}

func TestContainsVowel(t *testing.T) {
	assert.True(t, ContainsVowel("tree"))
	assert.True(t, ContainsVowel("toy"))
	assert.False(t, ContainsVowel("sky"))
	assert.False(t, ContainsVowel("rhythm"))
	assert.False(t, ContainsVowel(""))
	assert.False(t, ContainsVowel("'s"))
}

func TestEndsDoubleConsonant(t *testing.T) {
	assert.True(t, EndsDoubleConsonant("hopp"))
	assert.True(t, EndsDoubleConsonant("fall"))
	assert.True(t, EndsDoubleConsonant("fizz"))
	assert.False(t, EndsDoubleConsonant("tree"))
	assert.False(t, EndsDoubleConsonant("hop"))
	assert.False(t, EndsDoubleConsonant("s"))
	assert.False(t, EndsDoubleConsonant("sayy"))
}

func TestEndsCVC(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"hop", true},
		{"fil", true},
		{"cav", true},
		{"snow", false},
		{"box", false},
		{"tray", false},
		{"hoop", false},
		{"ab", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EndsCVC(tt.word), "EndsCVC(%q)", tt.word)
	}
}
