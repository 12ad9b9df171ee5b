package stem

// isLetterVowel reports whether b is one of the five plain vowels
func isLetterVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// isLetter reports whether b is a lowercase ASCII letter
func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// IsConsonant reports whether the letter at position i is a consonant.
// 'y' is a consonant at the start of the word or right after a consonant,
// and a vowel everywhere else. Out-of-range positions and characters
// outside a-z are neither vowel nor consonant.
func IsConsonant(word string, i int) bool {
	if i < 0 || i >= len(word) {
		return false
	}
	b := word[i]
	if !isLetter(b) || isLetterVowel(b) {
		return false
	}
	if b != 'y' {
		return true
	}
	// Every y in a run of y's takes the class of the first one, so only the
	// letter before the run matters.
	j := i
	for j > 0 && word[j-1] == 'y' {
		j--
	}
	if j == 0 {
		return true
	}
	prev := word[j-1]
	return isLetter(prev) && !isLetterVowel(prev)
}

// IsVowel reports whether the letter at position i is a vowel, applying the
// same context rule for 'y' as IsConsonant.
func IsVowel(word string, i int) bool {
	if i < 0 || i >= len(word) {
		return false
	}
	b := word[i]
	if !isLetter(b) {
		return false
	}
	return !IsConsonant(word, i)
}

// ContainsVowel reports whether any position of s classifies as a vowel
func ContainsVowel(s string) bool {
	for i := 0; i < len(s); i++ {
		if IsVowel(s, i) {
			return true
		}
	}
	return false
}

// EndsDoubleConsonant reports whether s ends with the same consonant twice
func EndsDoubleConsonant(s string) bool {
	n := len(s)
	if n < 2 {
		return false
	}
	return s[n-1] == s[n-2] && IsConsonant(s, n-1)
}

// EndsCVC reports whether s ends consonant-vowel-consonant where the final
// consonant is not w, x or y.
func EndsCVC(s string) bool {
	n := len(s)
	if n < 3 {
		return false
	}
	switch s[n-1] {
	case 'w', 'x', 'y':
		return false
	}
	return IsConsonant(s, n-3) && IsVowel(s, n-2) && IsConsonant(s, n-1)
}
