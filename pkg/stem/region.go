package stem

// Measure returns m for s written as [C](VC)^m[V], which is the number of
// places where a vowel is directly followed by a consonant.
func Measure(s string) int {
	m := 0
	for i := 1; i < len(s); i++ {
		if IsVowel(s, i-1) && IsConsonant(s, i) {
			m++
		}
	}
	return m
}

// regionAfter returns the offset just past the first vowel-consonant pair
// whose vowel lies at or after from. len(word) when there is none.
func regionAfter(word string, from int) int {
	for i := from + 1; i < len(word); i++ {
		if IsVowel(word, i-1) && IsConsonant(word, i) {
			return i + 1
		}
	}
	return len(word)
}

// R1 returns the start of the region after the first vowel followed by a
// consonant.
func R1(word string) int {
	return regionAfter(word, 0)
}

// R2 returns the start of the region after the first vowel-consonant pair
// inside R1.
func R2(word string) int {
	r1 := R1(word)
	if r1 >= len(word) {
		return len(word)
	}
	return regionAfter(word, r1)
}

// InR1 reports whether suffix, taken as the tail of word, starts inside R1.
// The region is computed from word as it is now.
func InR1(word, suffix string) bool {
	return len(word)-len(suffix) >= R1(word)
}

// InR2 reports whether suffix, taken as the tail of word, starts inside R2.
func InR2(word, suffix string) bool {
	return len(word)-len(suffix) >= R2(word)
}

// tailInRegion is InR1/InR2 for a tail of n letters rather than a literal
func tailInRegion(word string, n int, region func(string) int) bool {
	return len(word)-n >= region(word)
}
