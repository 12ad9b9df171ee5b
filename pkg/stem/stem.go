package stem

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Algorithm selects a stemming strategy
type Algorithm int

const (
	// Porter is the original five-step suffix stripper
	Porter Algorithm = iota
	// Snowball is Porter2, gated on the R1 and R2 regions
	Snowball
	// Lancaster is the iterative Paice/Husk stemmer
	Lancaster
)

// ErrUnknownAlgorithm is returned by ParseAlgorithm for unrecognised names
var ErrUnknownAlgorithm = errors.New("unknown stemming algorithm")

// MinWordLength is the shortest word the stemmers will touch
const MinWordLength = 3

// Algorithms lists every supported strategy in a stable order
var Algorithms = []Algorithm{Porter, Snowball, Lancaster}

// String returns the canonical lowercase name
func (a Algorithm) String() string {
	switch a {
	case Porter:
		return "porter"
	case Snowball:
		return "snowball"
	case Lancaster:
		return "lancaster"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a name (or common alias) to an Algorithm
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "porter":
		return Porter, nil
	case "snowball", "porter2", "english":
		return Snowball, nil
	case "lancaster", "paice", "paice-husk":
		return Lancaster, nil
	}
	return Porter, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// MarshalText encodes the algorithm by name for config and JSON output
func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts any name ParseAlgorithm does
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Stem reduces word to its stem with the chosen algorithm. The result is
// always lowercase; words shorter than MinWordLength come back lowercased
// but otherwise untouched.
func Stem(word string, alg Algorithm) string {
	w, ok := prepare(word)
	if !ok {
		return w
	}
	return dispatch(w, alg, nil)
}

// StemPorter is Stem(word, Porter)
func StemPorter(word string) string { return Stem(word, Porter) }

// StemSnowball is Stem(word, Snowball)
func StemSnowball(word string) string { return Stem(word, Snowball) }

// StemLancaster is Stem(word, Lancaster)
func StemLancaster(word string) string { return Stem(word, Lancaster) }

// prepare lowercases word and reports whether it is long enough to stem
func prepare(word string) (string, bool) {
	if word == "" {
		return word, false
	}
	w := strings.ToLower(word)
	if utf8.RuneCountInString(w) < MinWordLength {
		return w, false
	}
	return w, true
}

func dispatch(word string, alg Algorithm, rec *recorder) string {
	switch alg {
	case Porter:
		return runStages(word, porterStages, rec)
	case Snowball:
		return runStages(word, snowballStages, rec)
	case Lancaster:
		return runFixpoint(word, lancasterRules, rec)
	default:
		return word
	}
}
