package stem

import "strings"

// ConditionKind enumerates the guards a rule can carry
type ConditionKind int

const (
	// Always places no restriction on the stem
	Always ConditionKind = iota
	// StemHasVowel requires a vowel somewhere in the stem
	StemHasVowel
	// SuffixInR1 requires the suffix to start inside R1 of the word
	SuffixInR1
	// SuffixInR2 requires the suffix to start inside R2 of the word
	SuffixInR2
	// MeasureAbove requires Measure(stem) > Threshold
	MeasureAbove
	// Custom defers to Pred
	Custom
)

// String returns the name used in traces
func (k ConditionKind) String() string {
	switch k {
	case Always:
		return "always"
	case StemHasVowel:
		return "vowel"
	case SuffixInR1:
		return "r1"
	case SuffixInR2:
		return "r2"
	case MeasureAbove:
		return "measure"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Condition is a tagged guard. Threshold is only read for MeasureAbove and
// Pred only for Custom.
type Condition struct {
	Kind      ConditionKind
	Threshold int
	Pred      func(word, stem string) bool
}

// Rule replaces Suffix with Replacement when Condition holds.
//
// Stop ends the stage when the suffix matches but the condition does not.
// Mark flags rules whose application enables the next AfterMark stage.
// Whole lets the suffix match the entire word, leaving an empty stem.
type Rule struct {
	Suffix      string
	Replacement string
	Condition   Condition
	Stop        bool
	Mark        bool
	Whole       bool
}

// Stage is one ordered rule list of a pipeline
type Stage struct {
	Name      string
	Rules     []Rule
	AfterMark bool
}

var (
	always   = Condition{Kind: Always}
	hasVowel = Condition{Kind: StemHasVowel}
	inR1     = Condition{Kind: SuffixInR1}
	inR2     = Condition{Kind: SuffixInR2}
)

func measureAbove(n int) Condition {
	return Condition{Kind: MeasureAbove, Threshold: n}
}

func custom(pred func(word, stem string) bool) Condition {
	return Condition{Kind: Custom, Pred: pred}
}

// Check evaluates the condition for word about to lose suffix, stem being
// what remains. Region conditions look at word before any mutation.
func (c Condition) Check(word, suffix, stem string) bool {
	switch c.Kind {
	case Always:
		return true
	case StemHasVowel:
		return ContainsVowel(stem)
	case SuffixInR1:
		return InR1(word, suffix)
	case SuffixInR2:
		return InR2(word, suffix)
	case MeasureAbove:
		return Measure(stem) > c.Threshold
	case Custom:
		return c.Pred != nil && c.Pred(word, stem)
	default:
		return false
	}
}

// matches reports whether word ends with the rule's suffix and is strictly
// longer than it (or as long, for Whole rules), leaving a stem of at least
// minStem letters.
func (r Rule) matches(word string, minStem int) (string, bool) {
	if !strings.HasSuffix(word, r.Suffix) {
		return "", false
	}
	if len(word) == len(r.Suffix) && !r.Whole {
		return "", false
	}
	stem := word[:len(word)-len(r.Suffix)]
	if len(stem) < minStem {
		return "", false
	}
	return stem, true
}

// Apply returns the rewritten word and true when the rule is eligible for
// word under the given minimum stem length.
func (r Rule) Apply(word string, minStem int) (string, bool) {
	stem, ok := r.matches(word, minStem)
	if !ok || !r.Condition.Check(word, r.Suffix, stem) {
		return word, false
	}
	return stem + r.Replacement, true
}
