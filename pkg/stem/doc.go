// Package stem reduces English words to approximate roots with rule-based
// suffix stripping. No dictionaries or models are involved; every call is a
// pure function of the word and a set of read-only rule tables, so the
// package is safe for concurrent use without locking.
//
// # Algorithms
//
// Three strategies share one rule interpreter:
//
//   - Porter runs a fixed sequence of stages (1a, 1b, 1c, 2, 3, 4, 5a, 5b)
//     gated on the measure of the remaining stem.
//   - Snowball (Porter2) adds an apostrophe stage, a few longer suffixes and
//     gates the later stages on the R1 and R2 regions instead of the measure.
//   - Lancaster (Paice/Husk) scans a single table from the top, applies the
//     first matching rule and starts over until nothing matches, capped at
//     MaxIterations passes.
//
// Each stage fires at most one rule: the first in table order whose suffix
// matches and whose condition holds.
//
// # Character classes
//
// a, e, i, o and u are vowels. y is a consonant at the start of a word or
// after a consonant and a vowel otherwise. Anything outside a-z is neither,
// which means digits, hyphens and apostrophes break vowel-consonant runs
// when measures and regions are computed.
//
// # Usage
//
//	stem.Stem("caresses", stem.Porter)      // "caress"
//	stem.Stem("national", stem.Snowball)    // "nation"
//	stem.Stem("maximum", stem.Lancaster)    // "maxim"
//
//	root, steps := stem.Trace("relational", stem.Porter)
//	// root == "relat"; steps show "relate" after stage 2
package stem
