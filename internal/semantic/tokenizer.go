package semantic

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer breaks running text into lowercase words for stemming.
// Anything that is not a letter, digit or apostrophe separates words. With
// identifier splitting on, camelCase, PascalCase, acronym runs
// (HTTPServer) and letter/digit boundaries also separate words, so source
// comments and identifiers feed the stemmer sensible tokens.
//
// Tokens made only of digits are dropped. Stateless and safe for concurrent use.
type Tokenizer struct {
	splitIdentifiers bool
	foldAccents      bool
}

// TokenizerOption configures a Tokenizer
type TokenizerOption func(*Tokenizer)

// WithAccentFolding strips combining marks so that "naïve" and "naive"
// produce the same token
func WithAccentFolding(enabled bool) TokenizerOption {
	return func(tk *Tokenizer) { tk.foldAccents = enabled }
}

// NewTokenizer creates a tokenizer
func NewTokenizer(splitIdentifiers bool, opts ...TokenizerOption) *Tokenizer {
	tk := &Tokenizer{splitIdentifiers: splitIdentifiers}
	for _, opt := range opts {
		opt(tk)
	}
	return tk
}

// FoldAccents decomposes s, drops the combining marks and recomposes it
func FoldAccents(s string) string {
	// transformers carry state, so each call gets its own chain
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Tokenize returns the words of text in order, lowercased
func (tk *Tokenizer) Tokenize(text string) []string {
	if tk.foldAccents {
		text = FoldAccents(text)
	}
	var words []string
	for _, field := range strings.FieldsFunc(text, isSeparator) {
		field = strings.TrimLeft(field, "'")
		if field == "" {
			continue
		}
		if tk.splitIdentifiers {
			words = appendParts(words, field)
		} else {
			words = appendWord(words, []rune(field))
		}
	}
	return words
}

func isSeparator(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'')
}

// appendParts splits one field on case and digit transitions
func appendParts(words []string, field string) []string {
	runes := []rune(field)
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, ch := runes[i-1], runes[i]
		switch {
		case unicode.IsLower(prev) && unicode.IsUpper(ch):
			// camelCase
			words = appendWord(words, runes[start:i])
			start = i
		case i+1 < len(runes) && unicode.IsUpper(prev) && unicode.IsUpper(ch) && unicode.IsLower(runes[i+1]):
			// end of an acronym: HTTPServer -> HTTP Server
			words = appendWord(words, runes[start:i])
			start = i
		case unicode.IsLetter(prev) && unicode.IsDigit(ch), unicode.IsDigit(prev) && unicode.IsLetter(ch):
			words = appendWord(words, runes[start:i])
			start = i
		}
	}
	return appendWord(words, runes[start:])
}

func appendWord(words []string, runes []rune) []string {
	if len(runes) == 0 {
		return words
	}
	allDigits := true
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return words
	}
	return append(words, strings.ToLower(string(runes)))
}
