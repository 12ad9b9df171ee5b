// Package semantic turns text into the word forms rootstem reasons about.
//
// Two components live here:
//
// Tokenizer: breaks prose, comments and identifiers into lowercase words.
// camelCase, PascalCase, acronym runs and snake_case split into their
// parts when identifier splitting is on, and diacritics can be folded
// away so "café" and "cafe" meet.
//
// Stemmer: applies one of the algorithms from pkg/stem with the settings
// a caller tunes (enabled flag, minimum length, exclusions) and keeps an
// LRU cache of recent results. Settings can be swapped at runtime with
// Apply, which is how the MCP server follows config file edits.
//
// # Usage Example
//
//	tk := semantic.NewTokenizer(true)
//	s := semantic.NewStemmer(true, stem.Porter, stem.MinWordLength, nil, 1024)
//	groups := s.StemAndGroup(tk.Tokenize("parseHTTPRequest parses requests"))
//	// groups["request"] == []string{"request", "requests"}
package semantic
