package semantic

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/standardbeagle/rootstem/internal/config"
	"github.com/standardbeagle/rootstem/pkg/stem"
)

// Stemmer wraps the stemming engine with the settings a caller actually
// tunes: an on/off switch, a minimum length, an exclusion list and a cache.
// Enables finding similar words in different forms (authenticate,
// authentication, authenticating).
//
// Safe for concurrent use; Apply may swap settings while other goroutines stem.
type Stemmer struct {
	mu         sync.RWMutex
	enabled    bool
	algorithm  stem.Algorithm
	minLength  int
	exclusions map[string]bool // Words to never stem
	cache      *lru.Cache[string, string]
}

// NewStemmer creates a new stemmer. cacheSize 0 disables caching.
func NewStemmer(enabled bool, algorithm stem.Algorithm, minLength int, exclusions map[string]bool, cacheSize int) *Stemmer {
	if minLength < 0 {
		minLength = stem.MinWordLength
	}

	normalized := make(map[string]bool, len(exclusions))
	for w, v := range exclusions {
		if v {
			normalized[strings.ToLower(w)] = true
		}
	}

	s := &Stemmer{
		enabled:    enabled,
		algorithm:  algorithm,
		minLength:  minLength,
		exclusions: normalized,
	}
	s.cache = newCache(cacheSize)
	return s
}

// NewStemmerFromConfig creates a stemmer from the stemming section of a config
func NewStemmerFromConfig(cfg config.Stemming) *Stemmer {
	return NewStemmer(cfg.Enabled, cfg.Algorithm, cfg.MinLength, exclusionSet(cfg.Exclusions), cfg.CacheSize)
}

func newCache(size int) *lru.Cache[string, string] {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil
	}
	return c
}

func exclusionSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}

// Apply replaces every setting with the ones in cfg, as on a config reload.
// The cache is dropped because cached stems may no longer be valid.
func (s *Stemmer) Apply(cfg config.Stemming) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = cfg.Enabled
	s.algorithm = cfg.Algorithm
	s.minLength = cfg.MinLength
	s.exclusions = exclusionSet(cfg.Exclusions)
	s.cache = newCache(cfg.CacheSize)
}

// IsEnabled checks if stemming is enabled
func (s *Stemmer) IsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// GetAlgorithm returns the configured algorithm
func (s *Stemmer) GetAlgorithm() stem.Algorithm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.algorithm
}

// GetMinLength returns the minimum word length for stemming
func (s *Stemmer) GetMinLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minLength
}

// GetExclusions returns the excluded words in sorted order
func (s *Stemmer) GetExclusions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exclusions := make([]string, 0, len(s.exclusions))
	for w := range s.exclusions {
		exclusions = append(exclusions, w)
	}
	sort.Strings(exclusions)
	return exclusions
}

// Stem returns the stem of a word, or the original word if stemming is
// disabled, the word is excluded, or it is shorter than the minimum length
func (s *Stemmer) Stem(word string) string {
	s.mu.RLock()
	enabled, alg, minLength, cache := s.enabled, s.algorithm, s.minLength, s.cache
	excluded := s.exclusions[strings.ToLower(word)]
	s.mu.RUnlock()

	if !enabled || excluded || utf8.RuneCountInString(word) < minLength {
		return word
	}

	if cache != nil {
		if out, ok := cache.Get(word); ok {
			return out
		}
	}
	out := stem.Stem(word, alg)
	if cache != nil {
		cache.Add(word, out)
	}
	return out
}

// CacheLen reports how many stems are cached
func (s *Stemmer) CacheLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}

// StemAll applies stemming to multiple words
func (s *Stemmer) StemAll(words []string) []string {
	if !s.IsEnabled() {
		return words
	}

	result := make([]string, 0, len(words))
	for _, word := range words {
		result = append(result, s.Stem(word))
	}

	return result
}

// StemAndGroup groups words by their stem
func (s *Stemmer) StemAndGroup(words []string) map[string][]string {
	groups := make(map[string][]string)

	for _, word := range words {
		st := s.Stem(word)
		groups[st] = append(groups[st], word)
	}

	return groups
}

// StemGroup is a stem together with the distinct words that reduced to it
type StemGroup struct {
	Stem  string   `json:"stem"`
	Words []string `json:"words"`
}

// TopGroups flattens the output of StemAndGroup, drops repeated words, and
// keeps the n groups with the most distinct words. Ties go alphabetically.
func TopGroups(groups map[string][]string, n int) []StemGroup {
	out := make([]StemGroup, 0, len(groups))
	for st, words := range groups {
		seen := make(map[string]bool, len(words))
		distinct := make([]string, 0, len(words))
		for _, w := range words {
			if !seen[w] {
				seen[w] = true
				distinct = append(distinct, w)
			}
		}
		sort.Strings(distinct)
		out = append(out, StemGroup{Stem: st, Words: distinct})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Words) != len(out[j].Words) {
			return len(out[i].Words) > len(out[j].Words)
		}
		return out[i].Stem < out[j].Stem
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// GetVariations returns the candidates that share word's stem.
// For example "running" against [run runs runner ran] gives [run runs].
func (s *Stemmer) GetVariations(word string, candidates []string) []string {
	if !s.IsEnabled() {
		return []string{word}
	}

	target := s.Stem(word)
	var variations []string

	for _, candidate := range candidates {
		if s.Stem(candidate) == target {
			variations = append(variations, candidate)
		}
	}

	return variations
}

// IsExcluded checks if a word is in the exclusion list
func (s *Stemmer) IsExcluded(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exclusions[strings.ToLower(word)]
}

// Analysis holds statistics about how stemming affects a word list
type Analysis struct {
	Algorithm        stem.Algorithm `json:"algorithm"`
	InputWords       int            `json:"input_words"`
	UniqueWords      int            `json:"unique_words"`
	UniqueStems      int            `json:"unique_stems"`
	CompressionRatio float64        `json:"compression_ratio"`
	Stems            []string       `json:"-"`
}

// AnalyzeStemming provides statistics about how stemming affects a word list.
// CompressionRatio is unique stems over input words; lower means more conflation.
func (s *Stemmer) AnalyzeStemming(words []string) *Analysis {
	stems := s.StemAll(words)

	uniqueWords := make(map[string]bool)
	for _, w := range words {
		uniqueWords[strings.ToLower(w)] = true
	}
	uniqueStems := make(map[string]bool)
	for _, st := range stems {
		uniqueStems[st] = true
	}

	ratio := 0.0
	if len(words) > 0 {
		ratio = float64(len(uniqueStems)) / float64(len(words))
	}

	return &Analysis{
		Algorithm:        s.GetAlgorithm(),
		InputWords:       len(words),
		UniqueWords:      len(uniqueWords),
		UniqueStems:      len(uniqueStems),
		CompressionRatio: ratio,
		Stems:            stems,
	}
}
