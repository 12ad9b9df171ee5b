// Package reference cross-checks the stemmers against independent
// implementations and measures how far they drift apart. Snowball is checked
// against porter2, Porter against the Snowball project's port of the
// original algorithm. Lancaster has no reference.
package reference

import (
	"errors"
	"sort"
	"strings"

	snowballRuntime "github.com/blevesearch/snowballstem"
	snowballPorter "github.com/blevesearch/snowballstem/porter"
	"github.com/hbollon/go-edlib"
	"github.com/surgebase/porter2"

	"github.com/standardbeagle/rootstem/internal/config"
	"github.com/standardbeagle/rootstem/internal/debug"
	rserrors "github.com/standardbeagle/rootstem/internal/errors"
	"github.com/standardbeagle/rootstem/pkg/stem"
)

// Comparison is the outcome for one word
type Comparison struct {
	Word       string  `json:"word"`
	Engine     string  `json:"engine"`
	Reference  string  `json:"reference"`
	Agree      bool    `json:"agree"`
	Similarity float32 `json:"similarity"` // normalized Levenshtein, 1 = identical
}

// ErrNoReference is returned for algorithms without a reference implementation
var ErrNoReference = errors.New("no reference implementation")

// Report summarizes a comparison run
type Report struct {
	Algorithm      string       `json:"algorithm"`
	Total          int          `json:"total"`
	Agreements     int          `json:"agreements"`
	AgreementRate  float64      `json:"agreement_rate"`
	MeanSimilarity float64      `json:"mean_similarity"`
	Disagreements  int          `json:"disagreements"`
	Divergences    []Comparison `json:"divergences"` // disagreements below the threshold, worst first
}

// Comparer runs the engine and the reference side by side
type Comparer struct {
	algorithm   stem.Algorithm
	threshold   float64
	maxReported int
	reference   func(string) string
}

// references maps each algorithm to its independent implementation
var references = map[stem.Algorithm]func(string) string{
	stem.Porter:   porterReference,
	stem.Snowball: porter2.Stem,
}

func porterReference(word string) string {
	env := snowballRuntime.NewEnv(word)
	snowballPorter.Stem(env)
	return env.Current()
}

// HasReference reports whether alg can be cross-checked
func HasReference(alg stem.Algorithm) bool {
	_, ok := references[alg]
	return ok
}

// NewComparer creates a Snowball comparer from the reference config section
func NewComparer(cfg config.Reference) *Comparer {
	c, _ := NewComparerFor(stem.Snowball, cfg)
	return c
}

// NewComparerFor creates a comparer that checks alg against its reference
func NewComparerFor(alg stem.Algorithm, cfg config.Reference) (*Comparer, error) {
	ref, ok := references[alg]
	if !ok {
		return nil, rserrors.NewAlgorithmError(alg.String(), ErrNoReference)
	}
	return &Comparer{
		algorithm:   alg,
		threshold:   cfg.Threshold,
		maxReported: cfg.MaxReported,
		reference:   ref,
	}, nil
}

// Algorithm returns the algorithm under test
func (c *Comparer) Algorithm() stem.Algorithm {
	return c.algorithm
}

// Compare stems word both ways
func (c *Comparer) Compare(word string) (Comparison, error) {
	w := strings.ToLower(word)
	engine := stem.Stem(w, c.algorithm)
	ref := c.reference(w)

	cmp := Comparison{
		Word:       word,
		Engine:     engine,
		Reference:  ref,
		Agree:      engine == ref,
		Similarity: 1,
	}
	if cmp.Agree {
		return cmp, nil
	}

	sim, err := edlib.StringsSimilarity(engine, ref, edlib.Levenshtein)
	if err != nil {
		return cmp, err
	}
	cmp.Similarity = sim
	return cmp, nil
}

// CompareAll compares every word and aggregates the result. Duplicate words
// are counted once.
func (c *Comparer) CompareAll(words []string) (*Report, error) {
	report := &Report{Algorithm: c.algorithm.String(), Divergences: []Comparison{}}
	seen := make(map[string]bool, len(words))
	var simTotal float64

	for _, word := range words {
		key := strings.ToLower(word)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		cmp, err := c.Compare(word)
		if err != nil {
			return nil, err
		}
		report.Total++
		simTotal += float64(cmp.Similarity)
		if cmp.Agree {
			report.Agreements++
			continue
		}
		report.Disagreements++
		if float64(cmp.Similarity) < c.threshold {
			report.Divergences = append(report.Divergences, cmp)
		}
	}

	if report.Total > 0 {
		report.AgreementRate = float64(report.Agreements) / float64(report.Total)
		report.MeanSimilarity = simTotal / float64(report.Total)
	}

	sort.SliceStable(report.Divergences, func(i, j int) bool {
		return report.Divergences[i].Similarity < report.Divergences[j].Similarity
	})
	if c.maxReported > 0 && len(report.Divergences) > c.maxReported {
		report.Divergences = report.Divergences[:c.maxReported]
	}

	debug.Log("REFERENCE", "%s: %d words, %d disagreements\n", report.Algorithm, report.Total, report.Disagreements)
	return report, nil
}
