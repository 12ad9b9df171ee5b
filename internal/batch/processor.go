// Package batch stems whole corpora: it finds files with doublestar
// patterns, fans them out to a bounded worker group, and folds the results
// into one vocabulary with a stable fingerprint.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/rootstem/internal/config"
	"github.com/standardbeagle/rootstem/internal/debug"
	rserrors "github.com/standardbeagle/rootstem/internal/errors"
	"github.com/standardbeagle/rootstem/internal/semantic"
)

// FileStats describes one processed file
type FileStats struct {
	Path        string `json:"path"`
	Words       int    `json:"words"`
	UniqueWords int    `json:"unique_words"`
	UniqueStems int    `json:"unique_stems"`
	Fingerprint string `json:"fingerprint"`
}

// Result is the outcome of a batch run
type Result struct {
	Files       []FileStats    `json:"files"`
	TotalWords  int            `json:"total_words"`
	UniqueWords int            `json:"unique_words"`
	UniqueStems int            `json:"unique_stems"`
	Fingerprint string         `json:"fingerprint"` // xxhash of the sorted stem vocabulary
	Skipped     []string       `json:"skipped,omitempty"`
	Vocabulary  map[string]int `json:"-"` // stem -> occurrences
	// Errors holds per-file read failures; the run itself still succeeds
	Errors error `json:"-"`
}

// StemCount is one vocabulary entry
type StemCount struct {
	Stem  string `json:"stem"`
	Count int    `json:"count"`
}

// Top returns the n most frequent stems, ties broken alphabetically
func (r *Result) Top(n int) []StemCount {
	out := make([]StemCount, 0, len(r.Vocabulary))
	for s, c := range r.Vocabulary {
		out = append(out, StemCount{Stem: s, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Stem < out[j].Stem
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Processor runs the stemmer over a corpus
type Processor struct {
	scanner   *FileScanner
	stemmer   *semantic.Stemmer
	tokenizer *semantic.Tokenizer
	workers   int
}

// NewProcessor creates a processor. The stemmer is shared by all workers.
func NewProcessor(cfg config.Batch, stemmer *semantic.Stemmer) *Processor {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		scanner:   NewFileScanner(cfg),
		stemmer:   stemmer,
		tokenizer: semantic.NewTokenizer(cfg.SplitIdentifiers, semantic.WithAccentFolding(cfg.FoldAccents)),
		workers:   workers,
	}
}

// fileResult is what a worker hands back for one file
type fileResult struct {
	stats   FileStats
	words   map[string]bool
	stems   map[string]int
	skipped bool
	err     error
}

// Run processes every matching file under root. Unreadable files and
// directories are reported in Result.Errors; cancelling ctx aborts the run.
func (p *Processor) Run(ctx context.Context, root string) (*Result, error) {
	files, walkErrs, err := p.scanner.Discover(ctx, root)
	if err != nil {
		return nil, err
	}
	debug.LogBatch("processing %d files under %s with %d workers\n", len(files), root, p.workers)

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.processFile(filepath.Join(root, filepath.FromSlash(rel)), rel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}

	return merge(results, walkErrs), nil
}

func (p *Processor) processFile(path, rel string) fileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return fileResult{err: rserrors.NewInputError("read", rel, err)}
	}
	if looksBinary(content) {
		debug.LogBatch("skipping binary file %s\n", rel)
		return fileResult{skipped: true, stats: FileStats{Path: rel}}
	}

	res := fileResult{
		stats: FileStats{Path: rel},
		words: make(map[string]bool),
		stems: make(map[string]int),
	}
	err = ScanWords(bytes.NewReader(content), p.tokenizer, func(word string) {
		res.stats.Words++
		res.words[word] = true
		res.stems[p.stemmer.Stem(word)]++
	})
	if err != nil {
		return fileResult{err: rserrors.NewInputError("scan", rel, err)}
	}

	res.stats.UniqueWords = len(res.words)
	res.stats.UniqueStems = len(res.stems)
	res.stats.Fingerprint = Fingerprint(res.stems)
	return res
}

// merge folds per-file results together in path order. errs seeds the
// error list with failures found before any file was read.
func merge(results []fileResult, errs []error) *Result {
	out := &Result{
		Files:      []FileStats{},
		Vocabulary: make(map[string]int),
	}
	words := make(map[string]bool)

	for _, r := range results {
		switch {
		case r.err != nil:
			errs = append(errs, r.err)
			continue
		case r.skipped:
			out.Skipped = append(out.Skipped, r.stats.Path)
			continue
		}
		out.Files = append(out.Files, r.stats)
		out.TotalWords += r.stats.Words
		for w := range r.words {
			words[w] = true
		}
		for s, c := range r.stems {
			out.Vocabulary[s] += c
		}
	}

	out.UniqueWords = len(words)
	out.UniqueStems = len(out.Vocabulary)
	out.Fingerprint = Fingerprint(out.Vocabulary)
	out.Errors = rserrors.NewMultiError(errs).ErrorOrNil()
	return out
}

// Fingerprint hashes the sorted key set of a vocabulary, so two corpora
// with the same stems produce the same value regardless of counts or order
func Fingerprint[V any](vocab map[string]V) string {
	keys := make([]string, 0, len(vocab))
	for k := range vocab {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := xxhash.New()
	for _, k := range keys {
		_, _ = h.WriteString(k)
		_, _ = h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
