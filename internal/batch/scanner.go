package batch

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/rootstem/internal/config"
	"github.com/standardbeagle/rootstem/internal/debug"
	rserrors "github.com/standardbeagle/rootstem/internal/errors"
)

// FileScanner finds the corpus files under a root directory
type FileScanner struct {
	include     []string
	exclude     []string
	maxFileSize int64
}

// NewFileScanner creates a scanner from the batch config section
func NewFileScanner(cfg config.Batch) *FileScanner {
	return &FileScanner{
		include:     append([]string(nil), cfg.Include...),
		exclude:     append([]string(nil), cfg.Exclude...),
		maxFileSize: cfg.MaxFileSize,
	}
}

// Discover walks root and returns the slash-separated paths, relative to
// root, of every regular file that passes the include and exclude patterns
// and the size limit. The result is sorted.
//
// Entries below root that cannot be read are skipped and returned as
// walkErrs; only a failure on root itself, or cancellation, is fatal.
func (s *FileScanner) Discover(ctx context.Context, root string) (files []string, walkErrs []error, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if err != nil {
			if rel == "." {
				return rserrors.NewInputError("walk", path, err)
			}
			debug.LogBatch("skipping unreadable %s: %v\n", rel, err)
			walkErrs = append(walkErrs, rserrors.NewInputError("walk", rel, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if s.shouldExclude(rel) || s.shouldExclude(rel+"/") {
				debug.LogBatch("skipping directory %s\n", rel)
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if s.shouldExclude(rel) || !s.shouldInclude(rel) {
			return nil
		}
		if s.maxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				walkErrs = append(walkErrs, rserrors.NewInputError("stat", rel, err))
				return nil
			}
			if info.Size() > s.maxFileSize {
				debug.LogBatch("skipping oversized file %s (%d bytes)\n", rel, info.Size())
				return nil
			}
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(files)
	return files, walkErrs, nil
}

// shouldExclude checks a path against the exclusion patterns
func (s *FileScanner) shouldExclude(path string) bool {
	for _, pattern := range s.exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// bad patterns are rejected by the config validator
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// shouldInclude checks a path against the inclusion patterns; no patterns
// means everything is included
func (s *FileScanner) shouldInclude(path string) bool {
	if len(s.include) == 0 {
		return true
	}
	for _, pattern := range s.include {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
