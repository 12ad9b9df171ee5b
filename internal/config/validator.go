package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	rserrors "github.com/standardbeagle/rootstem/internal/errors"
	"github.com/standardbeagle/rootstem/pkg/stem"
)

// Validator validates configuration and sets smart defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults.
// Every failure is a ConfigError naming the offending field.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateStemming(&cfg.Stemming); err != nil {
		return err
	}
	if err := v.validateBatch(&cfg.Batch); err != nil {
		return err
	}
	if err := v.validateReference(&cfg.Reference); err != nil {
		return err
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateStemming(s *Stemming) error {
	if !slices.Contains(stem.Algorithms, s.Algorithm) {
		name := s.Algorithm.String()
		return rserrors.NewConfigError("stemming.algorithm", name, rserrors.NewAlgorithmError(name, stem.ErrUnknownAlgorithm))
	}
	if s.MinLength < 1 {
		return rserrors.NewConfigError("stemming.min_length", strconv.Itoa(s.MinLength), fmt.Errorf("must be at least 1"))
	}
	if s.CacheSize < 0 {
		return rserrors.NewConfigError("stemming.cache_size", strconv.Itoa(s.CacheSize), errors.New("cannot be negative"))
	}
	for _, w := range s.Exclusions {
		if strings.TrimSpace(w) == "" {
			return rserrors.NewConfigError("stemming.exclusions", w, errors.New("empty exclusion"))
		}
	}
	return nil
}

func (v *Validator) validateBatch(b *Batch) error {
	if b.Workers < 0 {
		return rserrors.NewConfigError("batch.workers", strconv.Itoa(b.Workers), errors.New("cannot be negative"))
	}
	if b.MaxFileSize < 0 {
		return rserrors.NewConfigError("batch.max_file_size", strconv.FormatInt(b.MaxFileSize, 10), errors.New("cannot be negative"))
	}
	if err := validatePatterns("batch.include", b.Include); err != nil {
		return err
	}
	return validatePatterns("batch.exclude", b.Exclude)
}

func validatePatterns(field string, patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return rserrors.NewConfigError(field, p, errors.New("invalid glob pattern"))
		}
	}
	return nil
}

func (v *Validator) validateReference(r *Reference) error {
	if r.Threshold < 0 || r.Threshold > 1 {
		return rserrors.NewConfigError("reference.threshold", strconv.FormatFloat(r.Threshold, 'f', -1, 64), errors.New("must be between 0 and 1"))
	}
	if r.MaxReported < 0 {
		return rserrors.NewConfigError("reference.max_reported", strconv.Itoa(r.MaxReported), errors.New("cannot be negative"))
	}
	return nil
}

// setSmartDefaults fills in values that depend on the machine
func (v *Validator) setSmartDefaults(cfg *Config) {
	// Leave one core for the system, minimum of 1
	if cfg.Batch.Workers == 0 {
		cfg.Batch.Workers = max(1, runtime.NumCPU()-1)
	}

	if cfg.Batch.MaxFileSize == 0 {
		cfg.Batch.MaxFileSize = Default().Batch.MaxFileSize
	}

	for i, w := range cfg.Stemming.Exclusions {
		cfg.Stemming.Exclusions[i] = strings.ToLower(strings.TrimSpace(w))
	}
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(cfg *Config) error {
	return NewValidator().ValidateAndSetDefaults(cfg)
}
