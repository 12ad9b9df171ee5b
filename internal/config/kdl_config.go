package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/rootstem/internal/debug"
	rserrors "github.com/standardbeagle/rootstem/internal/errors"
	"github.com/standardbeagle/rootstem/pkg/stem"
)

// LoadKDL loads configuration from a .rootstem.kdl file. A missing file
// returns nil, nil so callers fall back to defaults.
func LoadKDL(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, rserrors.NewInputError("read config", path, err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	debug.LogConfig("loaded KDL config %s\n", path)
	return cfg, nil
}

// parseKDL applies the document on top of the defaults
func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "stemming":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "algorithm":
					if s, ok := firstStringArg(cn); ok {
						alg, err := stem.ParseAlgorithm(s)
						if err != nil {
							return nil, rserrors.NewConfigError("stemming.algorithm", s, rserrors.NewAlgorithmError(s, err))
						}
						cfg.Stemming.Algorithm = alg
					}
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Stemming.Enabled = b
					}
				case "min_length":
					if v, ok := firstIntArg(cn); ok {
						cfg.Stemming.MinLength = v
					}
				case "cache_size":
					if v, ok := firstIntArg(cn); ok {
						cfg.Stemming.CacheSize = v
					}
				case "exclusions":
					cfg.Stemming.Exclusions = collectStringArgs(cn)
				}
			}
		case "batch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "workers":
					if v, ok := firstIntArg(cn); ok {
						cfg.Batch.Workers = v
					}
				case "include":
					cfg.Batch.Include = collectStringArgs(cn)
				case "exclude":
					cfg.Batch.Exclude = collectStringArgs(cn)
				case "split_identifiers":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Batch.SplitIdentifiers = b
					}
				case "fold_accents":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Batch.FoldAccents = b
					}
				case "max_file_size":
					if v, ok := firstIntArg(cn); ok {
						cfg.Batch.MaxFileSize = int64(v)
					}
					if s, ok := firstStringArg(cn); ok {
						sz, err := parseSize(s)
						if err != nil {
							return nil, rserrors.NewConfigError("batch.max_file_size", s, err)
						}
						cfg.Batch.MaxFileSize = sz
					}
				}
			}
		case "reference":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "threshold":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Reference.Threshold = v
					}
				case "max_reported":
					if v, ok := firstIntArg(cn); ok {
						cfg.Reference.MaxReported = v
					}
				}
			}
		default:
			debug.LogConfig("ignoring unknown KDL node %q\n", nodeName(n))
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		debug.LogConfig("invalid float value for '%s', got %T\n", nodeName(n), n.Arguments[0].Value)
		return 0, false
	}
}

// collectStringArgs reads inline arguments (exclusions "a" "b") or, failing
// that, a block of children (exclusions { "a"; "b" })
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// In block format the node name itself is the string value
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

// parseSize handles size strings like "10MB", "500KB", "1GB"
func parseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return n * multiplier, nil
}
