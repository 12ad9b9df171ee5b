package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/standardbeagle/rootstem/internal/debug"
	rserrors "github.com/standardbeagle/rootstem/internal/errors"
)

// gitignoreRule is one parsed .gitignore line
type gitignoreRule struct {
	pattern   string
	negate    bool
	directory bool
	anchored  bool
}

// GitignorePatterns reads root/.gitignore and returns its rules as
// doublestar exclusion patterns relative to root. A missing file yields no
// patterns. Negated rules are not supported and are skipped.
func GitignorePatterns(root string) ([]string, error) {
	path := filepath.Join(root, ".gitignore")
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, rserrors.NewInputError("open", path, err)
	}
	defer file.Close()

	var out []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rule := parseGitignoreLine(line)
		if rule.negate {
			debug.LogConfig("skipping negated gitignore rule %q\n", line)
			continue
		}
		out = append(out, rule.exclusions()...)
	}
	if err := scanner.Err(); err != nil {
		return nil, rserrors.NewInputError("scan", path, err)
	}
	return out, nil
}

func parseGitignoreLine(line string) gitignoreRule {
	var r gitignoreRule
	if strings.HasPrefix(line, "!") {
		r.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		r.directory = true
		line = strings.TrimSuffix(line, "/")
	}
	// a slash anywhere but the end anchors the rule to the root
	if strings.HasPrefix(line, "/") {
		r.anchored = true
		line = line[1:]
	} else if strings.Contains(line, "/") {
		r.anchored = true
	}
	r.pattern = line
	return r
}

func (r gitignoreRule) exclusions() []string {
	p := r.pattern
	if !r.anchored {
		p = "**/" + p
	}
	if r.directory {
		return []string{p + "/**"}
	}
	// a bare name matches files and whole directories alike
	return []string{p, p + "/**"}
}

// AddGitignore appends the .gitignore rules under root to the batch exclusions
func (b *Batch) AddGitignore(root string) error {
	patterns, err := GitignorePatterns(root)
	if err != nil {
		return err
	}
	b.Exclude = unionStrings(b.Exclude, patterns)
	return nil
}
