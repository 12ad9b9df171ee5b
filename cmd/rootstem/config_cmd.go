package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/rootstem/internal/config"
)

func configShowCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	content, err := renderConfig(cfg, c.String("format"))
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, content)
	return nil
}

func configValidateCommand(c *cli.Context) error {
	if _, err := loadConfigWithOverrides(c); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "configuration is invalid: %v\n", err)
		return err
	}
	source := c.String("config")
	if source == "" {
		source = config.Locate(".")
	}
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(c.App.Writer, "configuration is valid (%s)\n", source)
	return nil
}

func configInitCommand(c *cli.Context) error {
	dir := "."
	if c.NArg() > 0 {
		dir = c.Args().First()
	}

	format := strings.ToLower(c.String("format"))
	var name string
	switch format {
	case "kdl":
		name = config.KDLFileName
	case "toml":
		name = config.TOMLFileName
	default:
		return fmt.Errorf("unsupported config format %q (use kdl or toml)", format)
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	content, err := renderConfig(config.Default(), format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
	return nil
}

func renderConfig(cfg *config.Config, format string) (string, error) {
	switch strings.ToLower(format) {
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("failed to encode TOML: %w", err)
		}
		return string(data), nil
	case "kdl":
		return configToKDL(cfg), nil
	}
	return "", fmt.Errorf("unsupported output format %q (use toml or kdl)", format)
}

// configToKDL renders cfg in the layout the KDL loader reads
func configToKDL(cfg *config.Config) string {
	var b strings.Builder
	b.WriteString("// rootstem configuration\n")

	b.WriteString("stemming {\n")
	fmt.Fprintf(&b, "    algorithm %s\n", strconv.Quote(cfg.Stemming.Algorithm.String()))
	fmt.Fprintf(&b, "    enabled %t\n", cfg.Stemming.Enabled)
	fmt.Fprintf(&b, "    min_length %d\n", cfg.Stemming.MinLength)
	fmt.Fprintf(&b, "    cache_size %d\n", cfg.Stemming.CacheSize)
	writeKDLStrings(&b, "exclusions", cfg.Stemming.Exclusions)
	b.WriteString("}\n\n")

	b.WriteString("batch {\n")
	fmt.Fprintf(&b, "    workers %d\n", cfg.Batch.Workers)
	writeKDLStrings(&b, "include", cfg.Batch.Include)
	writeKDLStrings(&b, "exclude", cfg.Batch.Exclude)
	fmt.Fprintf(&b, "    max_file_size %d\n", cfg.Batch.MaxFileSize)
	fmt.Fprintf(&b, "    split_identifiers %t\n", cfg.Batch.SplitIdentifiers)
	fmt.Fprintf(&b, "    fold_accents %t\n", cfg.Batch.FoldAccents)
	b.WriteString("}\n\n")

	b.WriteString("reference {\n")
	fmt.Fprintf(&b, "    threshold %s\n", strconv.FormatFloat(cfg.Reference.Threshold, 'f', -1, 64))
	fmt.Fprintf(&b, "    max_reported %d\n", cfg.Reference.MaxReported)
	b.WriteString("}\n")
	return b.String()
}

// writeKDLStrings writes a node with one string argument per item, or
// nothing when items is empty
func writeKDLStrings(b *strings.Builder, name string, items []string) {
	if len(items) == 0 {
		return
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	fmt.Fprintf(b, "    %s %s\n", name, strings.Join(quoted, " "))
}
