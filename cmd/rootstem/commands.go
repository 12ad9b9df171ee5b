package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/rootstem/internal/batch"
	"github.com/standardbeagle/rootstem/internal/config"
	"github.com/standardbeagle/rootstem/internal/debug"
	rserrors "github.com/standardbeagle/rootstem/internal/errors"
	"github.com/standardbeagle/rootstem/internal/mcp"
	"github.com/standardbeagle/rootstem/internal/reference"
	"github.com/standardbeagle/rootstem/internal/semantic"
	"github.com/standardbeagle/rootstem/pkg/stem"
)

var errNoWords = errors.New("no words given")

type stemResult struct {
	Word     string `json:"word"`
	Stem     string `json:"stem"`
	Excluded bool   `json:"excluded,omitempty"`
}

type stemOutput struct {
	Algorithm string       `json:"algorithm"`
	Results   []stemResult `json:"results"`
}

type traceOutput struct {
	Word      string      `json:"word"`
	Algorithm string      `json:"algorithm"`
	Stem      string      `json:"stem"`
	Steps     []stem.Step `json:"steps"`
}

type variationsOutput struct {
	Word       string   `json:"word"`
	Stem       string   `json:"stem"`
	Algorithm  string   `json:"algorithm"`
	Variations []string `json:"variations"`
}

type compareRow struct {
	Word  string            `json:"word"`
	Stems map[string]string `json:"stems"`
	Agree bool              `json:"agree"`
}

type analyzeOutput struct {
	*semantic.Analysis
	Groups []semantic.StemGroup `json:"groups"`
}

type batchOutput struct {
	*batch.Result
	Top    []batch.StemCount `json:"top"`
	Errors []string          `json:"errors,omitempty"`
}

func newTokenizer(cfg *config.Config) *semantic.Tokenizer {
	return semantic.NewTokenizer(cfg.Batch.SplitIdentifiers, semantic.WithAccentFolding(cfg.Batch.FoldAccents))
}

// inputWords returns the command arguments, or the words read from stdin
// when there are none
func inputWords(c *cli.Context, cfg *config.Config) ([]string, error) {
	if c.NArg() > 0 {
		return c.Args().Slice(), nil
	}
	var words []string
	err := batch.ScanWords(c.App.Reader, newTokenizer(cfg), func(w string) {
		words = append(words, w)
	})
	if err != nil {
		return nil, rserrors.NewInputError("read", "stdin", err)
	}
	if len(words) == 0 {
		return nil, errNoWords
	}
	return words, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func stemCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	words, err := inputWords(c, cfg)
	if err != nil {
		return err
	}

	stemmer := semantic.NewStemmerFromConfig(cfg.Stemming)
	out := stemOutput{Algorithm: stemmer.GetAlgorithm().String(), Results: make([]stemResult, 0, len(words))}
	for _, w := range words {
		out.Results = append(out.Results, stemResult{Word: w, Stem: stemmer.Stem(w), Excluded: stemmer.IsExcluded(w)})
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, out)
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	for _, r := range out.Results {
		if r.Excluded {
			fmt.Fprintf(tw, "%s\t%s\texcluded\n", r.Word, r.Stem)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", r.Word, r.Stem)
	}
	return tw.Flush()
}

// describeRule renders a rule as "-suffix" or "-suffix > replacement"
func describeRule(s stem.Step) string {
	if s.Replacement == "" {
		return "-" + s.Suffix
	}
	return "-" + s.Suffix + " > " + s.Replacement
}

func traceCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("trace takes exactly one word, got %d", c.NArg())
	}
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	word := c.Args().First()
	alg := cfg.Stemming.Algorithm
	result, steps := stem.Trace(word, alg)
	if steps == nil {
		steps = []stem.Step{}
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, traceOutput{Word: word, Algorithm: alg.String(), Stem: result, Steps: steps})
	}

	fmt.Fprintf(c.App.Writer, "%s -> %s (%s)\n", word, result, alg)
	if len(steps) == 0 {
		fmt.Fprintln(c.App.Writer, "  no rules fired")
		return nil
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  STAGE\tRULE\tBEFORE\tAFTER")
	for _, s := range steps {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", s.Stage, describeRule(s), s.Before, s.After)
	}
	return tw.Flush()
}

func compareCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	words, err := inputWords(c, cfg)
	if err != nil {
		return err
	}

	rows := make([]compareRow, 0, len(words))
	for _, w := range words {
		row := compareRow{Word: w, Stems: make(map[string]string, len(stem.Algorithms)), Agree: true}
		for _, a := range stem.Algorithms {
			row.Stems[a.String()] = stem.Stem(w, a)
			if row.Stems[a.String()] != row.Stems[stem.Algorithms[0].String()] {
				row.Agree = false
			}
		}
		rows = append(rows, row)
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, rows)
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	header := []string{"WORD"}
	for _, a := range stem.Algorithms {
		header = append(header, strings.ToUpper(a.String()))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		cols := []string{row.Word}
		for _, a := range stem.Algorithms {
			cols = append(cols, row.Stems[a.String()])
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	return tw.Flush()
}

func referenceCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	alg := stem.Snowball
	if c.String("algorithm") != "" {
		alg = cfg.Stemming.Algorithm
	}
	comparer, err := reference.NewComparerFor(alg, cfg.Reference)
	if err != nil {
		return err
	}
	words, err := inputWords(c, cfg)
	if err != nil {
		return err
	}

	report, err := comparer.CompareAll(words)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, report)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "%s vs reference: %d/%d agree (%.1f%%), mean similarity %.3f\n",
		report.Algorithm, report.Agreements, report.Total, report.AgreementRate*100, report.MeanSimilarity)
	if len(report.Divergences) == 0 {
		return nil
	}
	fmt.Fprintf(w, "divergences below %.2f:\n", cfg.Reference.Threshold)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  WORD\tENGINE\tREFERENCE\tSIMILARITY")
	for _, d := range report.Divergences {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%.3f\n", d.Word, d.Engine, d.Reference, d.Similarity)
	}
	return tw.Flush()
}

// variationsCommand lists the candidates sharing the first argument's stem.
// Candidates come from the remaining arguments, or from stdin.
func variationsCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("variations needs a word")
	}
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	word := c.Args().First()
	candidates := c.Args().Tail()
	if len(candidates) == 0 {
		err := batch.ScanWords(c.App.Reader, newTokenizer(cfg), func(w string) {
			candidates = append(candidates, w)
		})
		if err != nil {
			return rserrors.NewInputError("read", "stdin", err)
		}
		if len(candidates) == 0 {
			return errNoWords
		}
	}

	stemmer := semantic.NewStemmerFromConfig(cfg.Stemming)
	out := variationsOutput{
		Word:       word,
		Stem:       stemmer.Stem(word),
		Algorithm:  stemmer.GetAlgorithm().String(),
		Variations: stemmer.GetVariations(word, candidates),
	}
	if out.Variations == nil {
		out.Variations = []string{}
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, out)
	}
	w := c.App.Writer
	fmt.Fprintf(w, "%s -> %s (%s)\n", out.Word, out.Stem, out.Algorithm)
	for _, v := range out.Variations {
		fmt.Fprintln(w, v)
	}
	return nil
}

func analyzeCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	var words []string
	if c.NArg() > 0 {
		words = newTokenizer(cfg).Tokenize(strings.Join(c.Args().Slice(), " "))
		if len(words) == 0 {
			return errNoWords
		}
	} else if words, err = inputWords(c, cfg); err != nil {
		return err
	}

	stemmer := semantic.NewStemmerFromConfig(cfg.Stemming)
	out := analyzeOutput{
		Analysis: stemmer.AnalyzeStemming(words),
		Groups:   semantic.TopGroups(stemmer.StemAndGroup(words), c.Int("top")),
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, out)
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "algorithm:\t%s\n", out.Algorithm)
	fmt.Fprintf(tw, "words:\t%d\n", out.InputWords)
	fmt.Fprintf(tw, "unique words:\t%d\n", out.UniqueWords)
	fmt.Fprintf(tw, "unique stems:\t%d\n", out.UniqueStems)
	fmt.Fprintf(tw, "compression:\t%.1f%%\n", out.CompressionRatio*100)
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(out.Groups) == 0 {
		return nil
	}
	fmt.Fprintln(c.App.Writer, "groups:")
	tw = tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	for _, g := range out.Groups {
		fmt.Fprintf(tw, "  %s\t%s\n", g.Stem, strings.Join(g.Words, ", "))
	}
	return tw.Flush()
}

func batchCommand(c *cli.Context) error {
	root := "."
	if c.NArg() > 0 {
		root = c.Args().First()
	}
	cfg, err := loadConfigFrom(c, root)
	if err != nil {
		return err
	}

	if include := c.StringSlice("include"); len(include) > 0 {
		cfg.Batch.Include = include
	}
	if exclude := c.StringSlice("exclude"); len(exclude) > 0 {
		cfg.Batch.Exclude = append(cfg.Batch.Exclude, exclude...)
	}
	if c.IsSet("workers") {
		cfg.Batch.Workers = c.Int("workers")
	}
	if c.Bool("gitignore") {
		if err := cfg.Batch.AddGitignore(root); err != nil {
			return err
		}
	}
	// flag overrides go through the same checks as the file
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	processor := batch.NewProcessor(cfg.Batch, semantic.NewStemmerFromConfig(cfg.Stemming))
	result, err := processor.Run(ctx, root)
	if err != nil {
		return err
	}

	var failures []string
	var multi *rserrors.MultiError
	if errors.As(result.Errors, &multi) {
		for _, e := range multi.Errors {
			failures = append(failures, e.Error())
		}
	}

	out := batchOutput{Result: result, Top: result.Top(c.Int("top")), Errors: failures}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, out)
	}

	for _, f := range failures {
		fmt.Fprintf(c.App.ErrWriter, "warning: %s\n", f)
	}
	writeBatchSummary(c.App.Writer, out, c.Bool("files"))
	return nil
}

func writeBatchSummary(w io.Writer, out batchOutput, perFile bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "files:\t%d (%d skipped, %d failed)\n", len(out.Files), len(out.Skipped), len(out.Errors))
	fmt.Fprintf(tw, "words:\t%d\n", out.TotalWords)
	fmt.Fprintf(tw, "unique words:\t%d\n", out.UniqueWords)
	fmt.Fprintf(tw, "unique stems:\t%d\n", out.UniqueStems)
	fmt.Fprintf(tw, "fingerprint:\t%s\n", out.Fingerprint)
	tw.Flush()

	if perFile && len(out.Files) > 0 {
		fmt.Fprintln(w, "per file:")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  PATH\tWORDS\tUNIQUE\tSTEMS\tFINGERPRINT")
		for _, f := range out.Files {
			fmt.Fprintf(tw, "  %s\t%d\t%d\t%d\t%s\n", f.Path, f.Words, f.UniqueWords, f.UniqueStems, f.Fingerprint)
		}
		tw.Flush()
	}

	if len(out.Top) > 0 {
		fmt.Fprintln(w, "top stems:")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, sc := range out.Top {
			fmt.Fprintf(tw, "  %s\t%d\n", sc.Stem, sc.Count)
		}
		tw.Flush()
	}
}

func mcpCommand(c *cli.Context) error {
	// Enable MCP mode to keep stdout clean for the protocol
	debug.SetMCPMode(true)

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	path := c.String("config")
	if path == "" {
		path = config.Locate(".")
	}

	server, err := mcp.NewServer(cfg, path, overridesFrom(c))
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	debug.LogMCP("starting with config %q\n", path)
	return server.Start(ctx)
}
