package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	rserrors "github.com/standardbeagle/rootstem/internal/errors"
	"github.com/standardbeagle/rootstem/internal/reference"
	"github.com/standardbeagle/rootstem/internal/semantic"
	"github.com/standardbeagle/rootstem/internal/version"
	"github.com/standardbeagle/rootstem/pkg/stem"
)

// defaultTop is how many stem groups analyze lists when top is not given
const defaultTop = 10

// maxWords caps a single request
const maxWords = 10000

// StemParams are the arguments of the stem tool
type StemParams struct {
	Words     []string `json:"words"`
	Algorithm string   `json:"algorithm,omitempty"`
}

// TraceParams are the arguments of the trace tool
type TraceParams struct {
	Word      string `json:"word"`
	Algorithm string `json:"algorithm,omitempty"`
}

// WordsParams are the arguments of the compare tool
type WordsParams struct {
	Words []string `json:"words"`
}

// ReferenceParams are the arguments of the reference tool
type ReferenceParams struct {
	Words     []string `json:"words"`
	Algorithm string   `json:"algorithm,omitempty"`
}

// AnalyzeParams are the arguments of the analyze tool
type AnalyzeParams struct {
	Text      string `json:"text"`
	Algorithm string `json:"algorithm,omitempty"`
	Top       int    `json:"top,omitempty"`
}

// VariationsParams are the arguments of the variations tool
type VariationsParams struct {
	Word       string   `json:"word"`
	Candidates []string `json:"candidates"`
	Algorithm  string   `json:"algorithm,omitempty"`
}

// StemResult pairs a word with its stem. Excluded marks words on the
// exclusion list, which keep their lowercased form.
type StemResult struct {
	Word     string `json:"word"`
	Stem     string `json:"stem"`
	Excluded bool   `json:"excluded,omitempty"`
}

// StemResponse is returned by the stem tool
type StemResponse struct {
	Algorithm string       `json:"algorithm"`
	Results   []StemResult `json:"results"`
}

// TraceResponse is returned by the trace tool
type TraceResponse struct {
	Word      string      `json:"word"`
	Algorithm string      `json:"algorithm"`
	Stem      string      `json:"stem"`
	Steps     []stem.Step `json:"steps"`
}

// CompareRow holds one word stemmed by every algorithm
type CompareRow struct {
	Word  string            `json:"word"`
	Stems map[string]string `json:"stems"`
	Agree bool              `json:"agree"`
}

// AnalyzeResponse is returned by the analyze tool
type AnalyzeResponse struct {
	*semantic.Analysis
	Groups []semantic.StemGroup `json:"groups"`
}

// VariationsResponse is returned by the variations tool
type VariationsResponse struct {
	Word       string   `json:"word"`
	Stem       string   `json:"stem"`
	Algorithm  string   `json:"algorithm"`
	Variations []string `json:"variations"`
}

// InfoResponse is returned by the info tool
type InfoResponse struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	BuildID    string   `json:"build_id"`
	Build      string   `json:"build"`
	Algorithms []string `json:"algorithms"`
	Algorithm  string   `json:"algorithm"`
	Enabled    bool     `json:"enabled"`
	MinLength  int      `json:"min_length"`
	Exclusions []string `json:"exclusions"`
	CacheSize  int      `json:"cache_size"`
	CacheLen   int      `json:"cache_len"`
	ConfigPath string   `json:"config_path,omitempty"`
}

// decodeParams unmarshals the raw tool arguments into v
func decodeParams(req *mcp.CallToolRequest, v any) error {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return errors.New("missing arguments")
	}
	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// stemmerFor returns the shared stemmer, or a private one when the request
// asks for a different algorithm. The private stemmer keeps the configured
// exclusions and minimum length.
func (s *Server) stemmerFor(name string) (*semantic.Stemmer, error) {
	if strings.TrimSpace(name) == "" {
		return s.stemmer, nil
	}
	alg, err := stem.ParseAlgorithm(name)
	if err != nil {
		return nil, rserrors.NewAlgorithmError(name, err)
	}
	if alg == s.stemmer.GetAlgorithm() {
		return s.stemmer, nil
	}
	cfg, _, _ := s.snapshot()
	st := cfg.Stemming
	st.Algorithm = alg
	st.CacheSize = 0
	return semantic.NewStemmerFromConfig(st), nil
}

func checkWords(words []string) error {
	if len(words) == 0 {
		return errors.New("words must not be empty")
	}
	if len(words) > maxWords {
		return fmt.Errorf("too many words: %d (max %d)", len(words), maxWords)
	}
	return nil
}

func (s *Server) handleInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, _, _ := s.snapshot()
	names := make([]string, 0, len(stem.Algorithms))
	for _, a := range stem.Algorithms {
		names = append(names, a.String())
	}
	return createJSONResponse(InfoResponse{
		Name:       "rootstem",
		Version:    version.Version,
		BuildID:    version.BuildID(),
		Build:      version.FullInfo(),
		Algorithms: names,
		Algorithm:  s.stemmer.GetAlgorithm().String(),
		Enabled:    s.stemmer.IsEnabled(),
		MinLength:  s.stemmer.GetMinLength(),
		Exclusions: s.stemmer.GetExclusions(),
		CacheSize:  cfg.Stemming.CacheSize,
		CacheLen:   s.stemmer.CacheLen(),
		ConfigPath: s.configPath,
	})
}

func (s *Server) handleStem(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p StemParams
	if err := decodeParams(req, &p); err != nil {
		return createErrorResponse("stem", err)
	}
	if err := checkWords(p.Words); err != nil {
		return createErrorResponse("stem", err)
	}
	stemmer, err := s.stemmerFor(p.Algorithm)
	if err != nil {
		return createErrorResponse("stem", err)
	}

	resp := StemResponse{
		Algorithm: stemmer.GetAlgorithm().String(),
		Results:   make([]StemResult, 0, len(p.Words)),
	}
	for _, w := range p.Words {
		resp.Results = append(resp.Results, StemResult{Word: w, Stem: stemmer.Stem(w), Excluded: stemmer.IsExcluded(w)})
	}
	return createJSONResponse(resp)
}

func (s *Server) handleTrace(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p TraceParams
	if err := decodeParams(req, &p); err != nil {
		return createErrorResponse("trace", err)
	}
	if strings.TrimSpace(p.Word) == "" {
		return createErrorResponse("trace", errors.New("word must not be empty"))
	}
	alg := s.stemmer.GetAlgorithm()
	if p.Algorithm != "" {
		parsed, err := stem.ParseAlgorithm(p.Algorithm)
		if err != nil {
			return createErrorResponse("trace", rserrors.NewAlgorithmError(p.Algorithm, err))
		}
		alg = parsed
	}

	out, steps := stem.Trace(p.Word, alg)
	if steps == nil {
		steps = []stem.Step{}
	}
	return createJSONResponse(TraceResponse{
		Word:      p.Word,
		Algorithm: alg.String(),
		Stem:      out,
		Steps:     steps,
	})
}

func (s *Server) handleCompare(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p WordsParams
	if err := decodeParams(req, &p); err != nil {
		return createErrorResponse("compare", err)
	}
	if err := checkWords(p.Words); err != nil {
		return createErrorResponse("compare", err)
	}

	rows := make([]CompareRow, 0, len(p.Words))
	for _, w := range p.Words {
		row := CompareRow{Word: w, Stems: make(map[string]string, len(stem.Algorithms)), Agree: true}
		first := ""
		for i, a := range stem.Algorithms {
			out := stem.Stem(w, a)
			row.Stems[a.String()] = out
			if i == 0 {
				first = out
			} else if out != first {
				row.Agree = false
			}
		}
		rows = append(rows, row)
	}
	return createJSONResponse(rows)
}

func (s *Server) handleReference(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p ReferenceParams
	if err := decodeParams(req, &p); err != nil {
		return createErrorResponse("reference", err)
	}
	if err := checkWords(p.Words); err != nil {
		return createErrorResponse("reference", err)
	}
	cfg, _, comparer := s.snapshot()
	if p.Algorithm != "" {
		alg, err := stem.ParseAlgorithm(p.Algorithm)
		if err != nil {
			return createErrorResponse("reference", rserrors.NewAlgorithmError(p.Algorithm, err))
		}
		if comparer, err = reference.NewComparerFor(alg, cfg.Reference); err != nil {
			return createErrorResponse("reference", err)
		}
	}
	report, err := comparer.CompareAll(p.Words)
	if err != nil {
		return createErrorResponse("reference", err)
	}
	return createJSONResponse(report)
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p AnalyzeParams
	if err := decodeParams(req, &p); err != nil {
		return createErrorResponse("analyze", err)
	}
	stemmer, err := s.stemmerFor(p.Algorithm)
	if err != nil {
		return createErrorResponse("analyze", err)
	}
	_, tokenizer, _ := s.snapshot()
	words := tokenizer.Tokenize(p.Text)
	if len(words) == 0 {
		return createErrorResponse("analyze", errors.New("text contains no words"))
	}
	if err := checkWords(words); err != nil {
		return createErrorResponse("analyze", err)
	}

	top := p.Top
	if top <= 0 {
		top = defaultTop
	}
	return createJSONResponse(AnalyzeResponse{
		Analysis: stemmer.AnalyzeStemming(words),
		Groups:   semantic.TopGroups(stemmer.StemAndGroup(words), top),
	})
}

func (s *Server) handleVariations(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p VariationsParams
	if err := decodeParams(req, &p); err != nil {
		return createErrorResponse("variations", err)
	}
	if strings.TrimSpace(p.Word) == "" {
		return createErrorResponse("variations", errors.New("word must not be empty"))
	}
	if err := checkWords(p.Candidates); err != nil {
		return createErrorResponse("variations", err)
	}
	stemmer, err := s.stemmerFor(p.Algorithm)
	if err != nil {
		return createErrorResponse("variations", err)
	}

	variations := stemmer.GetVariations(p.Word, p.Candidates)
	if variations == nil {
		variations = []string{}
	}
	return createJSONResponse(VariationsResponse{
		Word:       p.Word,
		Stem:       stemmer.Stem(p.Word),
		Algorithm:  stemmer.GetAlgorithm().String(),
		Variations: variations,
	})
}
