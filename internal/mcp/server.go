// Package mcp exposes the stemmers as Model Context Protocol tools over stdio.
package mcp

import (
	"context"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/rootstem/internal/config"
	"github.com/standardbeagle/rootstem/internal/debug"
	"github.com/standardbeagle/rootstem/internal/reference"
	"github.com/standardbeagle/rootstem/internal/semantic"
	"github.com/standardbeagle/rootstem/internal/version"
)

// ToolHandler is the signature every registered tool handler has
type ToolHandler func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Server wires the stemming engine to an MCP server
type Server struct {
	server     *mcp.Server
	configPath string
	overrides  config.Overrides

	mu        sync.RWMutex
	cfg       *config.Config
	stemmer   *semantic.Stemmer
	tokenizer *semantic.Tokenizer
	comparer  *reference.Comparer

	handlers map[string]ToolHandler
}

// NewServer creates a server for cfg. configPath, when set, is watched
// while the server runs and reloaded on change. overrides are applied to
// cfg and to every reloaded config.
func NewServer(cfg *config.Config, configPath string, overrides config.Overrides) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := overrides.Apply(cfg); err != nil {
		return nil, err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	s := &Server{
		configPath: configPath,
		overrides:  overrides,
		cfg:        cfg,
		stemmer:    semantic.NewStemmerFromConfig(cfg.Stemming),
		tokenizer:  semantic.NewTokenizer(cfg.Batch.SplitIdentifiers, semantic.WithAccentFolding(cfg.Batch.FoldAccents)),
		comparer:   reference.NewComparer(cfg.Reference),
		handlers:   make(map[string]ToolHandler),
	}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "rootstem-mcp-server",
		Version: version.Version,
	}, nil)
	s.registerTools()
	return s, nil
}

func (s *Server) addTool(tool *mcp.Tool, handler ToolHandler) {
	s.handlers[tool.Name] = handler
	s.server.AddTool(tool, mcp.ToolHandler(handler))
}

func (s *Server) registerTools() {
	wordList := &jsonschema.Schema{
		Type:        "array",
		Items:       &jsonschema.Schema{Type: "string"},
		Description: "Words to process",
	}
	algorithm := &jsonschema.Schema{
		Type:        "string",
		Description: "Stemming algorithm: porter, snowball or lancaster. Defaults to the configured algorithm.",
		Enum:        []any{"porter", "snowball", "porter2", "english", "lancaster", "paice", "paice-husk"},
	}

	s.addTool(&mcp.Tool{
		Name:        "info",
		Description: "Server version and build, the active configuration, the stem cache size and the available algorithms.",
		InputSchema: &jsonschema.Schema{Type: "object"},
	}, s.handleInfo)

	s.addTool(&mcp.Tool{
		Name:        "stem",
		Description: "Reduce each word to its stem.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"words":     wordList,
				"algorithm": algorithm,
			},
			Required: []string{"words"},
		},
	}, s.handleStem)

	s.addTool(&mcp.Tool{
		Name:        "trace",
		Description: "Stem one word and list every rule that fired, stage by stage.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"word":      {Type: "string", Description: "Word to trace"},
				"algorithm": algorithm,
			},
			Required: []string{"word"},
		},
	}, s.handleTrace)

	s.addTool(&mcp.Tool{
		Name:        "compare",
		Description: "Stem each word with every algorithm side by side.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{"words": wordList},
			Required:   []string{"words"},
		},
	}, s.handleCompare)

	s.addTool(&mcp.Tool{
		Name:        "reference",
		Description: "Check a stemmer against an independent implementation and report divergences. Snowball is checked against porter2, porter against the Snowball project's port. Defaults to snowball.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"words":     wordList,
				"algorithm": {Type: "string", Description: "porter or snowball", Enum: []any{"porter", "snowball", "porter2", "english"}},
			},
			Required: []string{"words"},
		},
	}, s.handleReference)

	s.addTool(&mcp.Tool{
		Name:        "analyze",
		Description: "Tokenize free text, stem it and report how much the vocabulary conflates.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"text":      {Type: "string", Description: "Text to analyze"},
				"algorithm": algorithm,
				"top":       {Type: "integer", Description: "Number of stem groups to list (default 10)"},
			},
			Required: []string{"text"},
		},
	}, s.handleAnalyze)

	s.addTool(&mcp.Tool{
		Name:        "variations",
		Description: "List the candidate words that share a stem with the given word.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"word":       {Type: "string", Description: "Word whose variations are wanted"},
				"candidates": {Type: "array", Items: &jsonschema.Schema{Type: "string"}, Description: "Words to test against the word's stem"},
				"algorithm":  algorithm,
			},
			Required: []string{"word", "candidates"},
		},
	}, s.handleVariations)
}

// Start serves over stdio until ctx is cancelled or the client disconnects
func (s *Server) Start(ctx context.Context) error {
	debug.SetMCPMode(true)
	debug.LogMCP("starting rootstem MCP server %s\n", version.Version)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if s.configPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := config.Watch(ctx, s.configPath, s.reload); err != nil {
				debug.LogMCP("config watch stopped: %v\n", err)
			}
		}()
	}

	err := s.server.Run(ctx, &mcp.StdioTransport{})
	cancel()
	wg.Wait()
	return err
}

// reload swaps in a new configuration. A config that fails to load or
// validate is logged and the previous one stays active.
func (s *Server) reload(cfg *config.Config, err error) {
	if err != nil {
		debug.LogMCP("config reload failed, keeping previous settings: %v\n", err)
		return
	}
	if err := s.overrides.Apply(cfg); err != nil {
		debug.LogMCP("config reload failed, keeping previous settings: %v\n", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.stemmer.Apply(cfg.Stemming)
	s.tokenizer = semantic.NewTokenizer(cfg.Batch.SplitIdentifiers, semantic.WithAccentFolding(cfg.Batch.FoldAccents))
	s.comparer = reference.NewComparer(cfg.Reference)
	debug.LogMCP("config reloaded: algorithm=%s\n", cfg.Stemming.Algorithm)
}

// snapshot returns the current settings under the read lock
func (s *Server) snapshot() (*config.Config, *semantic.Tokenizer, *reference.Comparer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, s.tokenizer, s.comparer
}

// GetHandlerForTesting returns the handler registered under toolName
func (s *Server) GetHandlerForTesting(toolName string) ToolHandler {
	return s.handlers[toolName]
}
