package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/rootstem/internal/config"
	"github.com/standardbeagle/rootstem/internal/debug"
	"github.com/standardbeagle/rootstem/internal/version"
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides.
// Without --config the working directory (and the global config in the home
// directory) is searched.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	return loadConfigFrom(c, ".")
}

// loadConfigFrom is loadConfigWithOverrides searching dir instead of the
// working directory
func loadConfigFrom(c *cli.Context, dir string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := overridesFrom(c).Apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overridesFrom collects the global flags that take precedence over the
// config file
func overridesFrom(c *cli.Context) config.Overrides {
	return config.Overrides{
		Algorithm: c.String("algorithm"),
		NoStem:    c.Bool("no-stem"),
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:                   "rootstem",
		Usage:                  "Reduce English words to their stems with Porter, Snowball or Lancaster",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Reader:                 stdin,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (.kdl or .toml); default searches the current directory",
			},
			&cli.StringFlag{
				Name:    "algorithm",
				Aliases: []string{"a"},
				Usage:   "Stemming algorithm: porter, snowball or lancaster (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "no-stem",
				Usage: "Disable stemming; words pass through lowercased by the tokenizer only",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Print debug information to stderr",
			},
			&cli.BoolFlag{
				Name:  "debug-file",
				Usage: "Write debug information to a log file in the temp directory",
			},
		},
		Before: setupDebug,
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
		Commands: []*cli.Command{
			{
				Name:      "stem",
				Aliases:   []string{"s"},
				Usage:     "Stem words given as arguments, or read from stdin",
				ArgsUsage: "[word...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
				},
				Action: stemCommand,
			},
			{
				Name:      "trace",
				Aliases:   []string{"t"},
				Usage:     "Show every rule that fires while stemming a word",
				ArgsUsage: "<word>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
				},
				Action: traceCommand,
			},
			{
				Name:      "compare",
				Usage:     "Stem words with every algorithm side by side",
				ArgsUsage: "[word...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
				},
				Action: compareCommand,
			},
			{
				Name:      "reference",
				Aliases:   []string{"ref"},
				Usage:     "Check a stemmer against an independent implementation (snowball by default)",
				ArgsUsage: "[word...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
				},
				Action: referenceCommand,
			},
			{
				Name:      "analyze",
				Usage:     "Tokenize text and report how stemming conflates its vocabulary",
				ArgsUsage: "[text...]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "Number of stem groups to list",
						Value:   10,
					},
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
				},
				Action: analyzeCommand,
			},
			{
				Name:      "variations",
				Usage:     "List the candidates that share a word's stem; candidates are read from stdin when not given",
				ArgsUsage: "<word> [candidate...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
				},
				Action: variationsCommand,
			},
			{
				Name:      "batch",
				Aliases:   []string{"b"},
				Usage:     "Stem every matching file under a directory and summarize the vocabulary",
				ArgsUsage: "[dir]",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "include",
						Usage: "Include files matching glob patterns (replaces the configured list)",
					},
					&cli.StringSliceFlag{
						Name:  "exclude",
						Usage: "Exclude files matching glob patterns (added to the configured list)",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Number of files processed in parallel (0 = auto)",
					},
					&cli.BoolFlag{
						Name:  "gitignore",
						Usage: "Also skip paths listed in the directory's .gitignore",
						Value: true,
					},
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "Number of most frequent stems to list",
						Value:   20,
					},
					&cli.BoolFlag{
						Name:  "files",
						Usage: "List per-file statistics",
					},
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
				},
				Action: batchCommand,
			},
			{
				Name:  "version",
				Usage: "Print version and build details",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprintln(c.App.Writer, version.FullInfo())
					return err
				},
			},
			{
				Name:   "mcp",
				Usage:  "Start MCP (Model Context Protocol) server with stdio transport",
				Action: mcpCommand,
			},
			{
				Name:  "config",
				Usage: "Inspect and create configuration files",
				Subcommands: []*cli.Command{
					{
						Name:  "show",
						Usage: "Print the effective configuration",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "format",
								Aliases: []string{"f"},
								Usage:   "Output format: toml or kdl",
								Value:   "toml",
							},
						},
						Action: configShowCommand,
					},
					{
						Name:   "validate",
						Usage:  "Load and validate the configuration",
						Action: configValidateCommand,
					},
					{
						Name:      "init",
						Usage:     "Write a default configuration file",
						ArgsUsage: "[dir]",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "format",
								Aliases: []string{"f"},
								Usage:   "File format: kdl or toml",
								Value:   "kdl",
							},
							&cli.BoolFlag{
								Name:  "force",
								Usage: "Overwrite an existing file",
							},
						},
						Action: configInitCommand,
					},
				},
			},
		},
	}
}

func setupDebug(c *cli.Context) error {
	if c.Bool("debug-file") {
		debug.Enable()
		path, err := debug.InitDebugLogFile()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.ErrWriter, "debug log: %s\n", path)
		return nil
	}
	if c.Bool("debug") {
		debug.Enable()
		debug.SetDebugOutput(c.App.ErrWriter)
	}
	return nil
}

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
