package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Tanmay-Kondhekar/Project-Nova/internal/analyzer"
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/config"
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/export"
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/graph"
)

var (
	analyzeLanguage string
	analyzeOutput   string
	analyzeFilter   string
	analyzeSearch   string
	analyzeMaxNodes int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [dir]",
	Short: "Build the call graph for a project directory",
	Long: `Analyze scans a project tree, extracts every function and call site of
the detected language, resolves calls across files, and prints the graph
as JSON.

The language is auto-detected from file extensions by configured priority;
use --language to force one. Configuration is read from .nova/config.yml
under the project root, with NOVA_* environment overrides.

Examples:
  # Analyze the current directory
  nova analyze

  # Analyze a C++ tree, writing the graph to a file
  nova analyze ./engine --language cpp --output graph.json

  # Only the connected part of the graph
  nova analyze --filter connected-only

  # Everything that can reach a function whose name matches "parse"
  nova analyze --search parse
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "", "Force the project language (cpp, c, go, ts, js, py)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the graph to a file instead of stdout")
	analyzeCmd.Flags().StringVar(&analyzeFilter, "filter", "all", "Node filter: all, connected-only, or public-only")
	analyzeCmd.Flags().StringVar(&analyzeSearch, "search", "", "Restrict the graph to nodes matching this term plus their callers")
	analyzeCmd.Flags().IntVar(&analyzeMaxNodes, "max-nodes", 0, "Override the configured node limit")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted! Cancelling analysis...")
		cancel()
	}()

	rootDir, err := resolveDir(args)
	if err != nil {
		return err
	}

	mode, err := graph.ParseFilterMode(analyzeFilter)
	if err != nil {
		return err
	}

	cfg, err := config.NewLoader(rootDir).Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if analyzeMaxNodes > 0 {
		cfg.Graph.MaxNodes = analyzeMaxNodes
	}

	a := analyzer.New(cfg)
	reporter := NewScanProgressReporter(quietFlag)
	a.OnProgress = reporter.OnProgress

	g, err := a.AnalyzeProject(ctx, rootDir, analyzeLanguage)
	reporter.Finish()
	if err != nil {
		var ie *analyzer.InputError
		if errors.As(err, &ie) {
			return fmt.Errorf("nothing to analyze: %w", ie)
		}
		return err
	}

	if analyzeSearch != "" || mode != graph.FilterAll {
		q, qerr := graph.NewQuery(g)
		if qerr != nil {
			return qerr
		}
		if analyzeSearch != "" {
			if g, qerr = q.Search(analyzeSearch); qerr != nil {
				return qerr
			}
		} else if g, qerr = q.Filter(mode); qerr != nil {
			return qerr
		}
	}

	if !quietFlag {
		log.Printf("Graph: %d of %d functions shown, %d calls, %d files",
			g.Stats.DisplayedFunctions, g.Stats.TotalFunctions,
			g.Stats.TotalCalls, g.Stats.FilesProcessed)
		for _, w := range g.Warnings {
			log.Printf("warning: %s", w)
		}
	}

	return writeGraph(g)
}

func resolveDir(args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Clean(args[0]), nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dir, nil
}

func writeGraph(g *graph.ProjectGraph) error {
	if analyzeOutput == "" {
		return export.Write(os.Stdout, g)
	}
	if err := export.WriteFile(analyzeOutput, g); err != nil {
		return err
	}
	if !quietFlag {
		log.Printf("Graph written to %s", analyzeOutput)
	}
	return nil
}
