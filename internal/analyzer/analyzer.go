// Package analyzer is the engine's entry point. It wires the scanner,
// resolver, assembler, and sizer into the two public operations: full
// project analysis and single-snippet analysis.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Tanmay-Kondhekar/Project-Nova/internal/config"
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/graph"
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/lang"
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/resolver"
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/scanner"
)

// InputError marks the one fatal error class: the caller handed us input no
// pipeline stage can work with. Everything downstream of input validation
// degrades into the graph's warning and parse-error lists instead.
type InputError struct {
	Path   string
	Reason string
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Analyzer runs the analysis pipeline. Safe for concurrent use; per-request
// state (symbol index, scan results) never outlives a single call.
type Analyzer struct {
	cfg *config.Config
	reg *lang.Registry

	// OnProgress, when set, receives per-file extraction progress.
	OnProgress func(done, total int)
}

// New builds an analyzer around a validated config.
func New(cfg *config.Config) *Analyzer {
	reg := lang.NewRegistry()
	reg.SetPriority(cfg.Languages.Priority)
	return &Analyzer{cfg: cfg, reg: reg}
}

// AnalyzeProject scans rootDir, extracts every file of the detected (or
// overridden) language, resolves calls across files, and returns the
// assembled graph trimmed to the configured node limit.
func (a *Analyzer) AnalyzeProject(ctx context.Context, rootDir, languageOverride string) (*graph.ProjectGraph, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, &InputError{Path: rootDir, Reason: "project root does not exist"}
	}
	if !info.IsDir() {
		return nil, &InputError{Path: rootDir, Reason: "project root is not a directory"}
	}

	var override lang.Language
	if languageOverride != "" {
		override, err = lang.ParseLanguageTag(languageOverride)
		if err != nil {
			return nil, &InputError{Reason: err.Error()}
		}
	}

	sc := scanner.New(a.cfg.Scanner, a.reg)
	sc.OnProgress = a.OnProgress

	res, err := sc.Scan(ctx, rootDir, override)
	if err != nil {
		return nil, err
	}
	if res.Language == "" || len(res.Extractions) == 0 {
		if len(res.ParseErrors) > 0 {
			// Files were eligible but none yielded structure; that's a
			// degraded result, not bad input.
			return a.assemble(res), nil
		}
		return nil, &InputError{Path: rootDir, Reason: "no supported source files found"}
	}

	return a.assemble(res), nil
}

// AnalyzeSnippet analyzes one piece of code as a single-file project with no
// cross-file resolution.
func (a *Analyzer) AnalyzeSnippet(code, languageTag string) (*graph.ProjectGraph, error) {
	l, err := lang.ParseLanguageTag(languageTag)
	if err != nil {
		return nil, &InputError{Reason: err.Error()}
	}
	adapter, ok := a.reg.ForLanguage(l)
	if !ok {
		return nil, &InputError{Reason: fmt.Sprintf("%s support unavailable", l)}
	}

	res := &scanner.Result{Language: l, Warnings: a.reg.Warnings()}
	unit := lang.SourceUnit{
		Path:     lang.SnippetFileName(l),
		Language: l,
		Source:   []byte(code),
	}
	ext, err := adapter.Extract(unit)
	if err != nil {
		var pe *lang.ParseError
		if !errors.As(err, &pe) {
			return nil, fmt.Errorf("extracting snippet: %w", err)
		}
		res.ParseErrors = append(res.ParseErrors, *pe)
	} else {
		res.Extractions = append(res.Extractions, ext)
	}

	return a.assemble(res), nil
}

func (a *Analyzer) assemble(res *scanner.Result) *graph.ProjectGraph {
	warnings := append([]string{}, a.reg.Warnings()...)
	warnings = append(warnings, res.Warnings...)
	// The registry warnings are already part of res.Warnings for project
	// scans; dedupe keeps the list stable either way.
	warnings = dedupeStrings(warnings)

	g := graph.Assemble(graph.Input{
		Extractions: res.Extractions,
		Resolutions: resolver.New(res.Extractions).Resolve(),
		Warnings:    warnings,
		ParseErrors: res.ParseErrors,
	})
	return graph.Size(g, a.cfg.Graph.MaxNodes)
}

func dedupeStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
