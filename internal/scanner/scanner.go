package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/Tanmay-Kondhekar/Project-Nova/internal/config"
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/lang"
)

// maxWorkers caps the extraction pool regardless of machine size; extraction
// is parser-bound and stops scaling past this.
const maxWorkers = 8

// Result is everything one scan produced: the detected language, the
// per-file extractions, and the non-fatal noise collected along the way.
type Result struct {
	RootDir        string
	Language       lang.Language
	Extractions    []*lang.Extraction
	ParseErrors    []lang.ParseError
	Warnings       []string
	FilesProcessed int
	SkippedDirs    []string

	// Extensions is the full extension census of the tree, including
	// languages that were not selected.
	Extensions map[string]int
}

// Scanner walks a project tree, detects its language, and runs the matching
// adapter over every eligible file with a bounded worker pool.
type Scanner struct {
	cfg config.ScannerConfig
	reg *lang.Registry

	// OnProgress, when set, is called after each file completes extraction.
	OnProgress func(done, total int)
}

// New creates a scanner over the given registry.
func New(cfg config.ScannerConfig, reg *lang.Registry) *Scanner {
	return &Scanner{cfg: cfg, reg: reg}
}

// Scan walks rootDir and extracts structure from every file of the detected
// (or overridden) language. Per-file failures land in Result.ParseErrors;
// only an unreadable root or an empty walk is an error.
func (s *Scanner) Scan(ctx context.Context, rootDir string, override lang.Language) (*Result, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", rootDir)
	}

	res := &Result{
		RootDir:    rootDir,
		Extensions: make(map[string]int),
	}
	res.Warnings = append(res.Warnings, s.reg.Warnings()...)

	files, err := s.walk(rootDir, res)
	if err != nil {
		return nil, err
	}

	language := override
	if language == "" {
		detected, ok := s.reg.Detect(res.Extensions)
		if !ok {
			return res, nil
		}
		language = detected
	}
	res.Language = language

	if skipped := s.skippedLanguages(language, res.Extensions); len(skipped) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"mixed-language project: analyzing %s only, skipping %s", language, strings.Join(skipped, ", ")))
	}

	adapter, ok := s.reg.ForLanguage(language)
	if !ok {
		return nil, fmt.Errorf("no adapter available for language %q", language)
	}

	selected := filesForLanguage(files, language)
	if len(selected) > s.cfg.MaxFiles {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"file limit reached: analyzing first %d of %d %s files", s.cfg.MaxFiles, len(selected), language))
		selected = selected[:s.cfg.MaxFiles]
	}

	if err := s.extract(ctx, adapter, selected, res); err != nil {
		return nil, err
	}

	// Completion order is nondeterministic; restore path order so repeated
	// runs over unchanged input produce identical results.
	sort.Slice(res.Extractions, func(i, j int) bool {
		return res.Extractions[i].File < res.Extractions[j].File
	})
	sort.Slice(res.ParseErrors, func(i, j int) bool {
		return res.ParseErrors[i].File < res.ParseErrors[j].File
	})

	res.FilesProcessed = len(res.Extractions)
	return res, nil
}

// walk collects every candidate file under rootDir, honoring the skip-dir
// set, the ignore globs, and a root .gitignore when one exists.
func (s *Scanner) walk(rootDir string, res *Result) ([]string, error) {
	skip := make(map[string]bool, len(s.cfg.SkipDirs))
	for _, d := range s.cfg.SkipDirs {
		skip[d] = true
	}

	var ignoreGlobs []glob.Glob
	for _, pattern := range s.cfg.Ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
		ignoreGlobs = append(ignoreGlobs, g)
	}

	var gi *gitignore.GitIgnore
	if matcher, err := gitignore.CompileIgnoreFile(filepath.Join(rootDir, ".gitignore")); err == nil {
		gi = matcher
	}

	var files []string
	skippedSeen := make(map[string]bool)

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, rerr := filepath.Rel(rootDir, path)
		if rerr != nil {
			return rerr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == rootDir {
				return nil
			}
			if skip[d.Name()] {
				if !skippedSeen[d.Name()] {
					skippedSeen[d.Name()] = true
					res.SkippedDirs = append(res.SkippedDirs, d.Name())
				}
				return fs.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel+"/") {
				return fs.SkipDir
			}
			return nil
		}

		for _, g := range ignoreGlobs {
			if g.Match(rel) || g.Match(d.Name()) {
				return nil
			}
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext == "" {
			return nil
		}
		res.Extensions[ext]++
		if _, ok := s.reg.ForExtension(ext); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", rootDir, err)
	}

	sort.Strings(files)
	sort.Strings(res.SkippedDirs)
	return files, nil
}

// filesForLanguage keeps the files whose extension belongs to language.
// skippedLanguages lists the other analyzable languages present in the
// census, sorted, so the mixed-project warning names what was left out.
func (s *Scanner) skippedLanguages(selected lang.Language, extensions map[string]int) []string {
	present := make(map[lang.Language]bool)
	for ext := range extensions {
		if a, ok := s.reg.ForExtension(ext); ok && a.Language() != selected {
			present[a.Language()] = true
		}
	}
	var out []string
	for l := range present {
		out = append(out, string(l))
	}
	sort.Strings(out)
	return out
}

func filesForLanguage(files []string, language lang.Language) []string {
	var out []string
	for _, f := range files {
		for _, ext := range lang.Extensions(language) {
			if strings.EqualFold(filepath.Ext(f), ext) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// extract runs the adapter over every file with a bounded pool. Cancellation
// is checked between files, never mid-parse.
func (s *Scanner) extract(ctx context.Context, adapter lang.Adapter, files []string, res *Result) error {
	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())

	for _, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			source, err := os.ReadFile(path)
			if err != nil {
				mu.Lock()
				res.ParseErrors = append(res.ParseErrors, lang.ParseError{File: path, Reason: err.Error()})
				mu.Unlock()
				return nil
			}

			ext, err := adapter.Extract(lang.SourceUnit{
				Path:     path,
				Language: adapter.Language(),
				Source:   source,
			})

			mu.Lock()
			defer mu.Unlock()
			done++
			if s.OnProgress != nil {
				s.OnProgress(done, len(files))
			}

			if err != nil {
				var perr *lang.ParseError
				if errors.As(err, &perr) {
					res.ParseErrors = append(res.ParseErrors, *perr)
					return nil
				}
				res.ParseErrors = append(res.ParseErrors, lang.ParseError{File: path, Reason: err.Error()})
				return nil
			}
			res.Extractions = append(res.Extractions, ext)
			return nil
		})
	}

	return g.Wait()
}

func (s *Scanner) workers() int {
	n := s.cfg.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > maxWorkers {
		n = maxWorkers
	}
	return n
}
