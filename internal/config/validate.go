package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidLimit indicates a non-positive resource limit
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrInvalidPattern indicates an ignore pattern that does not compile
	ErrInvalidPattern = errors.New("invalid ignore pattern")

	// ErrInvalidPriority indicates an unknown language in the priority list
	ErrInvalidPriority = errors.New("invalid language priority")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateScanner(&cfg.Scanner); err != nil {
		errs = append(errs, err)
	}

	if err := validateGraph(&cfg.Graph); err != nil {
		errs = append(errs, err)
	}

	if err := validateLanguages(&cfg.Languages); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateScanner(cfg *ScannerConfig) error {
	var errs []error

	if cfg.MaxFiles <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_files must be positive, got %d", ErrInvalidLimit, cfg.MaxFiles))
	}

	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidLimit, cfg.Workers))
	}

	for _, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateGraph(cfg *GraphConfig) error {
	if cfg.MaxNodes <= 0 {
		return fmt.Errorf("%w: max_nodes must be positive, got %d", ErrInvalidLimit, cfg.MaxNodes)
	}
	return nil
}

func validateLanguages(cfg *LanguagesConfig) error {
	known := map[string]bool{
		"cpp":        true,
		"c":          true,
		"go":         true,
		"typescript": true,
		"javascript": true,
		"python":     true,
	}

	var errs []error
	for _, l := range cfg.Priority {
		if !known[l] {
			errs = append(errs, fmt.Errorf("%w: unknown language %q (valid: cpp, c, go, typescript, javascript, python)", ErrInvalidPriority, l))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
