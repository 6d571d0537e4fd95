package config

// Config represents the complete nova configuration.
// It can be loaded from .nova/config.yml with environment variable overrides.
type Config struct {
	Scanner   ScannerConfig   `yaml:"scanner" mapstructure:"scanner"`
	Graph     GraphConfig     `yaml:"graph" mapstructure:"graph"`
	Languages LanguagesConfig `yaml:"languages" mapstructure:"languages"`
}

// ScannerConfig bounds the directory walk and the extraction pool.
type ScannerConfig struct {
	SkipDirs []string `yaml:"skip_dirs" mapstructure:"skip_dirs"` // directory names never descended into
	Ignore   []string `yaml:"ignore" mapstructure:"ignore"`       // glob patterns to ignore
	MaxFiles int      `yaml:"max_files" mapstructure:"max_files"` // files beyond this are skipped with a warning
	Workers  int      `yaml:"workers" mapstructure:"workers"`     // 0 means available parallelism, capped
}

// GraphConfig bounds the assembled graph.
type GraphConfig struct {
	MaxNodes int `yaml:"max_nodes" mapstructure:"max_nodes"` // graphs above this are degree-trimmed
}

// LanguagesConfig controls language detection.
type LanguagesConfig struct {
	Priority []string `yaml:"priority" mapstructure:"priority"` // detection order for mixed projects
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scanner: ScannerConfig{
			SkipDirs: []string{
				"node_modules",
				"vendor",
				".git",
				".hg",
				".svn",
				"dist",
				"build",
				"out",
				"target",
				"__pycache__",
				".venv",
				"venv",
				".tox",
				".idea",
				".vscode",
				".nova",
			},
			Ignore: []string{
				"*.min.js",
				"*.bundle.js",
				"*_pb2.py",
				"*.pb.go",
				"*.generated.*",
			},
			MaxFiles: 1000,
			Workers:  0,
		},
		Graph: GraphConfig{
			MaxNodes: 200,
		},
		Languages: LanguagesConfig{
			Priority: []string{"cpp", "c", "go", "typescript", "javascript", "python"},
		},
	}
}
