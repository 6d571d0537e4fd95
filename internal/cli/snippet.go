package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tanmay-Kondhekar/Project-Nova/internal/analyzer"
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/config"
)

var snippetLanguage string

// snippetCmd represents the snippet command
var snippetCmd = &cobra.Command{
	Use:   "snippet [file]",
	Short: "Build the call graph for a single piece of code",
	Long: `Snippet analyzes one file (or stdin) as a standalone program: same
extraction and resolution pipeline as a project analysis, minus the
cross-file lookup.

Examples:
  # Analyze a single file
  nova snippet -l python script.py

  # Pipe code in
  cat main.cpp | nova snippet -l cpp
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnippet,
}

func init() {
	rootCmd.AddCommand(snippetCmd)
	snippetCmd.Flags().StringVarP(&snippetLanguage, "language", "l", "", "Snippet language (cpp, c, go, ts, js, py)")
	snippetCmd.MarkFlagRequired("language")
}

func runSnippet(cmd *cobra.Command, args []string) error {
	var (
		code []byte
		err  error
	)
	if len(args) > 0 {
		code, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
	} else {
		code, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	g, err := analyzer.New(config.Default()).AnalyzeSnippet(string(code), snippetLanguage)
	if err != nil {
		return err
	}
	return writeGraph(g)
}
