package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tanmay-Kondhekar/Project-Nova/internal/project"
)

var metadataJSON bool

// metadataCmd represents the metadata command
var metadataCmd = &cobra.Command{
	Use:   "metadata [dir]",
	Short: "Describe a project: languages, dependencies, tests, structure",
	Long: `Metadata inspects a project tree without building a graph: which
languages it contains, what its manifests declare as dependencies, which
framework it appears to use, where its test files are, and aggregate line
and token counts.

Examples:
  # Human-readable summary of the current directory
  nova metadata

  # Full JSON for another tree
  nova metadata ../service --json
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMetadata,
}

func init() {
	rootCmd.AddCommand(metadataCmd)
	metadataCmd.Flags().BoolVar(&metadataJSON, "json", false, "Emit the full metadata as JSON")
}

func runMetadata(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveDir(args)
	if err != nil {
		return err
	}

	md, err := project.Detect(rootDir)
	if err != nil {
		return err
	}

	if metadataJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(md)
	}

	fmt.Printf("Project: %s\n", md.Root)
	if md.Framework != "" {
		fmt.Printf("Framework: %s\n", md.Framework)
	}
	fmt.Printf("Languages: %s\n", joinOrNone(md.Languages))
	fmt.Printf("Dependencies: %d declared\n", len(md.Dependencies))
	fmt.Printf("Test files: %d\n", len(md.TestFiles))
	fmt.Printf("Source: %d files, %d lines, %d tokens\n",
		md.Metrics.TotalFiles, md.Metrics.TotalLines, md.Metrics.TotalTokens)
	fmt.Println()
	fmt.Println(md.Tree)
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none detected"
	}
	out := items[0]
	for _, item := range items[1:] {
		out += ", " + item
	}
	return out
}
