package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var quietFlag bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nova",
	Short: "Nova - cross-file call graph construction for codebases",
	Long: `Nova builds function-level call graphs from source trees.

It extracts declarations and call sites per file, resolves calls across
files by qualified and bare names, and emits a JSON graph of who calls
whom. Supported languages: C, C++, Python, TypeScript, JavaScript, Go.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}
