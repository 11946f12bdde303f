package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var logger = log.New(os.Stderr, "parlc: ", 0)

var rootCmd = &cobra.Command{
	Use:   "parlc",
	Short: "PArL compiler",
	Long: `parlc compiles PArL source files to the PArL stack VM's text
assembly: a lexer, a recursive-descent parser, a single-pass semantic
analyzer, and a tree-walking code generator, run in sequence.`,
	Version: Version,
}

// Execute runs the root command; it is the sole entry point main calls.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
