package cmd

import (
	"fmt"
	"os"

	"github.com/parl-lang/parlc/internal/compiler"
	"github.com/spf13/cobra"
)

var checkVerbose bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse and type-check a PArL source file without writing assembly",
	Long: `Check compiles a .par file the same way build does and reports the
first diagnostic, if any, but discards the generated assembly instead
of writing it to disk. Useful for editor integrations and pre-commit
hooks that only care whether a program is well-formed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "verbose output")
}

func runCheck(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if checkVerbose {
		logger.Printf("checking %s...", filename)
	}

	_, diags, err := compiler.Compile(string(content), compiler.WithFileName(filename))
	if err != nil {
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d.Render())
		}
		return fmt.Errorf("check failed")
	}

	fmt.Printf("%s: OK\n", filename)
	return nil
}
