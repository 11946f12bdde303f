package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parl-lang/parlc/internal/compiler"
	"github.com/spf13/cobra"
)

var (
	buildOutputFile string
	buildVerbose    bool
	buildTrace      bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a PArL source file to assembly",
	Long: `Compile runs a .par source file through the lexer, parser, semantic
analyzer and code generator, writing the resulting stack-VM assembly
text to a .parlasm file.

Examples:
  parlc build prog.par
  parlc build prog.par -o prog.out`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutputFile, "output", "o", "", "output file (default: <input>.parlasm)")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "verbose output")
	buildCmd.Flags().BoolVar(&buildTrace, "trace-scopes", false, "log scope push/pop events to stderr")
}

func runBuild(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	opts := []compiler.Option{compiler.WithFileName(filename)}
	if buildTrace {
		opts = append(opts, compiler.WithScopeTrace(func(s string) { logger.Print(s) }))
	}

	if buildVerbose {
		logger.Printf("compiling %s...", filename)
	}

	asm, diags, err := compiler.Compile(string(content), opts...)
	if err != nil {
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d.Render())
		}
		return fmt.Errorf("compilation failed")
	}

	outFile := buildOutputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".parlasm"
		} else {
			outFile = filename + ".parlasm"
		}
	}

	if err := os.WriteFile(outFile, []byte(asm+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if buildVerbose {
		logger.Printf("wrote %s", outFile)
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	}
	return nil
}
