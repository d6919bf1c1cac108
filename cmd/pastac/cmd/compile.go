package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-pastac/internal/ir"
	"github.com/cwbudde/go-pastac/internal/optimizer"
	"github.com/cwbudde/go-pastac/internal/parser"
)

var (
	compileOutput string
	compileNoOpt  bool
	compileStats  bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a source file to optimized three-address code",
	Long: `Run the full pipeline: parse, lower to three-address code and
optimize the result to a fixed point, then print the final listing.

Examples:
  # Compile and print the optimized listing
  pastac compile program.pas

  # Write the listing to a file
  pastac compile program.pas -o program.ir

  # Skip the optimizer
  pastac compile program.pas --no-optimize

  # Show what the optimizer did
  pastac compile program.pas --stats`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "write the listing to a file instead of stdout")
	compileCmd.Flags().BoolVar(&compileNoOpt, "no-optimize", false, "skip the optimizer")
	compileCmd.Flags().BoolVar(&compileStats, "stats", false, "print optimizer statistics")
}

func runCompile(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(filename)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	prog, err := parser.New(input).Parse()
	if err != nil {
		return reportParseError(err, cfg.Output.Format)
	}

	instrs := ir.Generate(prog)
	header := fmt.Sprintf("%s (optimized)", filename)
	var stats optimizer.Stats
	if compileNoOpt {
		header = fmt.Sprintf("%s (unoptimized)", filename)
	} else {
		instrs, stats = optimizer.Run(instrs, cfg.OptimizerOptions()...)
	}

	listing := ir.Listing(instrs, header)
	if compileOutput != "" {
		if err := os.WriteFile(compileOutput, []byte(listing), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", compileOutput, err)
		}
	} else {
		fmt.Print(listing)
	}

	if compileStats && !compileNoOpt {
		fmt.Fprintf(os.Stderr, "iterations: %d\n", stats.Iterations)
		fmt.Fprintf(os.Stderr, "instructions: %d -> %d\n", stats.Before, stats.After)
		for _, pass := range optimizer.Passes {
			if n := stats.Applied[pass]; n > 0 {
				fmt.Fprintf(os.Stderr, "  %s: changed in %d iteration(s)\n", pass, n)
			}
		}
	}
	return nil
}
