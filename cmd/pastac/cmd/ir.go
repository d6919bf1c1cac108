package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-pastac/internal/ir"
	"github.com/cwbudde/go-pastac/internal/parser"
)

var irCmd = &cobra.Command{
	Use:   "ir [file]",
	Short: "Lower a source file to unoptimized three-address code",
	Long: `Parse a program, lower it to three-address intermediate code and
print the instruction listing before any optimization.

Use 'pastac compile' to see the optimized listing.`,
	Args: cobra.ExactArgs(1),
	RunE: runIR,
}

func init() {
	rootCmd.AddCommand(irCmd)
}

func runIR(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(filename)
	if err != nil {
		return err
	}

	prog, err := parser.New(input).Parse()
	if err != nil {
		return reportParseError(err, cfg.Output.Format)
	}

	instrs := ir.Generate(prog)
	fmt.Print(ir.Listing(instrs, fmt.Sprintf("%s (unoptimized)", filename)))
	return nil
}
