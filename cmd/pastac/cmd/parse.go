package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-pastac/internal/diag"
	perrors "github.com/cwbudde/go-pastac/internal/errors"
	"github.com/cwbudde/go-pastac/internal/parser"
)

var (
	parseDumpAST     bool
	parseNoSemantics bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file and display the AST",
	Long: `Parse a program, run semantic analysis and display the resulting
abstract syntax tree, or report the batched diagnostics if analysis
found errors.

Use --no-semantics for a purely syntactic parse (no declaration checks,
no identifier resolution, no type inference).`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
	parseCmd.Flags().BoolVar(&parseNoSemantics, "no-semantics", false, "skip semantic analysis")
}

func runParse(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(filename)
	if err != nil {
		return err
	}

	var opts []parser.Option
	if parseNoSemantics {
		opts = append(opts, parser.WithoutSemantics())
	}
	p := parser.New(input, opts...)
	prog, err := p.Parse()
	if err != nil {
		return reportParseError(err, cfg.Output.Format)
	}

	if parseDumpAST {
		fmt.Println(prog.String())
	} else {
		fmt.Printf("parsed program %s: %d declaration(s), %d statement(s)\n",
			prog.Name.Name, len(prog.Decls), len(prog.Body.Statements))
	}
	return nil
}

// reportParseError renders a Parse failure: batched semantic diagnostics
// in the configured format, or the single fail-fast lexical/syntax error.
func reportParseError(err error, format string) error {
	type diagnoser interface {
		Diagnostics() []*perrors.Diagnostic
	}
	if de, ok := err.(diagnoser); ok {
		diags := de.Diagnostics()
		if format == "json" {
			out, jerr := diag.JSON(diags)
			if jerr != nil {
				return jerr
			}
			fmt.Fprintln(os.Stderr, string(out))
		} else {
			fmt.Fprint(os.Stderr, diag.Text(diags))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(diags))
	}
	fmt.Fprintln(os.Stderr, err)
	return fmt.Errorf("parsing failed")
}
