package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-pastac/internal/lexer"
	"github.com/cwbudde/go-pastac/internal/token"
)

var (
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file",
	Long: `Tokenize a program and print the resulting tokens.

This command is useful for debugging the scanner and understanding how
source code is tokenized. Unlike the compile pipeline, which stops at the
first lexical error, lex keeps scanning and reports every error it hits.

Examples:
  # Tokenize a file
  pastac lex program.pas

  # Show token kinds and positions
  pastac lex --show-type --show-pos program.pas

  # Show only lexical errors
  pastac lex --only-errors program.pas`,
	Args: cobra.ExactArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only lexical errors")
}

func lexSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	s := lexer.New(input)
	errorCount := 0
	for {
		tok, err := s.Next()
		if err != nil {
			// The scanner has already advanced past the offending
			// character, so scanning can resume on the next call.
			errorCount++
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if tok.Kind == token.EOF {
			break
		}
		if onlyErrors {
			continue
		}
		printToken(tok)
	}

	if errorCount > 0 {
		return fmt.Errorf("%d lexical error(s)", errorCount)
	}
	return nil
}

func printToken(tok token.Token) {
	line := tok.Lexeme
	if showType {
		line = fmt.Sprintf("%-10s %s", tok.Kind, line)
	}
	if showPos {
		line = fmt.Sprintf("%s  [%s]", line, tok.Pos)
	}
	fmt.Println(line)
}
