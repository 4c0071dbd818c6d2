package cmd

import (
	"fmt"

	"github.com/dmntk-go/dmntk/internal/lexer"
	"github.com/dmntk-go/dmntk/pkg/token"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a FEEL expression",
	Long: `Tokenize FEEL source and print the resulting tokens, one per line.

If no file is given, reads from stdin. Use --context to seed the
scope-aware multi-word name index (so e.g. a context key "loan amount"
lexes as a single name) the way the evaluator would at runtime.

Examples:
  echo 'string length("hi")' | feel lex
  feel lex --context '{x: 1}' script.feel`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	input, _, err := readInput(args)
	if err != nil {
		return err
	}
	scope, err := rootScope(cmd)
	if err != nil {
		return err
	}

	l := lexer.New(input, scopeNames(scope))
	for {
		tok := l.NextToken()
		printToken(tok)
		if tok.Type == token.EOF {
			break
		}
	}
	for _, e := range l.Errors() {
		fmt.Printf("lex error: %s at %s\n", e.Message, e.Pos)
	}
	return nil
}

func printToken(tok token.Token) {
	if tok.Literal == "" {
		fmt.Printf("%-10s @%s\n", tok.Type, tok.Pos)
		return
	}
	fmt.Printf("%-10s %q @%s\n", tok.Type, tok.Literal, tok.Pos)
}
