package cmd

import (
	"fmt"

	"github.com/dmntk-go/dmntk/internal/parser"
	"github.com/spf13/cobra"
)

var parseUnaryTests bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a FEEL expression and print its AST",
	Long: `Parse FEEL source into an AST and print it.

By default the input is parsed as an expression. Use --unary-tests to
parse it as a decision-table input-entry cell (a unary-tests list) instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseUnaryTests, "unary-tests", false, "parse as a unary-tests cell instead of an expression")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, _, err := readInput(args)
	if err != nil {
		return err
	}
	scope, err := rootScope(cmd)
	if err != nil {
		return err
	}

	if parseUnaryTests {
		node, err := parser.ParseUnaryTests(input, scopeNames(scope))
		if err != nil {
			return err
		}
		fmt.Println(node.String())
		return nil
	}

	node, err := parser.ParseExpression(input, scopeNames(scope))
	if err != nil {
		return err
	}
	fmt.Println(node.String())
	return nil
}
