package cmd

import (
	"fmt"

	"github.com/dmntk-go/dmntk/internal/evaluator"
	"github.com/dmntk-go/dmntk/internal/parser"
	"github.com/dmntk-go/dmntk/internal/value"
	"github.com/spf13/cobra"
)

var evalJSON bool

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate a FEEL expression",
	Long: `Evaluate a FEEL expression against an optional input context.

Examples:
  feel eval -e '1 + 2 * 3'
  feel eval -c '{Customer: "Business", Order: 10}' -e 'Order * 2'
  feel eval script.feel`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

var evalExpr string

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVarP(&evalExpr, "expression", "e", "", "evaluate this expression instead of reading from a file/stdin")
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "print the result as JSON instead of its FEEL textual form")
}

func runEval(cmd *cobra.Command, args []string) error {
	var input string
	if evalExpr != "" {
		input = evalExpr
	} else {
		src, _, err := readInput(args)
		if err != nil {
			return err
		}
		input = src
	}

	scope, err := rootScope(cmd)
	if err != nil {
		return err
	}

	node, err := parser.ParseExpression(input, scopeNames(scope))
	if err != nil {
		return err
	}
	ev, err := evaluator.Build(node, input, "")
	if err != nil {
		return err
	}

	result := ev(scope)
	return printResult(result)
}

func printResult(v value.Value) error {
	if evalJSON {
		b, err := value.ToJSON(v)
		if err != nil {
			return fmt.Errorf("encoding result as JSON: %w", err)
		}
		fmt.Println(string(b))
		return nil
	}
	fmt.Println(v.String())
	return nil
}
