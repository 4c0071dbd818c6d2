package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmntk-go/dmntk/internal/dtable"
	"github.com/dmntk-go/dmntk/internal/evaluator"
	"github.com/dmntk-go/dmntk/internal/parser"
	"github.com/dmntk-go/dmntk/internal/value"
	"github.com/spf13/cobra"
)

// tableDoc is the on-disk JSON shape a table file is read from: a thin,
// directly-Go-buildable stand-in for a DMN-XML decision table, which this
// command does not parse. Cell strings are FEEL source, compiled the same
// way an inline eval expression is.
type tableDoc struct {
	Policy  string `json:"policy"`
	Inputs  []struct {
		Name string `json:"name"`
		Expr string `json:"expr"`
	} `json:"inputs"`
	Outputs []struct {
		Name    string   `json:"name"`
		Allowed []string `json:"allowed"`
	} `json:"outputs"`
	Rules []struct {
		Tests   []string `json:"tests"`
		Outputs []string `json:"outputs"`
	} `json:"rules"`
}

var tableCmd = &cobra.Command{
	Use:   "table <file.json>",
	Short: "Evaluate a decision table against an input context",
	Long: `Evaluate a decision table, described as a JSON document of FEEL cell
strings, against an input context.

The table document has the shape:
  {
    "policy": "U",
    "inputs":  [{"name": "Customer", "expr": "Customer"}, {"name": "Order", "expr": "Order"}],
    "outputs": [{"name": ""}],
    "rules": [
      {"tests": ["\"Business\"", ">=10"], "outputs": ["0.15"]},
      {"tests": ["\"Business\"", "<10"],  "outputs": ["0.1"]},
      {"tests": ["\"Private\"", "-"],     "outputs": ["0.05"]}
    ]
  }

Example:
  feel table -c '{Customer: "Business", Order: 10}' discount.json`,
	Args: cobra.ExactArgs(1),
	RunE: runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.Flags().BoolVar(&evalJSON, "json", false, "print the result as JSON instead of its FEEL textual form")
}

func runTable(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read table file %s: %w", args[0], err)
	}
	var doc tableDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing table document: %w", err)
	}

	scope, err := rootScope(cmd)
	if err != nil {
		return err
	}
	names := scopeNames(scope)

	table, err := compileTable(&doc, names)
	if err != nil {
		return err
	}

	result := table.Build()(scope)
	return printResult(result)
}

func compileTable(doc *tableDoc, names []string) (*dtable.Table, error) {
	table := &dtable.Table{Policy: dtable.HitPolicy(doc.Policy)}

	for _, in := range doc.Inputs {
		ev, err := compileExpr(in.Expr, names)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", in.Name, err)
		}
		table.Inputs = append(table.Inputs, dtable.Input{Name: in.Name, Expr: ev})
	}
	for _, out := range doc.Outputs {
		table.Outputs = append(table.Outputs, dtable.Output{Name: out.Name, AllowedValues: out.Allowed})
	}
	for ri, rule := range doc.Rules {
		r := dtable.Rule{}
		for ci, cell := range rule.Tests {
			ev, err := compileTest(cell, names)
			if err != nil {
				return nil, fmt.Errorf("rule %d, input column %d: %w", ri, ci, err)
			}
			r.Tests = append(r.Tests, ev)
		}
		for ci, cell := range rule.Outputs {
			ev, err := compileExpr(cell, names)
			if err != nil {
				return nil, fmt.Errorf("rule %d, output column %d: %w", ri, ci, err)
			}
			r.Outputs = append(r.Outputs, ev)
		}
		table.Rules = append(table.Rules, r)
	}
	return table, nil
}

func compileExpr(src string, names []string) (value.Evaluator, error) {
	node, err := parser.ParseExpression(src, names)
	if err != nil {
		return nil, err
	}
	return evaluator.Build(node, src, "")
}

// compileTest compiles one input-entry cell. The `-` wildcard compiles to a
// nil evaluator, matching dtable.Rule's "nil means always matches" contract.
func compileTest(src string, names []string) (value.Evaluator, error) {
	if src == "-" {
		return nil, nil
	}
	node, err := parser.ParseUnaryTests(src, names)
	if err != nil {
		return nil, err
	}
	return evaluator.Build(node, src, "")
}
