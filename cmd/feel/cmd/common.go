package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dmntk-go/dmntk/internal/evaluator"
	"github.com/dmntk-go/dmntk/internal/parser"
	"github.com/dmntk-go/dmntk/internal/value"
	"github.com/spf13/cobra"
)

// readInput resolves the source text for a command: from the single
// positional file argument, or from stdin when none is given.
func readInput(args []string) (string, string, error) {
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(content), "<stdin>", nil
}

// rootScope builds the evaluation root scope from the --context flag, or an
// empty context when unset.
func rootScope(cmd *cobra.Command) (*value.Scope, error) {
	raw, _ := cmd.Flags().GetString("context")
	ctx := value.NewContext()
	if raw == "" {
		return value.NewRootScope(ctx), nil
	}

	node, err := parser.ParseContext(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing --context: %w", err)
	}
	ev, err := evaluator.Build(node, raw, "<context>")
	if err != nil {
		return nil, fmt.Errorf("building --context: %w", err)
	}
	v := ev(value.NewRootScope(value.NewContext()))
	c, ok := v.(*value.Context)
	if !ok {
		return nil, fmt.Errorf("--context must evaluate to a context, got %s", value.TypeOf(v))
	}
	return value.NewRootScope(c), nil
}

// scopeNames lists the names bound in scope, for lexer/parser multi-word
// name disambiguation.
func scopeNames(scope *value.Scope) []string {
	if scope == nil {
		return nil
	}
	return scope.Names()
}
