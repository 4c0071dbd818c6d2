package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "feel",
	Short: "FEEL expression and DMN decision-table evaluator",
	Long: `feel is a command-line front end for the dmntk FEEL engine.

FEEL (Friendly Enough Expression Language) is the expression language of
DMN (Decision Model and Notation). This tool can:
  - tokenize FEEL source (lex)
  - parse FEEL source and print its AST (parse)
  - evaluate a FEEL expression against an optional input context (eval)
  - evaluate a decision table against an input context (table)`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("context", "c", "", "input context as FEEL context literal, e.g. '{x: 1, y: \"a\"}'")
}
