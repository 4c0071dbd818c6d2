// Command feel is the FEEL expression and decision-table command-line
// front end: a thin main that delegates straight into the cobra command
// tree.
package main

import (
	"fmt"
	"os"

	"github.com/dmntk-go/dmntk/cmd/feel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
