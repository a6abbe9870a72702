// Command sqlb renders and runs SQL statements described in YAML or CUE
// files.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sqlb/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sqlb: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
