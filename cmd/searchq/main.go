// Command searchq converts expense search queries between their string,
// tree, filter and form representations.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/searchquery/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "searchq: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
