// Command pricecalc prices spreadsheet price lists from the command line.
package main

import (
	"os"

	"pricelist-profit/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
