// Command sqlclause renders SQL clause fragments from schema documents.
package main

import (
	"os"

	"github.com/syssam/sqlclause/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
