// Command calendarium prints the liturgical calendar from the terminal.
package main

import (
	"context"
	"os"

	"github.com/rharbaugh/calendarium/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Stderr))
}
