// Package main is the ngaudit command.
package main

import (
	"os"

	"github.com/leapstack-labs/ngaudit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
