// Package main provides the entry point for the wellkeep CLI.
package main

import (
	"os"

	"github.com/raphaelgruber/wellkeep/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
