// Package main is the entry point for the plantkit CLI tool.
package main

import (
	"os"

	"github.com/plantfolio/plantkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
