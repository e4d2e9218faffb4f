// Package main is the entry point for the squint CLI tool.
package main

import (
	"os"

	"github.com/squintql/squint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
