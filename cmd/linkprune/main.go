// Package main is the entry point for the linkprune CLI.
package main

import (
	"os"

	"github.com/linkprune/linkprune/cmd/linkprune/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
