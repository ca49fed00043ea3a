// Package main provides the entry point for the automata CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/geange/automata/internal/cli"
)

func main() {
	app := cli.New()

	if err := app.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
