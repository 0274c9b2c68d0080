// Package main is the entry point for the configuror CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/configuror/cmd/configuror/commands"
	"github.com/thoreinstein/configuror/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		exitErr := errors.FromLoadError(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr)
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}
}
