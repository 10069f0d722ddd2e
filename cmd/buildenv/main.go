// Package main is the entry point for the buildenv CLI.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/buildenv/cmd/buildenv/commands"
	benverrors "github.com/thoreinstein/buildenv/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var exitErr *benverrors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}
	os.Exit(benverrors.ExitUser)
}
