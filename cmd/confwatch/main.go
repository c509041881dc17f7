// Package main provides the entry point for the confwatch CLI tool.
package main

import (
	"context"
	"os"

	"github.com/confwatch/confwatch/cmd/confwatch/app"
	"github.com/confwatch/confwatch/cmd/confwatch/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := cmd.Execute(ctx, application, os.Args[1:]); err != nil {
		app.ExitOnError(err)
	}
}
