package main

import (
	"context"
	"os"

	"github.com/asynkron/applypatch/internal/cli"
)

// main delegates to the CLI package so the command surface stays testable.
func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
