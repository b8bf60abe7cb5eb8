package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"lhci-action/internal/cli"
)

func main() {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(cli.ExitFailure)
	}
	os.Exit(run(os.Args[1:], os.Environ(), workDir, os.Stdout, os.Stderr))
}

// run executes the CLI and returns an exit code.
// It is separated from main() to enable testing.
func run(args []string, environ []string, workDir string, stdout, stderr io.Writer) int {
	c := cli.NewCLI(cli.Options{
		Environ: environ,
		WorkDir: workDir,
		Stdout:  stdout,
		Stderr:  stderr,
	})
	return c.Run(context.Background(), args)
}
