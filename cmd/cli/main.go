package main

import (
	"fmt"
	"os"

	"github.com/de-tools/csat-atlas/pkg/runtime/terminal"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Output:    os.Stdout,
		ErrOutput: os.Stderr,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
