package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/docweave/cmd/docweave"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <%s>\n", os.Args[0], strings.Join(docweave.CompletionShells, "|"))
		os.Exit(1)
	}

	if err := docweave.GenCompletion(os.Stdout, os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
