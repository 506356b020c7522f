package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/docweave/cmd/docweave"
)

func main() {
	if err := docweave.GenManPage(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
