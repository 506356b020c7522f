package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/docweave/cmd/docweave"
	"github.com/arthur-debert/docweave/pkg/errors"
)

func main() {
	rootCmd := docweave.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.Debug().
			Str("code", string(errors.GetErrorCode(err))).
			Fields(errors.GetErrorDetails(err)).
			Msg("command failed")
		fmt.Fprintln(os.Stderr, pterm.Error.Sprint(err))
		os.Exit(1)
	}
}
