package docweave

import (
	"io"
	"strings"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/docweave/internal/version"
	"github.com/arthur-debert/docweave/pkg/errors"
)

// CompletionShells lists the shells GenCompletion supports.
var CompletionShells = []string{"bash", "zsh", "fish", "powershell"}

// GenCompletion writes the completion script for shell to w.
func GenCompletion(w io.Writer, shell string) error {
	rootCmd := NewRootCmd()

	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		err = rootCmd.GenZshCompletion(w)
	case "fish":
		err = rootCmd.GenFishCompletion(w, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell %q, supported: %s", shell, strings.Join(CompletionShells, ", ")).
			WithDetail("shell", shell)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "failed to generate %s completion", shell)
	}
	return nil
}

// GenManPage writes the docweave(1) man page to w.
func GenManPage(w io.Writer) error {
	rootCmd := NewRootCmd()
	header := &doc.GenManHeader{
		Title:   "DOCWEAVE",
		Section: "1",
		Source:  "docweave " + version.Version,
		Manual:  "docweave manual",
	}
	if err := doc.GenMan(rootCmd, header, w); err != nil {
		return errors.Wrap(err, errors.ErrWrite, "failed to generate man page")
	}
	return nil
}
