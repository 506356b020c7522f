package render

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/docweave/pkg/errors"
)

// Format names an output format.
type Format int

const (
	// FormatAuto previews in the terminal when possible and writes Markdown
	// otherwise.
	FormatAuto Format = iota
	FormatMarkdown
	FormatOrg
	FormatPlainText
	FormatWiki
	FormatTemplate
	FormatTerminal
)

var formatNames = map[Format]string{
	FormatAuto:      "auto",
	FormatMarkdown:  "markdown",
	FormatOrg:       "org",
	FormatPlainText: "plaintext",
	FormatWiki:      "wiki",
	FormatTemplate:  "template",
	FormatTerminal:  "terminal",
}

var formatAliases = map[string]Format{
	"":          FormatAuto,
	"md":        FormatMarkdown,
	"orgmode":   FormatOrg,
	"text":      FormatPlainText,
	"txt":       FormatPlainText,
	"plain":     FormatPlainText,
	"mediawiki": FormatWiki,
	"tmpl":      FormatTemplate,
	"term":      FormatTerminal,
}

var formatDescriptions = map[Format]string{
	FormatMarkdown:  "Markdown in the configured flavor",
	FormatOrg:       "Emacs Org-mode",
	FormatPlainText: "plain text with optional word wrapping",
	FormatWiki:      "MediaWiki markup",
	FormatTemplate:  "output of a text/template",
	FormatTerminal:  "styled terminal preview",
}

// String returns the format name.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// Description is a one-line summary of the format.
func (f Format) Description() string {
	return formatDescriptions[f]
}

// ParseFormat parses a format name or alias, case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrUnknownFormat, "unknown format: %s", s).
		WithDetail("format", s)
}

// Formats returns the concrete output formats in declaration order.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatOrg, FormatPlainText, FormatWiki, FormatTemplate, FormatTerminal}
}

// DetectPreview reports whether output is a color capable terminal that
// honours styled previews.
func DetectPreview(output *os.File) bool {
	if output == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Resolve replaces FormatAuto with the format suited to output.
func Resolve(f Format, output io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	if file, ok := output.(*os.File); ok && DetectPreview(file) {
		return FormatTerminal
	}
	return FormatMarkdown
}
