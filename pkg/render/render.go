// Package render builds renderers by format name from a loaded
// configuration.
package render

import (
	"io"
	"os"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/config"
	"github.com/arthur-debert/docweave/pkg/errors"
	"github.com/arthur-debert/docweave/pkg/logging"
	"github.com/arthur-debert/docweave/pkg/render/engine"
	"github.com/arthur-debert/docweave/pkg/render/markdown"
	"github.com/arthur-debert/docweave/pkg/render/org"
	"github.com/arthur-debert/docweave/pkg/render/plaintext"
	"github.com/arthur-debert/docweave/pkg/render/templated"
	"github.com/arthur-debert/docweave/pkg/render/terminal"
	"github.com/arthur-debert/docweave/pkg/render/wiki"
)

// Converter is implemented by renderers that also report diagnostics.
type Converter interface {
	engine.Renderer
	Convert(doc *ast.Document) (*engine.Result, error)
}

// New returns the renderer for format configured from cfg. A nil cfg uses
// the built-in defaults. FormatAuto resolves against standard output.
func New(format Format, cfg *config.Config) (Converter, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := logging.GetLogger("render")
	logger.Debug().Str("format", format.String()).Msg("creating renderer")

	switch format {
	case FormatAuto:
		return New(Resolve(format, stdout), cfg)
	case FormatMarkdown:
		return markdown.New(cfg.Markdown), nil
	case FormatOrg:
		return org.New(cfg.Org), nil
	case FormatPlainText:
		return plaintext.New(cfg.PlainText), nil
	case FormatWiki:
		return wiki.New(cfg.Wiki), nil
	case FormatTemplate:
		r, err := templated.New(cfg.Template)
		if err != nil {
			return nil, err
		}
		return r, nil
	case FormatTerminal:
		return terminal.New(cfg.Terminal), nil
	}
	return nil, errors.Newf(errors.ErrUnknownFormat, "unknown format: %v", format).
		WithDetail("format", int(format))
}

// stdout is the writer FormatAuto resolves against.
var stdout io.Writer = os.Stdout
