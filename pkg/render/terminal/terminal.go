// Package terminal previews documents in a terminal. Documents are first
// rendered as Markdown and then styled with glamour.
package terminal

import (
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/logging"
	"github.com/arthur-debert/docweave/pkg/render/engine"
	"github.com/arthur-debert/docweave/pkg/render/markdown"
)

// Style names understood by glamour. Any other value is treated as the
// path to a glamour JSON style file.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

// Options configures the preview.
type Options struct {
	Style    string `koanf:"style"`
	WordWrap int    `koanf:"word_wrap"`

	Markdown markdown.Options `koanf:"-"`
}

// DefaultOptions returns auto-detected styling wrapped at 80 columns.
func DefaultOptions() Options {
	return Options{
		Style:    StyleAuto,
		WordWrap: 80,
		Markdown: markdown.DefaultOptions(),
	}
}

// Renderer styles Markdown output for terminals.
type Renderer struct {
	opts     Options
	markdown *markdown.Renderer
}

// New returns a terminal preview renderer.
func New(opts Options) *Renderer {
	if opts.Style == "" {
		opts.Style = StyleAuto
	}
	if opts.WordWrap < 0 {
		opts.WordWrap = 0
	}
	return &Renderer{opts: opts, markdown: markdown.New(opts.Markdown)}
}

// Options returns the effective options.
func (r *Renderer) Options() Options { return r.opts }

// Render returns doc styled for the terminal.
func (r *Renderer) Render(doc *ast.Document) (string, error) {
	res, err := r.Convert(doc)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// RenderTo writes the styled document to w.
func (r *Renderer) RenderTo(w io.Writer, doc *ast.Document) error {
	return engine.RenderTo(r, w, doc)
}

// Convert renders doc as Markdown and styles it. When glamour fails the
// plain Markdown is returned instead.
func (r *Renderer) Convert(doc *ast.Document) (*engine.Result, error) {
	logger := logging.GetLogger("render.terminal")
	defer logging.LogOperationStart(logger, "render terminal")()

	res, err := r.markdown.Convert(doc)
	if err != nil {
		return nil, err
	}
	if res.Output == "" {
		return res, nil
	}

	styled, err := StyleMarkdown(res.Output, r.opts)
	if err != nil {
		logger.Debug().Err(err).Str("style", r.opts.Style).Msg("glamour failed, using markdown")
		return res, nil
	}
	return &engine.Result{Output: styled, Report: res.Report}, nil
}

// StyleMarkdown styles Markdown text with glamour using the style and
// wrap width from opts. Surrounding newlines are trimmed.
func StyleMarkdown(content string, opts Options) (string, error) {
	var options []glamour.TermRendererOption
	if opts.Style == "" || opts.Style == StyleAuto {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStylePath(opts.Style))
	}
	if opts.WordWrap > 0 {
		options = append(options, glamour.WithWordWrap(opts.WordWrap))
	}

	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", err
	}
	out, err := tr.Render(content)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

var _ engine.Renderer = (*Renderer)(nil)
