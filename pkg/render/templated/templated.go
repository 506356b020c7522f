// Package templated renders documents through a user supplied text/template.
// Templates receive the document along with helpers that list its headings,
// links, images and footnotes, and that render subtrees with the other
// renderers.
package templated

import (
	"bytes"
	"embed"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/errors"
	"github.com/arthur-debert/docweave/pkg/logging"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

//go:embed templates/*.tmpl
var builtin embed.FS

// Data is the value a template executes against.
type Data struct {
	Document *ast.Document
	Metadata ast.Metadata
	Title    string
	Index    *Index
}

// Renderer executes a parsed template. The template is parsed once by New
// and shared; execution keeps no state between calls.
type Renderer struct {
	opts   Options
	styles *StyleSheet
	tmpl   *template.Template
}

// New parses the configured template and returns a renderer.
func New(opts Options) (*Renderer, error) {
	opts = opts.normalized()
	r := &Renderer{opts: opts, styles: DefaultStyleSheet()}

	if opts.StylesFile != "" {
		sheet, err := LoadStyleSheet(opts.StylesFile)
		if err != nil {
			return nil, err
		}
		r.styles = sheet
	}

	name, source, err := opts.source()
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Funcs(r.funcMap()).Parse(source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateParse, "failed to parse template %s", name).
			WithDetail("template", name)
	}
	r.tmpl = tmpl
	return r, nil
}

func (o Options) source() (string, string, error) {
	switch {
	case o.Template != "":
		return "inline", o.Template, nil
	case o.TemplateFile != "":
		data, err := os.ReadFile(o.TemplateFile)
		if err != nil {
			return "", "", errors.Wrapf(err, errors.ErrTemplateParse, "failed to read template %s", o.TemplateFile).
				WithDetail("path", o.TemplateFile)
		}
		return path.Base(o.TemplateFile), string(data), nil
	}
	data, err := builtin.ReadFile("templates/" + o.Name + ".tmpl")
	if err != nil {
		return "", "", errors.Newf(errors.ErrTemplateParse, "unknown built-in template: %s", o.Name).
			WithDetail("available", BuiltinTemplates())
	}
	return o.Name, string(data), nil
}

// BuiltinTemplates lists the names of the embedded templates.
func BuiltinTemplates() []string {
	entries, err := builtin.ReadDir("templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tmpl"))
	}
	sort.Strings(names)
	return names
}

// Options returns the effective options.
func (r *Renderer) Options() Options { return r.opts }

// Render executes the template against doc.
func (r *Renderer) Render(doc *ast.Document) (string, error) {
	res, err := r.Convert(doc)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// RenderTo writes the template output for doc to w.
func (r *Renderer) RenderTo(w io.Writer, doc *ast.Document) error {
	return engine.RenderTo(r, w, doc)
}

// Convert executes the template and returns its output. The report is
// always empty since templates decide for themselves what to drop.
func (r *Renderer) Convert(doc *ast.Document) (*engine.Result, error) {
	logger := logging.GetLogger("render.templated")
	defer logging.LogOperationStart(logger, "render template")()

	report := &engine.Report{}
	if doc == nil {
		doc = &ast.Document{}
	}
	data := Data{
		Document: doc,
		Metadata: doc.Meta(),
		Title:    doc.Meta().String("title"),
		Index:    NewIndex(doc, r.opts.Limits),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateExecute, "failed to execute template %s", r.tmpl.Name()).
			WithDetail("template", r.tmpl.Name())
	}
	out := buf.String()
	if r.opts.TrimOutput {
		out = strings.TrimSpace(out)
	}

	logger.Debug().
		Str("template", r.tmpl.Name()).
		Int("bytes", len(out)).
		Msg("render finished")
	return &engine.Result{Output: out, Report: report}, nil
}

var _ engine.Renderer = (*Renderer)(nil)
