// Package org renders documents as Org-mode markup, including TODO
// keywords, priorities, tags and property drawers carried by the
// ast.OrgHeading extension.
package org

import (
	"io"
	"strings"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/logging"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

// Renderer writes Org-mode. It holds only options and is safe for
// concurrent use.
type Renderer struct {
	opts Options
}

// New returns an Org renderer.
func New(opts Options) *Renderer {
	if opts.ListIndentWidth < 0 {
		opts.ListIndentWidth = 0
	}
	return &Renderer{opts: opts}
}

// Render returns doc as Org-mode text.
func (r *Renderer) Render(doc *ast.Document) (string, error) {
	res, err := r.Convert(doc)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// RenderTo writes doc as Org-mode text to w.
func (r *Renderer) RenderTo(w io.Writer, doc *ast.Document) error {
	return engine.RenderTo(r, w, doc)
}

// Convert renders doc and returns the output with its diagnostics.
func (r *Renderer) Convert(doc *ast.Document) (*engine.Result, error) {
	logger := logging.GetLogger("render.org")
	defer logging.LogOperationStart(logger, "render org")()

	st := engine.NewState(r.opts.ListIndentWidth, r.opts.Limits)
	if doc == nil {
		return &engine.Result{Report: st.Report}, nil
	}
	st.Extensions = ast.ExtensionsFromMetadata(doc)
	r.accept(st, doc)

	out := engine.Cleanup(st.Output())
	logger.Debug().Int("bytes", len(out)).Int("extensions", st.Extensions.Len()).Msg("render finished")
	return &engine.Result{Output: out, Report: st.Report}, nil
}

func (r *Renderer) accept(st *engine.State, n ast.Node) {
	if n == nil || ast.IsNil(n) || !st.Enter(n) {
		return
	}
	defer st.Leave()
	ast.Accept[*engine.State](n, r, st)
}

func (r *Renderer) blocks(st *engine.State, blocks []ast.Block, sep string) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, st.Capture(func() { r.accept(st, b) }))
	}
	return engine.JoinBlocks(parts, sep)
}

func (r *Renderer) inlines(st *engine.State, content []ast.Inline) string {
	return st.Capture(func() {
		for _, n := range content {
			r.accept(st, n)
		}
	})
}

func (r *Renderer) VisitDocument(st *engine.State, n *ast.Document) {
	var parts []string
	if r.opts.IncludeKeywords {
		parts = append(parts, documentKeywords(n.Meta()))
	}
	parts = append(parts, r.blocks(st, n.Children, "\n\n"))
	st.WriteString(engine.JoinBlocks(parts, "\n\n"))
}

func documentKeywords(meta ast.Metadata) string {
	var lines []string
	for _, key := range keywords {
		if v := meta.String(key); v != "" {
			lines = append(lines, "#+"+strings.ToUpper(key)+": "+v)
		}
	}
	return strings.Join(lines, "\n")
}

var _ ast.Visitor[*engine.State] = (*Renderer)(nil)
var _ engine.Renderer = (*Renderer)(nil)
