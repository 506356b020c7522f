// Package markdown renders documents as Markdown. One implementation serves
// CommonMark, GFM and the richer dialects by asking the configured flavor
// which constructs it supports and falling back to HTML or plainer syntax
// when it does not.
package markdown

import (
	"io"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/logging"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

// Renderer writes Markdown. It holds only options and is safe for
// concurrent use.
type Renderer struct {
	opts Options
}

// New returns a Markdown renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts.normalized()}
}

// Options returns the effective options.
func (r *Renderer) Options() Options { return r.opts }

// Render returns doc as Markdown.
func (r *Renderer) Render(doc *ast.Document) (string, error) {
	res, err := r.Convert(doc)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// RenderTo writes doc as Markdown to w.
func (r *Renderer) RenderTo(w io.Writer, doc *ast.Document) error {
	return engine.RenderTo(r, w, doc)
}

// Convert renders doc and returns the output with its diagnostics.
func (r *Renderer) Convert(doc *ast.Document) (*engine.Result, error) {
	logger := logging.GetLogger("render.markdown")
	defer logging.LogOperationStart(logger, "render markdown")()

	st := engine.NewState(r.opts.ListIndentWidth, r.opts.Limits)
	if doc == nil {
		return &engine.Result{Report: st.Report}, nil
	}

	front, err := r.frontMatter(doc)
	if err != nil {
		return nil, err
	}
	body := st.Capture(func() { r.accept(st, doc) })
	out := engine.Cleanup(engine.JoinBlocks([]string{front, body}, "\n\n"))

	logger.Debug().
		Str("flavor", r.opts.Flavor.String()).
		Int("bytes", len(out)).
		Int("diagnostics", st.Report.Len()).
		Msg("render finished")
	return &engine.Result{Output: out, Report: st.Report}, nil
}

// accept dispatches n under the depth guard.
func (r *Renderer) accept(st *engine.State, n ast.Node) {
	if n == nil || ast.IsNil(n) || !st.Enter(n) {
		return
	}
	defer st.Leave()
	ast.Accept[*engine.State](n, r, st)
}

// blocks renders each block in isolation and joins the non-empty results.
func (r *Renderer) blocks(st *engine.State, blocks []ast.Block, sep string) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, st.Capture(func() { r.accept(st, b) }))
	}
	return engine.JoinBlocks(parts, sep)
}

// inlines renders an inline sequence to a string.
func (r *Renderer) inlines(st *engine.State, content []ast.Inline) string {
	return st.Capture(func() {
		for _, n := range content {
			r.accept(st, n)
		}
	})
}

var _ ast.Visitor[*engine.State] = (*Renderer)(nil)
var _ engine.Renderer = (*Renderer)(nil)
