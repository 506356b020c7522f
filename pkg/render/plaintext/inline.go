package plaintext

import (
	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

func (r *Renderer) VisitText(st *engine.State, n *ast.Text) { st.WriteString(n.Content) }

func (r *Renderer) VisitEmphasis(st *engine.State, n *ast.Emphasis) {
	st.WriteString(r.inlines(st, n.Content))
}

func (r *Renderer) VisitStrong(st *engine.State, n *ast.Strong) {
	st.WriteString(r.inlines(st, n.Content))
}

func (r *Renderer) VisitUnderline(st *engine.State, n *ast.Underline) {
	st.WriteString(r.inlines(st, n.Content))
}

func (r *Renderer) VisitStrikethrough(st *engine.State, n *ast.Strikethrough) {
	st.WriteString(r.inlines(st, n.Content))
}

func (r *Renderer) VisitSubscript(st *engine.State, n *ast.Subscript) {
	st.WriteString(r.inlines(st, n.Content))
}

func (r *Renderer) VisitSuperscript(st *engine.State, n *ast.Superscript) {
	st.WriteString(r.inlines(st, n.Content))
}

func (r *Renderer) VisitCode(st *engine.State, n *ast.Code) { st.WriteString(n.Content) }

func (r *Renderer) VisitLink(st *engine.State, n *ast.Link) {
	text := r.inlines(st, n.Content)
	switch {
	case text == "":
		st.WriteString(n.URL)
	case r.opts.IncludeLinkURLs && n.URL != "" && text != n.URL:
		st.WriteString(text + " (" + n.URL + ")")
	default:
		st.WriteString(text)
	}
}

func (r *Renderer) VisitImage(st *engine.State, n *ast.Image) {
	st.WriteString(n.AltText)
}

// Soft breaks become spaces when wrapping so paragraphs reflow as a whole.
func (r *Renderer) VisitLineBreak(st *engine.State, n *ast.LineBreak) {
	if n.Soft && r.opts.MaxLineWidth > 0 {
		st.WriteString(" ")
		return
	}
	st.WriteString("\n")
}

func (r *Renderer) VisitHTMLInline(st *engine.State, n *ast.HTMLInline) {
	if r.opts.IncludeHTML {
		st.WriteString(n.Content)
	}
}

func (r *Renderer) VisitFootnoteReference(st *engine.State, n *ast.FootnoteReference) {
	st.WriteString("[" + n.Identifier + "]")
}

func (r *Renderer) VisitMathInline(st *engine.State, n *ast.MathInline) {
	content, _ := engine.ResolveMath([]ast.Notation{ast.NotationLaTeX}, n.Content, n.Notation, n.Representations)
	st.WriteString(content)
}
