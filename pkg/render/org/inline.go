package org

import (
	"strings"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

func (r *Renderer) VisitText(st *engine.State, n *ast.Text) {
	st.WriteString(n.Content)
}

func (r *Renderer) wrap(st *engine.State, open, close string, content []ast.Inline) {
	inner := r.inlines(st, content)
	if inner == "" {
		return
	}
	st.WriteString(open + inner + close)
}

func (r *Renderer) VisitEmphasis(st *engine.State, n *ast.Emphasis) {
	r.wrap(st, "/", "/", n.Content)
}

func (r *Renderer) VisitStrong(st *engine.State, n *ast.Strong) {
	r.wrap(st, "*", "*", n.Content)
}

func (r *Renderer) VisitUnderline(st *engine.State, n *ast.Underline) {
	r.wrap(st, "_", "_", n.Content)
}

func (r *Renderer) VisitStrikethrough(st *engine.State, n *ast.Strikethrough) {
	r.wrap(st, "+", "+", n.Content)
}

func (r *Renderer) VisitSubscript(st *engine.State, n *ast.Subscript) {
	r.wrap(st, "_{", "}", n.Content)
}

func (r *Renderer) VisitSuperscript(st *engine.State, n *ast.Superscript) {
	r.wrap(st, "^{", "}", n.Content)
}

func (r *Renderer) VisitCode(st *engine.State, n *ast.Code) {
	if n.Content == "" {
		return
	}
	// ~code~ cannot contain a tilde; =verbatim= usually can.
	if strings.Contains(n.Content, "~") {
		st.WriteString("=" + n.Content + "=")
		return
	}
	st.WriteString("~" + n.Content + "~")
}

func (r *Renderer) VisitLink(st *engine.State, n *ast.Link) {
	desc := r.inlines(st, n.Content)
	if desc == "" || desc == n.URL {
		st.WriteString("[[" + n.URL + "]]")
		return
	}
	st.WriteString("[[" + n.URL + "][" + desc + "]]")
}

func (r *Renderer) VisitImage(st *engine.State, n *ast.Image) {
	st.WriteString("[[" + n.URL + "]]")
}

func (r *Renderer) VisitLineBreak(st *engine.State, n *ast.LineBreak) {
	if n.Soft {
		st.WriteString("\n")
		return
	}
	st.WriteString("\\\\\n")
}

func (r *Renderer) VisitHTMLInline(st *engine.State, n *ast.HTMLInline) {
	if n.Content == "" {
		return
	}
	st.WriteString("@@html:" + n.Content + "@@")
}

func (r *Renderer) VisitFootnoteReference(st *engine.State, n *ast.FootnoteReference) {
	st.WriteString("[fn:" + n.Identifier + "]")
}

func (r *Renderer) VisitMathInline(st *engine.State, n *ast.MathInline) {
	content, _ := engine.ResolveMath([]ast.Notation{ast.NotationLaTeX}, n.Content, n.Notation, n.Representations)
	st.WriteString("\\(" + content + "\\)")
}
