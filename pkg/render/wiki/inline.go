package wiki

import (
	"html"
	"strconv"
	"strings"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

// needsNowiki reports whether s contains sequences MediaWiki would parse as
// markup.
func needsNowiki(s string) bool {
	return strings.ContainsAny(s, "[]{}|<>") ||
		strings.Contains(s, "''") ||
		strings.Contains(s, "~~~") ||
		strings.Contains(s, "__")
}

func (r *Renderer) VisitText(st *engine.State, n *ast.Text) {
	if r.opts.EscapeSpecial && needsNowiki(n.Content) {
		st.WriteString("<nowiki>" + n.Content + "</nowiki>")
		return
	}
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
	r.wrap(st, "''", "''", n.Content)
}

func (r *Renderer) VisitStrong(st *engine.State, n *ast.Strong) {
	r.wrap(st, "'''", "'''", n.Content)
}

func (r *Renderer) VisitUnderline(st *engine.State, n *ast.Underline) {
	r.wrap(st, "<u>", "</u>", n.Content)
}

func (r *Renderer) VisitStrikethrough(st *engine.State, n *ast.Strikethrough) {
	r.wrap(st, "<s>", "</s>", n.Content)
}

func (r *Renderer) VisitSubscript(st *engine.State, n *ast.Subscript) {
	r.wrap(st, "<sub>", "</sub>", n.Content)
}

func (r *Renderer) VisitSuperscript(st *engine.State, n *ast.Superscript) {
	r.wrap(st, "<sup>", "</sup>", n.Content)
}

func (r *Renderer) VisitCode(st *engine.State, n *ast.Code) {
	content := html.EscapeString(n.Content)
	if needsNowiki(n.Content) {
		content = "<nowiki>" + n.Content + "</nowiki>"
	}
	st.WriteString("<code>" + content + "</code>")
}

func (r *Renderer) VisitLink(st *engine.State, n *ast.Link) {
	text := r.inlines(st, n.Content)
	if !strings.Contains(n.URL, "://") && !strings.HasPrefix(n.URL, "mailto:") {
		if text == "" || text == n.URL {
			st.WriteString("[[" + n.URL + "]]")
			return
		}
		st.WriteString("[[" + n.URL + "|" + text + "]]")
		return
	}
	if text == "" {
		st.WriteString("[" + n.URL + "]")
		return
	}
	st.WriteString("[" + n.URL + " " + text + "]")
}

func (r *Renderer) VisitImage(st *engine.State, n *ast.Image) {
	parts := []string{r.opts.ImagePrefix + n.URL}
	switch {
	case n.Width > 0 && n.Height > 0:
		parts = append(parts, strconv.Itoa(n.Width)+"x"+strconv.Itoa(n.Height)+"px")
	case n.Width > 0:
		parts = append(parts, strconv.Itoa(n.Width)+"px")
	}
	if n.AltText != "" {
		parts = append(parts, "alt="+n.AltText, n.AltText)
	}
	st.WriteString("[[" + strings.Join(parts, "|") + "]]")
}

func (r *Renderer) VisitLineBreak(st *engine.State, n *ast.LineBreak) {
	if n.Soft {
		st.WriteString(" ")
		return
	}
	st.WriteString("<br />")
}

func (r *Renderer) VisitHTMLInline(st *engine.State, n *ast.HTMLInline) {
	st.WriteString(n.Content)
}

func (r *Renderer) VisitFootnoteReference(st *engine.State, n *ast.FootnoteReference) {
	st.WriteString(`<ref name="` + html.EscapeString(n.Identifier) + `" />`)
}

func (r *Renderer) VisitMathInline(st *engine.State, n *ast.MathInline) {
	content, _ := engine.ResolveMath([]ast.Notation{ast.NotationLaTeX}, n.Content, n.Notation, n.Representations)
	st.WriteString("<math>" + content + "</math>")
}
