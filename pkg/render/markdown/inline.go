package markdown

import (
	"html"
	"strings"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

const specialChars = "\\`*_{}[]#"

func (r *Renderer) VisitText(st *engine.State, n *ast.Text) {
	if r.opts.EscapeSpecial {
		st.WriteString(engine.EscapeChars(n.Content, specialChars))
		return
	}
	st.WriteString(n.Content)
}

func (r *Renderer) VisitEmphasis(st *engine.State, n *ast.Emphasis) {
	r.wrap(st, r.opts.EmphasisSymbol, n.Content)
}

func (r *Renderer) VisitStrong(st *engine.State, n *ast.Strong) {
	r.wrap(st, strings.Repeat(r.opts.EmphasisSymbol, 2), n.Content)
}

func (r *Renderer) VisitUnderline(st *engine.State, n *ast.Underline) {
	r.inlineMode(st, r.opts.UnderlineMode, "u", "__", n.Content)
}

func (r *Renderer) VisitSuperscript(st *engine.State, n *ast.Superscript) {
	r.inlineMode(st, r.opts.SuperscriptMode, "sup", "^", n.Content)
}

func (r *Renderer) VisitSubscript(st *engine.State, n *ast.Subscript) {
	r.inlineMode(st, r.opts.SubscriptMode, "sub", "~", n.Content)
}

func (r *Renderer) VisitStrikethrough(st *engine.State, n *ast.Strikethrough) {
	if r.opts.Flavor.SupportsStrikethrough() {
		r.wrap(st, "~~", n.Content)
		return
	}
	st.Report.Add(engine.DiagCapabilityFallback, n.Kind(), "strikethrough rendered as <del> for flavor %s", r.opts.Flavor)
	st.WriteString("<del>" + r.inlines(st, n.Content) + "</del>")
}

func (r *Renderer) wrap(st *engine.State, delim string, content []ast.Inline) {
	inner := r.inlines(st, content)
	if inner == "" {
		return
	}
	st.WriteString(delim + inner + delim)
}

func (r *Renderer) inlineMode(st *engine.State, mode InlineMode, tag, delim string, content []ast.Inline) {
	switch mode {
	case InlineIgnore:
		st.WriteString(r.inlines(st, content))
	case InlineMarkdown:
		r.wrap(st, delim, content)
	default:
		st.WriteString("<" + tag + ">" + r.inlines(st, content) + "</" + tag + ">")
	}
}

func (r *Renderer) VisitCode(st *engine.State, n *ast.Code) {
	st.WriteString(codeSpan(n.Content))
}

// codeSpan wraps s in a backtick run longer than any run inside it, padding
// with spaces when s starts or ends with a backtick.
func codeSpan(s string) string {
	ticks := strings.Repeat("`", engine.LongestRun(s, '`')+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return ticks + s + ticks
}

func (r *Renderer) VisitLink(st *engine.State, n *ast.Link) {
	text := r.inlines(st, n.Content)
	if n.Title == "" && (text == "" || ast.InlineText(n.Content) == n.URL) && isAutolink(n.URL) {
		st.WriteString("<" + n.URL + ">")
		return
	}
	st.WriteString("[" + text + "](" + destination(n.URL) + title(n.Title) + ")")
}

func (r *Renderer) VisitImage(st *engine.State, n *ast.Image) {
	alt := engine.EscapeChars(n.AltText, `[]`)
	st.WriteString("![" + alt + "](" + destination(n.URL) + title(n.Title) + ")")
}

func isAutolink(url string) bool {
	return strings.Contains(url, "://") && !strings.ContainsAny(url, " <>")
}

func destination(url string) string {
	if strings.ContainsAny(url, " ()") {
		return "<" + strings.NewReplacer("<", "%3C", ">", "%3E").Replace(url) + ">"
	}
	return url
}

func title(t string) string {
	if t == "" {
		return ""
	}
	return ` "` + strings.ReplaceAll(t, `"`, `\"`) + `"`
}

func (r *Renderer) VisitLineBreak(st *engine.State, n *ast.LineBreak) {
	if n.Soft {
		st.WriteString("\n")
		return
	}
	st.WriteString("\\\n")
}

func (r *Renderer) VisitHTMLInline(st *engine.State, n *ast.HTMLInline) {
	st.WriteString(r.rawHTML(st, n, n.Content))
}

func (r *Renderer) VisitFootnoteReference(st *engine.State, n *ast.FootnoteReference) {
	if r.opts.Flavor.SupportsFootnotes() {
		st.WriteString("[^" + n.Identifier + "]")
		return
	}
	st.Report.Add(engine.DiagCapabilityFallback, n.Kind(), "footnote reference rendered as <sup> for flavor %s", r.opts.Flavor)
	st.WriteString("<sup>" + html.EscapeString(n.Identifier) + "</sup>")
}

func (r *Renderer) VisitMathInline(st *engine.State, n *ast.MathInline) {
	content, notation := r.resolveMath(n.Content, n.Notation, n.Representations)
	switch {
	case r.opts.MathMode == MathHTML && notation != ast.NotationLaTeX:
		st.WriteString(content)
	case r.opts.MathMode != MathCode && r.opts.Flavor.SupportsMath():
		st.WriteString("$" + content + "$")
	default:
		if r.opts.MathMode != MathCode {
			st.Report.Add(engine.DiagCapabilityFallback, n.Kind(), "math rendered as code for flavor %s", r.opts.Flavor)
		}
		st.WriteString(codeSpan(content))
	}
}
