// Package wiki renders documents as MediaWiki markup.
package wiki

import (
	"html"
	"io"
	"strings"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/logging"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

// Renderer writes MediaWiki markup. It holds only options and is safe for
// concurrent use.
type Renderer struct {
	opts Options
}

// New returns a wiki renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render returns doc as wiki markup.
func (r *Renderer) Render(doc *ast.Document) (string, error) {
	res, err := r.Convert(doc)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// RenderTo writes doc as wiki markup to w.
func (r *Renderer) RenderTo(w io.Writer, doc *ast.Document) error {
	return engine.RenderTo(r, w, doc)
}

// Convert renders doc and returns the output with its diagnostics.
func (r *Renderer) Convert(doc *ast.Document) (*engine.Result, error) {
	logger := logging.GetLogger("render.wiki")
	defer logging.LogOperationStart(logger, "render wiki")()

	st := engine.NewState(0, r.opts.Limits)
	if doc != nil {
		r.accept(st, doc)
	}
	return &engine.Result{Output: engine.Cleanup(st.Output()), Report: st.Report}, nil
}

func (r *Renderer) accept(st *engine.State, n ast.Node) {
	if n == nil || ast.IsNil(n) || !st.Enter(n) {
		return
	}
	defer st.Leave()
	ast.Accept[*engine.State](n, r, st)
}

func (r *Renderer) blocks(st *engine.State, blocks []ast.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, st.Capture(func() { r.accept(st, b) }))
	}
	return engine.JoinBlocks(parts, "\n\n")
}

func (r *Renderer) inlines(st *engine.State, content []ast.Inline) string {
	return st.Capture(func() {
		for _, n := range content {
			r.accept(st, n)
		}
	})
}

// VisitDocument writes the body followed by a list-defined <references>
// block holding every footnote definition.
func (r *Renderer) VisitDocument(st *engine.State, n *ast.Document) {
	var body []ast.Block
	var notes []string
	for _, b := range n.Children {
		if fn, ok := b.(*ast.FootnoteDefinition); ok && fn != nil {
			notes = append(notes, st.Capture(func() { r.accept(st, fn) }))
			continue
		}
		body = append(body, b)
	}
	parts := []string{r.blocks(st, body)}
	switch {
	case len(notes) > 0:
		parts = append(parts, "<references>\n"+strings.Join(notes, "\n")+"\n</references>")
	case len(ast.FindAll(n, ast.KindFootnoteReference)) > 0:
		parts = append(parts, "<references />")
	}
	st.WriteString(engine.JoinBlocks(parts, "\n\n"))
}

func (r *Renderer) VisitHeading(st *engine.State, n *ast.Heading) {
	level := n.Level
	if level < ast.MinHeadingLevel || level > ast.MaxHeadingLevel {
		st.Report.Add(engine.DiagHeadingLevel, n.Kind(), "heading level %d clamped", level)
		level = min(max(level, ast.MinHeadingLevel), ast.MaxHeadingLevel)
	}
	marks := strings.Repeat("=", level)
	content := strings.ReplaceAll(r.inlines(st, n.Content), "\n", " ")
	st.WriteString(marks + " " + content + " " + marks)
}

func (r *Renderer) VisitParagraph(st *engine.State, n *ast.Paragraph) {
	st.WriteString(r.inlines(st, n.Content))
}

// listPrefix spells the open lists as MediaWiki prefix characters, e.g.
// "*#" for a numbered list nested in a bulleted one.
func listPrefix(st *engine.State) string {
	var b strings.Builder
	for _, ordered := range st.ListPath() {
		if ordered {
			b.WriteByte('#')
		} else {
			b.WriteByte('*')
		}
	}
	return b.String()
}

func (r *Renderer) VisitList(st *engine.State, n *ast.List) {
	st.PushList(n.Ordered, 1, "*")
	defer st.PopList()

	items := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		if item != nil {
			items = append(items, st.Capture(func() { r.accept(st, item) }))
		}
	}
	// MediaWiki ends a list at the first blank line.
	st.WriteString(strings.Join(items, "\n"))
}

func (r *Renderer) VisitListItem(st *engine.State, n *ast.ListItem) {
	prefix := listPrefix(st)
	marker := prefix + " "
	switch n.Task {
	case ast.TaskChecked:
		marker += "[x] "
	case ast.TaskUnchecked:
		marker += "[ ] "
	}

	var lines []string
	first := true
	for _, child := range n.Children {
		out := st.Capture(func() { r.accept(st, child) })
		if strings.TrimSpace(out) == "" {
			continue
		}
		if _, nested := child.(*ast.List); nested {
			lines = append(lines, out)
			first = false
			continue
		}
		_, code := child.(*ast.CodeBlock)
		for _, line := range strings.Split(out, "\n") {
			if line == "" {
				// Blank lines would end the list; inside code they are content.
				if code && !first {
					lines = append(lines, prefix+":")
				}
				continue
			}
			if first {
				lines = append(lines, marker+line)
				first = false
				continue
			}
			lines = append(lines, prefix+": "+line)
		}
	}
	if len(lines) == 0 {
		st.WriteString(prefix)
		return
	}
	st.WriteString(strings.Join(lines, "\n"))
}

func (r *Renderer) VisitBlockQuote(st *engine.State, n *ast.BlockQuote) {
	st.WriteString("<blockquote>\n" + r.blocks(st, n.Children) + "\n</blockquote>")
}

func (r *Renderer) VisitCodeBlock(st *engine.State, n *ast.CodeBlock) {
	content := strings.TrimSuffix(n.Content, "\n")
	if r.opts.UseSyntaxHighlight && n.Language != "" {
		st.WriteString(`<syntaxhighlight lang="` + html.EscapeString(n.Language) + "\">\n" + content + "\n</syntaxhighlight>")
		return
	}
	st.WriteString("<pre>\n" + html.EscapeString(content) + "\n</pre>")
}

func (r *Renderer) VisitThematicBreak(st *engine.State, _ *ast.ThematicBreak) {
	st.WriteString("----")
}

func (r *Renderer) VisitHTMLBlock(st *engine.State, n *ast.HTMLBlock) {
	st.WriteString(strings.TrimRight(n.Content, "\n"))
}

func (r *Renderer) VisitDefinitionList(st *engine.State, n *ast.DefinitionList) {
	items := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		items = append(items, st.Capture(func() { r.accept(st, item) }))
	}
	st.WriteString(engine.JoinBlocks(items, "\n"))
}

func (r *Renderer) VisitDefinitionItem(st *engine.State, n *ast.DefinitionItem) {
	lines := []string{"; " + st.Capture(func() { r.accept(st, n.Term) })}
	for _, d := range n.Descriptions {
		desc := st.Capture(func() { r.accept(st, d) })
		for _, line := range strings.Split(desc, "\n") {
			if line != "" {
				lines = append(lines, ": "+line)
			}
		}
	}
	st.WriteString(strings.Join(lines, "\n"))
}

func (r *Renderer) VisitDefinitionTerm(st *engine.State, n *ast.DefinitionTerm) {
	st.WriteString(strings.ReplaceAll(r.inlines(st, n.Content), "\n", " "))
}

func (r *Renderer) VisitDefinitionDescription(st *engine.State, n *ast.DefinitionDescription) {
	st.WriteString(r.blocks(st, n.Children))
}

func (r *Renderer) VisitFootnoteDefinition(st *engine.State, n *ast.FootnoteDefinition) {
	body := strings.ReplaceAll(r.blocks(st, n.Content), "\n\n", "<br />")
	st.WriteString(`<ref name="` + html.EscapeString(n.Identifier) + `">` + body + "</ref>")
}

func (r *Renderer) VisitMathBlock(st *engine.State, n *ast.MathBlock) {
	content, _ := engine.ResolveMath([]ast.Notation{ast.NotationLaTeX}, n.Content, n.Notation, n.Representations)
	st.WriteString(`<math display="block">` + strings.TrimSpace(content) + "</math>")
}

var _ ast.Visitor[*engine.State] = (*Renderer)(nil)
var _ engine.Renderer = (*Renderer)(nil)
