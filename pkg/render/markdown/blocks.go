package markdown

import (
	"html"
	"strings"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

func (r *Renderer) VisitDocument(st *engine.State, n *ast.Document) {
	st.WriteString(r.blocks(st, n.Children, "\n\n"))
}

func (r *Renderer) VisitHeading(st *engine.State, n *ast.Heading) {
	level := n.Level
	if level < ast.MinHeadingLevel || level > ast.MaxHeadingLevel {
		st.Report.Add(engine.DiagHeadingLevel, n.Kind(), "heading level %d clamped", level)
		level = min(max(level, ast.MinHeadingLevel), ast.MaxHeadingLevel)
	}
	content := r.inlines(st, n.Content)

	setext := !r.opts.UseHashHeadings || r.opts.PreferSetextHeadings
	if setext && level <= 2 && strings.TrimSpace(content) != "" {
		underline := "="
		if level == 2 {
			underline = "-"
		}
		width := 0
		for _, line := range strings.Split(content, "\n") {
			width = max(width, engine.DisplayWidth(line))
		}
		st.WriteString(content + "\n" + strings.Repeat(underline, width))
		return
	}
	// ATX headings cannot span lines.
	content = strings.ReplaceAll(content, "\\\n", " ")
	content = strings.ReplaceAll(content, "\n", " ")
	st.WriteString(strings.Repeat("#", level) + " " + content)
}

func (r *Renderer) VisitParagraph(st *engine.State, n *ast.Paragraph) {
	st.WriteString(r.inlines(st, n.Content))
}

func (r *Renderer) VisitList(st *engine.State, n *ast.List) {
	bullets := []rune(r.opts.BulletSymbols)
	bullet := string(bullets[st.ListDepth()%len(bullets)])
	start := n.Start
	if start == 0 {
		start = 1
	}

	st.PushList(n.Ordered, start, bullet)
	st.SetListTight(n.Tight)
	defer st.PopList()

	sep := "\n\n"
	if n.Tight {
		sep = "\n"
	}
	items := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		if item == nil {
			continue
		}
		items = append(items, st.Capture(func() { r.accept(st, item) }))
	}
	st.WriteString(strings.Join(items, sep))
}

func (r *Renderer) VisitListItem(st *engine.State, n *ast.ListItem) {
	marker := st.NextMarker()
	if n.Task != ast.TaskNone {
		if r.opts.Flavor.SupportsTaskLists() {
			if n.Task == ast.TaskChecked {
				marker += "[x] "
			} else {
				marker += "[ ] "
			}
		} else {
			st.Report.Add(engine.DiagCapabilityFallback, n.Kind(), "task status dropped for flavor %s", r.opts.Flavor)
		}
	}

	sep := "\n\n"
	if st.ListTight() {
		sep = "\n"
	}
	st.PushIndent()
	body := r.blocks(st, n.Children, sep)
	st.PopIndent()

	if body == "" {
		st.WriteString(strings.TrimRight(marker, " "))
		return
	}
	first, rest := engine.FirstLineRest(body)
	st.WriteString(marker + first)
	if rest != "" {
		st.WriteString("\n" + engine.IndentLines(rest, st.IndentUnit()))
	}
}

func (r *Renderer) VisitBlockQuote(st *engine.State, n *ast.BlockQuote) {
	body := r.blocks(st, n.Children, "\n\n")
	if body == "" {
		st.WriteString(">")
		return
	}
	st.WriteString(engine.PrefixLines(body, "> ", ">"))
}

func (r *Renderer) VisitCodeBlock(st *engine.State, n *ast.CodeBlock) {
	char := rune(r.opts.CodeFenceChar[0])
	if n.FenceChar == '`' || n.FenceChar == '~' {
		char = n.FenceChar
	}
	fence := engine.Fence(n.Content, char, max(r.opts.CodeFenceMin, n.FenceLength))
	content := strings.TrimSuffix(n.Content, "\n")
	st.WriteString(fence + n.Language + "\n")
	if content != "" {
		st.WriteString(content + "\n")
	}
	st.WriteString(fence)
}

func (r *Renderer) VisitThematicBreak(st *engine.State, _ *ast.ThematicBreak) {
	st.WriteString("---")
}

func (r *Renderer) VisitHTMLBlock(st *engine.State, n *ast.HTMLBlock) {
	st.WriteString(r.rawHTML(st, n, strings.TrimRight(n.Content, "\n")))
}

func (r *Renderer) rawHTML(st *engine.State, n ast.Node, content string) string {
	switch r.opts.HTMLPassthrough {
	case HTMLEscape:
		return html.EscapeString(content)
	case HTMLDrop:
		if content != "" {
			st.Report.Add(engine.DiagDropped, n.Kind(), "raw HTML dropped")
		}
		return ""
	default:
		return content
	}
}

func (r *Renderer) VisitDefinitionList(st *engine.State, n *ast.DefinitionList) {
	if !r.opts.Flavor.SupportsDefinitionLists() {
		st.Report.Add(engine.DiagCapabilityFallback, n.Kind(), "definition list rendered as paragraphs for flavor %s", r.opts.Flavor)
	}
	parts := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		parts = append(parts, st.Capture(func() { r.accept(st, item) }))
	}
	st.WriteString(engine.JoinBlocks(parts, "\n\n"))
}

func (r *Renderer) VisitDefinitionItem(st *engine.State, n *ast.DefinitionItem) {
	term := st.Capture(func() { r.accept(st, n.Term) })
	native := r.opts.Flavor.SupportsDefinitionLists()
	if !native && term != "" {
		strong := strings.Repeat(r.opts.EmphasisSymbol, 2)
		term = strong + term + strong
	}
	lines := []string{term}
	for _, d := range n.Descriptions {
		desc := st.Capture(func() { r.accept(st, d) })
		if desc == "" {
			continue
		}
		if native {
			first, rest := engine.FirstLineRest(desc)
			desc = ": " + first
			if rest != "" {
				desc += "\n" + engine.IndentLines(rest, st.IndentUnit())
			}
		}
		lines = append(lines, desc)
	}
	st.WriteString(strings.Join(lines, "\n"))
}

func (r *Renderer) VisitDefinitionTerm(st *engine.State, n *ast.DefinitionTerm) {
	st.WriteString(r.inlines(st, n.Content))
}

func (r *Renderer) VisitDefinitionDescription(st *engine.State, n *ast.DefinitionDescription) {
	st.WriteString(r.blocks(st, n.Children, "\n\n"))
}

func (r *Renderer) VisitFootnoteDefinition(st *engine.State, n *ast.FootnoteDefinition) {
	body := r.blocks(st, n.Content, "\n\n")
	label := "[^" + n.Identifier + "]: "
	if !r.opts.Flavor.SupportsFootnotes() {
		st.Report.Add(engine.DiagCapabilityFallback, n.Kind(), "footnote %q rendered inline for flavor %s", n.Identifier, r.opts.Flavor)
		label = "<sup>" + html.EscapeString(n.Identifier) + "</sup> "
	}
	first, rest := engine.FirstLineRest(body)
	st.WriteString(label + first)
	if rest != "" {
		st.WriteString("\n" + engine.IndentLines(rest, engine.Spaces(4)))
	}
}

func (r *Renderer) VisitMathBlock(st *engine.State, n *ast.MathBlock) {
	content, notation := r.resolveMath(n.Content, n.Notation, n.Representations)
	content = strings.TrimSpace(content)
	switch {
	case r.opts.MathMode == MathHTML && notation != ast.NotationLaTeX:
		st.WriteString(content)
	case r.opts.MathMode != MathCode && r.opts.Flavor.SupportsMath():
		st.WriteString("$$\n" + content + "\n$$")
	default:
		if r.opts.MathMode != MathCode {
			st.Report.Add(engine.DiagCapabilityFallback, n.Kind(), "math rendered as code for flavor %s", r.opts.Flavor)
		}
		fence := engine.Fence(content, '`', r.opts.CodeFenceMin)
		st.WriteString(fence + "math\n" + content + "\n" + fence)
	}
}

func (r *Renderer) resolveMath(content string, notation ast.Notation, reps map[ast.Notation]string) (string, ast.Notation) {
	prefs := []ast.Notation{ast.NotationLaTeX}
	if r.opts.MathMode == MathHTML {
		prefs = []ast.Notation{ast.NotationHTML, ast.NotationMathML, ast.NotationLaTeX}
	}
	return engine.ResolveMath(prefs, content, notation, reps)
}
