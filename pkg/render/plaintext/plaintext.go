// Package plaintext renders documents as unformatted text. Inline markup is
// stripped to its text and paragraphs are optionally word-wrapped.
package plaintext

import (
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/logging"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

// Renderer writes plain text. It holds only options and is safe for
// concurrent use.
type Renderer struct {
	opts Options
}

// New returns a plain-text renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts.normalized()}
}

// Render returns doc as plain text.
func (r *Renderer) Render(doc *ast.Document) (string, error) {
	res, err := r.Convert(doc)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// RenderTo writes doc as plain text to w.
func (r *Renderer) RenderTo(w io.Writer, doc *ast.Document) error {
	return engine.RenderTo(r, w, doc)
}

// Convert renders doc and returns the output with its diagnostics.
func (r *Renderer) Convert(doc *ast.Document) (*engine.Result, error) {
	logger := logging.GetLogger("render.plaintext")
	defer logging.LogOperationStart(logger, "render plaintext")()

	st := engine.NewState(r.opts.ListIndentWidth, r.opts.Limits)
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
	return r.joined(st, blocks, r.opts.ParagraphSeparator)
}

func (r *Renderer) joined(st *engine.State, blocks []ast.Block, sep string) string {
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

// tabPlaceholder stands in for tabs while wrapping so the text around a
// tab stays on one line without the tab being treated as a break.
const tabPlaceholder = "\uE000"

// wrap reflows text to the line width left at the current indentation.
// Tabs are protected during the reflow; if the text already contains the
// placeholder, lines with tabs are kept verbatim instead.
func (r *Renderer) wrap(st *engine.State, text string) string {
	if r.opts.MaxLineWidth <= 0 {
		return text
	}
	width := max(r.opts.MaxLineWidth-len(st.CurrentIndent()), 1)
	protect := !strings.Contains(text, tabPlaceholder)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, "\t") {
			lines[i] = wordwrap.String(line, width)
			continue
		}
		if !protect {
			continue
		}
		wrapped := wordwrap.String(strings.ReplaceAll(line, "\t", tabPlaceholder), width)
		lines[i] = strings.ReplaceAll(wrapped, tabPlaceholder, "\t")
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) VisitDocument(st *engine.State, n *ast.Document) {
	st.WriteString(r.blocks(st, n.Children))
}

func (r *Renderer) VisitHeading(st *engine.State, n *ast.Heading) {
	st.WriteString(r.wrap(st, r.inlines(st, n.Content)))
}

func (r *Renderer) VisitParagraph(st *engine.State, n *ast.Paragraph) {
	st.WriteString(r.wrap(st, r.inlines(st, n.Content)))
}

func (r *Renderer) VisitList(st *engine.State, n *ast.List) {
	start := n.Start
	if start == 0 {
		start = 1
	}
	st.PushList(n.Ordered, start, r.opts.BulletSymbol)
	st.SetListTight(n.Tight)
	defer st.PopList()

	sep := "\n\n"
	if n.Tight {
		sep = "\n"
	}
	items := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		if item != nil {
			items = append(items, st.Capture(func() { r.accept(st, item) }))
		}
	}
	st.WriteString(strings.Join(items, sep))
}

func (r *Renderer) VisitListItem(st *engine.State, n *ast.ListItem) {
	marker := st.NextMarker()
	if strings.TrimSpace(marker) == "" {
		marker = ""
	}
	switch n.Task {
	case ast.TaskChecked:
		marker += "[x] "
	case ast.TaskUnchecked:
		marker += "[ ] "
	}
	sep := "\n\n"
	if st.ListTight() {
		sep = "\n"
	}
	st.PushIndent()
	body := r.joined(st, n.Children, sep)
	st.PopIndent()

	first, rest := engine.FirstLineRest(body)
	st.WriteString(strings.TrimRight(marker+first, " "))
	if rest != "" {
		st.WriteString("\n" + engine.IndentLines(rest, st.IndentUnit()))
	}
}

func (r *Renderer) VisitTable(st *engine.State, n *ast.Table) {
	cols := n.Columns()
	if cols == 0 {
		return
	}
	var header []string
	if n.Header != nil && r.opts.IncludeTableHeaders {
		header = r.rowCells(st, n.Header)
	}
	rows := make([][]string, 0, len(n.Rows))
	for _, row := range n.Rows {
		if row != nil {
			rows = append(rows, r.rowCells(st, row))
		}
	}
	grid := engine.NewGrid(header, rows, cols, st.Report)
	widths := grid.Widths()
	aligns := engine.NormalizeAlignments(n.Alignments, cols, ast.AlignLeft)

	var lines []string
	if caption := r.inlines(st, n.Caption); caption != "" {
		lines = append(lines, caption)
	}
	line := func(cells []string) string {
		padded := make([]string, len(cells))
		for j, c := range cells {
			padded[j] = engine.Pad(c, widths[j], aligns[j])
		}
		return strings.TrimRight(strings.Join(padded, r.opts.TableCellSeparator), " ")
	}
	if grid.Header != nil {
		lines = append(lines, line(grid.Header))
	}
	for _, row := range grid.Rows {
		lines = append(lines, line(row))
	}
	st.WriteString(strings.Join(lines, "\n"))
}

// rowCells renders the cells of row, padding after spanning cells so the
// row lines up with Table.Columns.
func (r *Renderer) rowCells(st *engine.State, row *ast.TableRow) []string {
	out := make([]string, 0, row.Span())
	for _, cell := range row.Cells {
		out = append(out, st.Capture(func() { r.accept(st, cell) }))
		for i := 1; cell != nil && i < cell.ColSpan; i++ {
			out = append(out, "")
		}
	}
	return out
}

func (r *Renderer) VisitTableRow(st *engine.State, n *ast.TableRow) {
	st.WriteString(strings.Join(r.rowCells(st, n), r.opts.TableCellSeparator))
}

func (r *Renderer) VisitTableCell(st *engine.State, n *ast.TableCell) {
	st.WriteString(strings.ReplaceAll(r.inlines(st, n.Content), "\n", " "))
}

func (r *Renderer) VisitBlockQuote(st *engine.State, n *ast.BlockQuote) {
	body := r.blocks(st, n.Children)
	st.WriteString(engine.PrefixLines(body, r.opts.QuotePrefix, strings.TrimRight(r.opts.QuotePrefix, " ")))
}

func (r *Renderer) VisitCodeBlock(st *engine.State, n *ast.CodeBlock) {
	content := strings.TrimSuffix(n.Content, "\n")
	if r.opts.CodeIndent > 0 {
		content = indent.String(content, uint(r.opts.CodeIndent))
	}
	st.WriteString(content)
}

func (r *Renderer) VisitThematicBreak(st *engine.State, _ *ast.ThematicBreak) {
	width := 3
	if r.opts.MaxLineWidth > 0 {
		width = r.opts.MaxLineWidth
	}
	st.WriteString(strings.Repeat("-", width))
}

func (r *Renderer) VisitHTMLBlock(st *engine.State, n *ast.HTMLBlock) {
	if !r.opts.IncludeHTML {
		if n.Content != "" {
			st.Report.Add(engine.DiagDropped, n.Kind(), "raw HTML dropped")
		}
		return
	}
	st.WriteString(strings.TrimRight(n.Content, "\n"))
}

func (r *Renderer) VisitDefinitionList(st *engine.State, n *ast.DefinitionList) {
	items := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		items = append(items, st.Capture(func() { r.accept(st, item) }))
	}
	st.WriteString(engine.JoinBlocks(items, r.opts.ParagraphSeparator))
}

func (r *Renderer) VisitDefinitionItem(st *engine.State, n *ast.DefinitionItem) {
	lines := []string{st.Capture(func() { r.accept(st, n.Term) })}
	st.PushIndent()
	for _, d := range n.Descriptions {
		desc := st.Capture(func() { r.accept(st, d) })
		if desc != "" {
			lines = append(lines, engine.IndentLines(desc, st.IndentUnit()))
		}
	}
	st.PopIndent()
	st.WriteString(strings.Join(lines, "\n"))
}

func (r *Renderer) VisitDefinitionTerm(st *engine.State, n *ast.DefinitionTerm) {
	st.WriteString(r.inlines(st, n.Content))
}

func (r *Renderer) VisitDefinitionDescription(st *engine.State, n *ast.DefinitionDescription) {
	st.WriteString(r.blocks(st, n.Children))
}

func (r *Renderer) VisitFootnoteDefinition(st *engine.State, n *ast.FootnoteDefinition) {
	st.WriteString("[" + n.Identifier + "] " + r.blocks(st, n.Content))
}

func (r *Renderer) VisitMathBlock(st *engine.State, n *ast.MathBlock) {
	content, _ := engine.ResolveMath([]ast.Notation{ast.NotationLaTeX}, n.Content, n.Notation, n.Representations)
	st.WriteString(strings.TrimSpace(content))
}

var _ ast.Visitor[*engine.State] = (*Renderer)(nil)
var _ engine.Renderer = (*Renderer)(nil)
