package org

import (
	"strings"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

func (r *Renderer) VisitHeading(st *engine.State, n *ast.Heading) {
	level := n.Level
	if level < ast.MinHeadingLevel || level > ast.MaxHeadingLevel {
		st.Report.Add(engine.DiagHeadingLevel, n.Kind(), "heading level %d clamped", level)
		level = min(max(level, ast.MinHeadingLevel), ast.MaxHeadingLevel)
	}

	parts := []string{strings.Repeat("*", level)}
	ext, hasExt := ast.Lookup[ast.OrgHeading](st.Extensions, n)
	if hasExt && r.opts.PreserveTodo {
		if ext.Todo != "" {
			parts = append(parts, ext.Todo)
		}
		if ext.Priority != "" {
			parts = append(parts, "[#"+ext.Priority+"]")
		}
	}
	if content := strings.ReplaceAll(r.inlines(st, n.Content), "\n", " "); content != "" {
		parts = append(parts, content)
	}
	line := strings.Join(parts, " ")
	if hasExt && r.opts.PreserveTags && len(ext.Tags) > 0 {
		line += " :" + strings.Join(ext.Tags, ":") + ":"
	}
	st.WriteString(line)

	if hasExt && r.opts.PreserveProperties && len(ext.Properties) > 0 {
		st.WriteString("\n:PROPERTIES:")
		for _, key := range ast.SortedKeys(ext.Properties) {
			st.WriteString("\n:" + key + ": " + ext.Properties[key])
		}
		st.WriteString("\n:END:")
	}
}

func (r *Renderer) VisitParagraph(st *engine.State, n *ast.Paragraph) {
	st.WriteString(r.inlines(st, n.Content))
}

func (r *Renderer) VisitList(st *engine.State, n *ast.List) {
	start := n.Start
	if start == 0 {
		start = 1
	}
	st.PushList(n.Ordered, start, "-")
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
	switch n.Task {
	case ast.TaskChecked:
		marker += "[X] "
	case ast.TaskUnchecked:
		marker += "[ ] "
	}
	sep := "\n\n"
	if st.ListTight() {
		sep = "\n"
	}
	st.PushIndent()
	body := r.blocks(st, n.Children, sep)
	st.PopIndent()
	r.writeItem(st, marker, body)
}

// writeItem splices the first line of body after marker and indents the rest
// one list level.
func (r *Renderer) writeItem(st *engine.State, marker, body string) {
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

func (r *Renderer) VisitTable(st *engine.State, n *ast.Table) {
	cols := n.Columns()
	if cols == 0 {
		return
	}
	var header []string
	if n.Header != nil {
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
	aligns := engine.NormalizeAlignments(n.Alignments, cols, ast.AlignNone)

	var lines []string
	if caption := r.inlines(st, n.Caption); caption != "" {
		lines = append(lines, "#+CAPTION: "+caption)
	}
	if hasAlignment(aligns) {
		cookies := make([]string, cols)
		for j, a := range aligns {
			widths[j] = max(widths[j], len(alignCookie(a)))
			cookies[j] = alignCookie(a)
		}
		lines = append(lines, orgRow(padRow(cookies, widths)))
	}
	if grid.Header != nil {
		lines = append(lines, orgRow(padRow(grid.Header, widths)), separator(widths))
	}
	for _, row := range grid.Rows {
		lines = append(lines, orgRow(padRow(row, widths)))
	}
	st.WriteString(strings.Join(lines, "\n"))
}

func hasAlignment(aligns []ast.Alignment) bool {
	for _, a := range aligns {
		if a != ast.AlignNone {
			return true
		}
	}
	return false
}

func alignCookie(a ast.Alignment) string {
	switch a {
	case ast.AlignLeft:
		return "<l>"
	case ast.AlignCenter:
		return "<c>"
	case ast.AlignRight:
		return "<r>"
	}
	return ""
}

func padRow(cells []string, widths []int) []string {
	out := make([]string, len(cells))
	for j, c := range cells {
		out[j] = engine.Pad(c, widths[j], ast.AlignLeft)
	}
	return out
}

func orgRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func separator(widths []int) string {
	dashes := make([]string, len(widths))
	for j, w := range widths {
		dashes[j] = strings.Repeat("-", w+2)
	}
	return "|" + strings.Join(dashes, "+") + "|"
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

var cellReplacer = strings.NewReplacer("|", `\vert{}`, "\\\\\n", " ", "\n", " ")

func (r *Renderer) VisitTableRow(st *engine.State, n *ast.TableRow) {
	st.WriteString(orgRow(r.rowCells(st, n)))
}

func (r *Renderer) VisitTableCell(st *engine.State, n *ast.TableCell) {
	st.WriteString(cellReplacer.Replace(r.inlines(st, n.Content)))
}

func (r *Renderer) VisitBlockQuote(st *engine.State, n *ast.BlockQuote) {
	body := r.blocks(st, n.Children, "\n\n")
	st.WriteString("#+BEGIN_QUOTE\n")
	if body != "" {
		st.WriteString(body + "\n")
	}
	st.WriteString("#+END_QUOTE")
}

func (r *Renderer) VisitCodeBlock(st *engine.State, n *ast.CodeBlock) {
	if cell, ok := ast.Lookup[ast.NotebookCell](st.Extensions, n); ok && cell.ExecutionCount > 0 {
		st.Printf("#+NAME: cell-%d\n", cell.ExecutionCount)
	}
	content := escapeBlockLines(strings.TrimSuffix(n.Content, "\n"))
	kind := "EXAMPLE"
	header := "#+BEGIN_EXAMPLE"
	if n.Language != "" {
		kind = "SRC"
		header = "#+BEGIN_SRC " + n.Language
	}
	st.WriteString(header + "\n")
	if content != "" {
		st.WriteString(content + "\n")
	}
	st.WriteString("#+END_" + kind)
}

// escapeBlockLines protects lines that Org would otherwise read as
// headlines or keywords inside a block.
func escapeBlockLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "#+") ||
			strings.HasPrefix(trimmed, ",*") || strings.HasPrefix(trimmed, ",#+") {
			lines[i] = "," + line
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) VisitThematicBreak(st *engine.State, _ *ast.ThematicBreak) {
	st.WriteString("-----")
}

func (r *Renderer) VisitHTMLBlock(st *engine.State, n *ast.HTMLBlock) {
	content := strings.TrimRight(n.Content, "\n")
	if content == "" {
		return
	}
	st.WriteString("#+BEGIN_EXPORT html\n" + content + "\n#+END_EXPORT")
}

func (r *Renderer) VisitDefinitionList(st *engine.State, n *ast.DefinitionList) {
	items := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		items = append(items, st.Capture(func() { r.accept(st, item) }))
	}
	st.WriteString(engine.JoinBlocks(items, "\n"))
}

func (r *Renderer) VisitDefinitionItem(st *engine.State, n *ast.DefinitionItem) {
	term := st.Capture(func() { r.accept(st, n.Term) })
	st.PushIndent()
	descs := make([]string, 0, len(n.Descriptions))
	for _, d := range n.Descriptions {
		descs = append(descs, st.Capture(func() { r.accept(st, d) }))
	}
	st.PopIndent()
	body := engine.JoinBlocks(descs, "\n")
	r.writeItem(st, "- "+term+" :: ", body)
}

func (r *Renderer) VisitDefinitionTerm(st *engine.State, n *ast.DefinitionTerm) {
	st.WriteString(strings.ReplaceAll(r.inlines(st, n.Content), "\n", " "))
}

func (r *Renderer) VisitDefinitionDescription(st *engine.State, n *ast.DefinitionDescription) {
	st.WriteString(r.blocks(st, n.Children, "\n\n"))
}

func (r *Renderer) VisitFootnoteDefinition(st *engine.State, n *ast.FootnoteDefinition) {
	body := r.blocks(st, n.Content, "\n\n")
	st.WriteString(strings.TrimRight("[fn:"+n.Identifier+"] "+body, " "))
}

func (r *Renderer) VisitMathBlock(st *engine.State, n *ast.MathBlock) {
	content, _ := engine.ResolveMath([]ast.Notation{ast.NotationLaTeX}, n.Content, n.Notation, n.Representations)
	st.WriteString("\\[\n" + strings.TrimSpace(content) + "\n\\]")
}
