package markdown

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

func (r *Renderer) VisitTable(st *engine.State, n *ast.Table) {
	cols := n.Columns()
	if cols == 0 {
		return
	}
	if !r.opts.Flavor.SupportsTables() {
		st.Report.Add(engine.DiagCapabilityFallback, n.Kind(), "table rendered as HTML for flavor %s", r.opts.Flavor)
		st.WriteString(r.htmlTable(st, n, cols))
		return
	}

	var header []string
	rows := make([][]string, 0, len(n.Rows))
	if n.Header != nil {
		header = r.rowCells(st, n.Header)
	}
	for _, row := range n.Rows {
		if row == nil {
			continue
		}
		rows = append(rows, r.rowCells(st, row))
	}
	// Pipe tables require a header row.
	if header == nil && len(rows) > 0 {
		header, rows = rows[0], rows[1:]
	}

	grid := engine.NewGrid(header, rows, cols, st.Report)
	widths := grid.Widths()
	aligns := engine.NormalizeAlignments(n.Alignments, cols, r.opts.defaultAlignment())

	lines := make([]string, 0, len(grid.Rows)+2)
	lines = append(lines, pipeRow(grid.Header, widths))
	lines = append(lines, separatorRow(aligns, widths))
	for _, row := range grid.Rows {
		lines = append(lines, pipeRow(row, widths))
	}
	if caption := r.inlines(st, n.Caption); caption != "" {
		lines = append(lines, "", "Table: "+caption)
	}
	st.WriteString(strings.Join(lines, "\n"))
}

func pipeRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for j, c := range cells {
		padded[j] = engine.Pad(c, widths[j], ast.AlignLeft)
	}
	return "| " + strings.Join(padded, " | ") + " |"
}

func separatorRow(aligns []ast.Alignment, widths []int) string {
	cells := make([]string, len(widths))
	for j, w := range widths {
		dashes := strings.Repeat("-", max(3, w))
		switch aligns[j] {
		case ast.AlignLeft:
			cells[j] = ":" + dashes
		case ast.AlignCenter:
			cells[j] = ":" + dashes + ":"
		case ast.AlignRight:
			cells[j] = dashes + ":"
		default:
			cells[j] = dashes
		}
	}
	return "|" + strings.Join(cells, "|") + "|"
}

// rowCells renders the cells of row. Spanning cells are followed by empty
// cells so the row keeps its column count.
func (r *Renderer) rowCells(st *engine.State, row *ast.TableRow) []string {
	out := make([]string, 0, len(row.Cells))
	for _, cell := range row.Cells {
		out = append(out, st.Capture(func() { r.accept(st, cell) }))
		for i := 1; cell != nil && i < cell.ColSpan; i++ {
			out = append(out, "")
		}
	}
	return out
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\\\n", "<br>", "\n", " ")

func (r *Renderer) VisitTableRow(st *engine.State, n *ast.TableRow) {
	st.WriteString("| " + strings.Join(r.rowCells(st, n), " | ") + " |")
}

func (r *Renderer) VisitTableCell(st *engine.State, n *ast.TableCell) {
	st.WriteString(cellReplacer.Replace(r.inlines(st, n.Content)))
}

// htmlTable builds a <table> for flavors without pipe tables. Cell content
// is written as plain text.
func (r *Renderer) htmlTable(st *engine.State, n *ast.Table, cols int) string {
	doc := etree.NewDocument()
	table := doc.CreateElement("table")
	if len(n.Caption) > 0 {
		table.CreateElement("caption").SetText(ast.InlineText(n.Caption))
	}
	aligns := engine.NormalizeAlignments(n.Alignments, cols, r.opts.defaultAlignment())

	addRow := func(parent *etree.Element, row *ast.TableRow, tag string) {
		tr := parent.CreateElement("tr")
		used := 0
		for _, cell := range row.Cells {
			if cell == nil {
				continue
			}
			if used >= cols {
				st.Report.Add(engine.DiagTableShape, row.Kind(), "row has more than %d cells", cols)
				break
			}
			el := tr.CreateElement(tag)
			el.SetText(ast.InlineText(cell.Content))
			align := cell.Alignment
			if align == ast.AlignNone {
				align = aligns[used]
			}
			if align != ast.AlignNone {
				el.CreateAttr("align", align.String())
			}
			if cell.ColSpan > 1 {
				el.CreateAttr("colspan", strconv.Itoa(cell.ColSpan))
			}
			if cell.RowSpan > 1 {
				el.CreateAttr("rowspan", strconv.Itoa(cell.RowSpan))
			}
			used += max(1, cell.ColSpan)
		}
		for ; used < cols; used++ {
			tr.CreateElement(tag)
		}
	}

	if n.Header != nil {
		addRow(table.CreateElement("thead"), n.Header, "th")
	}
	if len(n.Rows) > 0 {
		body := table.CreateElement("tbody")
		for _, row := range n.Rows {
			if row != nil {
				addRow(body, row, "td")
			}
		}
	}
	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		st.Report.Add(engine.DiagDropped, n.Kind(), "table could not be serialized: %v", err)
		return ""
	}
	return strings.TrimRight(out, "\n")
}
