package wiki

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

func (r *Renderer) VisitTable(st *engine.State, n *ast.Table) {
	cols := n.Columns()
	if cols == 0 {
		return
	}
	aligns := engine.NormalizeAlignments(n.Alignments, cols, ast.AlignNone)

	open := "{|"
	if r.opts.TableClass != "" {
		open += ` class="` + r.opts.TableClass + `"`
	}
	lines := []string{open}
	if caption := r.inlines(st, n.Caption); caption != "" {
		lines = append(lines, "|+ "+caption)
	}
	if n.Header != nil {
		lines = append(lines, "|-", r.row(st, n.Header, cols, aligns, "!", "!!"))
	}
	for _, row := range n.Rows {
		if row == nil {
			continue
		}
		lead, sep := "|", "||"
		if row.IsHeader {
			lead, sep = "!", "!!"
		}
		lines = append(lines, "|-", r.row(st, row, cols, aligns, lead, sep))
	}
	lines = append(lines, "|}")
	st.WriteString(strings.Join(lines, "\n"))
}

// row writes one table row on a single line. Rows longer than cols are
// truncated and shorter rows padded with empty cells.
func (r *Renderer) row(st *engine.State, row *ast.TableRow, cols int, aligns []ast.Alignment, lead, sep string) string {
	cells := make([]string, 0, cols)
	used := 0
	for _, cell := range row.Cells {
		if cell == nil {
			continue
		}
		if used >= cols {
			st.Report.Add(engine.DiagTableShape, row.Kind(), "row has more than %d cells", cols)
			break
		}
		content := st.Capture(func() { r.accept(st, cell) })
		align := cell.Alignment
		if align == ast.AlignNone {
			align = aligns[used]
		}
		var attrs []string
		if align != ast.AlignNone {
			attrs = append(attrs, `style="text-align:`+align.String()+`"`)
		}
		if cell.ColSpan > 1 {
			attrs = append(attrs, `colspan="`+strconv.Itoa(cell.ColSpan)+`"`)
		}
		if cell.RowSpan > 1 {
			attrs = append(attrs, `rowspan="`+strconv.Itoa(cell.RowSpan)+`"`)
		}
		if len(attrs) > 0 {
			content = strings.Join(attrs, " ") + " | " + content
		}
		cells = append(cells, content)
		used += max(1, cell.ColSpan)
	}
	if used < cols {
		st.Report.Add(engine.DiagTableShape, row.Kind(), "row has %d cells, table has %d columns", used, cols)
		for ; used < cols; used++ {
			cells = append(cells, "")
		}
	}
	return strings.TrimRight(lead+" "+strings.Join(cells, " "+sep+" "), " ")
}

func (r *Renderer) VisitTableRow(st *engine.State, n *ast.TableRow) {
	cells := make([]string, 0, len(n.Cells))
	for _, c := range n.Cells {
		cells = append(cells, st.Capture(func() { r.accept(st, c) }))
	}
	st.WriteString("| " + strings.Join(cells, " || "))
}

func (r *Renderer) VisitTableCell(st *engine.State, n *ast.TableCell) {
	st.WriteString(strings.ReplaceAll(r.inlines(st, n.Content), "\n", "<br />"))
}
