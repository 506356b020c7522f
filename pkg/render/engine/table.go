package engine

import (
	"github.com/arthur-debert/docweave/pkg/ast"
)

// Grid is a table whose cells are already rendered to strings and whose rows
// all have exactly Columns cells.
type Grid struct {
	Header  []string
	Rows    [][]string
	Columns int
}

// NewGrid normalizes header and rows to a common column count. columns <= 0
// takes the count from the header, or the first row when there is no header.
// Rows that are too short are padded with empty cells and rows that are too
// long are truncated; each mismatch is recorded in report when it is not nil.
func NewGrid(header []string, rows [][]string, columns int, report *Report) *Grid {
	if columns <= 0 {
		switch {
		case header != nil:
			columns = len(header)
		case len(rows) > 0:
			columns = len(rows[0])
		}
	}
	g := &Grid{Columns: columns}
	if header != nil {
		g.Header = fit(header, columns, report)
	}
	g.Rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		g.Rows = append(g.Rows, fit(r, columns, report))
	}
	return g
}

func fit(row []string, n int, report *Report) []string {
	if len(row) != n && report != nil {
		report.Add(DiagTableShape, ast.KindTableRow, "row has %d cells, table has %d columns", len(row), n)
	}
	out := make([]string, n)
	copy(out, row)
	return out
}

// Widths returns, per column, the maximum display width over header and
// body cells.
func (g *Grid) Widths() []int {
	w := make([]int, g.Columns)
	measure := func(row []string) {
		for j, c := range row {
			if dw := DisplayWidth(c); dw > w[j] {
				w[j] = dw
			}
		}
	}
	if g.Header != nil {
		measure(g.Header)
	}
	for _, r := range g.Rows {
		measure(r)
	}
	return w
}

// Pad pads cell with spaces to width display cells. Center and right
// alignment distribute the padding accordingly; everything else is
// left-justified.
func Pad(cell string, width int, align ast.Alignment) string {
	gap := width - DisplayWidth(cell)
	if gap <= 0 {
		return cell
	}
	switch align {
	case ast.AlignRight:
		return Spaces(gap) + cell
	case ast.AlignCenter:
		left := gap / 2
		return Spaces(left) + cell + Spaces(gap-left)
	default:
		return cell + Spaces(gap)
	}
}

// NormalizeAlignments returns exactly n alignments: aligns truncated, or
// padded with def. AlignNone entries are replaced by def as well.
func NormalizeAlignments(aligns []ast.Alignment, n int, def ast.Alignment) []ast.Alignment {
	out := make([]ast.Alignment, n)
	for i := range out {
		out[i] = def
		if i < len(aligns) && aligns[i] != ast.AlignNone {
			out[i] = aligns[i]
		}
	}
	return out
}
