package ast

// Document is the root of a tree and the unit of rendering. Its Metadata
// holds document level properties such as title and author.
type Document struct {
	Attrs
	Children []Block
	// Extensions holds typed dialect payloads keyed by node. It may be nil.
	Extensions *Extensions
}

// Heading is a section heading with Level in [1,6].
type Heading struct {
	Attrs
	Level   int
	Content []Inline
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Attrs
	Content []Inline
}

// List is an ordered or unordered list. Start is the first ordinal and only
// meaningful when Ordered is set. Tight lists separate items with a single
// newline, loose lists with a blank line.
type List struct {
	Attrs
	Ordered bool
	Start   int
	Tight   bool
	Items   []*ListItem
}

// TaskStatus is the checkbox state of a list item.
type TaskStatus int

// Task states.
const (
	TaskNone TaskStatus = iota
	TaskUnchecked
	TaskChecked
)

// String returns the task state name.
func (t TaskStatus) String() string {
	switch t {
	case TaskUnchecked:
		return "unchecked"
	case TaskChecked:
		return "checked"
	default:
		return "none"
	}
}

// ParseTaskStatus parses the name returned by TaskStatus.String.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch s {
	case "", "none":
		return TaskNone, true
	case "unchecked":
		return TaskUnchecked, true
	case "checked":
		return TaskChecked, true
	}
	return TaskNone, false
}

// ListItem is one entry of a List. Its first child may render on the same
// line as the list marker.
type ListItem struct {
	Attrs
	Children []Block
	Task     TaskStatus
}

// Alignment is a table column alignment.
type Alignment int

// Column alignments.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "none"
	}
}

// ParseAlignment parses the name returned by Alignment.String.
func ParseAlignment(s string) (Alignment, bool) {
	switch s {
	case "", "none":
		return AlignNone, true
	case "left":
		return AlignLeft, true
	case "center":
		return AlignCenter, true
	case "right":
		return AlignRight, true
	}
	return AlignNone, false
}

// Table is a grid of cells. Alignments has one entry per column of the header
// or, without a header, of the first row. Renderers tolerate rows of any
// length.
type Table struct {
	Attrs
	Header     *TableRow
	Rows       []*TableRow
	Alignments []Alignment
	Caption    []Inline
}

// Columns returns the column count implied by the header or, without one,
// the first non-nil row. Spanning cells count once per spanned column.
func (t *Table) Columns() int {
	if t.Header != nil {
		return t.Header.Span()
	}
	for _, row := range t.Rows {
		if row != nil {
			return row.Span()
		}
	}
	return len(t.Alignments)
}

// TableRow is one row of a Table.
type TableRow struct {
	Attrs
	Cells    []*TableCell
	IsHeader bool
}

// Span returns the number of columns the row occupies.
func (r *TableRow) Span() int {
	n := 0
	for _, cell := range r.Cells {
		if cell != nil && cell.ColSpan > 1 {
			n += cell.ColSpan
		} else {
			n++
		}
	}
	return n
}

// TableCell is one cell of a TableRow. ColSpan and RowSpan are zero or one
// for regular cells.
type TableCell struct {
	Attrs
	Content   []Inline
	Alignment Alignment
	ColSpan   int
	RowSpan   int
}

// BlockQuote holds quoted block content, which may nest further quotes,
// lists and tables.
type BlockQuote struct {
	Attrs
	Children []Block
}

// CodeBlock is literal preformatted content. FenceLength is at least 3 and
// longer than any run of FenceChar inside Content.
type CodeBlock struct {
	Attrs
	Content     string
	Language    string
	FenceChar   rune
	FenceLength int
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct {
	Attrs
}

// HTMLBlock is raw HTML passed through at block level.
type HTMLBlock struct {
	Attrs
	Content string
}

// DefinitionList is a list of terms with their descriptions.
type DefinitionList struct {
	Attrs
	Items []*DefinitionItem
}

// DefinitionItem pairs a term with one or more descriptions.
type DefinitionItem struct {
	Attrs
	Term         *DefinitionTerm
	Descriptions []*DefinitionDescription
}

// DefinitionTerm is the defined term.
type DefinitionTerm struct {
	Attrs
	Content []Inline
}

// DefinitionDescription is one description of a term.
type DefinitionDescription struct {
	Attrs
	Children []Block
}

// FootnoteDefinition holds the body of a footnote referenced by Identifier.
type FootnoteDefinition struct {
	Attrs
	Identifier string
	Content    []Block
}

// Notation names a math encoding.
type Notation string

// Math notations.
const (
	NotationLaTeX  Notation = "latex"
	NotationMathML Notation = "mathml"
	NotationHTML   Notation = "html"
)

// MathBlock is display math. Representations optionally holds the same
// formula in other notations.
type MathBlock struct {
	Attrs
	Content         string
	Notation        Notation
	Representations map[Notation]string
}

func (*Document) Kind() Kind              { return KindDocument }
func (*Heading) Kind() Kind               { return KindHeading }
func (*Paragraph) Kind() Kind             { return KindParagraph }
func (*List) Kind() Kind                  { return KindList }
func (*ListItem) Kind() Kind              { return KindListItem }
func (*Table) Kind() Kind                 { return KindTable }
func (*TableRow) Kind() Kind              { return KindTableRow }
func (*TableCell) Kind() Kind             { return KindTableCell }
func (*BlockQuote) Kind() Kind            { return KindBlockQuote }
func (*CodeBlock) Kind() Kind             { return KindCodeBlock }
func (*ThematicBreak) Kind() Kind         { return KindThematicBreak }
func (*HTMLBlock) Kind() Kind             { return KindHTMLBlock }
func (*DefinitionList) Kind() Kind        { return KindDefinitionList }
func (*DefinitionItem) Kind() Kind        { return KindDefinitionItem }
func (*DefinitionTerm) Kind() Kind        { return KindDefinitionTerm }
func (*DefinitionDescription) Kind() Kind { return KindDefinitionDescription }
func (*FootnoteDefinition) Kind() Kind    { return KindFootnoteDefinition }
func (*MathBlock) Kind() Kind             { return KindMathBlock }

func (n *Document) ChildNodes() []Node  { return blocksToNodes(n.Children) }
func (n *Heading) ChildNodes() []Node   { return inlinesToNodes(n.Content) }
func (n *Paragraph) ChildNodes() []Node { return inlinesToNodes(n.Content) }

func (n *List) ChildNodes() []Node {
	out := make([]Node, 0, len(n.Items))
	for _, it := range n.Items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

func (n *ListItem) ChildNodes() []Node { return blocksToNodes(n.Children) }

func (n *Table) ChildNodes() []Node {
	out := make([]Node, 0, len(n.Rows)+1)
	if n.Header != nil {
		out = append(out, n.Header)
	}
	for _, r := range n.Rows {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (n *TableRow) ChildNodes() []Node {
	out := make([]Node, 0, len(n.Cells))
	for _, c := range n.Cells {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (n *TableCell) ChildNodes() []Node  { return inlinesToNodes(n.Content) }
func (n *BlockQuote) ChildNodes() []Node { return blocksToNodes(n.Children) }
func (*CodeBlock) ChildNodes() []Node    { return nil }
func (*ThematicBreak) ChildNodes() []Node { return nil }
func (*HTMLBlock) ChildNodes() []Node     { return nil }

func (n *DefinitionList) ChildNodes() []Node {
	out := make([]Node, 0, len(n.Items))
	for _, it := range n.Items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

func (n *DefinitionItem) ChildNodes() []Node {
	out := make([]Node, 0, len(n.Descriptions)+1)
	if n.Term != nil {
		out = append(out, n.Term)
	}
	for _, d := range n.Descriptions {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

func (n *DefinitionTerm) ChildNodes() []Node        { return inlinesToNodes(n.Content) }
func (n *DefinitionDescription) ChildNodes() []Node { return blocksToNodes(n.Children) }
func (n *FootnoteDefinition) ChildNodes() []Node    { return blocksToNodes(n.Content) }
func (*MathBlock) ChildNodes() []Node               { return nil }

func (*Document) node()              {}
func (*Heading) node()               {}
func (*Paragraph) node()             {}
func (*List) node()                  {}
func (*ListItem) node()              {}
func (*Table) node()                 {}
func (*TableRow) node()              {}
func (*TableCell) node()             {}
func (*BlockQuote) node()            {}
func (*CodeBlock) node()             {}
func (*ThematicBreak) node()         {}
func (*HTMLBlock) node()             {}
func (*DefinitionList) node()        {}
func (*DefinitionItem) node()        {}
func (*DefinitionTerm) node()        {}
func (*DefinitionDescription) node() {}
func (*FootnoteDefinition) node()    {}
func (*MathBlock) node()             {}

func (*Heading) block()            {}
func (*Paragraph) block()          {}
func (*List) block()               {}
func (*Table) block()              {}
func (*BlockQuote) block()         {}
func (*CodeBlock) block()          {}
func (*ThematicBreak) block()      {}
func (*HTMLBlock) block()          {}
func (*DefinitionList) block()     {}
func (*FootnoteDefinition) block() {}
func (*MathBlock) block()          {}
