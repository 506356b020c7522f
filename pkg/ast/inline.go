package ast

// Text is literal text.
type Text struct {
	Attrs
	Content string
}

// Emphasis is emphasized (usually italic) content.
type Emphasis struct {
	Attrs
	Content []Inline
}

// Strong is strongly emphasized (usually bold) content.
type Strong struct {
	Attrs
	Content []Inline
}

// Underline is underlined content.
type Underline struct {
	Attrs
	Content []Inline
}

// Strikethrough is struck-out content.
type Strikethrough struct {
	Attrs
	Content []Inline
}

// Subscript is subscript content.
type Subscript struct {
	Attrs
	Content []Inline
}

// Superscript is superscript content.
type Superscript struct {
	Attrs
	Content []Inline
}

// Code is an inline code span.
type Code struct {
	Attrs
	Content string
}

// Link is a hyperlink whose clickable text is Content.
type Link struct {
	Attrs
	URL     string
	Title   string
	Content []Inline
}

// Image is an inline image. Width and Height are zero when unknown.
type Image struct {
	Attrs
	URL     string
	AltText string
	Title   string
	Width   int
	Height  int
}

// LineBreak is a hard line break, or a soft one when Soft is set.
type LineBreak struct {
	Attrs
	Soft bool
}

// HTMLInline is raw inline HTML.
type HTMLInline struct {
	Attrs
	Content string
}

// FootnoteReference points at the FootnoteDefinition with the same
// Identifier.
type FootnoteReference struct {
	Attrs
	Identifier string
}

// MathInline is inline math. Representations optionally holds the same
// formula in other notations.
type MathInline struct {
	Attrs
	Content         string
	Notation        Notation
	Representations map[Notation]string
}

func (*Text) Kind() Kind              { return KindText }
func (*Emphasis) Kind() Kind          { return KindEmphasis }
func (*Strong) Kind() Kind            { return KindStrong }
func (*Underline) Kind() Kind         { return KindUnderline }
func (*Strikethrough) Kind() Kind     { return KindStrikethrough }
func (*Subscript) Kind() Kind         { return KindSubscript }
func (*Superscript) Kind() Kind       { return KindSuperscript }
func (*Code) Kind() Kind              { return KindCode }
func (*Link) Kind() Kind              { return KindLink }
func (*Image) Kind() Kind             { return KindImage }
func (*LineBreak) Kind() Kind         { return KindLineBreak }
func (*HTMLInline) Kind() Kind        { return KindHTMLInline }
func (*FootnoteReference) Kind() Kind { return KindFootnoteReference }
func (*MathInline) Kind() Kind        { return KindMathInline }

func (*Text) ChildNodes() []Node              { return nil }
func (n *Emphasis) ChildNodes() []Node          { return inlinesToNodes(n.Content) }
func (n *Strong) ChildNodes() []Node            { return inlinesToNodes(n.Content) }
func (n *Underline) ChildNodes() []Node         { return inlinesToNodes(n.Content) }
func (n *Strikethrough) ChildNodes() []Node     { return inlinesToNodes(n.Content) }
func (n *Subscript) ChildNodes() []Node         { return inlinesToNodes(n.Content) }
func (n *Superscript) ChildNodes() []Node       { return inlinesToNodes(n.Content) }
func (*Code) ChildNodes() []Node                { return nil }
func (n *Link) ChildNodes() []Node              { return inlinesToNodes(n.Content) }
func (*Image) ChildNodes() []Node               { return nil }
func (*LineBreak) ChildNodes() []Node           { return nil }
func (*HTMLInline) ChildNodes() []Node          { return nil }
func (*FootnoteReference) ChildNodes() []Node   { return nil }
func (*MathInline) ChildNodes() []Node          { return nil }

func (*Text) node()              {}
func (*Emphasis) node()          {}
func (*Strong) node()            {}
func (*Underline) node()         {}
func (*Strikethrough) node()     {}
func (*Subscript) node()         {}
func (*Superscript) node()       {}
func (*Code) node()              {}
func (*Link) node()              {}
func (*Image) node()             {}
func (*LineBreak) node()         {}
func (*HTMLInline) node()        {}
func (*FootnoteReference) node() {}
func (*MathInline) node()        {}

func (*Text) inline()              {}
func (*Emphasis) inline()          {}
func (*Strong) inline()            {}
func (*Underline) inline()         {}
func (*Strikethrough) inline()     {}
func (*Subscript) inline()         {}
func (*Superscript) inline()       {}
func (*Code) inline()              {}
func (*Link) inline()              {}
func (*Image) inline()             {}
func (*LineBreak) inline()         {}
func (*HTMLInline) inline()        {}
func (*FootnoteReference) inline() {}
func (*MathInline) inline()        {}

// T is a shorthand constructor for a Text node.
func T(s string) *Text {
	return &Text{Content: s}
}
