package templated

import (
	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

// HeadingInfo describes one heading.
type HeadingInfo struct {
	Level int
	Text  string
}

// LinkInfo describes one link.
type LinkInfo struct {
	URL   string
	Title string
	Text  string
}

// ImageInfo describes one image.
type ImageInfo struct {
	URL     string
	AltText string
	Title   string
	Width   int
	Height  int
}

// FootnoteInfo describes one footnote definition.
type FootnoteInfo struct {
	Identifier string
	Text       string
}

// Index is a read-only summary of a document gathered in a single
// traversal. Entries appear in document order.
type Index struct {
	Headings  []HeadingInfo
	Links     []LinkInfo
	Images    []ImageInfo
	Footnotes []FootnoteInfo

	byKind   map[ast.Kind][]ast.Node
	depth    int
	maxDepth int
}

// NewIndex walks doc once and records every heading, link, image, footnote
// definition and node by kind. Subtrees nested deeper than limits allow are
// skipped.
func NewIndex(doc *ast.Document, limits engine.Limits) *Index {
	ix := &Index{byKind: make(map[ast.Kind][]ast.Node), maxDepth: limits.MaxDepth}
	if ix.maxDepth <= 0 {
		ix.maxDepth = engine.DefaultMaxDepth
	}
	if doc != nil {
		collector{}.visit(ix, doc)
	}
	return ix
}

// Nodes returns the nodes of kind in document order.
func (ix *Index) Nodes(kind ast.Kind) []ast.Node {
	return ix.byKind[kind]
}

// Headings lists the headings of doc.
func Headings(doc *ast.Document) []HeadingInfo {
	return NewIndex(doc, engine.Limits{}).Headings
}

// Links lists the links of doc.
func Links(doc *ast.Document) []LinkInfo {
	return NewIndex(doc, engine.Limits{}).Links
}

// Images lists the images of doc.
func Images(doc *ast.Document) []ImageInfo {
	return NewIndex(doc, engine.Limits{}).Images
}

// Footnotes lists the footnote definitions of doc.
func Footnotes(doc *ast.Document) []FootnoteInfo {
	return NewIndex(doc, engine.Limits{}).Footnotes
}

// NodesOfKind returns every node of doc whose kind name is kind. The name
// may be snake_case ("table_cell") or the Go type name ("TableCell").
func NodesOfKind(doc *ast.Document, kind string) ([]ast.Node, error) {
	k, ok := ast.ParseKind(kind)
	if !ok {
		return nil, unknownKind(kind)
	}
	return NewIndex(doc, engine.Limits{}).Nodes(k), nil
}

// collector fills an Index. Every visit records the node by kind and then
// descends into its children.
type collector struct{}

func (c collector) visit(ix *Index, n ast.Node) {
	if ast.IsNil(n) || ix.depth >= ix.maxDepth {
		return
	}
	ix.depth++
	defer func() { ix.depth-- }()
	ix.byKind[n.Kind()] = append(ix.byKind[n.Kind()], n)
	ast.Accept[*Index](n, c, ix)
}

func (c collector) descend(ix *Index, n ast.Node) {
	for _, child := range n.ChildNodes() {
		c.visit(ix, child)
	}
}

func (c collector) VisitDocument(ix *Index, n *ast.Document) { c.descend(ix, n) }

func (c collector) VisitHeading(ix *Index, n *ast.Heading) {
	ix.Headings = append(ix.Headings, HeadingInfo{Level: n.Level, Text: ast.InlineText(n.Content)})
	c.descend(ix, n)
}

func (c collector) VisitParagraph(ix *Index, n *ast.Paragraph) { c.descend(ix, n) }
func (c collector) VisitList(ix *Index, n *ast.List) { c.descend(ix, n) }
func (c collector) VisitListItem(ix *Index, n *ast.ListItem) { c.descend(ix, n) }
func (c collector) VisitTable(ix *Index, n *ast.Table) { c.descend(ix, n) }
func (c collector) VisitTableRow(ix *Index, n *ast.TableRow) { c.descend(ix, n) }
func (c collector) VisitTableCell(ix *Index, n *ast.TableCell) { c.descend(ix, n) }
func (c collector) VisitBlockQuote(ix *Index, n *ast.BlockQuote) { c.descend(ix, n) }
func (c collector) VisitCodeBlock(ix *Index, n *ast.CodeBlock) { c.descend(ix, n) }
func (c collector) VisitThematicBreak(ix *Index, n *ast.ThematicBreak) { c.descend(ix, n) }
func (c collector) VisitHTMLBlock(ix *Index, n *ast.HTMLBlock) { c.descend(ix, n) }
func (c collector) VisitDefinitionList(ix *Index, n *ast.DefinitionList) { c.descend(ix, n) }
func (c collector) VisitDefinitionItem(ix *Index, n *ast.DefinitionItem) { c.descend(ix, n) }
func (c collector) VisitDefinitionTerm(ix *Index, n *ast.DefinitionTerm) { c.descend(ix, n) }
func (c collector) VisitDefinitionDescription(ix *Index, n *ast.DefinitionDescription) { c.descend(ix, n) }

func (c collector) VisitFootnoteDefinition(ix *Index, n *ast.FootnoteDefinition) {
	ix.Footnotes = append(ix.Footnotes, FootnoteInfo{Identifier: n.Identifier, Text: ast.PlainText(n)})
	c.descend(ix, n)
}

func (c collector) VisitMathBlock(ix *Index, n *ast.MathBlock) { c.descend(ix, n) }
func (c collector) VisitText(ix *Index, n *ast.Text) { c.descend(ix, n) }
func (c collector) VisitEmphasis(ix *Index, n *ast.Emphasis) { c.descend(ix, n) }
func (c collector) VisitStrong(ix *Index, n *ast.Strong) { c.descend(ix, n) }
func (c collector) VisitUnderline(ix *Index, n *ast.Underline) { c.descend(ix, n) }
func (c collector) VisitStrikethrough(ix *Index, n *ast.Strikethrough) { c.descend(ix, n) }
func (c collector) VisitSubscript(ix *Index, n *ast.Subscript) { c.descend(ix, n) }
func (c collector) VisitSuperscript(ix *Index, n *ast.Superscript) { c.descend(ix, n) }
func (c collector) VisitCode(ix *Index, n *ast.Code) { c.descend(ix, n) }

func (c collector) VisitLink(ix *Index, n *ast.Link) {
	ix.Links = append(ix.Links, LinkInfo{URL: n.URL, Title: n.Title, Text: ast.InlineText(n.Content)})
	c.descend(ix, n)
}

func (c collector) VisitImage(ix *Index, n *ast.Image) {
	ix.Images = append(ix.Images, ImageInfo{URL: n.URL, AltText: n.AltText, Title: n.Title, Width: n.Width, Height: n.Height})
}

func (c collector) VisitLineBreak(ix *Index, n *ast.LineBreak) { c.descend(ix, n) }
func (c collector) VisitHTMLInline(ix *Index, n *ast.HTMLInline) { c.descend(ix, n) }
func (c collector) VisitFootnoteReference(ix *Index, n *ast.FootnoteReference) { c.descend(ix, n) }
func (c collector) VisitMathInline(ix *Index, n *ast.MathInline) { c.descend(ix, n) }

var _ ast.Visitor[*Index] = collector{}
