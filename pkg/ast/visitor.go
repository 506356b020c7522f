package ast

import "fmt"

// Visitor has exactly one method per node kind. C is the call-local context
// threaded through a traversal, typically a renderer's output state.
type Visitor[C any] interface {
	VisitDocument(C, *Document)
	VisitHeading(C, *Heading)
	VisitParagraph(C, *Paragraph)
	VisitList(C, *List)
	VisitListItem(C, *ListItem)
	VisitTable(C, *Table)
	VisitTableRow(C, *TableRow)
	VisitTableCell(C, *TableCell)
	VisitBlockQuote(C, *BlockQuote)
	VisitCodeBlock(C, *CodeBlock)
	VisitThematicBreak(C, *ThematicBreak)
	VisitHTMLBlock(C, *HTMLBlock)
	VisitDefinitionList(C, *DefinitionList)
	VisitDefinitionItem(C, *DefinitionItem)
	VisitDefinitionTerm(C, *DefinitionTerm)
	VisitDefinitionDescription(C, *DefinitionDescription)
	VisitFootnoteDefinition(C, *FootnoteDefinition)
	VisitMathBlock(C, *MathBlock)

	VisitText(C, *Text)
	VisitEmphasis(C, *Emphasis)
	VisitStrong(C, *Strong)
	VisitUnderline(C, *Underline)
	VisitStrikethrough(C, *Strikethrough)
	VisitSubscript(C, *Subscript)
	VisitSuperscript(C, *Superscript)
	VisitCode(C, *Code)
	VisitLink(C, *Link)
	VisitImage(C, *Image)
	VisitLineBreak(C, *LineBreak)
	VisitHTMLInline(C, *HTMLInline)
	VisitFootnoteReference(C, *FootnoteReference)
	VisitMathInline(C, *MathInline)
}

// Accept routes n to the visitor method for its variant. Nil nodes are
// skipped.
func Accept[C any](n Node, v Visitor[C], ctx C) {
	switch n := n.(type) {
	case nil:
	case *Document:
		visit(ctx, n, v.VisitDocument)
	case *Heading:
		visit(ctx, n, v.VisitHeading)
	case *Paragraph:
		visit(ctx, n, v.VisitParagraph)
	case *List:
		visit(ctx, n, v.VisitList)
	case *ListItem:
		visit(ctx, n, v.VisitListItem)
	case *Table:
		visit(ctx, n, v.VisitTable)
	case *TableRow:
		visit(ctx, n, v.VisitTableRow)
	case *TableCell:
		visit(ctx, n, v.VisitTableCell)
	case *BlockQuote:
		visit(ctx, n, v.VisitBlockQuote)
	case *CodeBlock:
		visit(ctx, n, v.VisitCodeBlock)
	case *ThematicBreak:
		visit(ctx, n, v.VisitThematicBreak)
	case *HTMLBlock:
		visit(ctx, n, v.VisitHTMLBlock)
	case *DefinitionList:
		visit(ctx, n, v.VisitDefinitionList)
	case *DefinitionItem:
		visit(ctx, n, v.VisitDefinitionItem)
	case *DefinitionTerm:
		visit(ctx, n, v.VisitDefinitionTerm)
	case *DefinitionDescription:
		visit(ctx, n, v.VisitDefinitionDescription)
	case *FootnoteDefinition:
		visit(ctx, n, v.VisitFootnoteDefinition)
	case *MathBlock:
		visit(ctx, n, v.VisitMathBlock)
	case *Text:
		visit(ctx, n, v.VisitText)
	case *Emphasis:
		visit(ctx, n, v.VisitEmphasis)
	case *Strong:
		visit(ctx, n, v.VisitStrong)
	case *Underline:
		visit(ctx, n, v.VisitUnderline)
	case *Strikethrough:
		visit(ctx, n, v.VisitStrikethrough)
	case *Subscript:
		visit(ctx, n, v.VisitSubscript)
	case *Superscript:
		visit(ctx, n, v.VisitSuperscript)
	case *Code:
		visit(ctx, n, v.VisitCode)
	case *Link:
		visit(ctx, n, v.VisitLink)
	case *Image:
		visit(ctx, n, v.VisitImage)
	case *LineBreak:
		visit(ctx, n, v.VisitLineBreak)
	case *HTMLInline:
		visit(ctx, n, v.VisitHTMLInline)
	case *FootnoteReference:
		visit(ctx, n, v.VisitFootnoteReference)
	case *MathInline:
		visit(ctx, n, v.VisitMathInline)
	default:
		// Node is sealed; reaching this means a variant was added here
		// without a case above.
		panic(fmt.Sprintf("ast: unhandled node type %T", n))
	}
}

// visit skips typed nil pointers so a malformed tree degrades to missing
// output instead of a nil dereference inside a renderer.
func visit[C any, T any](ctx C, n *T, fn func(C, *T)) {
	if n != nil {
		fn(ctx, n)
	}
}

// AcceptAll visits each node of a slice in order.
func AcceptAll[C any, N Node](nodes []N, v Visitor[C], ctx C) {
	for _, n := range nodes {
		Accept[C](n, v, ctx)
	}
}
