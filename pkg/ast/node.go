package ast

// Kind identifies a node variant. The string value is the stable snake_case
// name used by the codec and by template lookups.
type Kind string

// Node kinds.
const (
	KindDocument              Kind = "document"
	KindHeading               Kind = "heading"
	KindParagraph             Kind = "paragraph"
	KindList                  Kind = "list"
	KindListItem              Kind = "list_item"
	KindTable                 Kind = "table"
	KindTableRow              Kind = "table_row"
	KindTableCell             Kind = "table_cell"
	KindBlockQuote            Kind = "block_quote"
	KindCodeBlock             Kind = "code_block"
	KindThematicBreak         Kind = "thematic_break"
	KindHTMLBlock             Kind = "html_block"
	KindDefinitionList        Kind = "definition_list"
	KindDefinitionItem        Kind = "definition_item"
	KindDefinitionTerm        Kind = "definition_term"
	KindDefinitionDescription Kind = "definition_description"
	KindFootnoteDefinition    Kind = "footnote_definition"
	KindMathBlock             Kind = "math_block"

	KindText              Kind = "text"
	KindEmphasis          Kind = "emphasis"
	KindStrong            Kind = "strong"
	KindUnderline         Kind = "underline"
	KindStrikethrough     Kind = "strikethrough"
	KindSubscript         Kind = "subscript"
	KindSuperscript       Kind = "superscript"
	KindCode              Kind = "code"
	KindLink              Kind = "link"
	KindImage             Kind = "image"
	KindLineBreak         Kind = "line_break"
	KindHTMLInline        Kind = "html_inline"
	KindFootnoteReference Kind = "footnote_reference"
	KindMathInline        Kind = "math_inline"
)

var allKinds = []Kind{
	KindDocument, KindHeading, KindParagraph, KindList, KindListItem,
	KindTable, KindTableRow, KindTableCell, KindBlockQuote, KindCodeBlock,
	KindThematicBreak, KindHTMLBlock, KindDefinitionList, KindDefinitionItem,
	KindDefinitionTerm, KindDefinitionDescription, KindFootnoteDefinition,
	KindMathBlock,
	KindText, KindEmphasis, KindStrong, KindUnderline, KindStrikethrough,
	KindSubscript, KindSuperscript, KindCode, KindLink, KindImage,
	KindLineBreak, KindHTMLInline, KindFootnoteReference, KindMathInline,
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if k names a known node kind.
func (k Kind) IsValid() bool {
	for _, known := range allKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind looks a kind up by name. It accepts the snake_case name as well
// as the CamelCase Go type name ("TableCell").
func ParseKind(name string) (Kind, bool) {
	for _, k := range allKinds {
		if string(k) == name || camel(k) == name {
			return k, true
		}
	}
	return "", false
}

func camel(k Kind) string {
	out := make([]byte, 0, len(k))
	upper := true
	for i := 0; i < len(k); i++ {
		c := k[i]
		if c == '_' {
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	// HTMLBlock, HTMLInline
	s := string(out)
	if len(s) >= 4 && s[:4] == "Html" {
		s = "HTML" + s[4:]
	}
	return s
}

// Metadata is an open key/value map attached to a node for round-tripping
// attributes that have no dedicated field.
type Metadata map[string]any

// Get returns the value stored under key.
func (m Metadata) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// String returns the value under key if it is a string.
func (m Metadata) String(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

// Attrs is embedded in every node and carries its metadata.
type Attrs struct {
	Metadata Metadata
}

// Meta returns the node's metadata map, which may be nil.
func (a *Attrs) Meta() Metadata {
	return a.Metadata
}

// SetMeta stores a metadata value, allocating the map on first use.
func (a *Attrs) SetMeta(key string, value any) {
	if a.Metadata == nil {
		a.Metadata = make(Metadata)
	}
	a.Metadata[key] = value
}

// Node is implemented by every variant of the document tree.
type Node interface {
	// Kind returns the variant tag.
	Kind() Kind
	// ChildNodes returns the ordered child nodes, or nil for leaves.
	ChildNodes() []Node
	// Meta returns the node's metadata map.
	Meta() Metadata

	node()
}

// Block is a node that may appear in block position.
type Block interface {
	Node
	block()
}

// Inline is a node that may appear in inline position.
type Inline interface {
	Node
	inline()
}

func blocksToNodes(bs []Block) []Node {
	if len(bs) == 0 {
		return nil
	}
	out := make([]Node, len(bs))
	for i, b := range bs {
		out[i] = b
	}
	return out
}

func inlinesToNodes(is []Inline) []Node {
	if len(is) == 0 {
		return nil
	}
	out := make([]Node, len(is))
	for i, n := range is {
		out[i] = n
	}
	return out
}
