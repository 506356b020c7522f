package ast

import (
	"reflect"
	"strings"
)

// WalkStatus tells Walk how to continue after visiting a node.
type WalkStatus int

// Walk statuses.
const (
	WalkContinue WalkStatus = iota
	WalkSkipChildren
	WalkStop
)

// WalkFunc is called twice per node: once with entering set before the
// children are walked and once after. The status returned on exit is
// ignored unless it is WalkStop.
type WalkFunc func(n Node, entering bool) WalkStatus

// Walk traverses the subtree rooted at n depth first. Nil nodes are skipped.
func Walk(n Node, fn WalkFunc) {
	walk(n, fn)
}

func walk(n Node, fn WalkFunc) WalkStatus {
	if IsNil(n) {
		return WalkContinue
	}
	status := fn(n, true)
	switch status {
	case WalkStop:
		return WalkStop
	case WalkSkipChildren:
	default:
		for _, c := range n.ChildNodes() {
			if walk(c, fn) == WalkStop {
				return WalkStop
			}
		}
	}
	if fn(n, false) == WalkStop {
		return WalkStop
	}
	return WalkContinue
}

// Inspect calls fn for every node in pre-order. If fn returns false the
// node's children are skipped.
func Inspect(n Node, fn func(Node) bool) {
	Walk(n, func(n Node, entering bool) WalkStatus {
		if !entering {
			return WalkContinue
		}
		if fn(n) {
			return WalkContinue
		}
		return WalkSkipChildren
	})
}

// FindAll returns every node of the given kind in document order.
func FindAll(root Node, kind Kind) []Node {
	var out []Node
	Inspect(root, func(n Node) bool {
		if n.Kind() == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindAllOf returns every node of type T in document order.
func FindAllOf[T Node](root Node) []T {
	var out []T
	Inspect(root, func(n Node) bool {
		if t, ok := n.(T); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

// PlainText returns the concatenated literal text below n with all
// formatting removed. Line breaks become spaces or newlines and images
// contribute their alt text.
func PlainText(n Node) string {
	var b strings.Builder
	Inspect(n, func(n Node) bool {
		switch n := n.(type) {
		case *Text:
			b.WriteString(n.Content)
		case *Code:
			b.WriteString(n.Content)
		case *MathInline:
			b.WriteString(n.Content)
		case *Image:
			b.WriteString(n.AltText)
		case *LineBreak:
			if n.Soft {
				b.WriteByte(' ')
			} else {
				b.WriteByte('\n')
			}
		case *FootnoteReference:
			return false
		case *HTMLInline:
			return false
		}
		return true
	})
	return b.String()
}

// InlineText is PlainText over a slice of inline nodes.
func InlineText(nodes []Inline) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(PlainText(n))
	}
	return b.String()
}

// IsNil reports whether n is nil or a typed nil pointer. Every variant is a
// pointer type, so this is the only place that needs reflection.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
