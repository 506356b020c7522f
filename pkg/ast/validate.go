package ast

import (
	"strings"

	"github.com/arthur-debert/docweave/pkg/errors"
)

// Heading level bounds.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// MinFenceLength is the shortest legal code fence.
const MinFenceLength = 3

// NewHeading returns a heading, rejecting levels outside [1,6].
func NewHeading(level int, content ...Inline) (*Heading, error) {
	if level < MinHeadingLevel || level > MaxHeadingLevel {
		return nil, errors.Newf(errors.ErrInvalidNode, "heading level %d out of range [%d,%d]",
			level, MinHeadingLevel, MaxHeadingLevel).WithDetail("level", level)
	}
	return &Heading{Level: level, Content: content}, nil
}

// NewCodeBlock returns a backtick-fenced code block whose fence is longer
// than any backtick run in content.
func NewCodeBlock(content, language string) *CodeBlock {
	return &CodeBlock{
		Content:     content,
		Language:    language,
		FenceChar:   '`',
		FenceLength: FenceLengthFor(content, '`'),
	}
}

// FenceLengthFor returns the shortest fence of ch that cannot be closed by a
// run inside content.
func FenceLengthFor(content string, ch rune) int {
	n := LongestRun(content, ch) + 1
	if n < MinFenceLength {
		return MinFenceLength
	}
	return n
}

// LongestRun returns the length of the longest run of ch in s.
func LongestRun(s string, ch rune) int {
	longest, cur := 0, 0
	for _, r := range s {
		if r == ch {
			cur++
			if cur > longest {
				longest = cur
			}
			continue
		}
		cur = 0
	}
	return longest
}

// Validate checks the caller contracts producers must uphold and returns the
// first violation found: nil nodes, heading levels outside [1,6], code
// fences that are too short, negative spans and unknown enum values.
func Validate(root Node) error {
	if IsNil(root) {
		return errors.New(errors.ErrInvalidNode, "nil root node")
	}
	var err error
	Walk(root, func(n Node, entering bool) WalkStatus {
		if !entering {
			return WalkContinue
		}
		if err = validateNode(n); err != nil {
			return WalkStop
		}
		return WalkContinue
	})
	return err
}

func validateNode(n Node) error {
	if err := validateChildren(n); err != nil {
		return err
	}
	switch n := n.(type) {
	case *Heading:
		if n.Level < MinHeadingLevel || n.Level > MaxHeadingLevel {
			return errors.Newf(errors.ErrInvalidNode, "heading level %d out of range [%d,%d]",
				n.Level, MinHeadingLevel, MaxHeadingLevel).WithDetail("level", n.Level)
		}
	case *CodeBlock:
		ch := n.FenceChar
		if ch == 0 {
			ch = '`'
		}
		if ch != '`' && ch != '~' {
			return errors.Newf(errors.ErrInvalidNode, "unsupported fence character %q", ch)
		}
		if n.FenceLength != 0 && n.FenceLength < MinFenceLength {
			return errors.Newf(errors.ErrInvalidNode, "fence length %d shorter than %d", n.FenceLength, MinFenceLength)
		}
		if n.FenceLength != 0 && n.FenceLength <= LongestRun(n.Content, ch) {
			return errors.Newf(errors.ErrInvalidNode, "fence length %d closed early by content", n.FenceLength).
				WithDetail("language", n.Language)
		}
	case *TableCell:
		if n.ColSpan < 0 || n.RowSpan < 0 {
			return errors.New(errors.ErrInvalidNode, "negative table cell span")
		}
	case *ListItem:
		if n.Task < TaskNone || n.Task > TaskChecked {
			return errors.Newf(errors.ErrInvalidNode, "unknown task status %d", n.Task)
		}
	case *FootnoteDefinition:
		if strings.TrimSpace(n.Identifier) == "" {
			return errors.New(errors.ErrInvalidNode, "footnote definition without identifier")
		}
	case *FootnoteReference:
		if strings.TrimSpace(n.Identifier) == "" {
			return errors.New(errors.ErrInvalidNode, "footnote reference without identifier")
		}
	}
	return nil
}

// validateChildren reports typed nil entries in the child slices, which
// ChildNodes would otherwise pass through.
func validateChildren(n Node) error {
	for i, c := range n.ChildNodes() {
		if IsNil(c) {
			return errors.Newf(errors.ErrInvalidNode, "nil child %d of %s", i, n.Kind())
		}
	}
	return nil
}
