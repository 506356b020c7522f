package engine

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/docweave/pkg/ast"
)

// DefaultMaxDepth bounds recursion when Limits.MaxDepth is not set.
const DefaultMaxDepth = 512

// Limits bounds a single render.
type Limits struct {
	// MaxDepth is the deepest node nesting rendered. Deeper subtrees are
	// skipped and reported.
	MaxDepth int `koanf:"max_depth"`
}

func (l Limits) maxDepth() int {
	if l.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return l.MaxDepth
}

type listFrame struct {
	ordered bool
	tight   bool
	next    int
	bullet  string
}

// State is the call-local context of one render. It is created fresh for
// every top-level render and must not be shared between goroutines.
type State struct {
	bufs        []*strings.Builder
	indentLevel int
	indentWidth int
	lists       []listFrame
	depth       int
	limits      Limits

	// Report collects diagnostics for this render.
	Report *Report
	// Extensions is the typed side-table resolved for the document.
	Extensions *ast.Extensions
}

// NewState returns an empty state. indentWidth is the number of spaces per
// indentation level; negative values are treated as zero.
func NewState(indentWidth int, limits Limits) *State {
	if indentWidth < 0 {
		indentWidth = 0
	}
	return &State{
		bufs:        []*strings.Builder{{}},
		indentWidth: indentWidth,
		limits:      limits,
		Report:      &Report{},
	}
}

func (s *State) top() *strings.Builder {
	return s.bufs[len(s.bufs)-1]
}

// WriteString appends to the current buffer.
func (s *State) WriteString(str string) {
	s.top().WriteString(str)
}

// Printf formats into the current buffer.
func (s *State) Printf(format string, args ...any) {
	fmt.Fprintf(s.top(), format, args...)
}

// Capture runs fn against a fresh sub-buffer and returns what it wrote,
// leaving the enclosing buffer untouched.
func (s *State) Capture(fn func()) string {
	s.bufs = append(s.bufs, &strings.Builder{})
	fn()
	buf := s.top()
	s.bufs = s.bufs[:len(s.bufs)-1]
	return buf.String()
}

// Output returns the contents of the root buffer.
func (s *State) Output() string {
	return s.bufs[0].String()
}

// IndentLevel returns the current indentation level.
func (s *State) IndentLevel() int { return s.indentLevel }

// IndentWidth returns the number of spaces per indentation level.
func (s *State) IndentWidth() int { return s.indentWidth }

// PushIndent enters a deeper indentation level.
func (s *State) PushIndent() { s.indentLevel++ }

// PopIndent leaves the current indentation level.
func (s *State) PopIndent() {
	if s.indentLevel > 0 {
		s.indentLevel--
	}
}

// CurrentIndent is IndentLevel × IndentWidth spaces.
func (s *State) CurrentIndent() string {
	return Spaces(s.indentLevel * s.indentWidth)
}

// IndentUnit is one level of indentation.
func (s *State) IndentUnit() string {
	return Spaces(s.indentWidth)
}

// PushList opens a list. Ordered lists number from start; unordered lists
// use bullet for every item.
func (s *State) PushList(ordered bool, start int, bullet string) {
	s.lists = append(s.lists, listFrame{ordered: ordered, next: start, bullet: bullet})
}

// PopList closes the innermost list.
func (s *State) PopList() {
	if len(s.lists) > 0 {
		s.lists = s.lists[:len(s.lists)-1]
	}
}

// NextMarker returns the marker text ("* ", "3. ") for the next item of the
// innermost list and advances its ordinal.
func (s *State) NextMarker() string {
	if len(s.lists) == 0 {
		return ""
	}
	f := &s.lists[len(s.lists)-1]
	if f.ordered {
		m := fmt.Sprintf("%d. ", f.next)
		f.next++
		return m
	}
	return f.bullet + " "
}

// ListOrdered reports whether the innermost open list is ordered.
func (s *State) ListOrdered() bool {
	if len(s.lists) == 0 {
		return false
	}
	return s.lists[len(s.lists)-1].ordered
}

// SetListTight records whether the innermost list is tight.
func (s *State) SetListTight(tight bool) {
	if len(s.lists) > 0 {
		s.lists[len(s.lists)-1].tight = tight
	}
}

// ListTight reports whether the innermost open list is tight.
func (s *State) ListTight() bool {
	if len(s.lists) == 0 {
		return false
	}
	return s.lists[len(s.lists)-1].tight
}

// ListDepth returns the number of open lists.
func (s *State) ListDepth() int { return len(s.lists) }

// InList reports whether any list is open.
func (s *State) InList() bool { return len(s.lists) > 0 }

// ListPath returns the ordered flag of every open list, outermost first.
func (s *State) ListPath() []bool {
	out := make([]bool, len(s.lists))
	for i, f := range s.lists {
		out[i] = f.ordered
	}
	return out
}

// Enter records descent into n. It returns false, and records a diagnostic,
// when the depth limit is reached; the caller must then skip n and must not
// call Leave.
func (s *State) Enter(n ast.Node) bool {
	if s.depth >= s.limits.maxDepth() {
		s.Report.Add(DiagDepthLimit, n.Kind(), "nesting deeper than %d skipped", s.limits.maxDepth())
		return false
	}
	s.depth++
	return true
}

// Leave undoes a successful Enter.
func (s *State) Leave() {
	if s.depth > 0 {
		s.depth--
	}
}

// Depth returns the current nesting depth.
func (s *State) Depth() int { return s.depth }
