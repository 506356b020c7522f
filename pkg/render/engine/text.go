package engine

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/arthur-debert/docweave/pkg/ast"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Cleanup collapses every run of three or more newlines to exactly two and
// strips leading blank lines and trailing whitespace. It is idempotent.
func Cleanup(s string) string {
	s = blankRuns.ReplaceAllString(s, "\n\n")
	s = strings.TrimLeft(s, "\n")
	return strings.TrimRight(s, " \t\r\n")
}

// Spaces returns n spaces.
func Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// PrefixLines prefixes every line of s with prefix. Empty lines get
// blankPrefix instead so quote markers do not leave trailing spaces.
func PrefixLines(s, prefix, blankPrefix string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = blankPrefix
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// IndentLines prefixes every non-empty line of s with prefix.
func IndentLines(s, prefix string) string {
	return PrefixLines(s, prefix, "")
}

// DisplayWidth is the number of terminal cells s occupies. East Asian wide
// runes count as two.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// LongestRun returns the length of the longest run of r in s.
func LongestRun(s string, r rune) int {
	return ast.LongestRun(s, r)
}

// Fence returns a code fence of char long enough that no run inside content
// closes it, and at least minLen (never below three) characters long.
func Fence(content string, char rune, minLen int) string {
	if char != '`' && char != '~' {
		char = '`'
	}
	n := ast.FenceLengthFor(content, char)
	if minLen > n {
		n = minLen
	}
	return strings.Repeat(string(char), n)
}

// EscapeChars backslash-escapes every rune of s that appears in set.
func EscapeChars(s, set string) string {
	if !strings.ContainsAny(s, set) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if strings.ContainsRune(set, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// JoinBlocks joins rendered block outputs with sep, dropping blocks that
// rendered to nothing so empty siblings do not leave stray separators.
func JoinBlocks(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		kept = append(kept, strings.TrimRight(p, "\n"))
	}
	return strings.Join(kept, sep)
}

// FirstLineRest splits s into its first line and the remainder after the
// newline.
func FirstLineRest(s string) (string, string) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}
