// Package flavor answers capability queries for the Markdown dialects the
// Markdown renderer can target. Answers are pure functions of the flavor
// value and never depend on the document being rendered.
package flavor

import (
	"sort"
	"strings"

	"github.com/arthur-debert/docweave/pkg/errors"
)

// Capabilities describes what an output dialect can express natively.
// Renderers query it to pick a fallback encoding when a feature is missing.
type Capabilities interface {
	SupportsTables() bool
	SupportsStrikethrough() bool
	SupportsTaskLists() bool
	SupportsFootnotes() bool
	SupportsMath() bool
	SupportsDefinitionLists() bool
}

// Flavor is a named Markdown dialect.
type Flavor string

// Known flavors.
const (
	CommonMark    Flavor = "commonmark"
	GFM           Flavor = "gfm"
	MarkdownPlus  Flavor = "markdown_plus"
	MultiMarkdown Flavor = "multimarkdown"
	Pandoc        Flavor = "pandoc"
	Kramdown      Flavor = "kramdown"
)

type capabilitySet struct {
	tables, strikethrough, taskLists, footnotes, math, definitionLists bool
}

var capabilityTable = map[Flavor]capabilitySet{
	CommonMark:    {},
	GFM:           {tables: true, strikethrough: true, taskLists: true, footnotes: true},
	MarkdownPlus:  {tables: true, strikethrough: true, taskLists: true, footnotes: true, math: true, definitionLists: true},
	MultiMarkdown: {tables: true, footnotes: true, math: true, definitionLists: true},
	Pandoc:        {tables: true, strikethrough: true, taskLists: true, footnotes: true, math: true, definitionLists: true},
	Kramdown:      {tables: true, footnotes: true, math: true, definitionLists: true},
}

var aliases = map[string]Flavor{
	"github":   GFM,
	"cm":       CommonMark,
	"plus":     MarkdownPlus,
	"markdown": MarkdownPlus,
	"mmd":      MultiMarkdown,
}

// Parse resolves a flavor name or alias, case-insensitively.
func Parse(s string) (Flavor, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", "_")
	if f := Flavor(name); f.IsValid() {
		return f, nil
	}
	if f, ok := aliases[name]; ok {
		return f, nil
	}
	return "", errors.Newf(errors.ErrUnknownFlavor, "unknown flavor: %s", s).WithDetail("flavor", s)
}

// All returns the known flavors sorted by name.
func All() []Flavor {
	out := make([]Flavor, 0, len(capabilityTable))
	for f := range capabilityTable {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsValid returns true if f is a known flavor.
func (f Flavor) IsValid() bool {
	_, ok := capabilityTable[f]
	return ok
}

// String returns the flavor name.
func (f Flavor) String() string { return string(f) }

// Unknown flavors report no capabilities, which yields the most portable
// output.
func (f Flavor) caps() capabilitySet { return capabilityTable[f] }

func (f Flavor) SupportsTables() bool          { return f.caps().tables }
func (f Flavor) SupportsStrikethrough() bool   { return f.caps().strikethrough }
func (f Flavor) SupportsTaskLists() bool       { return f.caps().taskLists }
func (f Flavor) SupportsFootnotes() bool       { return f.caps().footnotes }
func (f Flavor) SupportsMath() bool            { return f.caps().math }
func (f Flavor) SupportsDefinitionLists() bool { return f.caps().definitionLists }

// Describe lists the capabilities of c by name.
func Describe(c Capabilities) map[string]bool {
	return map[string]bool{
		"tables":           c.SupportsTables(),
		"strikethrough":    c.SupportsStrikethrough(),
		"task_lists":       c.SupportsTaskLists(),
		"footnotes":        c.SupportsFootnotes(),
		"math":             c.SupportsMath(),
		"definition_lists": c.SupportsDefinitionLists(),
	}
}

// CapabilityNames returns the keys of Describe in display order.
func CapabilityNames() []string {
	return []string{"tables", "strikethrough", "task_lists", "footnotes", "math", "definition_lists"}
}

var _ Capabilities = Flavor("")
