package config

import (
	"slices"
	"strings"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/errors"
	"github.com/arthur-debert/docweave/pkg/render/markdown"
)

type validator struct {
	problems []string
}

func (v *validator) check(ok bool, field, format string) {
	if !ok {
		v.problems = append(v.problems, field+": "+format)
	}
}

func (v *validator) nonNegative(field string, n int) {
	v.check(n >= 0, field, "must not be negative")
}

func (v *validator) oneOf(field, value string, allowed ...string) {
	v.check(slices.Contains(allowed, value), field, "must be one of "+strings.Join(allowed, ", ")+", got \""+value+"\"")
}

// Validate reports every invalid setting in a single CONFIG_INVALID error.
func (c *Config) Validate() error {
	v := &validator{}

	v.nonNegative("limits.max_depth", c.Limits.MaxDepth)

	md := c.Markdown
	v.check(md.Flavor.IsValid(), "markdown.flavor", "unknown flavor \""+md.Flavor.String()+"\"")
	v.oneOf("markdown.emphasis_symbol", md.EmphasisSymbol, "*", "_")
	v.check(md.BulletSymbols != "", "markdown.bullet_symbols", "must not be empty")
	v.nonNegative("markdown.list_indent_width", md.ListIndentWidth)
	for field, mode := range map[string]markdown.InlineMode{
		"markdown.underline_mode":   md.UnderlineMode,
		"markdown.superscript_mode": md.SuperscriptMode,
		"markdown.subscript_mode":   md.SubscriptMode,
	} {
		v.oneOf(field, string(mode), string(markdown.InlineHTML), string(markdown.InlineMarkdown), string(markdown.InlineIgnore))
	}
	_, alignOK := ast.ParseAlignment(md.TableAlignmentDefault)
	v.check(alignOK, "markdown.table_alignment_default", "must be one of none, left, center, right")
	v.oneOf("markdown.code_fence_char", md.CodeFenceChar, "`", "~")
	v.nonNegative("markdown.code_fence_min", md.CodeFenceMin)
	v.oneOf("markdown.front_matter", string(md.FrontMatter),
		string(markdown.FrontMatterNone), string(markdown.FrontMatterYAML), string(markdown.FrontMatterTOML))
	v.oneOf("markdown.html_passthrough", string(md.HTMLPassthrough),
		string(markdown.HTMLPass), string(markdown.HTMLEscape), string(markdown.HTMLDrop))
	v.oneOf("markdown.math_mode", string(md.MathMode),
		string(markdown.MathLaTeX), string(markdown.MathCode), string(markdown.MathHTML))

	v.nonNegative("org.list_indent_width", c.Org.ListIndentWidth)

	v.nonNegative("plaintext.max_line_width", c.PlainText.MaxLineWidth)
	v.nonNegative("plaintext.list_indent_width", c.PlainText.ListIndentWidth)
	v.nonNegative("plaintext.code_indent", c.PlainText.CodeIndent)

	v.check(c.Template.Escape.IsValid(), "template.escape", "must be one of none, html, markdown")

	v.nonNegative("terminal.word_wrap", c.Terminal.WordWrap)

	if len(v.problems) == 0 {
		return nil
	}
	slices.Sort(v.problems)
	return errors.Newf(errors.ErrConfigValid, "invalid configuration: %s", strings.Join(v.problems, "; ")).
		WithDetail("problems", v.problems)
}
