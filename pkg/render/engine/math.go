package engine

import "github.com/arthur-debert/docweave/pkg/ast"

// ResolveMath picks the representation of a formula to emit. requested is
// tried in order; a notation matches either the node's own notation (an
// empty notation counts as LaTeX) or an entry of reps. When nothing matches
// the node's own content is returned with its notation.
func ResolveMath(requested []ast.Notation, content string, notation ast.Notation, reps map[ast.Notation]string) (string, ast.Notation) {
	if notation == "" {
		notation = ast.NotationLaTeX
	}
	for _, want := range requested {
		if want == notation && content != "" {
			return content, notation
		}
		if alt := reps[want]; alt != "" {
			return alt, want
		}
	}
	if content == "" {
		for _, n := range []ast.Notation{ast.NotationLaTeX, ast.NotationMathML, ast.NotationHTML} {
			if alt := reps[n]; alt != "" {
				return alt, n
			}
		}
	}
	return content, notation
}
