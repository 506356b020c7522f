package markdown

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/errors"
)

// frontMatter encodes the document metadata as a YAML (---) or TOML (+++)
// block. It returns "" when disabled or when there is no metadata.
func (r *Renderer) frontMatter(doc *ast.Document) (string, error) {
	meta := doc.Meta()
	if len(meta) == 0 {
		return "", nil
	}
	data := map[string]any(meta)

	switch r.opts.FrontMatter {
	case FrontMatterYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrEncode, "failed to encode YAML front matter")
		}
		return "---\n" + string(out) + "---", nil
	case FrontMatterTOML:
		out, err := toml.Marshal(data)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrEncode, "failed to encode TOML front matter")
		}
		return "+++\n" + strings.TrimRight(string(out), "\n") + "\n+++", nil
	default:
		return "", nil
	}
}
