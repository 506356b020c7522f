package engine

import (
	"io"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/errors"
)

// Renderer turns a document into text in one dialect. Implementations hold
// only immutable options and may be used from several goroutines.
type Renderer interface {
	Render(doc *ast.Document) (string, error)
	RenderTo(w io.Writer, doc *ast.Document) error
}

// Result is a rendered document together with the diagnostics recorded
// while rendering it.
type Result struct {
	Output string
	Report *Report
}

// WriteOutput writes out to w, wrapping failures as ErrWrite.
func WriteOutput(w io.Writer, out string) error {
	if _, err := io.WriteString(w, out); err != nil {
		return errors.Wrap(err, errors.ErrWrite, "failed to write rendered output")
	}
	return nil
}

// RenderTo renders doc with r and writes the result to w.
func RenderTo(r Renderer, w io.Writer, doc *ast.Document) error {
	out, err := r.Render(doc)
	if err != nil {
		return err
	}
	return WriteOutput(w, out)
}
