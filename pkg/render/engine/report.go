package engine

import (
	"fmt"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/logging"
)

// DiagCode classifies a diagnostic.
type DiagCode string

// Diagnostic codes.
const (
	// DiagTableShape: a row had more or fewer cells than the table has
	// columns and was padded or truncated.
	DiagTableShape DiagCode = "table_shape"
	// DiagCapabilityFallback: the target dialect lacks a feature and a
	// fallback encoding was used.
	DiagCapabilityFallback DiagCode = "capability_fallback"
	// DiagDepthLimit: a subtree was deeper than Limits.MaxDepth.
	DiagDepthLimit DiagCode = "depth_limit"
	// DiagDropped: a node has no representation in the dialect.
	DiagDropped DiagCode = "dropped"
	// DiagHeadingLevel: a heading level was clamped into [1,6].
	DiagHeadingLevel DiagCode = "heading_level"
)

// Diagnostic records something a renderer recovered from. Diagnostics are
// never errors; the output is still complete best-effort text.
type Diagnostic struct {
	Code    DiagCode `json:"code"`
	Kind    ast.Kind `json:"kind"`
	Message string   `json:"message"`
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s]: %s", d.Code, d.Kind, d.Message)
}

// Report collects the diagnostics of one render.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Add records a diagnostic.
func (r *Report) Add(code DiagCode, kind ast.Kind, format string, args ...any) {
	d := Diagnostic{Code: code, Kind: kind, Message: fmt.Sprintf(format, args...)}
	r.Diagnostics = append(r.Diagnostics, d)

	log := logging.GetLogger("render.engine")
	log.Debug().
		Str("code", string(code)).
		Str("kind", kind.String()).
		Msg(d.Message)
}

// Len returns the number of diagnostics.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Diagnostics)
}

// Has reports whether a diagnostic with code was recorded.
func (r *Report) Has(code DiagCode) bool {
	return len(r.Filter(code)) > 0
}

// Filter returns the diagnostics with code.
func (r *Report) Filter(code DiagCode) []Diagnostic {
	if r == nil {
		return nil
	}
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}
