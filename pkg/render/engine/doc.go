// Package engine holds the machinery shared by every docweave renderer.
//
// A render is a depth-first walk over an ast.Document. Everything that
// changes how a node is formatted depending on its ancestors lives in a
// State value created for that one walk: the output buffer stack, the
// indentation level, the open-list marker stack and the recursion depth.
// Renderer objects keep only immutable options, so one renderer may serve
// concurrent renders.
//
// The package also provides the post-pass Cleanup, line prefixing used for
// block quotes and list continuation lines, the Grid table layout, fence
// selection, math representation resolution and the diagnostics Report
// through which renderers surface recovered tree-shape problems.
package engine
