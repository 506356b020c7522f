// Package ast defines the typed document tree shared by every docweave
// importer and renderer.
//
// # Node Model
//
// The tree is a closed set of variants. Node is a sealed interface: only the
// types in this package implement it, so a type switch over Node is
// exhaustive. Block and Inline narrow the set to the nodes that may appear in
// block and inline positions. A handful of structural nodes (ListItem,
// TableRow, TableCell and the definition-list parts) are Nodes but neither
// Block nor Inline; they only appear inside their parent container.
//
// Every node carries an open Metadata map for round-tripping dialect specific
// attributes. Renderers that understand a particular extension read it from
// the typed Extensions side-table instead (see ExtensionsFromMetadata).
//
// # Visitors
//
// Visitor has one method per node kind. Accept routes a node to the matching
// method with a single type switch. Adding a node kind adds a Visitor method,
// so every renderer stops compiling until it handles the new kind.
//
//	type counter struct{ n int }
//
//	func (c *counter) VisitText(_ *State, t *ast.Text) { c.n += len(t.Content) }
//	// ... one method per kind
//
//	ast.Accept[*State](doc, c, state)
//
// # Traversal
//
// Walk, Inspect and FindAll traverse any subtree through ChildNodes without
// reflection. Renderers never mutate nodes; a tree is an immutable value for
// the duration of a render.
package ast
