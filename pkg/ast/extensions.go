package ast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Extension is a typed dialect payload attached to a node through an
// Extensions table. The set of payloads is closed.
type Extension interface {
	extensionName() string
}

// OrgHeading carries Org-mode heading state.
type OrgHeading struct {
	Todo       string
	Priority   string
	Tags       []string
	Properties map[string]string
}

// NotebookCell records the notebook cell a block was imported from.
type NotebookCell struct {
	CellType       string
	ExecutionCount int
	Source         string
}

func (OrgHeading) extensionName() string   { return "org_heading" }
func (NotebookCell) extensionName() string { return "notebook_cell" }

// Metadata keys understood by ExtensionsFromMetadata.
const (
	MetaOrgTodo        = "org_todo"
	MetaOrgPriority    = "org_priority"
	MetaOrgTags        = "org_tags"
	MetaOrgProperties  = "org_properties"
	MetaCellType       = "cell_type"
	MetaExecutionCount = "execution_count"
	MetaCellSource     = "cell_source"
)

// Extensions maps nodes to their typed payloads. Keys are node pointers, so
// a payload follows the node it was attached to and not its position.
type Extensions struct {
	entries map[Node][]Extension
}

// NewExtensions returns an empty table.
func NewExtensions() *Extensions {
	return &Extensions{entries: make(map[Node][]Extension)}
}

// Set attaches ext to n, replacing any payload of the same type.
func (e *Extensions) Set(n Node, ext Extension) {
	if e.entries == nil {
		e.entries = make(map[Node][]Extension)
	}
	list := e.entries[n]
	for i, existing := range list {
		if existing.extensionName() == ext.extensionName() {
			list[i] = ext
			return
		}
	}
	e.entries[n] = append(list, ext)
}

func (e *Extensions) clone() *Extensions {
	out := NewExtensions()
	if e == nil {
		return out
	}
	for n, list := range e.entries {
		out.entries[n] = append([]Extension(nil), list...)
	}
	return out
}

// Len returns the number of nodes with at least one payload.
func (e *Extensions) Len() int {
	if e == nil {
		return 0
	}
	return len(e.entries)
}

// Lookup returns the payload of type T attached to n. It is safe to call on a
// nil table.
func Lookup[T Extension](e *Extensions, n Node) (T, bool) {
	var zero T
	if e == nil {
		return zero, false
	}
	for _, ext := range e.entries[n] {
		if t, ok := ext.(T); ok {
			return t, true
		}
	}
	return zero, false
}

// ExtensionsFromMetadata builds the typed table for doc from the well-known
// metadata keys. The result is a new table seeded with doc.Extensions;
// payloads already present there win over metadata. doc is not modified.
func ExtensionsFromMetadata(doc *Document) *Extensions {
	table := doc.Extensions.clone()
	Inspect(doc, func(n Node) bool {
		meta := n.Meta()
		if len(meta) == 0 {
			return true
		}
		if h, ok := n.(*Heading); ok {
			if _, exists := Lookup[OrgHeading](table, h); !exists {
				if org, found := orgFromMeta(meta); found {
					table.Set(h, org)
				}
			}
		}
		if _, exists := Lookup[NotebookCell](table, n); !exists {
			if cell, found := cellFromMeta(meta); found {
				table.Set(n, cell)
			}
		}
		return true
	})
	return table
}

func orgFromMeta(meta Metadata) (OrgHeading, bool) {
	var org OrgHeading
	found := false
	if v := meta.String(MetaOrgTodo); v != "" {
		org.Todo = v
		found = true
	}
	if v := meta.String(MetaOrgPriority); v != "" {
		org.Priority = v
		found = true
	}
	if v, ok := meta.Get(MetaOrgTags); ok {
		org.Tags = stringList(v)
		found = found || len(org.Tags) > 0
	}
	if v, ok := meta.Get(MetaOrgProperties); ok {
		org.Properties = stringMap(v)
		found = found || len(org.Properties) > 0
	}
	return org, found
}

func cellFromMeta(meta Metadata) (NotebookCell, bool) {
	cellType := meta.String(MetaCellType)
	if cellType == "" {
		return NotebookCell{}, false
	}
	cell := NotebookCell{CellType: cellType, Source: meta.String(MetaCellSource)}
	if v, ok := meta.Get(MetaExecutionCount); ok {
		cell.ExecutionCount = toInt(v)
	}
	return cell, true
}

func stringList(v any) []string {
	switch v := v.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		return strings.FieldsFunc(v, func(r rune) bool { return r == ':' || r == ',' || r == ' ' })
	}
	return nil
}

func stringMap(v any) map[string]string {
	out := make(map[string]string)
	switch v := v.(type) {
	case map[string]string:
		for k, val := range v {
			out[k] = val
		}
	case map[string]any:
		for k, val := range v {
			out[k] = fmt.Sprint(val)
		}
	case Metadata:
		for k, val := range v {
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

func toInt(v any) int {
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
