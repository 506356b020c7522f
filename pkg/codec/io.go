package codec

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/errors"
	"github.com/arthur-debert/docweave/pkg/logging"
)

// Format is a serialization of the map form.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks a format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode parses data in format into a document.
func Decode(data []byte, format Format) (*ast.Document, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	}
	return nil, errors.Newf(errors.ErrUnknownFormat, "unknown document format: %s", format).
		WithDetail("format", string(format))
}

// Encode serializes doc in format.
func Encode(doc *ast.Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return EncodeJSON(doc)
	case FormatYAML:
		return EncodeYAML(doc)
	}
	return nil, errors.Newf(errors.ErrUnknownFormat, "unknown document format: %s", format).
		WithDetail("format", string(format))
}

// DecodeJSON parses a JSON document tree.
func DecodeJSON(data []byte) (*ast.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrDecode, "failed to parse JSON document")
	}
	return document(normalize(raw), FormatJSON)
}

// DecodeYAML parses a YAML document tree.
func DecodeYAML(data []byte) (*ast.Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrDecode, "failed to parse YAML document")
	}
	return document(raw, FormatYAML)
}

// EncodeJSON writes doc as indented JSON with sorted keys.
func EncodeJSON(doc *ast.Document) ([]byte, error) {
	out, err := json.MarshalIndent(ToMap(doc), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrEncode, "failed to encode JSON document")
	}
	return append(out, '\n'), nil
}

// EncodeYAML writes doc as YAML with sorted keys.
func EncodeYAML(doc *ast.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToMap(doc)); err != nil {
		return nil, errors.Wrap(err, errors.ErrEncode, "failed to encode YAML document")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrEncode, "failed to encode YAML document")
	}
	return buf.Bytes(), nil
}

func document(raw any, format Format) (*ast.Document, error) {
	logger := logging.GetLogger("codec")

	m, ok := asMap(raw)
	if !ok {
		return nil, decodeError("$", "expected a document object, got %T", raw)
	}
	n, err := FromMap(m)
	if err != nil {
		return nil, err
	}
	doc, ok := n.(*ast.Document)
	if !ok {
		return nil, decodeError("$", "expected a document, got %s", n.Kind())
	}
	logger.Debug().
		Str("format", string(format)).
		Int("blocks", len(doc.Children)).
		Int("extensions", doc.Extensions.Len()).
		Msg("document decoded")
	return doc, nil
}

// normalize turns json.Number values into int where they are integral and
// float64 otherwise, matching what the YAML decoder produces.
func normalize(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := strconv.Atoi(v.String()); err == nil {
			return i
		}
		f, _ := v.Float64()
		return f
	case map[string]any:
		for k, item := range v {
			v[k] = normalize(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	}
	return v
}
