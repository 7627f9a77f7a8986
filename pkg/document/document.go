// Package document defines the value model for FMU configuration
// documents: a tree of nested mappings, ordered sequences of structured
// items, and scalars, addressed by dot-delimited field paths. It is the
// shared vocabulary of the diff core and the resource store.
package document

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Document is a configuration document: a mapping from field names to
// scalars, nested Documents, or sequences of Items. It is the decoded
// form of a resource file (config.json and friends).
type Document = map[string]any

// Item is a structured list element, such as a horizon record or a
// stratigraphy mapping record.
type Item = map[string]any

// PathSeparator delimits segments of a field path (e.g. "rms.horizons").
const PathSeparator = "."

// JoinPath appends a segment to a field path prefix.
func JoinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + PathSeparator + name
}

// SplitPath splits a field path into its segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, PathSeparator)
}

// Lookup resolves a dot-delimited field path against a document.
// The second return value reports whether every segment was present.
func Lookup(doc Document, path string) (any, bool) {
	var value any = doc
	for _, segment := range SplitPath(path) {
		m, ok := asMap(value)
		if !ok {
			return nil, false
		}
		value, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return value, true
}

// Canonical returns a deterministic serialization of a value: JSON with
// recursively sorted object keys. Two values are deep-equal exactly when
// their canonical forms are byte-identical, so the canonical form is
// usable as a whole-item identity key.
func Canonical(v any) (string, error) {
	// encoding/json sorts map keys, which gives the order-independent
	// form directly for the map/slice/scalar domain documents live in.
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Equal reports deep structural equality between two document values.
// Values are compared in canonical form, so an int and a float holding
// the same number are equal regardless of how the document was decoded.
func Equal(a, b any) bool {
	ca, errA := Canonical(a)
	cb, errB := Canonical(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return ca == cb
}

// Items interprets a field value as a sequence of structured items.
// A nil or absent value counts as an empty sequence; anything that is
// not a slice of mappings reports false, which callers treat as a
// shape mismatch.
func Items(v any) ([]Item, bool) {
	switch seq := v.(type) {
	case nil:
		return nil, true
	case []Item:
		return seq, true
	case []any:
		items := make([]Item, 0, len(seq))
		for _, elem := range seq {
			m, ok := asMap(elem)
			if !ok {
				return nil, false
			}
			items = append(items, m)
		}
		return items, true
	default:
		return nil, false
	}
}

// asMap normalizes the mapping representations a decoded document can
// contain into a plain map.
func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
