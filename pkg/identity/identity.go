// Package identity defines how list items are matched between two
// versions of a document. An identity Spec derives a stable key from an
// item, and a Registry maps field paths to the Spec to use when diffing
// the list at that path.
package identity

import (
	"github.com/equinor/fmu-settings-api/pkg/document"
	"github.com/equinor/fmu-settings-api/pkg/errors"
)

// Kind discriminates the identity strategies.
type Kind string

const (
	// KindNamedField keys an item by the value of a named attribute.
	KindNamedField Kind = "named_field"
	// KindWholeItem keys an item by the canonical form of all its
	// attributes, so key equality implies full structural equality.
	KindWholeItem Kind = "whole_item"
)

// Spec describes how to derive a stable matching key from a list item.
// Construct one with NamedField or WholeItem; the zero value is not a
// valid Spec.
type Spec struct {
	kind      Kind
	attribute string
}

// NamedField returns a Spec that keys items by the given attribute.
func NamedField(attribute string) Spec {
	return Spec{kind: KindNamedField, attribute: attribute}
}

// WholeItem returns a Spec that keys items by their full canonical form.
func WholeItem() Spec {
	return Spec{kind: KindWholeItem}
}

// Kind returns the identity strategy of the spec.
func (s Spec) Kind() Kind {
	return s.kind
}

// Attribute returns the keying attribute for a NamedField spec and the
// empty string otherwise.
func (s Spec) Attribute() string {
	return s.attribute
}

// Key derives the matching key for an item under this spec.
func (s Spec) Key(item document.Item) (any, error) {
	switch s.kind {
	case KindNamedField:
		value, ok := item[s.attribute]
		if !ok {
			return nil, errors.NewValidationError(s.attribute, nil, "item is missing its identity attribute")
		}
		return value, nil
	case KindWholeItem:
		canonical, err := document.Canonical(item)
		if err != nil {
			return nil, errors.NewValidationError("", item, "item has no canonical form: "+err.Error())
		}
		return canonical, nil
	default:
		return nil, errors.NewValidationError("", nil, "identity spec has no strategy")
	}
}

// Registry resolves the identity spec registered for a field path.
// A path with no spec means the list at that path is compared as an
// atomic value. Implementations must be safe for concurrent use by
// independent comparisons.
type Registry interface {
	Lookup(fieldPath string) (Spec, bool)
}

// Table is a Registry backed by an explicit path to spec lookup table,
// maintained independently of the document schema.
type Table map[string]Spec

// Lookup implements Registry.
func (t Table) Lookup(fieldPath string) (Spec, bool) {
	spec, ok := t[fieldPath]
	return spec, ok
}
