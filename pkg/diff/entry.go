// Package diff compares two versions of a configuration document and
// produces a field-path-indexed description of what a restore would
// change. Scalar fields compare by deep structural equality; list
// fields registered with an identity strategy are reconciled item by
// item into added/removed/updated sets.
//
// For a reconciled list, membership and item content define
// difference, not position: a list whose items merely changed order
// under unchanged identities produces no entry, even though the two
// documents are not byte-identical.
package diff

import (
	"github.com/equinor/fmu-settings-api/pkg/document"
	"github.com/equinor/fmu-settings-api/pkg/reconcile"
)

// Entry is one unit of difference between two documents. Exactly one
// entry is produced per field path where the documents differ; the
// concrete type depends solely on whether the path is registered for
// list reconciliation.
type Entry interface {
	// Path returns the dot-delimited field path the entry describes.
	Path() string
}

// ScalarChange holds the two values of a non-list field that differs.
type ScalarChange struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

// ScalarEntry reports a changed non-list field, or a list field whose
// value did not have the expected item-sequence shape.
type ScalarEntry struct {
	FieldPath string       `json:"field_path"`
	Updated   ScalarChange `json:"updated"`
}

// Path implements Entry.
func (e *ScalarEntry) Path() string { return e.FieldPath }

// ItemChange pairs the two versions of a list item matched by identity
// key.
type ItemChange struct {
	Key    any           `json:"key"`
	Before document.Item `json:"before"`
	After  document.Item `json:"after"`
}

// ListEntry reports the reconciled changes of a list field.
type ListEntry struct {
	FieldPath string          `json:"field_path"`
	Added     []document.Item `json:"added"`
	Removed   []document.Item `json:"removed"`
	Updated   []ItemChange    `json:"updated"`
}

// Path implements Entry.
func (e *ListEntry) Path() string { return e.FieldPath }

// newListEntry wraps a reconcile result as a list entry.
func newListEntry(fieldPath string, result *reconcile.Result) *ListEntry {
	updated := make([]ItemChange, 0, len(result.Updated))
	for _, u := range result.Updated {
		updated = append(updated, ItemChange{Key: u.Key, Before: u.Before, After: u.After})
	}
	return &ListEntry{
		FieldPath: fieldPath,
		Added:     result.Added,
		Removed:   result.Removed,
		Updated:   updated,
	}
}
