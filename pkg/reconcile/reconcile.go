// Package reconcile computes membership changes between two ordered
// lists of structured items, matching items by a pluggable identity
// rather than by position.
package reconcile

import (
	"github.com/equinor/fmu-settings-api/pkg/document"
	"github.com/equinor/fmu-settings-api/pkg/errors"
	"github.com/equinor/fmu-settings-api/pkg/identity"
)

// Result holds the outcome of reconciling two item lists.
type Result struct {
	Added   []document.Item // items only in the after list, in after order
	Removed []document.Item // items only in the before list, in before order
	Updated []ItemUpdate    // matched items that differ, in before order
}

// ItemUpdate pairs the two versions of an item matched by identity key.
type ItemUpdate struct {
	Key    any           // the shared identity key
	Before document.Item // the item as it is in the before list
	After  document.Item // the item as it is in the after list
}

// HasChanges returns true if the result contains any changes.
func (r *Result) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0 || len(r.Updated) > 0
}

// Reconciler computes added/removed/updated sets for list fields.
type Reconciler interface {
	// Reconcile compares two item lists under the given identity spec.
	// The field path is carried only for error reporting.
	Reconcile(fieldPath string, before, after []document.Item, spec identity.Spec) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct{}

// New creates a new Reconciler.
func New() Reconciler {
	return &reconciler{}
}

// keyedItem retains an item together with its derived identity key.
type keyedItem struct {
	key  any
	item document.Item
}

// Reconcile compares two item lists under the given identity spec.
func (r *reconciler) Reconcile(fieldPath string, before, after []document.Item, spec identity.Spec) (*Result, error) {
	beforeKeys, beforeIndex, err := keyItems(fieldPath, before, spec, "before")
	if err != nil {
		return nil, err
	}
	afterKeys, afterIndex, err := keyItems(fieldPath, after, spec, "after")
	if err != nil {
		return nil, err
	}

	result := &Result{
		Added:   []document.Item{},
		Removed: []document.Item{},
		Updated: []ItemUpdate{},
	}

	// Items only in the after list, in after order.
	for _, entry := range afterKeys {
		if _, exists := beforeIndex[mustIndex(entry.key)]; !exists {
			result.Added = append(result.Added, entry.item)
		}
	}

	// Items only in the before list, in before order. Matched items
	// that are not deep-equal become updates, also in before order.
	for _, entry := range beforeKeys {
		matched, exists := afterIndex[mustIndex(entry.key)]
		if !exists {
			result.Removed = append(result.Removed, entry.item)
			continue
		}
		if !document.Equal(entry.item, matched) {
			result.Updated = append(result.Updated, ItemUpdate{
				Key:    entry.key,
				Before: entry.item,
				After:  matched,
			})
		}
	}

	return result, nil
}

// keyItems derives the identity key for every item in a list, preserving
// list order, and builds a canonical-key index for membership checks.
// A key occurring twice within the list is an identity conflict.
func keyItems(fieldPath string, items []document.Item, spec identity.Spec, side string) ([]keyedItem, map[string]document.Item, error) {
	keyed := make([]keyedItem, 0, len(items))
	index := make(map[string]document.Item, len(items))

	for _, item := range items {
		key, err := spec.Key(item)
		if err != nil {
			return nil, nil, err
		}
		idx, err := document.Canonical(key)
		if err != nil {
			return nil, nil, err
		}
		if _, duplicate := index[idx]; duplicate {
			return nil, nil, errors.NewIdentityConflictError(fieldPath, key, side)
		}
		index[idx] = item
		keyed = append(keyed, keyedItem{key: key, item: item})
	}

	return keyed, index, nil
}

// mustIndex converts a derived key to its canonical index form. Keys
// reaching here already passed through keyItems, so canonicalization
// cannot fail.
func mustIndex(key any) string {
	idx, _ := document.Canonical(key)
	return idx
}
