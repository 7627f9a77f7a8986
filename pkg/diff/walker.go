package diff

import (
	"sort"

	"github.com/equinor/fmu-settings-api/pkg/document"
	"github.com/equinor/fmu-settings-api/pkg/identity"
	"github.com/equinor/fmu-settings-api/pkg/reconcile"
)

// Order fixes the traversal order of sibling fields under a path
// prefix, typically from schema declaration order. Names absent from
// the declared order sort after declared ones.
type Order interface {
	Sort(prefix string, names []string) []string
}

// Walker walks two parallel document trees and emits one Entry per
// field path where they differ. List fields registered in the identity
// registry are delegated to the reconciler; everything else compares by
// deep structural equality.
type Walker struct {
	registry   identity.Registry
	reconciler reconcile.Reconciler
	order      Order
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithOrder sets the field traversal order, typically a schema.
func WithOrder(order Order) WalkerOption {
	return func(w *Walker) {
		w.order = order
	}
}

// WithReconciler replaces the list reconciler.
func WithReconciler(r reconcile.Reconciler) WalkerOption {
	return func(w *Walker) {
		w.reconciler = r
	}
}

// NewWalker creates a Walker that consults the given identity registry.
// Without an explicit Order, siblings are visited in sorted name order,
// which is deterministic for both documents.
func NewWalker(registry identity.Registry, opts ...WalkerOption) *Walker {
	w := &Walker{
		registry:   registry,
		reconciler: reconcile.New(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Walk compares two documents of the same logical shape and returns the
// ordered entries for every differing field path. An identity conflict
// in any list field aborts the walk; no partial result is returned.
func (w *Walker) Walk(current, selected document.Document) ([]Entry, error) {
	entries := []Entry{}
	if err := w.walk("", current, selected, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// walk visits the union of field names under one prefix.
func (w *Walker) walk(prefix string, current, selected document.Document, out *[]Entry) error {
	for _, name := range w.fieldNames(prefix, current, selected) {
		path := document.JoinPath(prefix, name)
		before := current[name]
		after := selected[name]

		if spec, registered := w.registry.Lookup(path); registered {
			entry, err := w.listField(path, before, after, spec)
			if err != nil {
				return err
			}
			if entry != nil {
				*out = append(*out, entry)
			}
			continue
		}

		// Nested documents on both sides recurse; every other shape is
		// a leaf compared as a whole value. A subtree present on only
		// one side diffs as a whole value with the other side null.
		beforeDoc, beforeIsDoc := before.(document.Document)
		afterDoc, afterIsDoc := after.(document.Document)
		if beforeIsDoc && afterIsDoc {
			if err := w.walk(path, beforeDoc, afterDoc, out); err != nil {
				return err
			}
			continue
		}

		if !document.Equal(before, after) {
			*out = append(*out, &ScalarEntry{
				FieldPath: path,
				Updated:   ScalarChange{Before: before, After: after},
			})
		}
	}
	return nil
}

// listField diffs a field registered for list reconciliation. When a
// side does not hold a sequence of items the comparison degrades to a
// whole-value scalar diff instead of failing.
func (w *Walker) listField(path string, before, after any, spec identity.Spec) (Entry, error) {
	beforeItems, beforeOK := document.Items(before)
	afterItems, afterOK := document.Items(after)
	if !beforeOK || !afterOK {
		if document.Equal(before, after) {
			return nil, nil
		}
		return &ScalarEntry{
			FieldPath: path,
			Updated:   ScalarChange{Before: before, After: after},
		}, nil
	}

	result, err := w.reconciler.Reconcile(path, beforeItems, afterItems, spec)
	if err != nil {
		return nil, err
	}
	if !result.HasChanges() {
		return nil, nil
	}
	return newListEntry(path, result), nil
}

// fieldNames returns the union of field names in both documents, in
// schema order when one is set and in sorted order otherwise.
func (w *Walker) fieldNames(prefix string, current, selected document.Document) []string {
	seen := make(map[string]bool, len(current)+len(selected))
	names := make([]string, 0, len(current)+len(selected))
	for name := range current {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range selected {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	if w.order != nil {
		names = w.order.Sort(prefix, names)
	}
	return names
}
