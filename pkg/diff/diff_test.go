package diff_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equinor/fmu-settings-api/pkg/diff"
	"github.com/equinor/fmu-settings-api/pkg/document"
	"github.com/equinor/fmu-settings-api/pkg/errors"
	"github.com/equinor/fmu-settings-api/pkg/identity"
)

func configRegistry() identity.Table {
	return identity.Table{
		"rms.horizons":          identity.NamedField("name"),
		"stratigraphy.mappings": identity.WholeItem(),
	}
}

func configDocument() document.Document {
	return document.Document{
		"version": "1.0.0",
		"model": document.Document{
			"name":     "Drogon",
			"revision": "øo",
		},
		"rms": document.Document{
			"horizons": []any{
				document.Item{"name": "MSL", "type": "calculated"},
				document.Item{"name": "TopVolantis", "type": "interpreted"},
			},
		},
	}
}

func TestDiffReflexivity(t *testing.T) {
	svc := diff.NewService(configRegistry())

	entries, err := svc.Diff(configDocument(), configDocument())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiffScalarChange(t *testing.T) {
	svc := diff.NewService(configRegistry())

	current := configDocument()
	selected := configDocument()
	selected["model"].(document.Document)["revision"] = "ooo"

	entries, err := svc.Diff(current, selected)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	scalar, ok := entries[0].(*diff.ScalarEntry)
	require.True(t, ok)
	assert.Equal(t, "model.revision", scalar.FieldPath)
	assert.Equal(t, "øo", scalar.Updated.Before)
	assert.Equal(t, "ooo", scalar.Updated.After)
}

func TestDiffScalarEntryWireShape(t *testing.T) {
	entry := &diff.ScalarEntry{
		FieldPath: "model.revision",
		Updated:   diff.ScalarChange{Before: "øo", After: "ooo"},
	}

	raw, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"field_path":"model.revision","updated":{"before":"øo","after":"ooo"}}`,
		string(raw))
}

func TestDiffListChange(t *testing.T) {
	svc := diff.NewService(configRegistry())

	current := configDocument()
	selected := configDocument()
	selected["rms"].(document.Document)["horizons"] = []any{
		document.Item{"name": "MSL", "type": "interpreted"},
		document.Item{"name": "TopVolantis", "type": "interpreted"},
		document.Item{"name": "BaseVolantis", "type": "interpreted"},
	}

	entries, err := svc.Diff(current, selected)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	list, ok := entries[0].(*diff.ListEntry)
	require.True(t, ok)
	assert.Equal(t, "rms.horizons", list.FieldPath)
	assert.Equal(t, []document.Item{{"name": "BaseVolantis", "type": "interpreted"}}, list.Added)
	assert.Empty(t, list.Removed)
	require.Len(t, list.Updated, 1)
	assert.Equal(t, "MSL", list.Updated[0].Key)
}

func TestDiffListEntryWireShape(t *testing.T) {
	svc := diff.NewService(configRegistry())

	current := document.Document{
		"rms": document.Document{
			"horizons": []any{document.Item{"name": "MSL", "type": "calculated"}},
		},
	}
	selected := document.Document{
		"rms": document.Document{
			"horizons": []any{document.Item{"name": "MSL", "type": "interpreted"}},
		},
	}

	entries, err := svc.Diff(current, selected)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	raw, err := json.Marshal(entries[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"field_path": "rms.horizons",
		"added": [],
		"removed": [],
		"updated": [{
			"key": "MSL",
			"before": {"name": "MSL", "type": "calculated"},
			"after": {"name": "MSL", "type": "interpreted"}
		}]
	}`, string(raw))
}

func TestDiffMissingListIsEmpty(t *testing.T) {
	svc := diff.NewService(configRegistry())

	current := configDocument()
	selected := configDocument()
	delete(selected["rms"].(document.Document), "horizons")

	entries, err := svc.Diff(current, selected)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// An absent list on one side diffs as a list entry against the
	// empty sequence, not as a scalar.
	list, ok := entries[0].(*diff.ListEntry)
	require.True(t, ok)
	assert.Equal(t, "rms.horizons", list.FieldPath)
	assert.Empty(t, list.Added)
	assert.Len(t, list.Removed, 2)
}

func TestDiffReorderedListProducesNoEntry(t *testing.T) {
	svc := diff.NewService(configRegistry())

	current := configDocument()
	selected := configDocument()
	selected["rms"].(document.Document)["horizons"] = []any{
		document.Item{"name": "TopVolantis", "type": "interpreted"},
		document.Item{"name": "MSL", "type": "calculated"},
	}

	entries, err := svc.Diff(current, selected)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiffListShapeMismatch(t *testing.T) {
	svc := diff.NewService(configRegistry())

	current := configDocument()
	selected := configDocument()
	selected["rms"].(document.Document)["horizons"] = "not a list"

	entries, err := svc.Diff(current, selected)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	scalar, ok := entries[0].(*diff.ScalarEntry)
	require.True(t, ok)
	assert.Equal(t, "rms.horizons", scalar.FieldPath)
	assert.Equal(t, "not a list", scalar.Updated.After)
}

func TestDiffIdentityConflictAborts(t *testing.T) {
	svc := diff.NewService(configRegistry())

	current := configDocument()
	current["rms"].(document.Document)["horizons"] = []any{
		document.Item{"name": "MSL", "type": "calculated"},
		document.Item{"name": "MSL", "type": "interpreted"},
	}
	selected := configDocument()
	selected["version"] = "2.0.0"

	entries, err := svc.Diff(current, selected)
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.True(t, errors.IsIdentityConflict(err))

	var conflict *errors.IdentityConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "rms.horizons", conflict.FieldPath)
	assert.Equal(t, "MSL", conflict.Key)
}

func TestDiffSubtreeOnOneSide(t *testing.T) {
	svc := diff.NewService(configRegistry())

	current := document.Document{"masterdata": document.Document{"country": "Norway"}}
	selected := document.Document{}

	entries, err := svc.Diff(current, selected)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	scalar, ok := entries[0].(*diff.ScalarEntry)
	require.True(t, ok)
	assert.Equal(t, "masterdata", scalar.FieldPath)
	assert.Nil(t, scalar.Updated.After)
}

func TestDiffDeterministicOrderWithoutSchema(t *testing.T) {
	svc := diff.NewService(configRegistry())

	current := document.Document{"b": 1, "a": 1, "c": 1}
	selected := document.Document{"b": 2, "a": 2, "c": 2}

	for range 5 {
		entries, err := svc.Diff(current, selected)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "a", entries[0].Path())
		assert.Equal(t, "b", entries[1].Path())
		assert.Equal(t, "c", entries[2].Path())
	}
}

// declaredOrder is a fixed sibling ordering for a single prefix.
type declaredOrder struct {
	prefix string
	names  []string
}

func (o declaredOrder) Sort(prefix string, names []string) []string {
	if prefix != o.prefix {
		return names
	}
	rank := make(map[string]int, len(o.names))
	for i, name := range o.names {
		rank[name] = i
	}
	ordered := make([]string, len(names))
	copy(ordered, names)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if rank[ordered[j]] < rank[ordered[i]] {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}
	return ordered
}

func TestDiffHonorsDeclaredOrder(t *testing.T) {
	svc := diff.NewService(configRegistry(),
		diff.WithOrder(declaredOrder{prefix: "", names: []string{"version", "model", "created_at"}}))

	current := document.Document{"created_at": "x", "model": "y", "version": "1"}
	selected := document.Document{"created_at": "xx", "model": "yy", "version": "2"}

	entries, err := svc.Diff(current, selected)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "version", entries[0].Path())
	assert.Equal(t, "model", entries[1].Path())
	assert.Equal(t, "created_at", entries[2].Path())
}
