package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equinor/fmu-settings-api/pkg/document"
)

func TestLookup(t *testing.T) {
	doc := document.Document{
		"version": "1.0.0",
		"model": map[string]any{
			"name":     "Drogon",
			"revision": "21.0.0",
		},
	}

	tests := []struct {
		name  string
		path  string
		want  any
		found bool
	}{
		{"top level", "version", "1.0.0", true},
		{"nested", "model.revision", "21.0.0", true},
		{"missing leaf", "model.epoch", nil, false},
		{"missing branch", "rms.horizons", nil, false},
		{"descend through scalar", "version.minor", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := document.Lookup(doc, tt.path)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalSortsKeys(t *testing.T) {
	a := map[string]any{"b": 2, "a": 1}
	b := map[string]any{"a": 1, "b": 2}

	ca, err := document.Canonical(a)
	require.NoError(t, err)
	cb, err := document.Canonical(b)
	require.NoError(t, err)

	assert.Equal(t, ca, cb)
	assert.Equal(t, `{"a":1,"b":2}`, ca)
}

func TestCanonicalNested(t *testing.T) {
	v := map[string]any{
		"outer": map[string]any{"z": []any{1, 2}, "a": "x"},
	}
	c, err := document.Canonical(v)
	require.NoError(t, err)
	assert.Equal(t, `{"outer":{"a":"x","z":[1,2]}}`, c)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a    any
		b    any
		want bool
	}{
		{"identical scalars", "øo", "øo", true},
		{"different scalars", "øo", "ooo", false},
		{"int vs float of same number", 2, 2.0, true},
		{"nil vs nil", nil, nil, true},
		{"nil vs value", nil, "x", false},
		{
			"maps ignore key order",
			map[string]any{"a": 1, "b": []any{"x"}},
			map[string]any{"b": []any{"x"}, "a": 1},
			true,
		},
		{
			"slices respect order",
			[]any{1, 2},
			[]any{2, 1},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, document.Equal(tt.a, tt.b))
		})
	}
}

func TestItems(t *testing.T) {
	t.Run("nil is an empty sequence", func(t *testing.T) {
		items, ok := document.Items(nil)
		assert.True(t, ok)
		assert.Empty(t, items)
	})

	t.Run("decoded JSON list", func(t *testing.T) {
		items, ok := document.Items([]any{
			map[string]any{"name": "MSL"},
			map[string]any{"name": "TopVolantis"},
		})
		require.True(t, ok)
		require.Len(t, items, 2)
		assert.Equal(t, "MSL", items[0]["name"])
	})

	t.Run("typed item list", func(t *testing.T) {
		items, ok := document.Items([]document.Item{{"name": "MSL"}})
		assert.True(t, ok)
		assert.Len(t, items, 1)
	})

	t.Run("scalar is not a sequence", func(t *testing.T) {
		_, ok := document.Items("horizons")
		assert.False(t, ok)
	})

	t.Run("list of scalars is not a sequence of items", func(t *testing.T) {
		_, ok := document.Items([]any{"MSL", "TopVolantis"})
		assert.False(t, ok)
	})
}
