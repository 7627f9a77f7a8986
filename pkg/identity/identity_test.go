package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equinor/fmu-settings-api/pkg/document"
	"github.com/equinor/fmu-settings-api/pkg/errors"
	"github.com/equinor/fmu-settings-api/pkg/identity"
)

func TestNamedFieldKey(t *testing.T) {
	spec := identity.NamedField("name")
	assert.Equal(t, identity.KindNamedField, spec.Kind())
	assert.Equal(t, "name", spec.Attribute())

	key, err := spec.Key(document.Item{"name": "MSL", "type": "calculated"})
	require.NoError(t, err)
	assert.Equal(t, "MSL", key)
}

func TestNamedFieldKeyMissingAttribute(t *testing.T) {
	spec := identity.NamedField("name")

	_, err := spec.Key(document.Item{"type": "calculated"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestWholeItemKey(t *testing.T) {
	spec := identity.WholeItem()
	assert.Equal(t, identity.KindWholeItem, spec.Kind())
	assert.Empty(t, spec.Attribute())

	// Attribute order must not affect the key
	keyA, err := spec.Key(document.Item{"source_id": "VIKING GP. Top", "relation_type": "alias"})
	require.NoError(t, err)
	keyB, err := spec.Key(document.Item{"relation_type": "alias", "source_id": "VIKING GP. Top"})
	require.NoError(t, err)
	assert.Equal(t, keyA, keyB)

	// Any attribute change changes the key
	keyC, err := spec.Key(document.Item{"source_id": "VIKING GP. Top", "relation_type": "primary"})
	require.NoError(t, err)
	assert.NotEqual(t, keyA, keyC)
}

func TestZeroSpecKey(t *testing.T) {
	var spec identity.Spec
	_, err := spec.Key(document.Item{"name": "MSL"})
	assert.Error(t, err)
}

func TestTableLookup(t *testing.T) {
	table := identity.Table{
		"rms.horizons":          identity.NamedField("name"),
		"stratigraphy.mappings": identity.WholeItem(),
	}

	spec, ok := table.Lookup("rms.horizons")
	require.True(t, ok)
	assert.Equal(t, identity.KindNamedField, spec.Kind())

	spec, ok = table.Lookup("stratigraphy.mappings")
	require.True(t, ok)
	assert.Equal(t, identity.KindWholeItem, spec.Kind())

	_, ok = table.Lookup("model.revision")
	assert.False(t, ok)
}
