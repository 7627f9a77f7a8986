package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equinor/fmu-settings-api/internal/server/cache"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "diff:config:20260801T120000.000000000",
		cache.Key("diff", "config", "20260801T120000.000000000"))
}

func TestGetSetDelete(t *testing.T) {
	c := cache.New(time.Minute, time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	c.Set("k", 42)
	value, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, 42, value)

	c.Delete("k")
	_, found = c.Get("k")
	assert.False(t, found)
}

func TestDeletePrefix(t *testing.T) {
	c := cache.New(time.Minute, time.Minute)

	c.Set(cache.Key("diff", "config", "a"), 1)
	c.Set(cache.Key("diff", "config", "b"), 2)
	c.Set(cache.Key("diff", "mappings", "a"), 3)

	c.DeletePrefix(cache.Key("diff", "config"))

	_, found := c.Get(cache.Key("diff", "config", "a"))
	assert.False(t, found)
	_, found = c.Get(cache.Key("diff", "config", "b"))
	assert.False(t, found)
	_, found = c.Get(cache.Key("diff", "mappings", "a"))
	assert.True(t, found)
}

func TestClearAndCount(t *testing.T) {
	c := cache.New(time.Minute, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, 2, c.ItemCount())

	c.Clear()
	assert.Equal(t, 0, c.ItemCount())
}
