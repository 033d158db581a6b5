package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUGetPut(t *testing.T) {
	c := NewLRU[uint64, int](4)
	assert.Equal(t, 4, c.Capacity())
	assert.Zero(t, c.Len())

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Put(1, 10)
	c.Put(2, 20)
	v, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, 10, v)

	c.Put(1, 11)
	v, _ = c.Get(1)
	assert.Equal(t, 11, v, "Put replaces the value")
	assert.Equal(t, 2, c.Len())
}

func TestLRUEvictsOldest(t *testing.T) {
	c := NewLRU[int, string](3)
	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c")

	// Touch 1 so 2 becomes the oldest.
	_, _ = c.Get(1)
	oldest, ok := c.Oldest()
	require.True(t, ok)
	assert.Equal(t, 2, oldest)

	c.Put(4, "d")
	assert.Equal(t, 3, c.Len())
	_, ok = c.Get(2)
	assert.False(t, ok, "2 was evicted")
	for _, k := range []int{1, 3, 4} {
		_, ok := c.Get(k)
		assert.True(t, ok, "key %d", k)
	}
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestLRUCapacityOne(t *testing.T) {
	c := NewLRU[int, int](1)
	c.Put(1, 1)
	c.Put(2, 2)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok)
	v, ok := c.Get(2)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLRUZeroCapacity(t *testing.T) {
	for _, capacity := range []int{0, -5} {
		c := NewLRU[int, int](capacity)
		c.Put(1, 1)
		assert.Zero(t, c.Len())
		assert.Zero(t, c.Capacity())
		_, ok := c.Oldest()
		assert.False(t, ok)
	}
}

func TestLRUStatsAndClear(t *testing.T) {
	c := NewLRU[int, int](2)
	c.Put(1, 1)
	_, _ = c.Get(1)
	_, _ = c.Get(1)
	_, _ = c.Get(7)

	s := c.Stats()
	assert.Equal(t, 1, s.Len)
	assert.Equal(t, uint64(2), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.InDelta(t, 2.0/3.0, s.HitRate, 1e-9)

	c.Clear()
	assert.Zero(t, c.Len())
	assert.Equal(t, Stats{Capacity: 2}, c.Stats())
	_, ok := c.Oldest()
	assert.False(t, ok)

	c.Put(3, 3)
	v, ok := c.Get(3)
	require.True(t, ok)
	assert.Equal(t, 3, v)
}
