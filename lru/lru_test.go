package lru

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		c, err := New[string, int](capacity)
		require.Error(t, err, "capacity %d must be rejected at construction", capacity)
		assert.Nil(t, c)
	}
}

func TestMustNew_PanicsOnInvalidCapacity(t *testing.T) {
	assert.Panics(t, func() {
		MustNew[string, int](0)
	})
}

func TestCache_BasicOperations(t *testing.T) {
	c := MustNew[string, int](3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	val, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	val, ok = c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, val)

	// Miss returns the zero value and false
	val, ok = c.Get("notfound")
	assert.False(t, ok)
	assert.Equal(t, 0, val)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 3, c.Cap())
}

func TestCache_Eviction(t *testing.T) {
	c := MustNew[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	// Cache is now at capacity: [b, a] (b is most recent)

	// Adding "c" should evict "a" (least recently used)
	c.Put("c", 3)

	assert.False(t, c.Contains("a"), "a should have been evicted")
	assert.True(t, c.Contains("b"))
	assert.True(t, c.Contains("c"))
	assert.Equal(t, 2, c.Len())
}

func TestCache_GetUpdatesRecency(t *testing.T) {
	c := MustNew[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	// Order: [b, a]

	// Access "a" to make it most recent
	c.Get("a")
	// Order: [a, b]

	// Adding "c" should now evict "b" (least recently used)
	c.Put("c", 3)

	val, ok := c.Get("a")
	assert.True(t, ok, "a should still exist")
	assert.Equal(t, 1, val)

	_, ok = c.Get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestCache_MissDoesNotPerturbOrder(t *testing.T) {
	c := MustNew[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)

	// A miss must not touch the recency order
	_, ok := c.Get("nope")
	require.False(t, ok)

	// "a" is still the oldest and must be the one evicted
	c.Put("c", 3)
	assert.False(t, c.Contains("a"))
	assert.True(t, c.Contains("b"))
}

func TestCache_UpdateExisting(t *testing.T) {
	c := MustNew[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)

	// Update "a" with new value; no eviction, no growth
	c.Put("a", 100)

	val, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 100, val)
	assert.Equal(t, 2, c.Len())
}

func TestCache_IdempotentReinsertion(t *testing.T) {
	c := MustNew[string, int](3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 1)
	c.Put("a", 1)

	assert.Equal(t, 2, c.Len())
	// "a" must sit at the most-recently-used end
	keys := c.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, "a", keys[len(keys)-1])
}

func TestCache_CapacityInvariant(t *testing.T) {
	c := MustNew[int, int](4)

	for i := 0; i < 100; i++ {
		c.Put(i, i*10)
		require.LessOrEqual(t, c.Len(), 4, "size must never exceed capacity")
		require.Len(t, c.Keys(), c.Len(), "index and recency list must agree")
	}
	assert.Equal(t, 4, c.Len())
}

func TestCache_PeekDoesNotUpdateRecency(t *testing.T) {
	c := MustNew[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)

	val, ok := c.Peek("a")
	require.True(t, ok)
	assert.Equal(t, 1, val)

	// "a" was peeked, not touched; it is still the eviction victim
	c.Put("c", 3)
	assert.False(t, c.Contains("a"))
}

func TestCache_ContainsHasNoSideEffect(t *testing.T) {
	c := MustNew[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)

	assert.True(t, c.Contains("a"))

	c.Put("c", 3)
	assert.False(t, c.Contains("a"), "Contains must not refresh recency")
}

func TestCache_Remove(t *testing.T) {
	c := MustNew[string, int](3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	assert.True(t, c.Remove("b"))
	assert.False(t, c.Contains("b"))
	assert.Equal(t, 2, c.Len())

	// Removing an absent key is a no-op
	assert.False(t, c.Remove("notfound"))
	assert.Equal(t, 2, c.Len())
}

func TestCache_RemoveOldest(t *testing.T) {
	c := MustNew[string, int](3)

	c.Put("a", 1)
	c.Put("b", 2)

	key, val, ok := c.RemoveOldest()
	require.True(t, ok)
	assert.Equal(t, "a", key)
	assert.Equal(t, 1, val)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	_, _, ok = c.RemoveOldest()
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c := MustNew[string, int](3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 3, c.Cap())
	assert.False(t, c.Contains("a"))
}

func TestCache_Snapshot(t *testing.T) {
	c := MustNew[string, int](3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	require.Equal(t, []Entry[string, int]{
		{Key: "a", Value: 1},
		{Key: "b", Value: 2},
		{Key: "c", Value: 3},
	}, c.Snapshot())

	// Get refreshes "a" without changing the set of entries
	val, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, val)
	require.Equal(t, []Entry[string, int]{
		{Key: "b", Value: 2},
		{Key: "c", Value: 3},
		{Key: "a", Value: 1},
	}, c.Snapshot())

	// Overflowing put evicts "b", the unique oldest
	c.Put("d", 4)
	require.Equal(t, []Entry[string, int]{
		{Key: "c", Value: 3},
		{Key: "a", Value: 1},
		{Key: "d", Value: 4},
	}, c.Snapshot())
	assert.False(t, c.Contains("b"))
}

func TestCache_SnapshotIsACopy(t *testing.T) {
	c := MustNew[string, int](2)

	c.Put("a", 1)
	snap := c.Snapshot()
	require.Len(t, snap, 1)

	snap[0].Value = 999

	val, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, val)
}

func TestCache_CapacityOne(t *testing.T) {
	c := MustNew[string, int](1)

	c.Put("x", 1)
	c.Put("y", 2)

	assert.False(t, c.Contains("x"))
	assert.True(t, c.Contains("y"))
	assert.Equal(t, 1, c.Len())
}

func TestCache_OnEvict(t *testing.T) {
	c := MustNew[string, int](2)

	var evictedKeys []string
	var evictedVals []int
	c.OnEvict(func(key string, value int) {
		evictedKeys = append(evictedKeys, key)
		evictedVals = append(evictedVals, value)
	})

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3) // evicts a
	c.Put("d", 4) // evicts b

	assert.Equal(t, []string{"a", "b"}, evictedKeys)
	assert.Equal(t, []int{1, 2}, evictedVals)

	// Explicit removal does not fire the callback
	c.Remove("c")
	c.Clear()
	assert.Len(t, evictedKeys, 2)
}

func TestCache_Keys(t *testing.T) {
	c := MustNew[string, int](3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Get("b")

	assert.Equal(t, []string{"a", "c", "b"}, c.Keys())
}

func TestCache_PointerValues(t *testing.T) {
	type Data struct {
		Name  string
		Value float64
	}

	c := MustNew[string, *Data](2)

	c.Put("key1", &Data{Name: "test1", Value: 1.5})
	c.Put("key2", &Data{Name: "test2", Value: 2.5})

	val, ok := c.Get("key1")
	require.True(t, ok)
	assert.Equal(t, "test1", val.Name)
	assert.InDelta(t, 1.5, val.Value, 0.001)

	c.Put("key1", &Data{Name: "updated", Value: 99.9})

	val, ok = c.Get("key1")
	require.True(t, ok)
	assert.Equal(t, "updated", val.Name)
	assert.InDelta(t, 99.9, val.Value, 0.001)
}
