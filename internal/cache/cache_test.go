package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyNormalization(t *testing.T) {
	assert.Equal(t, Key("cheapest milk"), Key("  Cheapest   MILK "))
	assert.NotEqual(t, Key("cheapest milk"), Key("cheapest bread"))
}

func TestGetSetWithinTTL(t *testing.T) {
	c := New[string](5*time.Minute, 100)

	_, ok := c.Get("cheapest milk")
	assert.False(t, ok)

	c.Set("cheapest milk", "answer")
	got, ok := c.Get("Cheapest Milk")
	require.True(t, ok)
	assert.Equal(t, "answer", got)

	s := c.Stats()
	assert.Equal(t, int64(1), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
	assert.Equal(t, 1, s.Size)
}

func TestTTLExpiry(t *testing.T) {
	c := New[int](5*time.Minute, 100)
	current := time.Unix(1000, 0)
	c.now = func() time.Time { return current }

	c.Set("q", 42)

	current = current.Add(4 * time.Minute)
	_, ok := c.Get("q")
	assert.True(t, ok, "entry must survive inside the TTL window")

	current = current.Add(2 * time.Minute)
	_, ok = c.Get("q")
	assert.False(t, ok, "entry must expire after the TTL")

	// Expired entry is removed inline.
	assert.Equal(t, 0, c.Stats().Size)
}

func TestSizeEvictionRemovesOldest(t *testing.T) {
	c := New[int](time.Hour, 10)
	current := time.Unix(1000, 0)
	c.now = func() time.Time { return current }

	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("question %d", i), i)
		current = current.Add(time.Second)
	}
	assert.Equal(t, 10, c.Stats().Size)

	// The 11th insert evicts the oldest entry.
	c.Set("question 10", 10)
	assert.Equal(t, 10, c.Stats().Size)

	_, ok := c.Get("question 0")
	assert.False(t, ok, "oldest entry must be evicted first")
	_, ok = c.Get("question 9")
	assert.True(t, ok)
}

func TestClear(t *testing.T) {
	c := New[int](time.Hour, 10)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	assert.Equal(t, 0, c.Stats().Size)
	_, ok := c.Get("a")
	assert.False(t, ok)
}
