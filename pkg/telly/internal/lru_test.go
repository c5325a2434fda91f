package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c := NewLRU[string, int](2, func(k string, _ int) { evicted = append(evicted, k) })

	c.Set("a", 1)
	c.Set("b", 2)
	_, ok := c.Get("a")
	assert.True(t, ok)

	c.Set("c", 3)
	assert.Equal(t, []string{"b"}, evicted)

	_, ok = c.Get("b")
	assert.False(t, ok)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
}

func TestLRUReplaceEvictsOldValue(t *testing.T) {
	var evicted []int
	c := NewLRU[string, int](2, func(_ string, v int) { evicted = append(evicted, v) })

	c.Set("a", 1)
	c.Set("a", 2)
	v, _ := c.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, []int{1}, evicted)
	assert.Equal(t, 1, c.Len())
}

func TestLRUPurge(t *testing.T) {
	n := 0
	c := NewLRU[int, int](0, func(int, int) { n++ })
	c.Set(1, 1)
	c.Set(2, 2)
	assert.Equal(t, 1, c.Len(), "size is at least one")

	c.Purge()
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, c.Len())
}
