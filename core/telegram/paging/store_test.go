package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGet(t *testing.T) {
	s := NewStore[[]string](4)
	s.Put("a", Session[[]string]{Requester: 7, Total: 2, Data: []string{"p1", "p2"}})

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(7), got.Requester)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, []string{"p1", "p2"}, got.Data)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStoreReplace(t *testing.T) {
	s := NewStore[int](4)
	s.Put("k", Session[int]{Total: 1, Data: 1})
	s.Put("k", Session[int]{Total: 1, Data: 2})

	require.Equal(t, 1, s.Len())
	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got.Data)
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	s := NewStore[int](2)
	s.OnEvict = func(key string, _ Session[int]) { evicted = append(evicted, key) }

	s.Put("a", Session[int]{Total: 1})
	s.Put("b", Session[int]{Total: 1})

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := s.Get("a")
	require.True(t, ok)

	s.Put("c", Session[int]{Total: 1})

	assert.Equal(t, []string{"b"}, evicted)
	_, ok = s.Get("b")
	assert.False(t, ok)
	_, ok = s.Get("a")
	assert.True(t, ok)
	_, ok = s.Get("c")
	assert.True(t, ok)
}

func TestStoreDelete(t *testing.T) {
	s := NewStore[int](2)
	s.Put("k", Session[int]{Total: 1})
	s.Delete("k")
	s.Delete("k")

	assert.Equal(t, 0, s.Len())
	_, ok := s.Get("k")
	assert.False(t, ok)
}

func TestStoreDefaultCapacity(t *testing.T) {
	s := NewStore[int](0)
	for i := 0; i < DefaultCapacity+10; i++ {
		s.Put(string(rune('a'+i%26))+string(rune('0'+i/26)), Session[int]{Total: 1})
	}
	assert.LessOrEqual(t, s.Len(), DefaultCapacity)
}
