package paging

import (
	"container/list"
	"sync"
)

// DefaultCapacity bounds a Store when no explicit capacity is given.
const DefaultCapacity = 256

// Session is an immutable snapshot of browsable content. The current
// position is not stored here: it travels inside the callback token, so
// concurrent viewers of the same message never race on a shared cursor.
type Session[T any] struct {
	// Requester is the user allowed to navigate the session. Zero means
	// anyone may navigate.
	Requester int64
	// Total is the number of addressable positions.
	Total int
	Data  T
}

// Store is a bounded in-memory session store with LRU eviction.
// All methods are safe for concurrent use.
type Store[T any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element

	// OnEvict, when set, is called for each evicted session outside the
	// hot path but under the store lock. Keep it cheap.
	OnEvict func(key string, s Session[T])
}

type storeEntry[T any] struct {
	key     string
	session Session[T]
}

// NewStore creates a Store holding at most capacity sessions.
// A non-positive capacity falls back to DefaultCapacity.
func NewStore[T any](capacity int) *Store[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store[T]{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Put stores a session under key, replacing any previous value and
// evicting the least recently used session when over capacity.
func (s *Store[T]) Put(key string, sess Session[T]) {
	if s == nil || key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[key]; ok {
		el.Value.(*storeEntry[T]).session = sess
		s.order.MoveToFront(el)
		return
	}

	s.entries[key] = s.order.PushFront(&storeEntry[T]{key: key, session: sess})
	for s.order.Len() > s.capacity {
		oldest := s.order.Back()
		if oldest == nil {
			break
		}
		entry := oldest.Value.(*storeEntry[T])
		s.order.Remove(oldest)
		delete(s.entries, entry.key)
		if s.OnEvict != nil {
			s.OnEvict(entry.key, entry.session)
		}
	}
}

// Get returns the session stored under key and marks it recently used.
func (s *Store[T]) Get(key string) (Session[T], bool) {
	var zero Session[T]
	if s == nil || key == "" {
		return zero, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		return zero, false
	}
	s.order.MoveToFront(el)
	return el.Value.(*storeEntry[T]).session, true
}

// Delete removes the session stored under key, if any.
func (s *Store[T]) Delete(key string) {
	if s == nil || key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[key]; ok {
		s.order.Remove(el)
		delete(s.entries, key)
	}
}

// Len reports the number of stored sessions.
func (s *Store[T]) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}
