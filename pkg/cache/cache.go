// Package cache provides a thread-safe LRU cache for compiled profiles.
//
// The cache is used by the gomint Loader. Building a Runtime parses the
// profile, compiles every section and evaluates all constants, so a router that
// reloads the same profile text against the same dictionary should not pay for
// that twice.
//
// Entries are keyed by Key, which combines a digest of the profile source with
// the dictionary fingerprint: the same text compiled against a different
// dictionary produces different tag ids and must not share an entry.
//
// # Example
//
//	c := cache.New(64)
//	rt, err := c.GetOrCompile(cache.Key(src, dict), compile)
package cache

import (
	"container/list"
	"encoding/binary"
	"encoding/hex"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/sandrolain/gomint/pkg/scoring"
	"github.com/sandrolain/gomint/pkg/tagdict"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// Key returns the cache key for source compiled against dict.
func Key(source string, dict *tagdict.Dict) string {
	h := blake3.New()
	_, _ = h.Write([]byte(source))

	var fp [8]byte
	binary.LittleEndian.PutUint64(fp[:], dict.Fingerprint())
	_, _ = h.Write(fp[:])

	return hex.EncodeToString(h.Sum(nil))
}

type entry struct {
	key string
	rt  *scoring.Runtime
}

// Cache is an LRU of compiled runtimes. When it is full, storing a new key
// evicts the runtime that was used least recently.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	ll       *list.List // front is the most recently used
	items    map[string]*list.Element

	fingerprint uint64
	synced      bool
}

// New creates a cache holding up to capacity runtimes.
// If capacity <= 0, DefaultCapacity is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the runtime stored under key and marks it as recently used.
func (c *Cache) Get(key string) (*scoring.Runtime, bool) {
	c.mu.RLock()
	el, ok := c.items[key]
	front := ok && c.ll.Front() == el
	c.mu.RUnlock()

	switch {
	case !ok:
		return nil, false
	case front:
		return el.Value.(*entry).rt, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// The entry may have been evicted between the two locks.
	if el, ok = c.items[key]; !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*entry).rt, true
}

// Set stores rt under key, evicting the least recently used runtime if the
// cache is full.
func (c *Cache) Set(key string, rt *scoring.Runtime) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry).rt = rt
		c.ll.MoveToFront(el)
		return
	}
	for c.ll.Len() >= c.capacity {
		c.evictLocked()
	}
	c.items[key] = c.ll.PushFront(&entry{key: key, rt: rt})
}

// GetOrCompile returns the runtime stored under key. On a miss it calls
// compile and stores the result. Failed compilations are not stored.
func (c *Cache) GetOrCompile(key string, compile func() (*scoring.Runtime, error)) (*scoring.Runtime, error) {
	if rt, ok := c.Get(key); ok {
		return rt, nil
	}
	rt, err := compile()
	if err != nil {
		return nil, err
	}
	c.Set(key, rt)
	return rt, nil
}

// Sync records the fingerprint of the dictionary the cached runtimes were
// compiled against. When it differs from the previous one every entry is
// dropped, since their keys can no longer be produced by Key. It returns the
// number of dropped runtimes.
func (c *Cache) Sync(fingerprint uint64) int {
	c.mu.RLock()
	same := c.synced && c.fingerprint == fingerprint
	c.mu.RUnlock()
	if same {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.synced {
		c.synced = true
		c.fingerprint = fingerprint
		return 0
	}
	if c.fingerprint == fingerprint {
		return 0
	}
	c.fingerprint = fingerprint
	n := c.ll.Len()
	c.resetLocked()
	return n
}

// Len returns the number of cached runtimes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ll.Len()
}

// Capacity returns the maximum number of cached runtimes.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Invalidate drops the runtime stored under key, if any.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.Remove(el)
		delete(c.items, key)
	}
}

// Clear drops every cached runtime.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Cache) resetLocked() {
	c.ll.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

func (c *Cache) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
