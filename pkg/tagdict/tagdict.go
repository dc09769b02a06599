// Package tagdict interns tag keys and values into compact integer ids.
//
// Profiles are compiled against a Dict: every key and value text appearing in a
// tag expression is replaced by its id, so that scoring compares integers
// instead of strings. Text that was never inserted maps to Unknown rather than
// failing, which lets a profile mention tags the current map data never uses.
//
// # Example
//
//	dict := tagdict.New()
//	dict.InsertAll("highway", "path", "surface")
//	way := dict.Encode(map[string]string{"highway": "path"})
package tagdict

import (
	"sync"

	"github.com/segmentio/fasthash/fnv1a"
)

// ID is a compact tag key or value id.
type ID uint32

// Unknown is the id of any text that is not in the dictionary.
const Unknown ID = 0

// Dict is a bidirectional mapping between tag text and compact ids.
//
// Ids are assigned in insertion order starting at 1 and never change, so a
// runtime compiled against a Dict stays valid while more words are inserted.
//
// Safe for concurrent use by multiple goroutines.
type Dict struct {
	mu    sync.RWMutex
	ids   map[string]ID
	words []string // words[id-1]
	hash  uint64
}

// New creates an empty dictionary.
func New() *Dict {
	return &Dict{
		ids:  make(map[string]ID),
		hash: fnv1a.Init64,
	}
}

// Insert adds s to the dictionary if needed and returns its id.
func (d *Dict) Insert(s string) ID {
	d.mu.RLock()
	id, ok := d.ids[s]
	d.mu.RUnlock()
	if ok {
		return id
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.insertLocked(s)
}

// InsertAll adds every word and returns the number of words that were new.
func (d *Dict) InsertAll(words ...string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	before := len(d.words)
	for _, w := range words {
		d.insertLocked(w)
	}
	return len(d.words) - before
}

// insertLocked must be called with d.mu held for writing.
func (d *Dict) insertLocked(s string) ID {
	if id, ok := d.ids[s]; ok {
		return id
	}
	d.words = append(d.words, s)
	id := ID(len(d.words))
	d.ids[s] = id
	d.hash = fnv1a.AddString64(d.hash, s)
	d.hash = fnv1a.AddUint64(d.hash, uint64(id))
	return id
}

// ToCompact returns the id of s and whether s is in the dictionary.
func (d *Dict) ToCompact(s string) (ID, bool) {
	d.mu.RLock()
	id, ok := d.ids[s]
	d.mu.RUnlock()
	return id, ok
}

// Lookup returns the id of s, or Unknown if s was never inserted.
func (d *Dict) Lookup(s string) ID {
	id, _ := d.ToCompact(s)
	return id
}

// ToString returns the text for id.
func (d *Dict) ToString(id ID) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if id == Unknown || int(id) > len(d.words) {
		return "", false
	}
	return d.words[id-1], true
}

// Len returns the number of interned words.
func (d *Dict) Len() int {
	d.mu.RLock()
	n := len(d.words)
	d.mu.RUnlock()
	return n
}

// Fingerprint identifies the dictionary contents. Two dictionaries that
// interned the same words in the same order have the same fingerprint, and
// therefore compile any profile to the same ids.
func (d *Dict) Fingerprint() uint64 {
	d.mu.RLock()
	h := d.hash
	d.mu.RUnlock()
	return h
}

// Encode converts textual tags into a Source.
//
// Keys that are not in the dictionary are dropped, since no compiled pattern
// can refer to them. Values that are not in the dictionary become Unknown.
func (d *Dict) Encode(tags map[string]string) MapSource {
	d.mu.RLock()
	defer d.mu.RUnlock()

	src := make(MapSource, len(tags))
	for k, v := range tags {
		kid, ok := d.ids[k]
		if !ok {
			continue
		}
		src[kid] = d.ids[v]
	}
	return src
}
