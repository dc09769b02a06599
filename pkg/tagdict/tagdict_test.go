package tagdict_test

import (
	"sync"
	"testing"

	"github.com/sandrolain/gomint/pkg/tagdict"
)

func TestDictIDs(t *testing.T) {
	d := tagdict.New()
	hw := d.Insert("highway")
	path := d.Insert("path")

	if hw != 1 || path != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", hw, path)
	}
	if again := d.Insert("highway"); again != hw {
		t.Errorf("re-inserting returned %d, want %d", again, hw)
	}
	if n := d.InsertAll("path", "track", "surface"); n != 2 {
		t.Errorf("InsertAll added %d words, want 2", n)
	}
	if d.Len() != 4 {
		t.Errorf("Len() = %d, want 4", d.Len())
	}

	if s, ok := d.ToString(path); !ok || s != "path" {
		t.Errorf("ToString(%d) = %q, %v", path, s, ok)
	}
	if _, ok := d.ToString(tagdict.Unknown); ok {
		t.Error("Unknown should have no text")
	}
	if _, ok := d.ToString(99); ok {
		t.Error("out-of-range id should have no text")
	}
}

func TestDictUnknown(t *testing.T) {
	d := tagdict.New()
	d.Insert("highway")

	if id, ok := d.ToCompact("cycleway"); ok || id != tagdict.Unknown {
		t.Errorf("ToCompact(cycleway) = %d, %v", id, ok)
	}
	if id := d.Lookup("cycleway"); id != tagdict.Unknown {
		t.Errorf("Lookup(cycleway) = %d, want Unknown", id)
	}
}

func TestDictEncode(t *testing.T) {
	d := tagdict.New()
	d.InsertAll("highway", "path", "surface")

	src := d.Encode(map[string]string{
		"highway": "path",
		"surface": "gravel",
		"name":    "Main Street",
	})

	if v, ok := src.GetTag(d.Lookup("highway")); !ok || v != d.Lookup("path") {
		t.Errorf("highway = %d, %v", v, ok)
	}
	if v, ok := src.GetTag(d.Lookup("surface")); !ok || v != tagdict.Unknown {
		t.Errorf("surface = %d, %v; want present with Unknown value", v, ok)
	}
	if len(src) != 2 {
		t.Errorf("unknown keys should be dropped, got %d entries", len(src))
	}
	if tagdict.Empty.HasTag(d.Lookup("highway")) {
		t.Error("Empty has no tags")
	}
}

func TestDictFingerprint(t *testing.T) {
	a := tagdict.New()
	a.InsertAll("highway", "path")
	b := tagdict.New()
	b.InsertAll("highway", "path")
	c := tagdict.New()
	c.InsertAll("path", "highway")

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("same words in the same order should have the same fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different id assignment should change the fingerprint")
	}

	before := a.Fingerprint()
	a.Insert("highway")
	if a.Fingerprint() != before {
		t.Error("re-inserting a word should not change the fingerprint")
	}
	a.Insert("track")
	if a.Fingerprint() == before {
		t.Error("a new word should change the fingerprint")
	}
}

func TestDictConcurrentInsert(t *testing.T) {
	d := tagdict.New()
	words := []string{"highway", "path", "track", "surface", "gravel"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, w := range words {
				d.Insert(w)
				d.Lookup(w)
			}
		}()
	}
	wg.Wait()

	if d.Len() != len(words) {
		t.Errorf("Len() = %d, want %d", d.Len(), len(words))
	}
}
