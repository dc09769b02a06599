package evaluator

import (
	"fmt"

	"github.com/sandrolain/gomint/pkg/tagdict"
	"github.com/sandrolain/gomint/pkg/types"
)

// GlobalLookup resolves a per-edge global such as way.length.
// It returns false when the global is not available.
type GlobalLookup func(name string) (float32, bool)

// NoGlobals is a GlobalLookup that never resolves anything.
func NoGlobals(string) (float32, bool) { return 0, false }

// slot is a memoisation cell for one local definition.
type slot struct {
	value    types.Value
	computed bool
}

// Context holds the state of one evaluation: the profile constants, the
// memoisation slots of the unit being evaluated, and the feature's tags.
//
// A Context must be created for every evaluation and never shared between
// goroutines; slots filled during one evaluation are only valid for the tags
// it was created with.
type Context struct {
	constants []types.Value
	slots     []slot
	tags      tagdict.Source
	globals   GlobalLookup
}

// NewContext creates a context for scoring one feature.
// slots is the slot count of the compiled unit; a nil globals resolves nothing.
func NewContext(constants []types.Value, slots int, tags tagdict.Source, globals GlobalLookup) *Context {
	if globals == nil {
		globals = NoGlobals
	}
	return &Context{
		constants: constants,
		slots:     make([]slot, slots),
		tags:      tags,
		globals:   globals,
	}
}

// NewConstantContext creates a context for evaluating a profile constant.
// Constants see no tags and no globals.
func NewConstantContext(constants []types.Value, slots int) *Context {
	return &Context{
		constants: constants,
		slots:     make([]slot, slots),
		globals:   NoGlobals,
	}
}

// HasTags reports whether the context is bound to a tag source.
func (c *Context) HasTags() bool {
	return c.tags != nil
}

// Computed returns the number of slots filled so far.
func (c *Context) Computed() int {
	n := 0
	for _, s := range c.slots {
		if s.computed {
			n++
		}
	}
	return n
}

// String returns a string representation of the context.
func (c *Context) String() string {
	return fmt.Sprintf("Context{constants=%d, slots=%d/%d, tags=%t}",
		len(c.constants), c.Computed(), len(c.slots), c.HasTags())
}
