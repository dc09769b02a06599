package compiler

import "math"

// maxSlots is the number of distinct slot ids a Unit can address.
const maxSlots = math.MaxUint16 + 1

// variables tracks the local definitions visible while lowering one
// top-level expression, and the memoisation slot assigned to each.
type variables struct {
	// ident -> slot id, kept in the frame of the definition it belongs to
	ids *Scope[uint16]
	// ident -> lowered definition
	defs *Scope[Expr]

	next int
}

func newVariables() *variables {
	return &variables{
		ids:  NewScope[uint16](),
		defs: NewScope[Expr](),
	}
}

func (v *variables) push() {
	v.ids.Push()
	v.defs.Push()
}

func (v *variables) pop() {
	v.ids.Pop()
	v.defs.Pop()
}

// addDefinition binds name in the innermost frame. Redefining a name in the
// same frame drops the slot of the previous definition.
func (v *variables) addDefinition(name string, def Expr) {
	v.defs.Set(name, def)
	v.ids.Delete(name)
}

// definition returns the innermost definition of name and its frame depth.
func (v *variables) definition(name string) (Expr, int, bool) {
	return v.defs.Lookup(name)
}

// slot returns the slot id of the definition of name held at depth,
// assigning the next free id on first use.
func (v *variables) slot(name string, depth int) (uint16, bool) {
	if id, ok := v.ids.GetAt(depth, name); ok {
		return id, true
	}
	if v.next >= maxSlots {
		return 0, false
	}
	id := uint16(v.next)
	v.next++
	v.ids.SetAt(depth, name, id)
	return id, true
}
