package compiler

// Scope is a stack of name -> value frames used for lexical scoping.
//
// A frame is pushed when a named block is entered and popped when it is left;
// lookups search the frames from the innermost outwards, so inner names shadow
// outer ones and disappear once their block is closed.
type Scope[V any] struct {
	frames []map[string]V
}

// NewScope creates a scope holding a single, outermost frame.
func NewScope[V any]() *Scope[V] {
	return &Scope[V]{frames: []map[string]V{{}}}
}

// Push opens a new innermost frame.
func (s *Scope[V]) Push() {
	s.frames = append(s.frames, map[string]V{})
}

// Pop closes the innermost frame and returns its bindings.
// It panics if only the outermost frame is left: every Pop must match a Push.
func (s *Scope[V]) Pop() map[string]V {
	if len(s.frames) == 1 {
		panic("compiler: Pop of the outermost scope frame")
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top
}

// Depth returns the index of the innermost frame.
func (s *Scope[V]) Depth() int {
	return len(s.frames) - 1
}

// Set binds name in the innermost frame.
func (s *Scope[V]) Set(name string, v V) {
	s.frames[len(s.frames)-1][name] = v
}

// Delete removes name from the innermost frame.
func (s *Scope[V]) Delete(name string) {
	delete(s.frames[len(s.frames)-1], name)
}

// SetAt binds name in the frame at depth.
func (s *Scope[V]) SetAt(depth int, name string, v V) {
	s.frames[depth][name] = v
}

// GetAt returns the binding of name in the frame at depth only.
func (s *Scope[V]) GetAt(depth int, name string) (V, bool) {
	v, ok := s.frames[depth][name]
	return v, ok
}

// Get returns the innermost binding of name.
func (s *Scope[V]) Get(name string) (V, bool) {
	v, _, ok := s.Lookup(name)
	return v, ok
}

// Lookup returns the innermost binding of name together with the depth of the
// frame that holds it.
func (s *Scope[V]) Lookup(name string) (V, int, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, i, true
		}
	}
	var zero V
	return zero, -1, false
}
