package compiler_test

import (
	"testing"

	"github.com/sandrolain/gomint/pkg/compiler"
)

func TestScopeShadowing(t *testing.T) {
	s := compiler.NewScope[int]()
	s.Set("a", 1)

	s.Push()
	s.Set("a", 2)
	if v, depth, ok := s.Lookup("a"); !ok || v != 2 || depth != 1 {
		t.Errorf("Lookup(a) = %d, %d, %v", v, depth, ok)
	}
	if v, ok := s.GetAt(0, "a"); !ok || v != 1 {
		t.Errorf("GetAt(0, a) = %d, %v", v, ok)
	}

	s.Pop()
	if v, ok := s.Get("a"); !ok || v != 1 {
		t.Errorf("after Pop, Get(a) = %d, %v", v, ok)
	}
	if s.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", s.Depth())
	}
	if _, _, ok := s.Lookup("b"); ok {
		t.Error("b was never bound")
	}
}

func TestScopeUnbalancedPop(t *testing.T) {
	s := compiler.NewScope[int]()
	s.Push()
	s.Pop()

	defer func() {
		if recover() == nil {
			t.Error("expected Pop of the outermost frame to panic")
		}
	}()
	s.Pop()
}
