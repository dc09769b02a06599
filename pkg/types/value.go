package types

import (
	"fmt"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindNumber
	KindString
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "(unknown)"
	}
}

// Value is a profile value: Invalid, Bool, Number or String.
//
// The zero Value is Invalid. Values are comparable with ==.
type Value struct {
	kind Kind
	b    bool
	n    float32
	s    string
}

// Invalid returns the Invalid value, used by profiles to mark an edge as impassable.
func Invalid() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a 32-bit float.
func Number(n float32) Value { return Value{kind: KindNumber, n: n} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsInvalid reports whether v is the Invalid value.
func (v Value) IsInvalid() bool { return v.kind == KindInvalid }

// Truthy reports whether v counts as true in a condition.
// Only Bool(false) and Invalid are falsy; Number(0) and String("") are truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindInvalid:
		return false
	case KindBool:
		return v.b
	default:
		return true
	}
}

// AsBool returns the boolean payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the numeric payload and whether v is a Number.
func (v Value) AsNumber() (float32, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string payload and whether v is a String.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// String renders v in the debug form used by error messages,
// e.g. Invalid, Bool(true), Number(1.5), String("x").
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("Bool(%t)", v.b)
	case KindNumber:
		return "Number(" + strconv.FormatFloat(float64(v.n), 'g', -1, 32) + ")"
	case KindString:
		return "String(" + strconv.Quote(v.s) + ")"
	default:
		return "Invalid"
	}
}
