package types

import "strings"

// PatternOp is the test a TagPattern applies to a feature's tags.
type PatternOp uint8

const (
	// OpExists matches when the key is present.
	OpExists PatternOp = iota
	// OpNotExists matches when the key is absent.
	OpNotExists
	// OpOneOf matches when the key is present and its value is in Values.
	OpOneOf
	// OpNoneOf matches when the key is present and its value is not in Values.
	OpNoneOf
)

// TagPattern is a single clause of a tag expression such as [highway=path|track].
//
// K is the key representation: string in the expression tree and a compact
// dictionary id after compilation.
type TagPattern[K comparable] struct {
	Op     PatternOp
	Key    K
	Values []K
}

// Exists builds an OpExists pattern.
func Exists[K comparable](key K) TagPattern[K] {
	return TagPattern[K]{Op: OpExists, Key: key}
}

// NotExists builds an OpNotExists pattern.
func NotExists[K comparable](key K) TagPattern[K] {
	return TagPattern[K]{Op: OpNotExists, Key: key}
}

// OneOf builds an OpOneOf pattern.
func OneOf[K comparable](key K, values ...K) TagPattern[K] {
	return TagPattern[K]{Op: OpOneOf, Key: key, Values: values}
}

// NoneOf builds an OpNoneOf pattern.
func NoneOf[K comparable](key K, values ...K) TagPattern[K] {
	return TagPattern[K]{Op: OpNoneOf, Key: key, Values: values}
}

// Contains reports whether v is one of the pattern's candidate values.
func (p TagPattern[K]) Contains(v K) bool {
	for _, c := range p.Values {
		if c == v {
			return true
		}
	}
	return false
}

// FormatPattern renders a string-keyed pattern in profile syntax.
func FormatPattern(p TagPattern[string]) string {
	switch p.Op {
	case OpExists:
		return p.Key
	case OpNotExists:
		return "!" + p.Key
	case OpOneOf:
		return p.Key + "=" + strings.Join(p.Values, "|")
	case OpNoneOf:
		return p.Key + "!=" + strings.Join(p.Values, "|")
	default:
		return "?"
	}
}
