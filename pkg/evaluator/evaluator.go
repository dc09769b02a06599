// Package evaluator implements the tree-walking interpreter for compiled
// profile expressions.
//
// The evaluator receives the intermediate form produced by package compiler
// and evaluates it against the tags of one map feature. It supports:
//   - Per-call memoisation of local definitions (slots)
//   - Short-circuiting boolean blocks (all?, any?, none?)
//   - Arithmetic folds where Invalid is absorbing (sum, sub, mul, div)
//   - Ordered when blocks
//   - Non-local early return (return!)
//
// # Example
//
//	ctx := evaluator.NewContext(constants, unit.Slots, wayTags, globals)
//	value, err := ctx.Evaluate(unit.Expr)
//
// # Concurrency
//
// Compiled expressions are read-only and can be evaluated by any number of
// goroutines at once, each with its own Context.
package evaluator

import (
	"github.com/sandrolain/gomint/pkg/compiler"
	"github.com/sandrolain/gomint/pkg/tagdict"
	"github.com/sandrolain/gomint/pkg/types"
)

// expectNumber lists the kinds accepted by arithmetic blocks.
const expectNumber = "invalid|number"

// outcome tells whether an evaluation step finished normally or is unwinding
// the whole evaluation because of a return! block.
type outcome uint8

const (
	normal outcome = iota
	returned
)

// Evaluate evaluates expr to its final value.
//
// A return! block anywhere inside expr ends the evaluation; its argument is
// the result.
func (c *Context) Evaluate(expr compiler.Expr) (types.Value, error) {
	v, _, err := c.eval(expr)
	if err != nil {
		return types.Invalid(), err
	}
	return v, nil
}

func (c *Context) eval(expr compiler.Expr) (types.Value, outcome, error) {
	switch n := expr.(type) {
	case *compiler.Literal:
		return n.Value, normal, nil

	case *compiler.LookupConstant:
		if int(n.Index) >= len(c.constants) {
			return types.Invalid(), normal, types.NewInternalError("bad constant reference: %d", n.Index)
		}
		return c.constants[n.Index], normal, nil

	case *compiler.LookupGlobal:
		v, ok := c.globals(n.Name)
		if !ok {
			return types.Invalid(), normal, types.NewInternalError("bad global reference: %q", n.Name)
		}
		return types.Number(v), normal, nil

	case *compiler.LookupOrCompute:
		return c.lookupOrCompute(n)

	case *compiler.Block:
		return c.evalBlock(n)

	case *compiler.When:
		return c.evalWhen(n)

	case *compiler.TagMatch:
		v, err := c.evalTagMatch(n)
		return v, normal, err

	default:
		return types.Invalid(), normal, types.NewInternalError("unexpected expression %T", expr)
	}
}

func (c *Context) lookupOrCompute(n *compiler.LookupOrCompute) (types.Value, outcome, error) {
	id := int(n.Slot)
	if id >= len(c.slots) {
		return types.Invalid(), normal, types.NewInternalError("bad slot reference: %d", n.Slot)
	}
	if s := c.slots[id]; s.computed {
		return s.value, normal, nil
	}

	v, out, err := c.eval(n.Def)
	if err != nil || out == returned {
		return v, out, err
	}
	c.slots[id] = slot{value: v, computed: true}
	return v, normal, nil
}

func (c *Context) evalBlock(n *compiler.Block) (types.Value, outcome, error) {
	if !n.Kind.Accepts(len(n.Body)) {
		return types.Invalid(), normal, types.NewInternalError("improper arity for %s: %d", n.Kind, len(n.Body))
	}

	switch n.Kind {
	case compiler.BlockAny:
		for _, e := range n.Body {
			v, out, err := c.eval(e)
			if err != nil || out == returned {
				return v, out, err
			}
			if v.Truthy() {
				return types.Bool(true), normal, nil
			}
		}
		return types.Bool(false), normal, nil

	case compiler.BlockAll:
		for _, e := range n.Body {
			v, out, err := c.eval(e)
			if err != nil || out == returned {
				return v, out, err
			}
			if !v.Truthy() {
				return types.Bool(false), normal, nil
			}
		}
		return types.Bool(true), normal, nil

	case compiler.BlockNone:
		for _, e := range n.Body {
			v, out, err := c.eval(e)
			if err != nil || out == returned {
				return v, out, err
			}
			if v.Truthy() {
				return types.Bool(false), normal, nil
			}
		}
		return types.Bool(true), normal, nil

	case compiler.BlockReturn:
		v, _, err := c.eval(n.Body[0])
		if err != nil {
			return types.Invalid(), normal, err
		}
		return v, returned, nil

	case compiler.BlockSum:
		return c.fold(n.Body, func(a, b float32) float32 { return a + b })
	case compiler.BlockSub:
		return c.fold(n.Body, func(a, b float32) float32 { return a - b })
	case compiler.BlockMul:
		return c.fold(n.Body, func(a, b float32) float32 { return a * b })
	case compiler.BlockDiv:
		return c.fold(n.Body, func(a, b float32) float32 { return a / b })

	default:
		return types.Invalid(), normal, types.NewInternalError("unknown block kind %d", n.Kind)
	}
}

// fold combines the numeric arguments left to right. Invalid anywhere makes
// the whole block Invalid without evaluating the remaining arguments.
func (c *Context) fold(body []compiler.Expr, op func(a, b float32) float32) (types.Value, outcome, error) {
	var acc float32
	for i, e := range body {
		v, out, err := c.eval(e)
		if err != nil || out == returned {
			return v, out, err
		}

		n, ok := v.AsNumber()
		switch {
		case v.IsInvalid():
			return types.Invalid(), normal, nil
		case !ok:
			return types.Invalid(), normal, types.NewTypeError(v, expectNumber)
		case i == 0:
			acc = n
		default:
			acc = op(acc, n)
		}
	}
	return types.Number(acc), normal, nil
}

func (c *Context) evalWhen(n *compiler.When) (types.Value, outcome, error) {
	for _, clause := range n.Clauses {
		cond, out, err := c.eval(clause.Cond)
		if err != nil || out == returned {
			return cond, out, err
		}
		if cond.Truthy() {
			return c.eval(clause.Value)
		}
	}
	return types.Invalid(), normal, types.NewError(types.ErrWhenFallthrough, "no when clause matched", -1)
}

func (c *Context) evalTagMatch(n *compiler.TagMatch) (types.Value, error) {
	if c.tags == nil {
		return types.Invalid(), types.NewInternalError("tag patterns are not supported here")
	}

	for _, p := range n.Patterns {
		if !c.matches(p) {
			return types.Bool(false), nil
		}
	}
	return types.Bool(true), nil
}

func (c *Context) matches(p types.TagPattern[tagdict.ID]) bool {
	switch p.Op {
	case types.OpExists:
		return c.tags.HasTag(p.Key)
	case types.OpNotExists:
		return !c.tags.HasTag(p.Key)
	case types.OpOneOf:
		v, ok := c.tags.GetTag(p.Key)
		return ok && v != tagdict.Unknown && p.Contains(v)
	case types.OpNoneOf:
		v, ok := c.tags.GetTag(p.Key)
		return ok && (v == tagdict.Unknown || !p.Contains(v))
	default:
		return false
	}
}
