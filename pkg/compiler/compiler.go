// Package compiler lowers a profile expression tree into the indexed
// intermediate form evaluated by package evaluator.
//
// Lowering resolves every identifier once, at load time:
//   - a local definition becomes a memoisation slot (LookupOrCompute)
//   - a profile constant becomes an index into the evaluated constants
//   - a whitelisted global becomes a by-name lookup performed per edge
//
// Tag keys and values are replaced by dictionary ids, and block keywords are
// checked against the fixed keyword table together with their arity.
//
// # Example
//
//	c := compiler.New(dict, []string{"way.length"})
//	unit, err := c.Build(profile.WayPenalty)
package compiler

import (
	"fmt"
	"math"

	"github.com/sandrolain/gomint/pkg/tagdict"
	"github.com/sandrolain/gomint/pkg/types"
)

// MaxConstants is the number of constants a profile may declare.
const MaxConstants = math.MaxUint8

// Compiler lowers expressions for one profile.
//
// A Compiler carries scope state while lowering and is not safe for
// concurrent use.
type Compiler struct {
	dict      *tagdict.Dict
	globals   map[string]struct{}
	constants map[string]uint8
	nconst    int
	vars      *variables
}

// New creates a compiler that compacts tags with dict and accepts the given
// names as run-time globals.
func New(dict *tagdict.Dict, globals []string) *Compiler {
	g := make(map[string]struct{}, len(globals))
	for _, name := range globals {
		g[name] = struct{}{}
	}
	return &Compiler{
		dict:      dict,
		globals:   g,
		constants: make(map[string]uint8),
		vars:      newVariables(),
	}
}

// AddConstant makes name refer to the next constant index for everything
// lowered afterwards, and returns that index.
func (c *Compiler) AddConstant(name string) (uint8, error) {
	if c.nconst >= MaxConstants {
		return 0, types.NewError(types.ErrTooManyConstants,
			fmt.Sprintf("too many constants defined (limit %d)", MaxConstants), -1).WithToken(name)
	}
	idx := uint8(c.nconst)
	c.nconst++
	c.constants[name] = idx
	return idx, nil
}

// Build lowers expr into a Unit and resets the scope state, so the next
// Build starts a fresh slot numbering.
func (c *Compiler) Build(expr types.Expression) (*Unit, error) {
	lowered, err := c.Lower(expr)
	slots := c.vars.next
	c.Reset()
	if err != nil {
		return nil, err
	}
	return &Unit{Expr: lowered, Slots: slots}, nil
}

// Reset discards all local definitions and slot assignments.
// Constants and globals are kept.
func (c *Compiler) Reset() {
	c.vars = newVariables()
}

// Lower converts an expression tree into its intermediate form.
func (c *Compiler) Lower(expr types.Expression) (Expr, error) {
	switch n := expr.(type) {
	case *types.Literal:
		return &Literal{Value: n.Value}, nil
	case *types.Ident:
		return c.lowerIdent(n)
	case *types.TagExpr:
		return c.lowerTagExpr(n), nil
	case *types.NamedBlock:
		return c.lowerNamedBlock(n)
	case *types.WhenBlock:
		return c.lowerWhenBlock(n)
	case nil:
		return nil, types.NewInternalError("nil expression")
	default:
		return nil, types.NewInternalError("unexpected expression node %T", expr)
	}
}

func (c *Compiler) lowerIdent(n *types.Ident) (Expr, error) {
	if def, depth, ok := c.vars.definition(n.Name); ok {
		slot, ok := c.vars.slot(n.Name, depth)
		if !ok {
			return nil, types.NewError(types.ErrTooManyVariables,
				fmt.Sprintf("too many variables (limit %d)", maxSlots), n.Position).WithToken(n.Name)
		}
		return &LookupOrCompute{Slot: slot, Def: def}, nil
	}

	if idx, ok := c.constants[n.Name]; ok {
		return &LookupConstant{Index: idx}, nil
	}

	if _, ok := c.globals[n.Name]; ok {
		return &LookupGlobal{Name: n.Name}, nil
	}

	return nil, types.NewError(types.ErrUnknownIdent,
		fmt.Sprintf("unknown identifier %q", n.Name), n.Position).WithToken(n.Name)
}

func (c *Compiler) lowerTagExpr(n *types.TagExpr) Expr {
	patterns := make([]types.TagPattern[tagdict.ID], len(n.Patterns))
	for i, p := range n.Patterns {
		compact := types.TagPattern[tagdict.ID]{Op: p.Op, Key: c.dict.Lookup(p.Key)}
		if len(p.Values) > 0 {
			compact.Values = make([]tagdict.ID, len(p.Values))
			for j, v := range p.Values {
				compact.Values[j] = c.dict.Lookup(v)
			}
		}
		patterns[i] = compact
	}
	return &TagMatch{Patterns: patterns}
}

func (c *Compiler) lowerNamedBlock(n *types.NamedBlock) (Expr, error) {
	c.vars.push()
	defer c.vars.pop()

	for _, d := range n.Defs {
		def, err := c.Lower(d.Expr)
		if err != nil {
			return nil, err
		}
		c.vars.addDefinition(d.Name, def)
	}

	kind, ok := LookupBlockKind(n.Name)
	if !ok {
		return nil, types.NewError(types.ErrUnknownBlockTy,
			fmt.Sprintf("unknown block type %q", n.Name), n.Position).WithToken(n.Name)
	}

	if !kind.Accepts(len(n.Body)) {
		want := "at least 1 argument"
		if kind.Arity() == Unary {
			want = "exactly 1 argument"
		}
		return nil, types.NewError(types.ErrArity,
			fmt.Sprintf("block %q takes %s, got %d", n.Name, want, len(n.Body)), n.Position).WithToken(n.Name)
	}

	body := make([]Expr, 0, len(n.Body))
	for _, e := range n.Body {
		lowered, err := c.Lower(e)
		if err != nil {
			return nil, err
		}
		body = append(body, lowered)
	}

	return &Block{Kind: kind, Body: body}, nil
}

func (c *Compiler) lowerWhenBlock(n *types.WhenBlock) (Expr, error) {
	clauses := make([]WhenClause, 0, len(n.Clauses))
	for _, clause := range n.Clauses {
		var cond Expr
		if clause.Else {
			cond = &Literal{Value: types.Bool(true)}
		} else {
			var err error
			if cond, err = c.Lower(clause.Condition); err != nil {
				return nil, err
			}
		}

		value, err := c.Lower(clause.Value)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, WhenClause{Cond: cond, Value: value})
	}
	return &When{Clauses: clauses}, nil
}
