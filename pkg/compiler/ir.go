package compiler

import (
	"github.com/sandrolain/gomint/pkg/tagdict"
	"github.com/sandrolain/gomint/pkg/types"
)

// BlockKind is the operation performed by a named block.
type BlockKind uint8

const (
	BlockAll BlockKind = iota
	BlockAny
	BlockDiv
	BlockMul
	BlockNone
	BlockReturn
	BlockSub
	BlockSum
)

// Arity describes how many arguments a block accepts.
type Arity uint8

const (
	// Unary blocks take exactly one argument.
	Unary Arity = iota
	// Variadic blocks take one or more arguments.
	Variadic
)

// blockKinds maps block keywords to their kind.
var blockKinds = map[string]BlockKind{
	"all?":    BlockAll,
	"any?":    BlockAny,
	"div":     BlockDiv,
	"mul":     BlockMul,
	"none?":   BlockNone,
	"return!": BlockReturn,
	"sub":     BlockSub,
	"sum":     BlockSum,
}

// LookupBlockKind returns the kind for a block keyword.
func LookupBlockKind(name string) (BlockKind, bool) {
	k, ok := blockKinds[name]
	return k, ok
}

// Arity returns the number of arguments the block accepts.
func (k BlockKind) Arity() Arity {
	if k == BlockReturn {
		return Unary
	}
	return Variadic
}

// Accepts reports whether n arguments satisfy the block's arity.
func (k BlockKind) Accepts(n int) bool {
	switch k.Arity() {
	case Unary:
		return n == 1
	default:
		return n >= 1
	}
}

// String returns the block keyword.
func (k BlockKind) String() string {
	switch k {
	case BlockAll:
		return "all?"
	case BlockAny:
		return "any?"
	case BlockDiv:
		return "div"
	case BlockMul:
		return "mul"
	case BlockNone:
		return "none?"
	case BlockReturn:
		return "return!"
	case BlockSub:
		return "sub"
	case BlockSum:
		return "sum"
	default:
		return "(unknown)"
	}
}

// Expr is a node of the compiled intermediate form.
//
// The concrete types are *Literal, *LookupConstant, *LookupOrCompute,
// *LookupGlobal, *Block, *When and *TagMatch. Compiled expressions are never
// modified after Build returns and may be shared between goroutines.
type Expr interface {
	irNode()
}

// Literal evaluates to a fixed value.
type Literal struct {
	Value types.Value
}

// LookupConstant reads an evaluated profile constant.
type LookupConstant struct {
	Index uint8
}

// LookupOrCompute reads a memoisation slot, evaluating Def on first use.
type LookupOrCompute struct {
	Slot uint16
	Def  Expr
}

// LookupGlobal asks the caller for a per-edge value such as way.length.
type LookupGlobal struct {
	Name string
}

// Block applies a block operation to its arguments in order.
type Block struct {
	Kind BlockKind
	Body []Expr
}

// WhenClause is a compiled condition => value arm.
type WhenClause struct {
	Cond  Expr
	Value Expr
}

// When yields the value of the first clause whose condition is truthy.
type When struct {
	Clauses []WhenClause
}

// TagMatch is a conjunction of compacted tag patterns.
type TagMatch struct {
	Patterns []types.TagPattern[tagdict.ID]
}

func (*Literal) irNode()         {}
func (*LookupConstant) irNode()  {}
func (*LookupOrCompute) irNode() {}
func (*LookupGlobal) irNode()    {}
func (*Block) irNode()           {}
func (*When) irNode()            {}
func (*TagMatch) irNode()        {}

// Unit is a compiled top-level expression together with the number of
// memoisation slots an evaluation of it needs.
type Unit struct {
	Expr  Expr
	Slots int
}
