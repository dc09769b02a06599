package types

// NodeType identifies the type of an expression tree node.
type NodeType string

// Expression tree node types.
const (
	NodeLiteral    NodeType = "literal" // true, 1.5, "text", invalid
	NodeIdent      NodeType = "ident"   // name reference
	NodeTagExpr    NodeType = "tag"     // [key=a|b; !other]
	NodeNamedBlock NodeType = "block"   // name { define { ... } body... }
	NodeWhenBlock  NodeType = "when"    // when { cond => value ... }
)

// Expression is a node of the parsed profile expression tree.
//
// The concrete types are *Literal, *Ident, *TagExpr, *NamedBlock and *WhenBlock.
type Expression interface {
	Type() NodeType
	Pos() int
}

// Literal is a constant value written in the profile.
type Literal struct {
	Value    Value
	Position int
}

// Ident references a definition, a constant or a global by name.
type Ident struct {
	Name     string
	Position int
}

// TagExpr is a conjunction of tag patterns over uncompacted keys.
type TagExpr struct {
	Patterns []TagPattern[string]
	Position int
}

// Definition binds a name to an unevaluated expression.
type Definition struct {
	Name string
	Expr Expression
}

// NamedBlock is a keyword block (any?, sum, return!, ...) with optional local definitions.
type NamedBlock struct {
	Defs     []Definition
	Name     string
	Body     []Expression
	Position int
}

// WhenClause is one condition => value arm of a when block.
// When Else is set the Condition is ignored and the clause always matches.
type WhenClause struct {
	Condition Expression
	Value     Expression
	Else      bool
}

// WhenBlock selects the value of the first clause whose condition holds.
type WhenBlock struct {
	Clauses  []WhenClause
	Position int
}

func (*Literal) Type() NodeType    { return NodeLiteral }
func (*Ident) Type() NodeType      { return NodeIdent }
func (*TagExpr) Type() NodeType    { return NodeTagExpr }
func (*NamedBlock) Type() NodeType { return NodeNamedBlock }
func (*WhenBlock) Type() NodeType  { return NodeWhenBlock }

func (n *Literal) Pos() int    { return n.Position }
func (n *Ident) Pos() int      { return n.Position }
func (n *TagExpr) Pos() int    { return n.Position }
func (n *NamedBlock) Pos() int { return n.Position }
func (n *WhenBlock) Pos() int  { return n.Position }

// Walk calls fn for expr and every expression nested inside it, depth first.
// Walking stops at a node for which fn returns false.
func Walk(expr Expression, fn func(Expression) bool) {
	if expr == nil || !fn(expr) {
		return
	}
	switch n := expr.(type) {
	case *NamedBlock:
		for _, d := range n.Defs {
			Walk(d.Expr, fn)
		}
		for _, e := range n.Body {
			Walk(e, fn)
		}
	case *WhenBlock:
		for _, c := range n.Clauses {
			if !c.Else {
				Walk(c.Condition, fn)
			}
			Walk(c.Value, fn)
		}
	}
}
