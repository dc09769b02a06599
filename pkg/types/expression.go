// Package types defines the core type system for gomint.
//
// This package contains type definitions for:
//   - Value: the four-variant profile value and its truthiness rule
//   - Expression: the parsed profile expression tree
//   - TagPattern: tag clauses, generic over the key representation
//   - Profile: a parsed profile with its constants and cost sections
//   - Error: structured errors with codes
package types

// Profile is a parsed routing profile.
//
// A Profile only describes the expressions; it is compiled into a
// scoring.Runtime before it can score edges.
type Profile struct {
	Name      string
	Constants []Definition

	NodePenalty Expression
	WayPenalty  Expression
	CostFactor  Expression

	source string
}

// NewProfile creates a named profile remembering the source it was parsed from.
func NewProfile(name, source string) *Profile {
	return &Profile{Name: name, source: source}
}

// Source returns the profile text the profile was parsed from, if any.
func (p *Profile) Source() string {
	return p.source
}

// Vocabulary returns every tag key and value referenced by the profile,
// in first-seen order and without duplicates.
func (p *Profile) Vocabulary() []string {
	seen := make(map[string]struct{})
	var words []string
	add := func(w string) {
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}

	visit := func(expr Expression) bool {
		if te, ok := expr.(*TagExpr); ok {
			for _, pat := range te.Patterns {
				add(pat.Key)
				for _, v := range pat.Values {
					add(v)
				}
			}
		}
		return true
	}

	for _, d := range p.Constants {
		Walk(d.Expr, visit)
	}
	Walk(p.NodePenalty, visit)
	Walk(p.WayPenalty, visit)
	Walk(p.CostFactor, visit)

	return words
}

// String returns the profile name.
func (p *Profile) String() string {
	return p.Name
}
