// Package parser implements the parser for gomint profile files.
//
// The parser uses a hand-written recursive descent approach. It produces the
// expression tree defined in package types and reports syntax errors with
// their byte position in the source.
//
// # Architecture
//
// The parser consists of two components:
//   - Lexer: Tokenizes the profile text into a stream of tokens
//   - Parser: Builds the profile and its expression trees from tokens
//
// # Example
//
//	profile, err := parser.Parse(`profile "bike" { way-penalty { 0 } }`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Grammar
//
//	profile "name" {
//	    define { name = expr ... }
//	    node-penalty { expr }
//	    way-penalty  { expr }
//	    cost-factor  { expr }
//	}
//
// An expr is a literal (number, "string", true, false, invalid), a name, a
// tag expression [key; !key; key=a|b; key!=c], a when block
// when { cond => expr ... else => expr } or a named block
// name { define { ... } expr ... }. Semicolons and newlines both separate
// items, and // starts a comment that runs to the end of the line.
package parser

import (
	"github.com/sandrolain/gomint/pkg/types"
)

// Parse parses profile text.
//
// If parsing fails, it returns a *types.Error with position information.
//
// Example:
//
//	profile, err := parser.Parse(src)
//	if err != nil {
//	    var perr *types.Error
//	    if errors.As(err, &perr) {
//	        fmt.Printf("Parse error at position %d\n", perr.Position)
//	    }
//	    return
//	}
func Parse(source string, opts ...Option) (*types.Profile, error) {
	p := NewParser(source, opts...)
	return p.ParseProfile()
}

// ParseExpression parses a single expression, such as the body of a profile
// section.
func ParseExpression(source string, opts ...Option) (types.Expression, error) {
	p := NewParser(source, opts...)
	return p.ParseExpression()
}

// Option configures parsing behavior.
type Option func(*Options)

// Options holds parser configuration.
type Options struct {
	// MaxDepth limits block nesting to prevent stack overflow.
	MaxDepth int
}

// WithMaxDepth sets the maximum nesting depth.
func WithMaxDepth(depth int) Option {
	return func(opts *Options) {
		opts.MaxDepth = depth
	}
}
