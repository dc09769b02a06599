package parser_test

import (
	"reflect"
	"testing"

	"github.com/sandrolain/gomint/pkg/parser"
	"github.com/sandrolain/gomint/pkg/types"
)

const sampleProfile = `
// Simple test profile
profile "test" {
    define {
        dismount?   = [bicycle=dismount]
        is-wet?     = false
        valley-mode = when {
            eq? { hills; 2 } => 80
            else             => 0
        }
        base-cost   = 123
        this        = true
        that        = "the other"
        bar         = [highway=path; access; access!=private]
    }

    node-penalty {
        when {
            [bicycle=no|private] => invalid
            [bicycle=dismount]   => 2.0
            else                 => 0
        }
    }

    way-penalty {
        when {
            [route=ferry] => invalid
            else          => 0
        }
    }

    cost-factor {
        when {
            unpaved? => 1.2
            else     => 0
        }
    }
}
`

func parseProfile(t *testing.T, input string) *types.Profile {
	t.Helper()
	p, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("Failed to parse profile: %v", err)
	}
	return p
}

func expectError(t *testing.T, input string, code types.ErrorCode) {
	t.Helper()
	_, err := parser.Parse(input)
	if err == nil {
		t.Fatalf("Expected error parsing %q but got none", input)
	}
	if !types.IsCode(err, code) {
		t.Fatalf("Expected %s parsing %q, got %v", code, input, err)
	}
}

func TestParseSampleProfile(t *testing.T) {
	p := parseProfile(t, sampleProfile)

	if p.Name != "test" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Source() != sampleProfile {
		t.Error("Source() should return the parsed text")
	}

	var names []string
	for _, d := range p.Constants {
		names = append(names, d.Name)
	}
	want := []string{"dismount?", "is-wet?", "valley-mode", "base-cost", "this", "that", "bar"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("constants = %v, want %v", names, want)
	}

	if p.NodePenalty == nil || p.WayPenalty == nil || p.CostFactor == nil {
		t.Fatal("all three sections should be set")
	}

	w, ok := p.NodePenalty.(*types.WhenBlock)
	if !ok || len(w.Clauses) != 3 {
		t.Fatalf("node-penalty: unexpected %#v", p.NodePenalty)
	}
	if !w.Clauses[2].Else {
		t.Error("last clause should be else")
	}
	if lit, ok := w.Clauses[1].Value.(*types.Literal); !ok || lit.Value != types.Number(2) {
		t.Errorf("unexpected clause value %#v", w.Clauses[1].Value)
	}

	bar, ok := p.Constants[6].Expr.(*types.TagExpr)
	if !ok {
		t.Fatalf("bar: unexpected %T", p.Constants[6].Expr)
	}
	wantPatterns := []types.TagPattern[string]{
		types.OneOf("highway", "path"),
		types.Exists("access"),
		types.NoneOf("access", "private"),
	}
	if !reflect.DeepEqual(bar.Patterns, wantPatterns) {
		t.Errorf("bar = %v, want %v", bar.Patterns, wantPatterns)
	}
}

func TestParseKitchenSink(t *testing.T) {
	p := parseProfile(t, `
profile "kitchen sink" {
    define {
        k = "value" // b
        k = "a \"quoted\" value"
        k = true
        k = 123
        k = value
        k = [k; !k; k=a; k!=a|b; k="a|b"|c]
        k = [k !k k=a k!=a|b k="a|b"|c]
    }

    way-penalty {
        any? { true // split
               false; when {
                   [highway=path] => true
                   else           => when { true => false; false => true }
               }
        }
    }
}`)

	if len(p.Constants) != 7 {
		t.Fatalf("got %d constants, want 7", len(p.Constants))
	}
	if lit := p.Constants[1].Expr.(*types.Literal); lit.Value != types.String(`a "quoted" value`) {
		t.Errorf("escaped string = %s", lit.Value)
	}
	if id := p.Constants[4].Expr.(*types.Ident); id.Name != "value" {
		t.Errorf("ident = %q", id.Name)
	}

	semi := p.Constants[5].Expr.(*types.TagExpr)
	spaced := p.Constants[6].Expr.(*types.TagExpr)
	if !reflect.DeepEqual(semi.Patterns, spaced.Patterns) {
		t.Errorf("separators should not matter: %v vs %v", semi.Patterns, spaced.Patterns)
	}
	if got := types.FormatPattern(semi.Patterns[4]); got != "k=a|b|c" {
		t.Errorf("quoted value pattern = %q", got)
	}

	block := p.WayPenalty.(*types.NamedBlock)
	if block.Name != "any?" || len(block.Body) != 3 {
		t.Errorf("way-penalty = %s with %d args", block.Name, len(block.Body))
	}
}

func TestParseNamedBlockDefinitions(t *testing.T) {
	expr, err := parser.ParseExpression(`sum { define { a = 1 } define { b = 2 } a; b }`)
	if err != nil {
		t.Fatal(err)
	}
	block := expr.(*types.NamedBlock)
	if len(block.Defs) != 2 || len(block.Body) != 2 {
		t.Errorf("got %d defs and %d args", len(block.Defs), len(block.Body))
	}
}

func TestParseMultipleDefineBlocks(t *testing.T) {
	p := parseProfile(t, `profile "p" { define { a = 1 } way-penalty { a } define { b = 2 } }`)
	if len(p.Constants) != 2 {
		t.Errorf("got %d constants, want 2", len(p.Constants))
	}
	if p.NodePenalty != nil || p.CostFactor != nil {
		t.Error("missing sections should stay nil")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  types.ErrorCode
	}{
		{"empty", ``, types.ErrExpectedToken},
		{"no name", `profile { }`, types.ErrExpectedToken},
		{"unclosed profile", `profile "p" {`, types.ErrSyntaxError},
		{"unknown section", `profile "p" { speed { 1 } }`, types.ErrUnknownSection},
		{"duplicate section", `profile "p" { way-penalty { 1 } way-penalty { 2 } }`, types.ErrDuplicateSection},
		{"two expressions", `profile "p" { way-penalty { 1 2 } }`, types.ErrExpectedToken},
		{"empty section", `profile "p" { way-penalty { } }`, types.ErrSyntaxError},
		{"trailing input", `profile "p" { } x`, types.ErrSyntaxError},
		{"missing arrow", `profile "p" { way-penalty { when { true 1 } } }`, types.ErrExpectedToken},
		{"missing equals", `profile "p" { define { a 1 } }`, types.ErrExpectedToken},
		{"bad tag", `profile "p" { way-penalty { [highway=] } }`, types.ErrExpectedToken},
		{"unterminated string", `profile "p`, types.ErrStringNotClosed},
		{"unexpected char", `profile "p" { way-penalty { # } }`, types.ErrSyntaxError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.input, tt.code)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := parser.Parse(`profile "p" { speed { 1 } }`)
	perr, ok := err.(*types.Error)
	if !ok {
		t.Fatalf("expected *types.Error, got %T", err)
	}
	if perr.Position != 14 || perr.Token != "speed" {
		t.Errorf("Position = %d, Token = %q", perr.Position, perr.Token)
	}
}

func TestParseMaxDepth(t *testing.T) {
	src := `any? { any? { any? { any? { true } } } }`
	if _, err := parser.ParseExpression(src); err != nil {
		t.Fatalf("default depth: %v", err)
	}
	if _, err := parser.ParseExpression(src, parser.WithMaxDepth(3)); err == nil {
		t.Fatal("expected a depth error")
	}
}
