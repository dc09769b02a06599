package parser_test

import (
	"testing"

	"github.com/sandrolain/gomint/pkg/parser"
	"github.com/sandrolain/gomint/pkg/types"
)

type lexerTestCase struct {
	name      string
	input     string
	expected  []parser.Token
	expectErr bool
}

func runLexerTests(t *testing.T, tests []lexerTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := parser.NewLexer(tt.input)
			var tokens []parser.Token
			for {
				tok := lexer.Next()
				if tok.Type == parser.TokenEOF {
					break
				}
				if tok.Type == parser.TokenError {
					if !tt.expectErr {
						t.Fatalf("unexpected lexer error: %v", lexer.Error())
					}
					return
				}
				tokens = append(tokens, tok)
			}

			if tt.expectErr {
				t.Fatal("expected a lexer error")
			}
			if len(tokens) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d", len(tokens), tokens, len(tt.expected))
			}
			for i, want := range tt.expected {
				if tokens[i] != want {
					t.Errorf("token %d: got %+v, want %+v", i, tokens[i], want)
				}
			}
		})
	}
}

func TestLexerNames(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "dotted global",
			input: "way.popularity-self",
			expected: []parser.Token{
				{Type: parser.TokenName, Value: "way.popularity-self", Position: 0},
			},
		},
		{
			name:  "predicate and bang names",
			input: "any? return!",
			expected: []parser.Token{
				{Type: parser.TokenName, Value: "any?", Position: 0},
				{Type: parser.TokenName, Value: "return!", Position: 5},
			},
		},
		{
			name:  "not equal after name",
			input: "access!=private",
			expected: []parser.Token{
				{Type: parser.TokenName, Value: "access", Position: 0},
				{Type: parser.TokenNotEqual, Value: "!=", Position: 6},
				{Type: parser.TokenName, Value: "private", Position: 8},
			},
		},
		{
			name:  "keywords",
			input: "profile define when else invalid true",
			expected: []parser.Token{
				{Type: parser.TokenProfile, Value: "profile", Position: 0},
				{Type: parser.TokenDefine, Value: "define", Position: 8},
				{Type: parser.TokenWhen, Value: "when", Position: 15},
				{Type: parser.TokenElse, Value: "else", Position: 20},
				{Type: parser.TokenInvalid, Value: "invalid", Position: 25},
				{Type: parser.TokenBoolean, Value: "true", Position: 33},
			},
		},
	})
}

func TestLexerNumbers(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:     "integer",
			input:    "123",
			expected: []parser.Token{{Type: parser.TokenNumber, Value: "123", Position: 0}},
		},
		{
			name:     "decimal",
			input:    "2.50",
			expected: []parser.Token{{Type: parser.TokenNumber, Value: "2.50", Position: 0}},
		},
		{
			name:     "negative",
			input:    "-1.5",
			expected: []parser.Token{{Type: parser.TokenNumber, Value: "-1.5", Position: 0}},
		},
		{
			name:      "trailing dot",
			input:     "1.",
			expectErr: true,
		},
	})
}

func TestLexerSymbolsAndComments(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "arrow and brackets",
			input: "[x] => { ; | }",
			expected: []parser.Token{
				{Type: parser.TokenBracketOpen, Value: "[", Position: 0},
				{Type: parser.TokenName, Value: "x", Position: 1},
				{Type: parser.TokenBracketClose, Value: "]", Position: 2},
				{Type: parser.TokenArrow, Value: "=>", Position: 4},
				{Type: parser.TokenBraceOpen, Value: "{", Position: 7},
				{Type: parser.TokenSemicolon, Value: ";", Position: 9},
				{Type: parser.TokenPipe, Value: "|", Position: 11},
				{Type: parser.TokenBraceClose, Value: "}", Position: 13},
			},
		},
		{
			name:  "comments",
			input: "// header\na // trailing\n// last",
			expected: []parser.Token{
				{Type: parser.TokenName, Value: "a", Position: 10},
			},
		},
		{
			name:  "string",
			input: `"a \"b\""`,
			expected: []parser.Token{
				{Type: parser.TokenString, Value: `a \"b\"`, Position: 1},
			},
		},
		{
			name:      "unterminated string",
			input:     `"abc`,
			expectErr: true,
		},
		{
			name:      "unexpected character",
			input:     "a # b",
			expectErr: true,
		},
	})
}

func TestLexerErrorCode(t *testing.T) {
	lexer := parser.NewLexer(`"abc`)
	for lexer.Next().Type != parser.TokenError {
	}
	if !types.IsCode(lexer.Error(), types.ErrStringNotClosed) {
		t.Errorf("expected ErrStringNotClosed, got %v", lexer.Error())
	}
}
