package parser

import (
	"fmt"
	"strconv"

	"github.com/sandrolain/gomint/pkg/types"
)

// Section names accepted at the top level of a profile.
const (
	SectionNodePenalty = "node-penalty"
	SectionWayPenalty  = "way-penalty"
	SectionCostFactor  = "cost-factor"
)

// Parser implements a recursive descent parser for profiles.
type Parser struct {
	lexer   *Lexer
	current Token
	prev    Token
	depth   int
	opts    Options
}

// NewParser creates a new parser for the given input string.
func NewParser(input string, opts ...Option) *Parser {
	options := Options{
		MaxDepth: 100,
	}
	for _, opt := range opts {
		opt(&options)
	}

	p := &Parser{
		lexer: NewLexer(input),
		opts:  options,
	}

	// Read the first token
	p.advance()

	return p
}

// ParseProfile parses a complete profile.
func (p *Parser) ParseProfile() (*types.Profile, error) {
	if err := p.expect(TokenProfile); err != nil {
		return nil, err
	}

	if p.current.Type != TokenString {
		return nil, p.error(types.ErrExpectedToken, "Expected profile name string")
	}
	name, err := p.parseStringValue()
	if err != nil {
		return nil, err
	}

	profile := types.NewProfile(name, p.lexer.input)

	if err := p.expect(TokenBraceOpen); err != nil {
		return nil, err
	}

	for {
		p.skipSeparators()

		switch p.current.Type {
		case TokenBraceClose:
			p.advance()
			if p.current.Type != TokenEOF {
				return nil, p.error(types.ErrSyntaxError, fmt.Sprintf("Unexpected token after profile: %s", p.current.Value))
			}
			return profile, nil

		case TokenDefine:
			defs, err := p.parseDefineBlock()
			if err != nil {
				return nil, err
			}
			profile.Constants = append(profile.Constants, defs...)

		case TokenName:
			if err := p.parseSection(profile); err != nil {
				return nil, err
			}

		default:
			return nil, p.unexpected()
		}
	}
}

// ParseExpression parses input consisting of exactly one expression.
func (p *Parser) ParseExpression() (types.Expression, error) {
	if p.current.Type == TokenEOF {
		return nil, p.error(types.ErrSyntaxError, "Empty expression")
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.skipSeparators()
	if p.current.Type != TokenEOF {
		return nil, p.unexpected()
	}
	return expr, nil
}

// parseSection parses "node-penalty { expr }" and friends.
func (p *Parser) parseSection(profile *types.Profile) error {
	tok := p.current

	var slot *types.Expression
	switch tok.Value {
	case SectionNodePenalty:
		slot = &profile.NodePenalty
	case SectionWayPenalty:
		slot = &profile.WayPenalty
	case SectionCostFactor:
		slot = &profile.CostFactor
	default:
		return p.error(types.ErrUnknownSection, fmt.Sprintf("Unknown profile section %q", tok.Value))
	}
	if *slot != nil {
		return p.error(types.ErrDuplicateSection, fmt.Sprintf("Duplicate profile section %q", tok.Value))
	}
	p.advance()

	if err := p.expect(TokenBraceOpen); err != nil {
		return err
	}
	p.skipSeparators()

	expr, err := p.parseExpr()
	if err != nil {
		return err
	}

	p.skipSeparators()
	if p.current.Type != TokenBraceClose {
		return p.error(types.ErrExpectedToken, fmt.Sprintf("Section %q takes a single expression", tok.Value))
	}
	p.advance()

	*slot = expr
	return nil
}

// parseDefineBlock parses "define { name = expr ... }".
func (p *Parser) parseDefineBlock() ([]types.Definition, error) {
	if err := p.expect(TokenDefine); err != nil {
		return nil, err
	}
	if err := p.expect(TokenBraceOpen); err != nil {
		return nil, err
	}

	var defs []types.Definition
	for {
		p.skipSeparators()
		if p.current.Type == TokenBraceClose {
			p.advance()
			return defs, nil
		}

		if p.current.Type != TokenName {
			return nil, p.error(types.ErrExpectedToken, fmt.Sprintf("Expected definition name but got %s", p.current.Type))
		}
		name := p.current.Value
		p.advance()

		if err := p.expect(TokenEqual); err != nil {
			return nil, err
		}

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		defs = append(defs, types.Definition{Name: name, Expr: expr})
	}
}

// parseExpr parses a single expression.
func (p *Parser) parseExpr() (types.Expression, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.opts.MaxDepth > 0 && p.depth > p.opts.MaxDepth {
		return nil, p.error(types.ErrSyntaxError, "Expression nested too deeply")
	}

	tok := p.current
	switch tok.Type {
	case TokenNumber:
		n, err := strconv.ParseFloat(tok.Value, 32)
		if err != nil {
			return nil, p.error(types.ErrSyntaxError, fmt.Sprintf("Invalid number %q", tok.Value))
		}
		p.advance()
		return &types.Literal{Value: types.Number(float32(n)), Position: tok.Position}, nil

	case TokenString:
		s, err := p.parseStringValue()
		if err != nil {
			return nil, err
		}
		return &types.Literal{Value: types.String(s), Position: tok.Position}, nil

	case TokenBoolean:
		p.advance()
		return &types.Literal{Value: types.Bool(tok.Value == "true"), Position: tok.Position}, nil

	case TokenInvalid:
		p.advance()
		return &types.Literal{Value: types.Invalid(), Position: tok.Position}, nil

	case TokenBracketOpen:
		return p.parseTagExpr()

	case TokenWhen:
		return p.parseWhenBlock()

	case TokenName:
		p.advance()
		if p.current.Type == TokenBraceOpen {
			return p.parseNamedBlock(tok)
		}
		return &types.Ident{Name: tok.Value, Position: tok.Position}, nil

	default:
		return nil, p.unexpected()
	}
}

// parseNamedBlock parses the rest of "name { define { ... } expr ... }".
// The name token has already been consumed.
func (p *Parser) parseNamedBlock(name Token) (types.Expression, error) {
	if err := p.expect(TokenBraceOpen); err != nil {
		return nil, err
	}

	block := &types.NamedBlock{Name: name.Value, Position: name.Position}
	for {
		p.skipSeparators()

		switch p.current.Type {
		case TokenBraceClose:
			p.advance()
			return block, nil

		case TokenDefine:
			defs, err := p.parseDefineBlock()
			if err != nil {
				return nil, err
			}
			block.Defs = append(block.Defs, defs...)

		default:
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			block.Body = append(block.Body, expr)
		}
	}
}

// parseWhenBlock parses "when { cond => expr ... }".
func (p *Parser) parseWhenBlock() (types.Expression, error) {
	block := &types.WhenBlock{Position: p.current.Position}
	p.advance()

	if err := p.expect(TokenBraceOpen); err != nil {
		return nil, err
	}

	for {
		p.skipSeparators()
		if p.current.Type == TokenBraceClose {
			p.advance()
			return block, nil
		}

		var clause types.WhenClause
		if p.current.Type == TokenElse {
			clause.Else = true
			p.advance()
		} else {
			cond, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			clause.Condition = cond
		}

		if err := p.expect(TokenArrow); err != nil {
			return nil, err
		}

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		clause.Value = value
		block.Clauses = append(block.Clauses, clause)
	}
}

// parseTagExpr parses "[key; !key; key=a|b; key!=c]".
func (p *Parser) parseTagExpr() (types.Expression, error) {
	expr := &types.TagExpr{Position: p.current.Position}
	p.advance()

	for {
		p.skipSeparators()
		if p.current.Type == TokenBracketClose {
			p.advance()
			return expr, nil
		}

		if p.current.Type == TokenBang {
			p.advance()
			key, err := p.parseWord()
			if err != nil {
				return nil, err
			}
			expr.Patterns = append(expr.Patterns, types.NotExists(key))
			continue
		}

		key, err := p.parseWord()
		if err != nil {
			return nil, err
		}

		switch p.current.Type {
		case TokenEqual, TokenNotEqual:
			op := p.current.Type
			p.advance()
			values, err := p.parseWordList()
			if err != nil {
				return nil, err
			}
			if op == TokenEqual {
				expr.Patterns = append(expr.Patterns, types.OneOf(key, values...))
			} else {
				expr.Patterns = append(expr.Patterns, types.NoneOf(key, values...))
			}
		default:
			expr.Patterns = append(expr.Patterns, types.Exists(key))
		}
	}
}

// parseWordList parses "a|b|c".
func (p *Parser) parseWordList() ([]string, error) {
	var words []string
	for {
		w, err := p.parseWord()
		if err != nil {
			return nil, err
		}
		words = append(words, w)

		if p.current.Type != TokenPipe {
			return words, nil
		}
		p.advance()
	}
}

// parseWord parses a tag key or value: a bare word or a quoted string.
func (p *Parser) parseWord() (string, error) {
	if !isWord(p.current.Type) {
		return "", p.error(types.ErrExpectedToken, fmt.Sprintf("Expected tag key or value but got %s", p.current.Type))
	}
	if p.current.Type == TokenString {
		return p.parseStringValue()
	}
	w := p.current.Value
	p.advance()
	return w, nil
}

// parseStringValue unescapes the current string token and advances.
func (p *Parser) parseStringValue() (string, error) {
	raw := p.current.Value
	s, err := strconv.Unquote(`"` + raw + `"`)
	if err != nil {
		return "", p.error(types.ErrSyntaxError, fmt.Sprintf("Invalid string literal %q", raw))
	}
	p.advance()
	return s, nil
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.prev = p.current
	p.current = p.lexer.Next()
}

// skipSeparators skips any number of ';'.
func (p *Parser) skipSeparators() {
	for p.current.Type == TokenSemicolon {
		p.advance()
	}
}

// expect checks if the current token matches the expected type and advances.
func (p *Parser) expect(tt TokenType) error {
	if p.current.Type != tt {
		return p.error(types.ErrExpectedToken, fmt.Sprintf("Expected %s but got %s", tt.String(), p.current.Type.String()))
	}
	p.advance()
	return nil
}

// unexpected reports the current token as out of place.
func (p *Parser) unexpected() error {
	if p.current.Type == TokenError {
		return p.lexer.Error()
	}
	if p.current.Type == TokenEOF {
		return p.error(types.ErrSyntaxError, "Unexpected end of input")
	}
	return p.error(types.ErrSyntaxError, fmt.Sprintf("Unexpected token: %s", p.current.Value))
}

// error creates a parser error. Lexer errors take precedence since they
// describe the real cause.
func (p *Parser) error(code types.ErrorCode, message string) error {
	if err := p.lexer.Error(); err != nil && p.current.Type == TokenError {
		return err
	}
	return &types.Error{
		Code:     code,
		Message:  message,
		Position: p.current.Position,
		Token:    p.current.Value,
	}
}
