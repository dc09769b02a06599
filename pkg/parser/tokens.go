package parser

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenString  // "hello"
	TokenNumber  // 123, 2.5, -1
	TokenBoolean // true, false
	TokenInvalid // invalid
	TokenName    // highway, any?, return!, way.length

	// Keywords
	TokenProfile // profile
	TokenDefine  // define
	TokenWhen    // when
	TokenElse    // else

	// Grouping symbols
	TokenBracketOpen  // [
	TokenBracketClose // ]
	TokenBraceOpen    // {
	TokenBraceClose   // }

	// Operators and separators
	TokenSemicolon // ;
	TokenEqual     // =
	TokenNotEqual  // !=
	TokenBang      // !
	TokenPipe      // |
	TokenArrow     // =>
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "(eof)"
	case TokenError:
		return "(error)"
	case TokenString:
		return "(string)"
	case TokenNumber:
		return "(number)"
	case TokenBoolean:
		return "(boolean)"
	case TokenInvalid:
		return "invalid"
	case TokenName:
		return "(name)"
	case TokenProfile:
		return "profile"
	case TokenDefine:
		return "define"
	case TokenWhen:
		return "when"
	case TokenElse:
		return "else"
	case TokenBracketOpen:
		return "["
	case TokenBracketClose:
		return "]"
	case TokenBraceOpen:
		return "{"
	case TokenBraceClose:
		return "}"
	case TokenSemicolon:
		return ";"
	case TokenEqual:
		return "="
	case TokenNotEqual:
		return "!="
	case TokenBang:
		return "!"
	case TokenPipe:
		return "|"
	case TokenArrow:
		return "=>"
	default:
		return "(unknown)"
	}
}

// Token represents a lexical token in a profile.
type Token struct {
	Type     TokenType // Type of the token
	Value    string    // Literal value of the token
	Position int       // Starting position in the input string
}

// symbols1 maps single-character symbols to token types.
var symbols1 = [...]TokenType{
	'[': TokenBracketOpen,
	']': TokenBracketClose,
	'{': TokenBraceOpen,
	'}': TokenBraceClose,
	';': TokenSemicolon,
	'=': TokenEqual,
	'!': TokenBang,
	'|': TokenPipe,
}

// runeTokenType pairs a rune with its corresponding token type.
type runeTokenType struct {
	r  rune
	tt TokenType
}

// symbols2 maps two-character symbol sequences to token types.
// The key is the first character of the sequence.
var symbols2 = [...][]runeTokenType{
	'!': {{'=', TokenNotEqual}},
	'=': {{'>', TokenArrow}},
}

const (
	symbol1Count = rune(len(symbols1))
	symbol2Count = rune(len(symbols2))
)

// lookupSymbol1 returns the token type for a single-character symbol.
// Returns 0 if the rune is not a valid symbol.
func lookupSymbol1(r rune) TokenType {
	if r < 0 || r >= symbol1Count {
		return 0
	}
	return symbols1[r]
}

// lookupSymbol2 returns possible two-character symbol completions.
// Returns nil if the rune cannot start a two-character symbol.
func lookupSymbol2(r rune) []runeTokenType {
	if r < 0 || r >= symbol2Count {
		return nil
	}
	return symbols2[r]
}

// lookupKeyword returns the token type for a keyword.
// Returns 0 if the string is not a recognized keyword.
func lookupKeyword(s string) TokenType {
	switch s {
	case "profile":
		return TokenProfile
	case "define":
		return TokenDefine
	case "when":
		return TokenWhen
	case "else":
		return TokenElse
	case "invalid":
		return TokenInvalid
	case "true", "false":
		return TokenBoolean
	default:
		return 0
	}
}

// isWord reports whether a token of type tt can stand for a tag key or value.
func isWord(tt TokenType) bool {
	switch tt {
	case TokenName, TokenString, TokenNumber, TokenBoolean, TokenInvalid,
		TokenProfile, TokenDefine, TokenWhen, TokenElse:
		return true
	default:
		return false
	}
}
