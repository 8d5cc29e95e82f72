package lexer

import "fmt"

// TokenKind identifies the lexical category of a token.
type TokenKind int

const (
	// Single-character punctuation.
	LeftParen TokenKind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star
	Percent

	// One or two character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Break
	Continue
	Else
	False
	For
	If
	Nil
	Or
	Print
	True
	Var
	While

	EOF
)

var kindNames = [...]string{
	LeftParen:    "LEFT_PAREN",
	RightParen:   "RIGHT_PAREN",
	LeftBrace:    "LEFT_BRACE",
	RightBrace:   "RIGHT_BRACE",
	Comma:        "COMMA",
	Dot:          "DOT",
	Minus:        "MINUS",
	Plus:         "PLUS",
	Semicolon:    "SEMICOLON",
	Slash:        "SLASH",
	Star:         "STAR",
	Percent:      "PERCENT",
	Bang:         "BANG",
	BangEqual:    "BANG_EQUAL",
	Equal:        "EQUAL",
	EqualEqual:   "EQUAL_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",
	Identifier:   "IDENTIFIER",
	String:       "STRING",
	Number:       "NUMBER",
	And:          "AND",
	Break:        "BREAK",
	Continue:     "CONTINUE",
	Else:         "ELSE",
	False:        "FALSE",
	For:          "FOR",
	If:           "IF",
	Nil:          "NIL",
	Or:           "OR",
	Print:        "PRINT",
	True:         "TRUE",
	Var:          "VAR",
	While:        "WHILE",
	EOF:          "EOF",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// keywords maps reserved words to their token kinds; any other identifier-shaped
// lexeme is a plain Identifier.
var keywords = map[string]TokenKind{
	"and":      And,
	"break":    Break,
	"continue": Continue,
	"else":     Else,
	"false":    False,
	"for":      For,
	"if":       If,
	"nil":      Nil,
	"or":       Or,
	"print":    Print,
	"true":     True,
	"var":      Var,
	"while":    While,
}

// LookupKeyword reports the keyword kind for ident, or Identifier.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}

// IsKeyword reports whether k is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return k >= And && k <= While
}

// Token is the unit passed from the lexer to the parser. Lexeme is the exact
// source text of the token (string tokens keep their quotes).
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %d", t.Kind, t.Lexeme, t.Line)
}

// StringValue returns the contents of a String token without the surrounding quotes.
func (t Token) StringValue() string {
	if t.Kind != String || len(t.Lexeme) < 2 {
		return t.Lexeme
	}
	return t.Lexeme[1 : len(t.Lexeme)-1]
}
