package lexer

import "fmt"

// LexErrorKind enumerates recoverable lexical failures.
type LexErrorKind int

const (
	ErrUnexpectedCharacter LexErrorKind = iota
	ErrUnterminatedString
	ErrMalformedNumber
)

func (k LexErrorKind) String() string {
	switch k {
	case ErrUnexpectedCharacter:
		return "unexpected character"
	case ErrUnterminatedString:
		return "unterminated string"
	case ErrMalformedNumber:
		return "malformed number"
	default:
		return fmt.Sprintf("lex error %d", int(k))
	}
}

// LexError records a lexical failure. Scanning continues after one is recorded.
type LexError struct {
	Kind    LexErrorKind
	Line    int
	Char    rune
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// Lexer converts source text into tokens in a single forward pass.
type Lexer struct {
	source  []rune
	start   int
	current int
	line    int

	tokens []Token
	errors []*LexError
}

// New creates a lexer whose first line is numbered 1.
func New(source string) *Lexer {
	return NewAt(source, 1)
}

// NewAt creates a lexer whose first line is numbered startLine. REPL hosts use
// this to keep line numbers continuous across chunks.
func NewAt(source string, startLine int) *Lexer {
	if startLine < 1 {
		startLine = 1
	}
	return &Lexer{source: []rune(source), line: startLine}
}

// Scan tokenizes source starting at line 1.
func Scan(source string) ([]Token, []*LexError) {
	return New(source).ScanTokens()
}

// ScanFrom tokenizes source starting at startLine.
func ScanFrom(source string, startLine int) ([]Token, []*LexError) {
	return NewAt(source, startLine).ScanTokens()
}

// ScanTokens runs the lexer to completion. The returned token slice always ends
// with exactly one EOF token.
func (l *Lexer) ScanTokens() ([]Token, []*LexError) {
	for !l.atEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.tokens = append(l.tokens, Token{Kind: EOF, Lexeme: "", Line: l.line})
	return l.tokens, l.errors
}

func (l *Lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.addToken(LeftParen)
	case ')':
		l.addToken(RightParen)
	case '{':
		l.addToken(LeftBrace)
	case '}':
		l.addToken(RightBrace)
	case ',':
		l.addToken(Comma)
	case '-':
		l.addToken(Minus)
	case '+':
		l.addToken(Plus)
	case ';':
		l.addToken(Semicolon)
	case '*':
		l.addToken(Star)
	case '%':
		l.addToken(Percent)
	case '.':
		if isDigit(l.peek()) {
			l.leadingDotNumber()
			return
		}
		l.addToken(Dot)
	case '!':
		l.addToken(l.choose('=', BangEqual, Bang))
	case '=':
		l.addToken(l.choose('=', EqualEqual, Equal))
	case '<':
		l.addToken(l.choose('=', LessEqual, Less))
	case '>':
		l.addToken(l.choose('=', GreaterEqual, Greater))
	case '/':
		if l.match('/') {
			for l.peek() != '\n' && !l.atEnd() {
				l.advance()
			}
			return
		}
		l.addToken(Slash)
	case ' ', '\r', '\t':
	case '\n':
		l.line++
	case '"':
		l.stringLiteral()
	default:
		switch {
		case isDigit(c):
			l.number()
		case isAlpha(c):
			l.identifier()
		default:
			l.addError(ErrUnexpectedCharacter, c, fmt.Sprintf("Unexpected character: %c", c))
		}
	}
}

func (l *Lexer) stringLiteral() {
	startLine := l.line
	for l.peek() != '"' && !l.atEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}
	if l.atEnd() {
		l.errors = append(l.errors, &LexError{
			Kind:    ErrUnterminatedString,
			Line:    startLine,
			Char:    '"',
			Message: "Unterminated string.",
		})
		return
	}
	l.advance()
	l.tokens = append(l.tokens, Token{Kind: String, Lexeme: l.lexeme(), Line: startLine})
}

func (l *Lexer) number() {
	l.digits()
	if l.peek() == '.' {
		if !isDigit(l.peekNext()) {
			l.advance()
			l.malformedNumber("trailing decimal point")
			return
		}
		l.advance()
		l.digits()
		if l.peek() == '.' {
			l.advance()
			l.skipNumberTail()
			l.malformedNumber("more than one decimal point")
			return
		}
	}
	l.addToken(Number)
}

func (l *Lexer) leadingDotNumber() {
	l.skipNumberTail()
	l.malformedNumber("leading decimal point")
}

// skipNumberTail consumes the remainder of a malformed numeric run so that a
// single bad literal yields a single error.
func (l *Lexer) skipNumberTail() {
	for isDigit(l.peek()) || (l.peek() == '.' && isDigit(l.peekNext())) {
		l.advance()
	}
}

func (l *Lexer) malformedNumber(reason string) {
	text := l.lexeme()
	l.errors = append(l.errors, &LexError{
		Kind:    ErrMalformedNumber,
		Line:    l.line,
		Char:    l.source[l.start],
		Message: fmt.Sprintf("Malformed number '%s': %s.", text, reason),
	})
}

func (l *Lexer) digits() {
	for isDigit(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	l.addToken(LookupKeyword(l.lexeme()))
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() rune {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) match(expected rune) bool {
	if l.atEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) choose(next rune, long, short TokenKind) TokenKind {
	if l.match(next) {
		return long
	}
	return short
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() rune {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *Lexer) lexeme() string {
	return string(l.source[l.start:l.current])
}

func (l *Lexer) addToken(kind TokenKind) {
	l.tokens = append(l.tokens, Token{Kind: kind, Lexeme: l.lexeme(), Line: l.line})
}

func (l *Lexer) addError(kind LexErrorKind, c rune, msg string) {
	l.errors = append(l.errors, &LexError{Kind: kind, Line: l.line, Char: c, Message: msg})
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}
