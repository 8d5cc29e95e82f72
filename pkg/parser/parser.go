package parser

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/lexer"
)

// maxArguments bounds the argument list of a single call.
const maxArguments = 255

// ParseError captures a recoverable syntax error. Parsing resumes at the next
// statement boundary after one is recorded.
type ParseError struct {
	Line    int
	Lexeme  string
	AtEnd   bool
	Message string
}

func (e *ParseError) Error() string {
	if e.AtEnd {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Message)
}

// Parser is a recursive-descent parser over a fully scanned token slice.
//
// Invariants:
//   - tokens always ends with an EOF token; current never moves past it.
//   - errors is append-only and ordered by discovery.
//   - loopDepth counts the while/for bodies enclosing the current position and
//     is restored on every exit path, including errors.
type Parser struct {
	tokens    []lexer.Token
	current   int
	loopDepth int

	errors []*ParseError
}

// New returns a parser over tokens. A trailing EOF is appended when missing.
func New(tokens []lexer.Token) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != lexer.EOF {
		line := 1
		if n > 0 {
			line = tokens[n-1].Line
		}
		tokens = append(tokens[:n:n], lexer.Token{Kind: lexer.EOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// Parse parses tokens into a program, collecting every syntax error found.
func Parse(tokens []lexer.Token) (*ast.Program, []*ParseError) {
	return New(tokens).ParseProgram()
}

// ParseProgram consumes declarations until EOF. Statements that failed to parse
// are omitted from the program.
func (p *Parser) ParseProgram() (*ast.Program, []*ParseError) {
	var statements []ast.Statement
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	program := ast.NewProgram(statements)
	program.SetLine(p.tokens[0].Line)
	return program, p.errors
}

func (p *Parser) match(kinds ...lexer.TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

// consume advances past a token of the given kind or returns a ParseError
// positioned at the offending token.
func (p *Parser) consume(kind lexer.TokenKind, message string) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorAt(p.peek(), message)
}

// errorAt builds a ParseError for tok without recording it.
func (p *Parser) errorAt(tok lexer.Token, message string) *ParseError {
	err := &ParseError{Line: tok.Line, Lexeme: tok.Lexeme, Message: message}
	if tok.Kind == lexer.EOF {
		err.AtEnd = true
		err.Lexeme = ""
	}
	return err
}

// report records an error that does not interrupt the current rule.
func (p *Parser) report(tok lexer.Token, message string) {
	p.errors = append(p.errors, p.errorAt(tok, message))
}
