package parser

import "lox/interpreter-go/pkg/lexer"

// synchronize discards tokens until a likely statement boundary: just past a
// semicolon, or before a token that starts a statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == lexer.Semicolon {
			return
		}
		if startsStatement(p.peek().Kind) {
			return
		}
		p.advance()
	}
}

func startsStatement(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.Var, lexer.For, lexer.If, lexer.While, lexer.Print,
		lexer.Break, lexer.Continue, lexer.LeftBrace:
		return true
	default:
		return false
	}
}
