package parser

import (
	"errors"
	"strconv"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/lexer"
)

// Precedence, lowest to highest:
// assignment, or, and, equality, comparison, term, factor, unary, call, primary.

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.Equal) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if target, ok := expr.(*ast.Identifier); ok {
		assign := ast.NewAssignmentExpression(target.Name, value)
		assign.SetLine(target.Line())
		return assign, nil
	}
	p.report(equals, "Invalid assignment target.")
	return expr, nil
}

func (p *Parser) or() (ast.Expression, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.Or) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		logical := ast.NewLogicalExpression(op.Lexeme, expr, right)
		logical.SetLine(op.Line)
		expr = logical
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.And) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		logical := ast.NewLogicalExpression(op.Lexeme, expr, right)
		logical.SetLine(op.Line)
		expr = logical
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binaryLevel(p.comparison, lexer.BangEqual, lexer.EqualEqual)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binaryLevel(p.term, lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binaryLevel(p.factor, lexer.Minus, lexer.Plus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binaryLevel(p.unary, lexer.Slash, lexer.Star, lexer.Percent)
}

// binaryLevel parses one left-associative precedence level: operands come from
// next, operators from ops.
func (p *Parser) binaryLevel(next func() (ast.Expression, error), ops ...lexer.TokenKind) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		binary := ast.NewBinaryExpression(op.Lexeme, expr, right)
		binary.SetLine(op.Line)
		expr = binary
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(lexer.Bang, lexer.Minus) {
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		unary := ast.NewUnaryExpression(op.Lexeme, operand)
		unary.SetLine(op.Line)
		return unary, nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.LeftParen) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var args []ast.Expression
	if !p.check(lexer.RightParen) {
		for {
			if len(args) >= maxArguments {
				p.report(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(lexer.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	call := ast.NewFunctionCall(callee, args)
	call.SetLine(paren.Line)
	return call, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.peek()
	var expr ast.Expression
	switch tok.Kind {
	case lexer.False:
		expr = ast.NewBooleanLiteral(false)
	case lexer.True:
		expr = ast.NewBooleanLiteral(true)
	case lexer.Nil:
		expr = ast.NewNilLiteral()
	case lexer.Number:
		// Literals beyond float64 range saturate to infinity.
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, p.errorAt(tok, "Invalid number literal.")
		}
		expr = ast.NewNumberLiteral(value)
	case lexer.String:
		expr = ast.NewStringLiteral(tok.StringValue())
	case lexer.Identifier:
		expr = ast.NewIdentifier(tok.Lexeme)
	case lexer.LeftParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		group := ast.NewGroupingExpression(inner)
		group.SetLine(tok.Line)
		return group, nil
	default:
		return nil, p.errorAt(tok, "Expect expression.")
	}
	p.advance()
	setLine(expr, tok.Line)
	return expr, nil
}

type lineSetter interface {
	SetLine(int)
}

func setLine(node ast.Node, line int) {
	if s, ok := node.(lineSetter); ok {
		s.SetLine(line)
	}
}
