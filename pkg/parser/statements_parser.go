package parser

import (
	"errors"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/lexer"
)

// declaration is the recovery point: a failed statement is recorded, the
// parser synchronizes, and nil is returned in place of the statement.
func (p *Parser) declaration() ast.Statement {
	var (
		stmt ast.Statement
		err  error
	)
	if p.match(lexer.Var) {
		stmt, err = p.varDeclaration()
	} else {
		stmt, err = p.statement()
	}
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			p.errors = append(p.errors, parseErr)
		} else {
			p.errors = append(p.errors, p.errorAt(p.peek(), err.Error()))
		}
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	keyword := p.previous()
	name, err := p.consume(lexer.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initializer ast.Expression
	if p.match(lexer.Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	decl := ast.NewVarDeclaration(name.Lexeme, initializer)
	decl.SetLine(keyword.Line)
	return decl, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(lexer.For):
		return p.forStatement()
	case p.match(lexer.If):
		return p.ifStatement()
	case p.match(lexer.Print):
		return p.printStatement()
	case p.match(lexer.While):
		return p.whileStatement()
	case p.match(lexer.Break):
		return p.loopJump(ast.NewBreakStatement(), "break")
	case p.match(lexer.Continue):
		return p.loopJump(ast.NewContinueStatement(), "continue")
	case p.match(lexer.LeftBrace):
		line := p.previous().Line
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		block := ast.NewBlockStatement(body)
		block.SetLine(line)
		return block, nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (ast.Statement, error) {
	keyword := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	stmt := ast.NewPrintStatement(value)
	stmt.SetLine(keyword.Line)
	return stmt, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	line := p.peek().Line
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	stmt := ast.NewExpressionStatement(expr)
	stmt.SetLine(line)
	return stmt, nil
}

// block parses declarations up to the closing brace. The opening brace has
// already been consumed.
func (p *Parser) block() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, err := p.consume(lexer.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(lexer.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Statement
	if p.match(lexer.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	stmt := ast.NewIfStatement(condition, thenBranch, elseBranch)
	stmt.SetLine(keyword.Line)
	return stmt, nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(lexer.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.loopBody()
	if err != nil {
		return nil, err
	}
	loop := ast.NewWhileLoop(condition, body)
	loop.SetLine(keyword.Line)
	return loop, nil
}

// forStatement desugars
//
//	for (init; cond; incr) body
//
// into
//
//	{ init; while (cond) step-block { body; incr; } }
//
// The outer block is omitted without an initializer and the step block is
// omitted without an increment. A missing condition becomes true.
func (p *Parser) forStatement() (ast.Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(lexer.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var (
		initializer ast.Statement
		err         error
	)
	switch {
	case p.match(lexer.Semicolon):
	case p.match(lexer.Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expression
	if !p.check(lexer.Semicolon) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !p.check(lexer.RightParen) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.loopBody()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		step := ast.NewExpressionStatement(increment)
		step.SetLine(increment.Line())
		stepBlock := ast.NewStepBlockStatement([]ast.Statement{body, step})
		stepBlock.SetLine(body.Line())
		body = stepBlock
	}
	if condition == nil {
		literal := ast.NewBooleanLiteral(true)
		literal.SetLine(keyword.Line)
		condition = literal
	}
	loop := ast.NewWhileLoop(condition, body)
	loop.SetLine(keyword.Line)

	if initializer == nil {
		return loop, nil
	}
	outer := ast.NewBlockStatement([]ast.Statement{initializer, loop})
	outer.SetLine(keyword.Line)
	return outer, nil
}

func (p *Parser) loopBody() (ast.Statement, error) {
	p.loopDepth++
	defer func() { p.loopDepth-- }()
	return p.statement()
}

// loopJump finishes a break or continue statement. Outside a loop the error is
// recorded but parsing continues with the statement intact.
func (p *Parser) loopJump(stmt ast.Statement, keyword string) (ast.Statement, error) {
	tok := p.previous()
	if p.loopDepth == 0 {
		p.report(tok, "Must be inside a loop to use '"+keyword+"'.")
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after '"+keyword+"'."); err != nil {
		return nil, err
	}
	setLine(stmt, tok.Line)
	return stmt, nil
}
