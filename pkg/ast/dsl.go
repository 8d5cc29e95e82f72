package ast

// Literal helpers.

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

// Expression helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Group(expr Expression) *GroupingExpression {
	return NewGroupingExpression(expr)
}

func Un(op string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(op, operand)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func And(left, right Expression) *LogicalExpression {
	return NewLogicalExpression("and", left, right)
}

func Or(left, right Expression) *LogicalExpression {
	return NewLogicalExpression("or", left, right)
}

func Assign(name string, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(name, value)
}

func Call(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

// Statement helpers.

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Print(expr Expression) *PrintStatement {
	return NewPrintStatement(expr)
}

func Var(name string, initializer Expression) *VarDeclaration {
	return NewVarDeclaration(name, initializer)
}

func Block(stmts ...Statement) *BlockStatement {
	return NewBlockStatement(stmts)
}

func StepBlock(stmts ...Statement) *BlockStatement {
	return NewStepBlockStatement(stmts)
}

func If(condition Expression, thenBranch Statement, elseBranch Statement) *IfStatement {
	return NewIfStatement(condition, thenBranch, elseBranch)
}

func While(condition Expression, body Statement) *WhileLoop {
	return NewWhileLoop(condition, body)
}

func Brk() *BreakStatement {
	return NewBreakStatement()
}

func Cont() *ContinueStatement {
	return NewContinueStatement()
}

func Prog(stmts ...Statement) *Program {
	return NewProgram(stmts)
}
