package ast

type NodeType string

const (
	NodeNumberLiteral        NodeType = "NumberLiteral"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeBooleanLiteral       NodeType = "BooleanLiteral"
	NodeNilLiteral           NodeType = "NilLiteral"
	NodeGroupingExpression   NodeType = "GroupingExpression"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeLogicalExpression    NodeType = "LogicalExpression"
	NodeIdentifier           NodeType = "Identifier"
	NodeAssignmentExpression NodeType = "AssignmentExpression"
	NodeFunctionCall         NodeType = "FunctionCall"
	NodeExpressionStatement  NodeType = "ExpressionStatement"
	NodePrintStatement       NodeType = "PrintStatement"
	NodeVarDeclaration       NodeType = "VarDeclaration"
	NodeBlockStatement       NodeType = "BlockStatement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeWhileLoop            NodeType = "WhileLoop"
	NodeBreakStatement       NodeType = "BreakStatement"
	NodeContinueStatement    NodeType = "ContinueStatement"
	NodeProgram              NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	Line() int
	isNode()
}

type nodeImpl struct {
	Type NodeType
	line int
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Line() int          { return n.line }
func (nodeImpl) isNode()              {}

// SetLine records the source line the node was parsed from.
func (n *nodeImpl) SetLine(line int) { n.line = line }

// Marker interfaces. Expressions and statements are disjoint families; an
// expression only appears in statement position wrapped in ExpressionStatement.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value float64
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value string
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value bool
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

// Expressions

type GroupingExpression struct {
	nodeImpl
	expressionMarker

	Expression Expression
}

func NewGroupingExpression(expr Expression) *GroupingExpression {
	return &GroupingExpression{nodeImpl: newNodeImpl(NodeGroupingExpression), Expression: expr}
}

// UnaryExpression covers prefix "-" and "!".
type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string
	Operand  Expression
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

// BinaryExpression covers arithmetic, comparison and equality operators.
type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string
	Left     Expression
	Right    Expression
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// LogicalExpression is a short-circuiting "and" or "or".
type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Operator string
	Left     Expression
	Right    Expression
}

func NewLogicalExpression(operator string, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: operator, Left: left, Right: right}
}

// Identifier is a variable reference.
type Identifier struct {
	nodeImpl
	expressionMarker

	Name string
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Name  string
	Value Expression
}

func NewAssignmentExpression(name string, value Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Name: name, Value: value}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Callee    Expression
	Arguments []Expression
}

func NewFunctionCall(callee Expression, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

// Statements

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Expression Expression
}

func NewPrintStatement(expr Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Expression: expr}
}

// VarDeclaration binds Name in the current scope. Initializer may be nil.
type VarDeclaration struct {
	nodeImpl
	statementMarker

	Name        string
	Initializer Expression
}

func NewVarDeclaration(name string, initializer Expression) *VarDeclaration {
	return &VarDeclaration{nodeImpl: newNodeImpl(NodeVarDeclaration), Name: name, Initializer: initializer}
}

// BlockStatement runs Body in a fresh child scope.
//
// StepsOnContinue marks the body of a desugared for loop: a continue signal
// escaping any statement but the last resumes at the last statement (the
// increment) instead of leaving the block.
type BlockStatement struct {
	nodeImpl
	statementMarker

	Body            []Statement
	StepsOnContinue bool
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

func NewStepBlockStatement(body []Statement) *BlockStatement {
	block := NewBlockStatement(body)
	block.StepsOnContinue = true
	return block
}

// IfStatement. ElseBranch may be nil.
type IfStatement struct {
	nodeImpl
	statementMarker

	Condition  Expression
	ThenBranch Statement
	ElseBranch Statement
}

func NewIfStatement(condition Expression, thenBranch, elseBranch Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression
	Body      Statement
}

func NewWhileLoop(condition Expression, body Statement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}

// Program is the root of a parsed source unit.
type Program struct {
	nodeImpl

	Statements []Statement
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}
