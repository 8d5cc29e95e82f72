package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Render renders a node as an S-expression. Programs render one top-level
// statement per line.
func Render(node Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

// FormatNumber renders a number without a trailing fractional zero.
// Non-finite values print as inf, -inf and NaN.
func FormatNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func writeNode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Program:
		for i, stmt := range n.Statements {
			if i > 0 {
				b.WriteByte('\n')
			}
			writeNode(b, stmt)
		}
	case *NumberLiteral:
		b.WriteString(FormatNumber(n.Value))
	case *StringLiteral:
		b.WriteByte('"')
		b.WriteString(n.Value)
		b.WriteByte('"')
	case *BooleanLiteral:
		b.WriteString(strconv.FormatBool(n.Value))
	case *NilLiteral:
		b.WriteString("nil")
	case *Identifier:
		b.WriteString(n.Name)
	case *GroupingExpression:
		writeList(b, "group", n.Expression)
	case *UnaryExpression:
		writeList(b, n.Operator, n.Operand)
	case *BinaryExpression:
		writeList(b, n.Operator, n.Left, n.Right)
	case *LogicalExpression:
		writeList(b, n.Operator, n.Left, n.Right)
	case *AssignmentExpression:
		writeList(b, "= "+n.Name, n.Value)
	case *FunctionCall:
		nodes := make([]Node, 0, len(n.Arguments)+1)
		nodes = append(nodes, n.Callee)
		for _, arg := range n.Arguments {
			nodes = append(nodes, arg)
		}
		writeList(b, "call", nodes...)
	case *ExpressionStatement:
		writeList(b, "expr", n.Expression)
	case *PrintStatement:
		writeList(b, "print", n.Expression)
	case *VarDeclaration:
		if n.Initializer == nil {
			writeList(b, "var "+n.Name)
			return
		}
		writeList(b, "var "+n.Name, n.Initializer)
	case *BlockStatement:
		head := "block"
		if n.StepsOnContinue {
			head = "step-block"
		}
		nodes := make([]Node, 0, len(n.Body))
		for _, stmt := range n.Body {
			nodes = append(nodes, stmt)
		}
		writeList(b, head, nodes...)
	case *IfStatement:
		if n.ElseBranch == nil {
			writeList(b, "if", n.Condition, n.ThenBranch)
			return
		}
		writeList(b, "if", n.Condition, n.ThenBranch, n.ElseBranch)
	case *WhileLoop:
		writeList(b, "while", n.Condition, n.Body)
	case *BreakStatement:
		b.WriteString("(break)")
	case *ContinueStatement:
		b.WriteString("(continue)")
	default:
		fmt.Fprintf(b, "<unknown %s>", node.NodeType())
	}
}

func writeList(b *strings.Builder, head string, children ...Node) {
	b.WriteByte('(')
	b.WriteString(head)
	for _, child := range children {
		b.WriteByte(' ')
		writeNode(b, child)
	}
	b.WriteByte(')')
}
