package compiler

import (
	"strconv"
	"strings"
)

// The expression compiler turns an expression tree into a Java expression
// string. Every call compiles into an object construction, uniformly: there
// are no builtins, "if" and "plus" are ordinary names. A bare reference
// resolves to this.<name> when it names an attribute or a parameter of the
// enclosing method, otherwise it is taken as a zero-argument construction.

type expressionScope struct {
	table      *SymbolTable
	objectName string
	// Empty outside a method, e.g. for attribute defaults on the
	// constructor path.
	methodName string
}

func compileExpression(expr *ExpressionAst, scope *expressionScope) (string, error) {
	switch expr.ExprTP {
	case StringLiteralExprTP:
		return "\"" + expr.Value + "\"", nil
	case IntegerLiteralExprTP:
		if _, err := strconv.Atoi(expr.Value); err != nil {
			return "", &ExpressionError{Msg: "malformed integer literal " + quoted(expr.Value)}
		}
		return expr.Value, nil
	case BooleanLiteralExprTP:
		return expr.Value, nil
	case ReferenceExprTP:
		if scope.table.resolvesToThis(scope.objectName, scope.methodName, expr.Value) {
			return "this." + expr.Value, nil
		}
		// Unresolved references are bare constructor names.
		return compileCall(&ExpressionAst{ExprTP: CallExprTP, Value: expr.Value}, scope)
	case CallExprTP:
		return compileCall(expr, scope)
	default:
		return "", &ExpressionError{Msg: "unknown expression node"}
	}
}

func compileCall(expr *ExpressionAst, scope *expressionScope) (string, error) {
	if len(expr.Value) == 0 {
		return "", &ExpressionError{Msg: "call with an empty name"}
	}
	args := make([]string, 0, len(expr.Args))
	for _, arg := range expr.Args {
		compiled, err := compileExpression(arg, scope)
		if err != nil {
			return "", err
		}
		args = append(args, compiled)
	}
	return "new " + expr.Value + "(" + strings.Join(args, ", ") + ")", nil
}
