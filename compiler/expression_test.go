package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func carScope(t *testing.T, methodName string) *expressionScope {
	src := "object car:\n" +
		"  Integer @vin\n" +
		"  String label(Text suffix):\n" +
		"    concat(vin, suffix)\n"
	parser := &Parser{}
	objects, err := parser.Parse(strings.NewReader(src))
	assert.Nil(t, err)
	table, err := buildSymbolTable(objects)
	assert.Nil(t, err)
	return &expressionScope{table: table, objectName: "car", methodName: methodName}
}

func TestExpression_Literals(t *testing.T) {
	scope := carScope(t, "")
	testData := []struct {
		expr     *ExpressionAst
		expected string
	}{
		{expr: &ExpressionAst{ExprTP: StringLiteralExprTP, Value: "Mercedes-Benz"}, expected: `"Mercedes-Benz"`},
		{expr: &ExpressionAst{ExprTP: IntegerLiteralExprTP, Value: "42"}, expected: "42"},
		{expr: &ExpressionAst{ExprTP: BooleanLiteralExprTP, Value: "true"}, expected: "true"},
		{expr: &ExpressionAst{ExprTP: BooleanLiteralExprTP, Value: "false"}, expected: "false"},
	}
	for _, data := range testData {
		compiled, err := compileExpression(data.expr, scope)
		assert.Nil(t, err)
		assert.Equal(t, data.expected, compiled)
	}
}

func TestExpression_ReferenceResolution(t *testing.T) {
	testData := []struct {
		methodName string
		ref        string
		expected   string
	}{
		// Attributes resolve everywhere, also on the constructor path.
		{methodName: "", ref: "vin", expected: "this.vin"},
		{methodName: "label", ref: "vin", expected: "this.vin"},
		// Parameters only resolve inside their method.
		{methodName: "label", ref: "suffix", expected: "this.suffix"},
		{methodName: "", ref: "suffix", expected: "new suffix()"},
		// Unknown names pass through as zero-argument constructions.
		{methodName: "label", ref: "engine", expected: "new engine()"},
	}
	for _, data := range testData {
		scope := carScope(t, data.methodName)
		compiled, err := compileExpression(&ExpressionAst{ExprTP: ReferenceExprTP, Value: data.ref}, scope)
		assert.Nil(t, err)
		assert.Equal(t, data.expected, compiled, "ref %q in method %q", data.ref, data.methodName)
	}
}

func TestExpression_NestedCalls(t *testing.T) {
	scope := carScope(t, "label")
	expr := &ExpressionAst{
		ExprTP: CallExprTP,
		Value:  "if",
		Args: []*ExpressionAst{
			{ExprTP: CallExprTP, Value: "firstIsLess", Args: []*ExpressionAst{
				{ExprTP: ReferenceExprTP, Value: "vin"},
				{ExprTP: IntegerLiteralExprTP, Value: "2"},
			}},
			{ExprTP: IntegerLiteralExprTP, Value: "1"},
			{ExprTP: CallExprTP, Value: "plus", Args: []*ExpressionAst{
				{ExprTP: ReferenceExprTP, Value: "vin"},
				{ExprTP: CallExprTP, Value: "car", Args: []*ExpressionAst{
					{ExprTP: CallExprTP, Value: "minus", Args: []*ExpressionAst{
						{ExprTP: ReferenceExprTP, Value: "vin"},
						{ExprTP: IntegerLiteralExprTP, Value: "1"},
					}},
				}},
			}},
		},
	}
	compiled, err := compileExpression(expr, scope)
	assert.Nil(t, err)
	assert.Equal(t,
		"new if(new firstIsLess(this.vin, 2), 1, new plus(this.vin, new car(new minus(this.vin, 1))))",
		compiled)
}

func TestExpression_ZeroArgCall(t *testing.T) {
	scope := carScope(t, "")
	compiled, err := compileExpression(&ExpressionAst{ExprTP: CallExprTP, Value: "main"}, scope)
	assert.Nil(t, err)
	assert.Equal(t, "new main()", compiled)
}

func TestExpression_DefensiveErrors(t *testing.T) {
	scope := carScope(t, "")

	_, err := compileExpression(&ExpressionAst{ExprTP: CallExprTP, Value: ""}, scope)
	assert.NotNil(t, err)
	_, ok := err.(*ExpressionError)
	assert.True(t, ok)

	_, err = compileExpression(&ExpressionAst{ExprTP: IntegerLiteralExprTP, Value: "12x"}, scope)
	assert.NotNil(t, err)
	_, ok = err.(*ExpressionError)
	assert.True(t, ok)
}
