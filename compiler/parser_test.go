package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseUnit(t *testing.T, src string) []*ObjectAst {
	parser := &Parser{}
	objects, err := parser.Parse(strings.NewReader(src))
	assert.Nil(t, err)
	return objects
}

func parseError(t *testing.T, src string) *SyntaxError {
	parser := &Parser{}
	_, err := parser.Parse(strings.NewReader(src))
	assert.NotNil(t, err)
	syntaxErr, ok := err.(*SyntaxError)
	assert.True(t, ok, "expected *SyntaxError, got %T", err)
	return syntaxErr
}

func TestParser_CarDeclaration(t *testing.T) {
	src := "object car as Serializable:\n" +
		"  Integer @vin\n" +
		"  String name():\n" +
		"    \"Mercedes-Benz\"\n"
	objects := parseUnit(t, src)
	assert.Equal(t, 1, len(objects))

	car := objects[0]
	assert.Equal(t, "car", car.Name)
	assert.Equal(t, []string{"Serializable"}, car.Interfaces)
	assert.Equal(t, 2, len(car.Members))

	assert.Equal(t, AttributeMemberType, car.Members[0].MemberTP)
	vin := car.Members[0].Attribute
	assert.Equal(t, "Integer", vin.TypeName)
	assert.Equal(t, "vin", vin.Name)
	assert.True(t, vin.Decorated)
	assert.Nil(t, vin.Default)

	assert.Equal(t, MethodMemberType, car.Members[1].MemberTP)
	name := car.Members[1].Method
	assert.Equal(t, "String", name.ReturnType)
	assert.Equal(t, "name", name.Name)
	assert.Equal(t, 0, len(name.Params))
	assert.NotNil(t, name.Body)
	assert.Equal(t, StringLiteralExprTP, name.Body.ExprTP)
	assert.Equal(t, "Mercedes-Benz", name.Body.Value)
}

func TestParser_AbstractMethodsAndParams(t *testing.T) {
	src := "object Pixel:\n" +
		"  Pixel moveTo(Integer x, Integer y)\n" +
		"  Bytes picture()\n"
	objects := parseUnit(t, src)
	pixel := objects[0]
	assert.Equal(t, 0, len(pixel.Interfaces))
	assert.Equal(t, 2, len(pixel.Members))

	moveTo := pixel.Members[0].Method
	assert.Nil(t, moveTo.Body)
	assert.Equal(t, 2, len(moveTo.Params))
	assert.Equal(t, "Integer", moveTo.Params[0].TypeName)
	assert.Equal(t, "x", moveTo.Params[0].Name)
	assert.Equal(t, "y", moveTo.Params[1].Name)

	picture := pixel.Members[1].Method
	assert.Nil(t, picture.Body)
	assert.Equal(t, 0, len(picture.Params))
}

func TestParser_AttributeAndParamDefaults(t *testing.T) {
	src := "object counter:\n" +
		"  Int @n := 1\n" +
		"  Int add(Int step = 2):\n" +
		"    plus(n, step)\n"
	objects := parseUnit(t, src)
	counter := objects[0]

	n := counter.Members[0].Attribute
	assert.NotNil(t, n.Default)
	assert.Equal(t, IntegerLiteralExprTP, n.Default.ExprTP)
	assert.Equal(t, "1", n.Default.Value)

	add := counter.Members[1].Method
	assert.Equal(t, 1, len(add.Params))
	assert.NotNil(t, add.Params[0].Default)
	assert.Equal(t, "2", add.Params[0].Default.Value)
}

func TestParser_NestedCallBody(t *testing.T) {
	src := "object fibonacci as Int:\n" +
		"  Int @n := 1\n" +
		"  Int calc():\n" +
		"    if(firstIsLess(n, 2), 1, plus(n, fibonacci(minus(n, 1))))\n"
	objects := parseUnit(t, src)
	calc := objects[0].Members[1].Method
	body := calc.Body
	assert.Equal(t, CallExprTP, body.ExprTP)
	assert.Equal(t, "if", body.Value)
	assert.Equal(t, 3, len(body.Args))

	condition := body.Args[0]
	assert.Equal(t, CallExprTP, condition.ExprTP)
	assert.Equal(t, "firstIsLess", condition.Value)
	assert.Equal(t, ReferenceExprTP, condition.Args[0].ExprTP)
	assert.Equal(t, "n", condition.Args[0].Value)
	assert.Equal(t, IntegerLiteralExprTP, condition.Args[1].ExprTP)

	recurse := body.Args[2].Args[1]
	assert.Equal(t, "fibonacci", recurse.Value)
	assert.Equal(t, "minus", recurse.Args[0].Value)
}

func TestParser_MultipleInterfaces(t *testing.T) {
	src := "object zero as Money, Int:\n" +
		"  Int @amount\n" +
		"  Text @currency\n"
	objects := parseUnit(t, src)
	assert.Equal(t, []string{"Money", "Int"}, objects[0].Interfaces)
}

func TestParser_MultipleObjects(t *testing.T) {
	src := "object Number:\n" +
		"  Decimal decimal()\n" +
		"  Integral integral()\n" +
		"\n" +
		"object Text:\n" +
		"  Number length()\n" +
		"  Collection lines()\n"
	objects := parseUnit(t, src)
	assert.Equal(t, 2, len(objects))
	assert.Equal(t, "Number", objects[0].Name)
	assert.Equal(t, "Text", objects[1].Name)
	assert.Equal(t, 2, len(objects[0].Members))
	assert.Equal(t, 2, len(objects[1].Members))
}

func TestParser_ZeroArgCall(t *testing.T) {
	src := "object app:\n" +
		"  Int run():\n" +
		"    main()\n"
	objects := parseUnit(t, src)
	body := objects[0].Members[0].Method.Body
	assert.Equal(t, CallExprTP, body.ExprTP)
	assert.Equal(t, "main", body.Value)
	assert.Equal(t, 0, len(body.Args))
}

func TestParser_BrokenSyntax(t *testing.T) {
	testData := []struct {
		src  string
		line int
	}{
		{src: "this code is definitely wrong", line: 1},
		{src: "object :\n  Int @x\n", line: 1},
		{src: "object a:\n  @x\n", line: 2},
		{src: "object a:\n  Int x(\n", line: 2},
		{src: "object a:\n  Int x():\n    plus(1,\n", line: 3},
	}
	for _, data := range testData {
		syntaxErr := parseError(t, data.src)
		assert.Equal(t, data.line, syntaxErr.Line, "src: %q", data.src)
	}
}

func TestParser_UnexpectedEndOfInput(t *testing.T) {
	syntaxErr := parseError(t, "object a:\n")
	assert.Contains(t, syntaxErr.Error(), "unexpected end of input")
}

func TestParser_EmptyMemberBlock(t *testing.T) {
	// The header promises a member block but the next declaration starts
	// without one.
	syntaxErr := parseError(t, "object a:\nobject b:\n  Int @y\n")
	assert.Equal(t, 2, syntaxErr.Line)
}
