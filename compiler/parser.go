package compiler

import (
	"fmt"
	"io"
)

// Recursive descent parser over the token slice. The grammar:
//
// program      := objectDecl*
// objectDecl   := "object" IDENT ("as" identList)? ":" NEWLINE INDENT member+ DEDENT
// identList    := IDENT ("," IDENT)*
// member       := attribute | method
// attribute    := TYPE "@" IDENT (":=" expr)? NEWLINE
// method       := TYPE IDENT "(" paramList? ")" (":" NEWLINE INDENT expr NEWLINE DEDENT)?
// paramList    := param ("," param)*
// param        := TYPE IDENT ("=" expr)?
// expr         := IDENT "(" (expr ("," expr)*)? ")" | IDENT | literal
//
// The parser fails on the first syntax error it meets and hands no partial
// tree downstream.

type Parser struct {
	currentTokenPos int
	currentTokens   []*Token
}

// Parse tokenizes rd and parses the whole unit into the ordered declaration
// list. Declaration and member order follow the source.
func (parser *Parser) Parse(rd io.Reader) ([]*ObjectAst, error) {
	tokenizer := &Tokenizer{}
	tokens, err := tokenizer.Tokenize(rd)
	if err != nil {
		return nil, err
	}
	parser.currentTokens, parser.currentTokenPos = tokens, 0
	var objects []*ObjectAst
	for parser.hasRemainTokens() {
		objectAst, err := parser.parseObjectDeclaration()
		if err != nil {
			return nil, err
		}
		objects = append(objects, objectAst)
	}
	return objects, nil
}

func (parser *Parser) reset() {
	parser.currentTokenPos, parser.currentTokens = 0, nil
}

// object Identifier as I1, I2:
//   members
func (parser *Parser) parseObjectDeclaration() (*ObjectAst, error) {
	objectToken, match := parser.expectToken(ObjectTP, true)
	if !match {
		return nil, parser.makeError("expected \"object\"")
	}

	nameToken, match := parser.expectToken(IdentifierTP, true)
	if !match {
		return nil, parser.makeError("expected object name")
	}

	interfaces, err := parser.parseInterfaceList()
	if err != nil {
		return nil, err
	}

	_, match = parser.expectToken(ColonTP, true)
	if !match {
		return nil, parser.makeError("expected \":\" after object header")
	}
	_, match = parser.expectToken(NewLineTP, true)
	if !match {
		return nil, parser.makeError("expected end of line after object header")
	}

	members, err := parser.parseMemberBlock()
	if err != nil {
		return nil, err
	}

	return &ObjectAst{
		Name:       nameToken.content,
		Interfaces: interfaces,
		Members:    members,
		line:       objectToken.line,
	}, nil
}

// as I1, I2 — optional, order is preserved into the implements clause.
func (parser *Parser) parseInterfaceList() (interfaces []string, err error) {
	_, match := parser.expectToken(AsTP, false)
	if !match {
		return nil, nil
	}
	parser.stepForward()
	for {
		nameToken, match := parser.expectToken(IdentifierTP, true)
		if !match {
			return nil, parser.makeError("expected interface name after \"as\"")
		}
		interfaces = append(interfaces, nameToken.content)
		_, match = parser.expectToken(CommaTP, false)
		if !match {
			return interfaces, nil
		}
		parser.stepForward()
	}
}

// Members live one indentation level below the object header. At least one
// member is required.
func (parser *Parser) parseMemberBlock() (members []*MemberAst, err error) {
	_, match := parser.expectToken(IndentTP, true)
	if !match {
		return nil, parser.makeError("expected an indented member block")
	}
	for {
		token, err := parser.getCurrentToken()
		if err != nil {
			return nil, err
		}
		if token.tp == DedentTP {
			parser.stepForward()
			break
		}
		member, err := parser.parseMember()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if len(members) == 0 {
		return nil, parser.makeError("object must declare at least one member")
	}
	return
}

// A member starts with its type name. What follows decides the shape:
// TYPE @name is an attribute, TYPE name( opens a method.
func (parser *Parser) parseMember() (*MemberAst, error) {
	typeToken, match := parser.expectToken(IdentifierTP, true)
	if !match {
		return nil, parser.makeError("expected member type")
	}
	token, err := parser.getCurrentToken()
	if err != nil {
		return nil, err
	}
	switch token.tp {
	case AtTP:
		attribute, err := parser.parseAttribute(typeToken)
		if err != nil {
			return nil, err
		}
		return &MemberAst{MemberTP: AttributeMemberType, Attribute: attribute}, nil
	case IdentifierTP:
		method, err := parser.parseMethod(typeToken)
		if err != nil {
			return nil, err
		}
		return &MemberAst{MemberTP: MethodMemberType, Method: method}, nil
	default:
		return nil, parser.makeError("expected \"@\" or a method name after member type")
	}
}

// Integer @vin := 42
func (parser *Parser) parseAttribute(typeToken *Token) (*AttributeAst, error) {
	atToken, match := parser.expectToken(AtTP, true)
	if !match {
		return nil, parser.makeError("expected \"@\"")
	}
	nameToken, match := parser.expectToken(IdentifierTP, true)
	if !match {
		return nil, parser.makeError("expected attribute name after \"@\"")
	}
	attribute := &AttributeAst{
		TypeName:  typeToken.content,
		Name:      nameToken.content,
		Decorated: true,
		line:      atToken.line,
	}
	_, match = parser.expectToken(AssignTP, false)
	if match {
		parser.stepForward()
		value, err := parser.parseExpression()
		if err != nil {
			return nil, err
		}
		attribute.Default = value
	}
	_, match = parser.expectToken(NewLineTP, true)
	if !match {
		return nil, parser.makeError("expected end of line after attribute")
	}
	return attribute, nil
}

// String name(Integer x, Integer y):
//   body
// A method without the trailing colon has no body and is abstract.
func (parser *Parser) parseMethod(typeToken *Token) (*MethodAst, error) {
	nameToken, match := parser.expectToken(IdentifierTP, true)
	if !match {
		return nil, parser.makeError("expected method name")
	}
	_, match = parser.expectToken(LeftParenTP, true)
	if !match {
		return nil, parser.makeError("expected \"(\" after method name")
	}
	params, err := parser.parseParamList()
	if err != nil {
		return nil, err
	}
	_, match = parser.expectToken(RightParenTP, true)
	if !match {
		return nil, parser.makeError("expected \")\" after parameter list")
	}
	method := &MethodAst{
		ReturnType: typeToken.content,
		Name:       nameToken.content,
		Params:     params,
		line:       nameToken.line,
	}
	_, match = parser.expectToken(ColonTP, false)
	if !match {
		_, match = parser.expectToken(NewLineTP, true)
		if !match {
			return nil, parser.makeError("expected end of line after method signature")
		}
		return method, nil
	}
	parser.stepForward()
	body, err := parser.parseMethodBody()
	if err != nil {
		return nil, err
	}
	method.Body = body
	return method, nil
}

// The body is a single expression one level deeper than the signature.
func (parser *Parser) parseMethodBody() (*ExpressionAst, error) {
	_, match := parser.expectToken(NewLineTP, true)
	if !match {
		return nil, parser.makeError("expected end of line after \":\"")
	}
	_, match = parser.expectToken(IndentTP, true)
	if !match {
		return nil, parser.makeError("expected an indented method body")
	}
	body, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	_, match = parser.expectToken(NewLineTP, true)
	if !match {
		return nil, parser.makeError("expected end of line after method body")
	}
	_, match = parser.expectToken(DedentTP, true)
	if !match {
		return nil, parser.makeError("method body must be a single expression")
	}
	return body, nil
}

func (parser *Parser) parseParamList() (params []*ParamAst, err error) {
	_, match := parser.expectToken(RightParenTP, false)
	if match {
		return nil, nil
	}
	for {
		param, err := parser.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		_, match := parser.expectToken(CommaTP, false)
		if !match {
			return params, nil
		}
		parser.stepForward()
	}
}

// Integer x = 10
func (parser *Parser) parseParam() (*ParamAst, error) {
	typeToken, match := parser.expectToken(IdentifierTP, true)
	if !match {
		return nil, parser.makeError("expected parameter type")
	}
	nameToken, match := parser.expectToken(IdentifierTP, true)
	if !match {
		return nil, parser.makeError("expected parameter name")
	}
	param := &ParamAst{TypeName: typeToken.content, Name: nameToken.content}
	_, match = parser.expectToken(EqualTP, false)
	if match {
		parser.stepForward()
		value, err := parser.parseExpression()
		if err != nil {
			return nil, err
		}
		param.Default = value
	}
	return param, nil
}

// parseExpression parses one expression node: a literal, a bare reference,
// or a call with a parenthesized argument list. Calls nest arbitrarily.
func (parser *Parser) parseExpression() (*ExpressionAst, error) {
	token, err := parser.getCurrentToken()
	if err != nil {
		return nil, err
	}
	switch token.tp {
	case StringTP:
		parser.stepForward()
		return &ExpressionAst{ExprTP: StringLiteralExprTP, Value: token.content, line: token.line, column: token.Column()}, nil
	case IntegerTP:
		parser.stepForward()
		return &ExpressionAst{ExprTP: IntegerLiteralExprTP, Value: token.content, line: token.line, column: token.Column()}, nil
	case TrueTP, FalseTP:
		parser.stepForward()
		return &ExpressionAst{ExprTP: BooleanLiteralExprTP, Value: token.content, line: token.line, column: token.Column()}, nil
	case IdentifierTP:
		parser.stepForward()
		expr := &ExpressionAst{ExprTP: ReferenceExprTP, Value: token.content, line: token.line, column: token.Column()}
		_, match := parser.expectToken(LeftParenTP, false)
		if !match {
			return expr, nil
		}
		parser.stepForward()
		expr.ExprTP = CallExprTP
		args, err := parser.parseCallArgs()
		if err != nil {
			return nil, err
		}
		expr.Args = args
		return expr, nil
	default:
		return nil, parser.makeError("expected an expression")
	}
}

func (parser *Parser) parseCallArgs() (args []*ExpressionAst, err error) {
	_, match := parser.expectToken(RightParenTP, false)
	if match {
		parser.stepForward()
		return nil, nil
	}
	for {
		arg, err := parser.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		token, err := parser.getCurrentToken()
		if err != nil {
			return nil, err
		}
		switch token.tp {
		case CommaTP:
			parser.stepForward()
		case RightParenTP:
			parser.stepForward()
			return args, nil
		default:
			return nil, parser.makeError("expected \",\" or \")\" in argument list")
		}
	}
}

func (parser *Parser) getCurrentToken() (*Token, error) {
	if !parser.hasRemainTokens() {
		return nil, parser.makeError("unexpected end of input")
	}
	return parser.currentTokens[parser.currentTokenPos], nil
}

// expectToken checks the current token type and optionally consumes it.
func (parser *Parser) expectToken(tp TokenType, stepForward bool) (*Token, bool) {
	if !parser.hasRemainTokens() {
		return nil, false
	}
	token := parser.currentTokens[parser.currentTokenPos]
	if token.tp != tp {
		return nil, false
	}
	if stepForward {
		parser.stepForward()
	}
	return token, true
}

func (parser *Parser) stepForward() {
	parser.currentTokenPos++
}

func (parser *Parser) hasRemainTokens() bool {
	return parser.currentTokenPos < len(parser.currentTokens)
}

func (parser *Parser) makeError(msg string) error {
	if !parser.hasRemainTokens() {
		line := 0
		if len(parser.currentTokens) > 0 {
			line = parser.currentTokens[len(parser.currentTokens)-1].line
		}
		return &SyntaxError{Line: line, Column: 1, Msg: msg + ", unexpected end of input"}
	}
	token := parser.currentTokens[parser.currentTokenPos]
	return &SyntaxError{Line: token.line, Column: token.Column(), Msg: fmt.Sprintf("%s, near %s", msg, describeToken(token))}
}

func describeToken(token *Token) string {
	switch token.tp {
	case NewLineTP:
		return "end of line"
	case IndentTP:
		return "indent"
	case DedentTP:
		return "end of block"
	default:
		return fmt.Sprintf("%q", token.content)
	}
}
