package compiler

import (
	"bufio"
	"io"

	"eo_compiler/util"
)

// A Tokenizer for EO source text.

// EO has those elements:
// * KeyWord: object, as, true, false.
// * Symbol: :, :=, =, ,, (, ), @.
// * Constant: integer, string ("xxx").
// * Identifier: letters, digits, underscore, not starting with a digit.
// There are no braces in the input. Structure comes from indentation, so the
// tokenizer also emits synthetic INDENT/DEDENT/NEWLINE tokens computed from
// an indentation stack: push on a wider line, pop with a DEDENT on a
// narrower one, and fail on a width that matches no open level.

type TokenType int

const (
	ObjectTP     TokenType = iota // object
	AsTP                          // as
	TrueTP                        // true
	FalseTP                       // false
	ColonTP                       // :
	AssignTP                      // :=
	EqualTP                       // =
	CommaTP                       // ,
	LeftParenTP                   // (
	RightParenTP                  // )
	AtTP                          // @
	IdentifierTP                  // car
	IntegerTP                     // 1010
	StringTP                      // "xxx"
	NewLineTP                     // end of a non-blank line
	IndentTP                      // block opened
	DedentTP                      // block closed
)

// keyWordTokenTPMap is the mapping from keyWord to the corresponding TokenTP.
var keyWordTokenTPMap = map[string]TokenType{
	"object": ObjectTP,
	"as":     AsTP,
	"true":   TrueTP,
	"false":  FalseTP,
}

// simpleSymbolTokenTPMap is the mapping from single character symbol to the
// corresponding TokenTP. : is not here because it can open :=.
var simpleSymbolTokenTPMap = map[string]TokenType{
	"=": EqualTP,
	",": CommaTP,
	"(": LeftParenTP,
	")": RightParenTP,
	"@": AtTP,
}

type Token struct {
	content  string
	line     int
	startPos int
	endPos   int
	tp       TokenType
}

// Column is the 1-based column of the token's first character.
func (token *Token) Column() int {
	return token.startPos + 1
}

type Tokenizer struct {
	currentPos  int
	currentLine int
	indentStack []int
	tokens      []*Token
}

// Tokenize consumes the whole source stream and returns the token slice.
// The sequence is finite and computed in one pass, a second call needs a
// Reset first.
func (tokenizer *Tokenizer) Tokenize(rd io.Reader) ([]*Token, error) {
	bfReader := bufio.NewReader(rd)
	tokenizer.currentLine = 0
	tokenizer.indentStack = []int{0}
	for {
		line, err := bfReader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		tokenizer.currentLine++
		tokenizer.currentPos = 0
		if len(line) > 0 {
			lexErr := tokenizer.tokenizeLine(trimLineEnding(line))
			if lexErr != nil {
				return nil, lexErr
			}
		}
		if err == io.EOF {
			break
		}
	}
	tokenizer.closeOpenBlocks()
	return tokenizer.tokens, nil
}

func trimLineEnding(line []byte) []byte {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

func (tokenizer *Tokenizer) tokenizeLine(line []byte) error {
	width, err := tokenizer.measureIndentation(line)
	if err != nil {
		return err
	}
	// Blank lines carry no tokens, not even a NEWLINE, and never touch the
	// indentation stack.
	if width >= len(line) {
		return nil
	}
	err = tokenizer.adjustIndentation(width)
	if err != nil {
		return err
	}
	tokenizer.currentPos = width
	for {
		token, err := tokenizer.getNextToken(line)
		if err != nil {
			return err
		}
		if token == nil {
			break
		}
		tokenizer.tokens = append(tokenizer.tokens, token)
	}
	tokenizer.appendSynthetic(NewLineTP, len(line))
	return nil
}

// measureIndentation counts the leading spaces of line. A tab anywhere in the
// leading whitespace is an error, indentation is measured in spaces only.
func (tokenizer *Tokenizer) measureIndentation(line []byte) (int, error) {
	width := 0
	for width < len(line) {
		if line[width] == ' ' {
			width++
			continue
		}
		if line[width] == '\t' {
			tokenizer.currentPos = width
			return 0, tokenizer.makeError("tab in indentation, use spaces")
		}
		break
	}
	return width, nil
}

// adjustIndentation compares width against the indentation stack and emits
// the synthetic INDENT/DEDENT tokens. A narrower width must land exactly on
// an open level, otherwise the dedent is dangling.
func (tokenizer *Tokenizer) adjustIndentation(width int) error {
	top := tokenizer.indentStack[len(tokenizer.indentStack)-1]
	if width > top {
		tokenizer.indentStack = append(tokenizer.indentStack, width)
		tokenizer.appendSynthetic(IndentTP, width)
		return nil
	}
	for width < top {
		tokenizer.indentStack = tokenizer.indentStack[:len(tokenizer.indentStack)-1]
		tokenizer.appendSynthetic(DedentTP, width)
		top = tokenizer.indentStack[len(tokenizer.indentStack)-1]
	}
	if width != top {
		tokenizer.currentPos = width
		return tokenizer.makeError("dedent does not match any open block")
	}
	return nil
}

// closeOpenBlocks emits one DEDENT per block still open at end of input.
func (tokenizer *Tokenizer) closeOpenBlocks() {
	for len(tokenizer.indentStack) > 1 {
		tokenizer.indentStack = tokenizer.indentStack[:len(tokenizer.indentStack)-1]
		tokenizer.appendSynthetic(DedentTP, 0)
	}
}

func (tokenizer *Tokenizer) appendSynthetic(tp TokenType, pos int) {
	tokenizer.tokens = append(tokenizer.tokens, &Token{
		line:     tokenizer.currentLine,
		startPos: pos,
		endPos:   pos,
		tp:       tp,
	})
}

// getNextToken returns the next token from line, nil when the line is done.
func (tokenizer *Tokenizer) getNextToken(line []byte) (*Token, error) {
	tokenizer.trimSpace(line)
	if tokenizer.currentPos >= len(line) {
		return nil, nil
	}
	switch b := line[tokenizer.currentPos]; {
	case b == ':':
		return tokenizer.tokenColonOrAssign(line), nil
	case b == '=' || b == ',' || b == '(' || b == ')' || b == '@':
		return tokenizer.tokenSimpleSymbol(line), nil
	case b == '"':
		return tokenizer.tokenString(line)
	case util.IsNumber(b):
		return tokenizer.tokenNumber(line), nil
	case util.IsLetterOrUnderscore(b):
		return tokenizer.tokenKeywordOrIdentifier(line), nil
	default:
		return nil, tokenizer.makeError("unrecognized character " + string(b))
	}
}

// trimSpace steps forward through line and skips all continuous space.
func (tokenizer *Tokenizer) trimSpace(line []byte) {
	for tokenizer.currentPos < len(line) && (line[tokenizer.currentPos] == ' ' || line[tokenizer.currentPos] == '\t') {
		tokenizer.currentPos++
	}
}

func (tokenizer *Tokenizer) tokenColonOrAssign(line []byte) *Token {
	startPos := tokenizer.currentPos
	if tokenizer.currentPos+1 < len(line) && line[tokenizer.currentPos+1] == '=' {
		tokenizer.currentPos += 2
		return &Token{content: ":=", line: tokenizer.currentLine, startPos: startPos, endPos: tokenizer.currentPos, tp: AssignTP}
	}
	tokenizer.currentPos++
	return &Token{content: ":", line: tokenizer.currentLine, startPos: startPos, endPos: tokenizer.currentPos, tp: ColonTP}
}

func (tokenizer *Tokenizer) tokenSimpleSymbol(line []byte) *Token {
	symbol := string(line[tokenizer.currentPos])
	token := &Token{
		content:  symbol,
		line:     tokenizer.currentLine,
		tp:       simpleSymbolTokenTPMap[symbol],
		startPos: tokenizer.currentPos,
		endPos:   tokenizer.currentPos + 1,
	}
	tokenizer.currentPos++
	return token
}

// tokenString looks forward through line to find a closing quote. The token
// content carries the characters between the quotes.
func (tokenizer *Tokenizer) tokenString(line []byte) (*Token, error) {
	startPos := tokenizer.currentPos
	tokenizer.currentPos++
	for tokenizer.currentPos < len(line) {
		if line[tokenizer.currentPos] == '"' {
			tokenizer.currentPos++
			return &Token{
				content:  string(line[startPos+1 : tokenizer.currentPos-1]),
				line:     tokenizer.currentLine,
				startPos: startPos,
				endPos:   tokenizer.currentPos,
				tp:       StringTP,
			}, nil
		}
		tokenizer.currentPos++
	}
	tokenizer.currentPos = startPos
	return nil, tokenizer.makeError("unterminated string literal")
}

func (tokenizer *Tokenizer) tokenNumber(line []byte) *Token {
	startPos := tokenizer.currentPos
	for tokenizer.currentPos < len(line) && util.IsNumber(line[tokenizer.currentPos]) {
		tokenizer.currentPos++
	}
	return &Token{
		content:  string(line[startPos:tokenizer.currentPos]),
		line:     tokenizer.currentLine,
		tp:       IntegerTP,
		startPos: startPos,
		endPos:   tokenizer.currentPos,
	}
}

func (tokenizer *Tokenizer) tokenKeywordOrIdentifier(line []byte) *Token {
	startPos := tokenizer.currentPos
	for tokenizer.currentPos < len(line) && util.IsLetterOrUnderscoreOrNumber(line[tokenizer.currentPos]) {
		tokenizer.currentPos++
	}
	content := string(line[startPos:tokenizer.currentPos])
	tp, isKeyWord := keyWordTokenTPMap[content]
	if !isKeyWord {
		tp = IdentifierTP
	}
	return &Token{
		content:  content,
		line:     tokenizer.currentLine,
		startPos: startPos,
		endPos:   tokenizer.currentPos,
		tp:       tp,
	}
}

func (tokenizer *Tokenizer) makeError(msg string) error {
	return &LexError{Line: tokenizer.currentLine, Column: tokenizer.currentPos + 1, Msg: msg}
}

func (tokenizer *Tokenizer) Reset() {
	tokenizer.currentPos, tokenizer.currentLine = 0, 0
	tokenizer.indentStack, tokenizer.tokens = nil, nil
}
