package compiler

import "fmt"

// Stage names the pipeline stage an error came from. Every error the
// compiler surfaces through Program.Compile is tagged with one of these.
type Stage int

const (
	StageLex Stage = iota
	StageParse
	StageClassify
	StageExpression
	StageEmit
)

var stageNames = map[Stage]string{
	StageLex:        "lex",
	StageParse:      "parse",
	StageClassify:   "classify",
	StageExpression: "expression",
	StageEmit:       "emit",
}

func (stage Stage) String() string {
	return stageNames[stage]
}

// LexError reports a malformed character, an unterminated string literal or
// broken indentation. Line and Column are 1-based.
type LexError struct {
	Line   int
	Column int
	Msg    string
}

func (err *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", err.Line, err.Column, err.Msg)
}

// SyntaxError reports a grammar violation. The parser fails on the first one
// it meets, no partial tree is handed downstream.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", err.Line, err.Column, err.Msg)
}

// ClassificationError reports a declaration whose shape is ambiguous or
// inconsistent, naming the object and the violated rule.
type ClassificationError struct {
	Object string
	Rule   string
}

func (err *ClassificationError) Error() string {
	return fmt.Sprintf("object %q: %s", err.Object, err.Rule)
}

// ExpressionError reports a malformed expression tree. The grammar cannot
// produce one, so this is a defensive check on parse artifacts.
type ExpressionError struct {
	Msg string
}

func (err *ExpressionError) Error() string {
	return fmt.Sprintf("expression error: %s", err.Msg)
}

// EmitError wraps an I/O failure from a sink while flushing a declaration.
type EmitError struct {
	Name string
	Err  error
}

func (err *EmitError) Error() string {
	return fmt.Sprintf("emit error for %q: %v", err.Name, err.Err)
}

func (err *EmitError) Unwrap() error {
	return err.Err
}

// CompileError is the single error kind Program.Compile returns. It keeps the
// originating stage's error and its source location when one is known
// (zero Line means no location applies).
type CompileError struct {
	Stage  Stage
	Line   int
	Column int
	Err    error
}

func (err *CompileError) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("compile error [%s] at line %d, column %d: %v", err.Stage, err.Line, err.Column, err.Err)
	}
	return fmt.Sprintf("compile error [%s]: %v", err.Stage, err.Err)
}

func (err *CompileError) Unwrap() error {
	return err.Err
}

// wrapCompileError tags a stage error with its stage. Untyped errors can only
// come out of reading the input stream, which happens inside the tokenizer.
func wrapCompileError(err error) *CompileError {
	switch e := err.(type) {
	case *CompileError:
		return e
	case *LexError:
		return &CompileError{Stage: StageLex, Line: e.Line, Column: e.Column, Err: e}
	case *SyntaxError:
		return &CompileError{Stage: StageParse, Line: e.Line, Column: e.Column, Err: e}
	case *ClassificationError:
		return &CompileError{Stage: StageClassify, Err: e}
	case *ExpressionError:
		return &CompileError{Stage: StageExpression, Err: e}
	case *EmitError:
		return &CompileError{Stage: StageEmit, Err: e}
	default:
		return &CompileError{Stage: StageLex, Err: e}
	}
}
