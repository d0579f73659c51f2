package compiler

import (
	"io"
	"os"
	"path/filepath"
)

// Program is the compilation façade: one source unit in, one Java
// compilation unit per declaration out. Compile runs the whole pipeline
// synchronously on the calling goroutine and holds no state across calls,
// so fresh Programs over the same text always produce identical output.

// SinkResolver maps a declaration name to the sink its generated code is
// written to. Each sink receives exactly one write sequence, and sinks that
// implement io.Closer are closed after it.
type SinkResolver func(name string) (io.Writer, error)

// JavaFileExtension is the suffix of generated files in the directory form.
const JavaFileExtension = ".java"

type Program struct {
	input    io.Reader
	resolver SinkResolver
	units    []UnitInfo
}

// UnitInfo describes one compiled declaration, available after a successful
// Compile for reporting.
type UnitInfo struct {
	Name    string
	Kind    Kind
	Members int
}

func NewProgram(input io.Reader, resolver SinkResolver) *Program {
	return &Program{input: input, resolver: resolver}
}

// NewDirectoryProgram resolves every declaration name to <dir>/<name>.java,
// creating the directory when needed.
func NewDirectoryProgram(input io.Reader, dir string) *Program {
	return NewProgram(input, func(name string) (io.Writer, error) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		return os.Create(filepath.Join(dir, name+JavaFileExtension))
	})
}

// Compile runs lexing, parsing, classification, expression compilation and
// emission in order. Every declaration is rendered to memory first and sinks
// are only written once the whole unit compiled, so a failing compile writes
// nothing. Any stage failure comes back as a *CompileError tagged with the
// stage and the source location when one is known.
func (program *Program) Compile() error {
	parser := &Parser{}
	objects, err := parser.Parse(program.input)
	if err != nil {
		return wrapCompileError(err)
	}

	table, err := buildSymbolTable(objects)
	if err != nil {
		return wrapCompileError(err)
	}
	if err := classifyObjects(objects); err != nil {
		return wrapCompileError(err)
	}

	type rendered struct {
		name string
		code []byte
	}
	outputs := make([]rendered, 0, len(objects))
	for _, objectAst := range objects {
		code, err := generateCode(objectAst, table)
		if err != nil {
			return wrapCompileError(err)
		}
		outputs = append(outputs, rendered{name: objectAst.Name, code: code})
	}

	for _, output := range outputs {
		w, err := program.resolver(output.name)
		if err != nil {
			return wrapCompileError(&EmitError{Name: output.name, Err: err})
		}
		if _, err := w.Write(output.code); err != nil {
			return wrapCompileError(&EmitError{Name: output.name, Err: err})
		}
		if closer, ok := w.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				return wrapCompileError(&EmitError{Name: output.name, Err: err})
			}
		}
	}

	program.units = program.units[:0]
	for _, objectAst := range objects {
		program.units = append(program.units, UnitInfo{
			Name:    objectAst.Name,
			Kind:    objectAst.Kind(),
			Members: len(objectAst.Members),
		})
	}
	return nil
}

// Units lists the declarations of the last successful Compile.
func (program *Program) Units() []UnitInfo {
	return program.units
}
