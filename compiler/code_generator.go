package compiler

import (
	"bytes"
	"strings"
)

// The emitter renders one Java compilation unit per declaration. Everything
// goes into an in-memory buffer, the Program façade only flushes buffers to
// sinks after the whole unit compiled.
//
// A class body has a fixed order: fields, default constructor, full
// constructor, methods. Member order within each group follows the source.

type codeGenerator struct {
	buf       bytes.Buffer
	table     *SymbolTable
	objectAst *ObjectAst
}

func generateCode(objectAst *ObjectAst, table *SymbolTable) ([]byte, error) {
	generator := &codeGenerator{table: table, objectAst: objectAst}
	var err error
	switch objectAst.Kind() {
	case InterfaceKind:
		generator.generateInterface()
	case ClassKind:
		err = generator.generateClass()
	default:
		err = &ClassificationError{Object: objectAst.Name, Rule: "declaration was not classified"}
	}
	if err != nil {
		return nil, err
	}
	return generator.buf.Bytes(), nil
}

func (generator *codeGenerator) generateInterface() {
	generator.writeLine(0, "public interface "+generator.objectAst.Name+" {")
	for _, method := range generator.objectAst.Methods() {
		generator.writeLine(1, methodSignature(method)+";")
	}
	generator.writeLine(0, "}")
}

func (generator *codeGenerator) generateClass() error {
	objectAst := generator.objectAst
	header := "public final class " + objectAst.Name
	if len(objectAst.Interfaces) > 0 {
		header += " implements " + strings.Join(objectAst.Interfaces, ", ")
	}
	generator.writeLine(0, header+" {")

	attributes := objectAst.Attributes()
	for _, attribute := range attributes {
		generator.writeLine(1, "private final "+attribute.TypeName+" "+attribute.Name+";")
	}

	err := generator.generateDefaultConstructor(attributes)
	if err != nil {
		return err
	}
	generator.generateFullConstructor(attributes)

	for _, method := range objectAst.Methods() {
		err = generator.generateMethod(method)
		if err != nil {
			return err
		}
	}

	generator.writeLine(0, "}")
	return nil
}

// generateDefaultConstructor emits a constructor taking the attributes
// without defaults and delegating to the full constructor with the default
// expressions substituted positionally. The classifier guarantees defaults
// are a trailing suffix, so the non-default attributes form a prefix.
func (generator *codeGenerator) generateDefaultConstructor(attributes []*AttributeAst) error {
	var params []string
	var args []string
	defaults := 0
	scope := &expressionScope{table: generator.table, objectName: generator.objectAst.Name}
	for _, attribute := range attributes {
		if attribute.Default == nil {
			params = append(params, "final "+attribute.TypeName+" "+attribute.Name)
			args = append(args, attribute.Name)
			continue
		}
		compiled, err := compileExpression(attribute.Default, scope)
		if err != nil {
			return err
		}
		args = append(args, compiled)
		defaults++
	}
	if defaults == 0 {
		return nil
	}
	generator.writeLine(1, "public "+generator.objectAst.Name+"("+strings.Join(params, ", ")+") {")
	generator.writeLine(2, "this("+strings.Join(args, ", ")+");")
	generator.writeLine(1, "}")
	return nil
}

// generateFullConstructor emits the constructor assigning every attribute
// from its correspondingly named parameter.
func (generator *codeGenerator) generateFullConstructor(attributes []*AttributeAst) {
	if len(attributes) == 0 {
		return
	}
	params := make([]string, 0, len(attributes))
	for _, attribute := range attributes {
		params = append(params, "final "+attribute.TypeName+" "+attribute.Name)
	}
	generator.writeLine(1, "public "+generator.objectAst.Name+"("+strings.Join(params, ", ")+") {")
	for _, attribute := range attributes {
		generator.writeLine(2, "this."+attribute.Name+" = "+attribute.Name+";")
	}
	generator.writeLine(1, "}")
}

func (generator *codeGenerator) generateMethod(method *MethodAst) error {
	scope := &expressionScope{
		table:      generator.table,
		objectName: generator.objectAst.Name,
		methodName: method.Name,
	}
	body, err := compileExpression(method.Body, scope)
	if err != nil {
		return err
	}
	generator.writeLine(1, "public "+methodSignature(method)+" {")
	generator.writeLine(2, "return "+body+";")
	generator.writeLine(1, "}")
	return generator.generateMethodOverload(method, scope)
}

// generateMethodOverload emits the delegating overload for a method whose
// trailing parameters carry defaults, mirroring the default constructor.
func (generator *codeGenerator) generateMethodOverload(method *MethodAst, scope *expressionScope) error {
	var params []string
	var args []string
	defaults := 0
	for _, param := range method.Params {
		if param.Default == nil {
			params = append(params, "final "+param.TypeName+" "+param.Name)
			args = append(args, param.Name)
			continue
		}
		compiled, err := compileExpression(param.Default, scope)
		if err != nil {
			return err
		}
		args = append(args, compiled)
		defaults++
	}
	if defaults == 0 {
		return nil
	}
	generator.writeLine(1, "public "+method.ReturnType+" "+method.Name+"("+strings.Join(params, ", ")+") {")
	generator.writeLine(2, "return this."+method.Name+"("+strings.Join(args, ", ")+");")
	generator.writeLine(1, "}")
	return nil
}

func methodSignature(method *MethodAst) string {
	params := make([]string, 0, len(method.Params))
	for _, param := range method.Params {
		params = append(params, "final "+param.TypeName+" "+param.Name)
	}
	return method.ReturnType + " " + method.Name + "(" + strings.Join(params, ", ") + ")"
}

func (generator *codeGenerator) writeLine(depth int, line string) {
	generator.buf.WriteString(strings.Repeat("  ", depth))
	generator.buf.WriteString(line)
	generator.buf.WriteString("\n")
}
