package compiler

// Per-object scopes. The classifier uses them for name uniqueness and the
// expression compiler uses them to resolve bare references to this.<name>.
// Attributes and methods share one namespace inside a declaration.

type SymbolTable struct {
	objects map[string]*objectScope
}

type objectScope struct {
	attributes map[string]*AttributeAst
	methods    map[string]*MethodAst
	// method name -> parameter name -> param
	params map[string]map[string]*ParamAst
}

// buildSymbolTable walks the declaration list and records every name. It
// fails on the first duplicate, in source order.
func buildSymbolTable(objects []*ObjectAst) (*SymbolTable, error) {
	table := &SymbolTable{objects: map[string]*objectScope{}}
	for _, objectAst := range objects {
		if _, ok := table.objects[objectAst.Name]; ok {
			return nil, &ClassificationError{Object: objectAst.Name, Rule: "declared more than once in this unit"}
		}
		scope, err := buildObjectScope(objectAst)
		if err != nil {
			return nil, err
		}
		table.objects[objectAst.Name] = scope
	}
	return table, nil
}

func buildObjectScope(objectAst *ObjectAst) (*objectScope, error) {
	scope := &objectScope{
		attributes: map[string]*AttributeAst{},
		methods:    map[string]*MethodAst{},
		params:     map[string]map[string]*ParamAst{},
	}
	for _, member := range objectAst.Members {
		switch member.MemberTP {
		case AttributeMemberType:
			attribute := member.Attribute
			if scope.taken(attribute.Name) {
				return nil, &ClassificationError{Object: objectAst.Name, Rule: "duplicate member name " + quoted(attribute.Name)}
			}
			scope.attributes[attribute.Name] = attribute
		case MethodMemberType:
			method := member.Method
			if scope.taken(method.Name) {
				return nil, &ClassificationError{Object: objectAst.Name, Rule: "duplicate member name " + quoted(method.Name)}
			}
			scope.methods[method.Name] = method
			methodParams := map[string]*ParamAst{}
			for _, param := range method.Params {
				if _, ok := methodParams[param.Name]; ok {
					return nil, &ClassificationError{
						Object: objectAst.Name,
						Rule:   "duplicate parameter name " + quoted(param.Name) + " in method " + quoted(method.Name),
					}
				}
				methodParams[param.Name] = param
			}
			scope.params[method.Name] = methodParams
		}
	}
	return scope, nil
}

func (scope *objectScope) taken(name string) bool {
	if _, ok := scope.attributes[name]; ok {
		return true
	}
	_, ok := scope.methods[name]
	return ok
}

// resolvesToThis reports whether name names an attribute of objectName or,
// when methodName is non-empty, a parameter of that method. Attributes double
// as the full constructor's parameters, so the constructor path is covered by
// the attribute check.
func (table *SymbolTable) resolvesToThis(objectName, methodName, name string) bool {
	scope, ok := table.objects[objectName]
	if !ok {
		return false
	}
	if _, ok := scope.attributes[name]; ok {
		return true
	}
	if methodName == "" {
		return false
	}
	_, ok = scope.params[methodName][name]
	return ok
}

func quoted(name string) string {
	return "\"" + name + "\""
}
