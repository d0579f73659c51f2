package compiler

import "eo_compiler/util"

// The classifier decides the kind of every declaration and validates its
// shape. Kind is derived, never written in the source: a declaration with no
// decorated attribute and no method body is an interface, anything else is a
// class. A declaration mixing an abstract member with a concrete one has no
// consistent reading and is rejected.

func classifyObjects(objects []*ObjectAst) error {
	for _, objectAst := range objects {
		if err := classifyObject(objectAst); err != nil {
			return err
		}
	}
	return nil
}

func classifyObject(objectAst *ObjectAst) error {
	hasAbstract, hasConcrete := false, false
	for _, member := range objectAst.Members {
		switch member.MemberTP {
		case AttributeMemberType:
			if member.Attribute.Decorated {
				hasConcrete = true
			}
		case MethodMemberType:
			if member.Method.Body != nil {
				hasConcrete = true
			} else {
				hasAbstract = true
			}
		}
	}
	if hasAbstract && hasConcrete {
		return &ClassificationError{Object: objectAst.Name, Rule: "mixes abstract and concrete members"}
	}
	if hasConcrete {
		objectAst.kind = ClassKind
	} else {
		objectAst.kind = InterfaceKind
	}

	if err := validateInterfaceNames(objectAst); err != nil {
		return err
	}
	if err := validateDefaults(objectAst); err != nil {
		return err
	}
	return nil
}

// Interface names in the as clause are opaque, no cross-unit resolution is
// attempted. They only have to be well-formed identifiers. The tokenizer
// already guarantees that, this is a cheap re-check on the tree.
func validateInterfaceNames(objectAst *ObjectAst) error {
	for _, name := range objectAst.Interfaces {
		if len(name) == 0 || !util.IsLetterOrUnderscore(name[0]) {
			return &ClassificationError{Object: objectAst.Name, Rule: "invalid interface name " + quoted(name)}
		}
	}
	return nil
}

// Defaults must form a trailing suffix of their list, both for attributes
// (which drive the generated default constructor) and for method parameters
// (which drive delegating overloads). A default followed by a non-default
// cannot be substituted positionally.
func validateDefaults(objectAst *ObjectAst) error {
	seenDefault := false
	for _, attribute := range objectAst.Attributes() {
		if attribute.Default != nil {
			seenDefault = true
			continue
		}
		if seenDefault {
			return &ClassificationError{
				Object: objectAst.Name,
				Rule:   "attribute " + quoted(attribute.Name) + " without a default follows one with a default",
			}
		}
	}
	for _, method := range objectAst.Methods() {
		seenDefault = false
		for _, param := range method.Params {
			if param.Default != nil {
				seenDefault = true
				continue
			}
			if seenDefault {
				return &ClassificationError{
					Object: objectAst.Name,
					Rule: "parameter " + quoted(param.Name) + " of method " + quoted(method.Name) +
						" without a default follows one with a default",
				}
			}
		}
	}
	return nil
}
