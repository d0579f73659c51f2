package compiler

// In this file, we defined the ast of EO programs. An EO source unit is a
// sequence of top level object declarations, each holding attributes and
// methods scoped by indentation. Member order is preserved from source all
// the way into generated code.

type ObjectAst struct {
	Name       string
	Interfaces []string
	Members    []*MemberAst
	// Annotated in place by the classifier, UnknownKind until then.
	kind Kind
	line int
}

// Kind is the derived interface-vs-class classification of a declaration.
// It is not written in the source, the classifier decides it from shape.
type Kind int

const (
	UnknownKind Kind = iota
	InterfaceKind
	ClassKind
)

func (kind Kind) String() string {
	switch kind {
	case InterfaceKind:
		return "interface"
	case ClassKind:
		return "class"
	default:
		return "unknown"
	}
}

func (objectAst *ObjectAst) Kind() Kind {
	return objectAst.kind
}

// Attributes returns the decorated attribute members in source order.
func (objectAst *ObjectAst) Attributes() (attributes []*AttributeAst) {
	for _, member := range objectAst.Members {
		if member.MemberTP == AttributeMemberType {
			attributes = append(attributes, member.Attribute)
		}
	}
	return
}

// Methods returns the method members in source order.
func (objectAst *ObjectAst) Methods() (methods []*MethodAst) {
	for _, member := range objectAst.Members {
		if member.MemberTP == MethodMemberType {
			methods = append(methods, member.Method)
		}
	}
	return
}

type MemberAst struct {
	MemberTP  MemberType
	Attribute *AttributeAst
	Method    *MethodAst
}

type MemberType int

const (
	AttributeMemberType MemberType = iota
	MethodMemberType
)

type AttributeAst struct {
	TypeName string
	Name     string
	// The @ mark in source. Every attribute the grammar accepts carries it,
	// the flag stays on the node so the emitter never guesses.
	Decorated bool
	Default   *ExpressionAst
	line      int
}

type MethodAst struct {
	ReturnType string
	Name       string
	Params     []*ParamAst
	// nil body means the method is abstract.
	Body *ExpressionAst
	line int
}

type ParamAst struct {
	TypeName string
	Name     string
	Default  *ExpressionAst
}

// ExpressionAst is one node of a method body or default value tree. For
// literals Value holds the literal text, for references and calls it holds
// the name. Args is only used by calls.
type ExpressionAst struct {
	ExprTP ExpressionType
	Value  string
	Args   []*ExpressionAst
	line   int
	column int
}

type ExpressionType int

const (
	StringLiteralExprTP ExpressionType = iota
	IntegerLiteralExprTP
	BooleanLiteralExprTP
	ReferenceExprTP
	CallExprTP
)
