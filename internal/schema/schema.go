// Package schema is the adapter over an external GraphQL type system.
// It models the minimum shape the template engine needs: named types,
// their declared fields in declaration order, and type references that
// may be wrapped in Non-Null and List modifiers. Every assumption about
// the external schema lives behind this package; the rest of the module
// never inspects gqlparser or introspection payloads directly.
package schema

// Schema holds every named type of a GraphQL schema, keyed by name,
// plus the names of the root operation types.
type Schema struct {
	QueryType    string
	MutationType string
	Types        map[string]*Type
}

// GetQueryType returns the root query type (nil if the schema has none).
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (nil if the schema has none).
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// Type is a named GraphQL type (object, interface, union, scalar, enum, input).
type Type struct {
	Name          string
	Kind          TypeKind
	Description   string
	Fields        []*Field      // for OBJECT and INTERFACE, declaration order
	PossibleTypes []string      // for INTERFACE and UNION, declaration order
	EnumValues    []*EnumValue  // for ENUM
	InputFields   []*InputValue // for INPUT_OBJECT
}

// IsLeaf reports whether the type has no selectable subfields.
func (t *Type) IsLeaf() bool { return t.Kind == TypeKindScalar || t.Kind == TypeKindEnum }

// IsAbstract reports whether the type resolves to concrete member types.
func (t *Type) IsAbstract() bool { return t.Kind == TypeKindUnion || t.Kind == TypeKindInterface }

// IsInputObject reports whether the type declares nested input fields.
func (t *Type) IsInputObject() bool { return t.Kind == TypeKindInputObject }

// Field returns the declared field with the given name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Field represents a field on an object or interface, including the
// argument definitions the template engine expands into an input tree
// and the response type it expands into a fragment tree.
type Field struct {
	Name        string
	Description string
	Type        *TypeRef
	Arguments   []*InputValue // declaration order
}

// TypeKind represents the kind of GraphQL type.
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// TypeRef is a reference to a type, possibly wrapped in Non-Null and
// List modifiers. Wrappers never carry field structure; unwrapping any
// chain of them reaches the named type.
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // for LIST and NON_NULL
	Named  string   // for NAMED
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

// NamedTypeName returns the innermost named type of the reference,
// unwrapping any chain of List and Non-Null modifiers.
func (t *TypeRef) NamedTypeName() string {
	for cur := t; cur != nil; cur = cur.OfType {
		if cur.Named != "" {
			return cur.Named
		}
	}
	return ""
}

// String renders the reference in SDL notation, e.g. "[Episode!]!".
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeRefKindNonNull:
		return t.OfType.String() + "!"
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	default:
		return t.Named
	}
}

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

type EnumValue struct {
	Name        string
	Description string
}

// InputValue represents an operation argument or an input object field.
type InputValue struct {
	Name        string
	Description string
	Type        *TypeRef
}
