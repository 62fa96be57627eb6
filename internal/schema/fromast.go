package schema

import (
	"strings"

	language "github.com/autographql/autograph/internal/language"
)

// FromAST converts a loaded gqlparser schema into the adapter model,
// preserving the declaration order of fields, arguments, input fields,
// enum values, and union members. Introspection meta types (names with
// a "__" prefix) are dropped.
func FromAST(src *language.Schema) (*Schema, error) {
	if src == nil {
		return nil, Errorf("nil schema")
	}
	s := &Schema{Types: make(map[string]*Type, len(src.Types))}
	if src.Query != nil {
		s.QueryType = src.Query.Name
	}
	if src.Mutation != nil {
		s.MutationType = src.Mutation.Name
	}
	for name, def := range src.Types {
		if strings.HasPrefix(name, "__") {
			continue
		}
		t, err := convertDefinition(src, def)
		if err != nil {
			return nil, err
		}
		s.Types[name] = t
	}
	return s, nil
}

func convertDefinition(src *language.Schema, def *language.Definition) (*Type, error) {
	t := &Type{Name: def.Name, Description: def.Description}
	switch def.Kind {
	case language.Scalar:
		t.Kind = TypeKindScalar
	case language.Enum:
		t.Kind = TypeKindEnum
		for _, ev := range def.EnumValues {
			t.EnumValues = append(t.EnumValues, &EnumValue{Name: ev.Name, Description: ev.Description})
		}
	case language.InputObject:
		t.Kind = TypeKindInputObject
		for _, f := range def.Fields {
			iv, err := convertInputValue(f.Name, f.Description, f.Type)
			if err != nil {
				return nil, err
			}
			t.InputFields = append(t.InputFields, iv)
		}
	case language.Object, language.Interface:
		t.Kind = TypeKindObject
		if def.Kind == language.Interface {
			t.Kind = TypeKindInterface
			for _, impl := range src.PossibleTypes[def.Name] {
				t.PossibleTypes = append(t.PossibleTypes, impl.Name)
			}
		}
		for _, f := range def.Fields {
			if strings.HasPrefix(f.Name, "__") {
				continue
			}
			field, err := convertField(f)
			if err != nil {
				return nil, err
			}
			t.Fields = append(t.Fields, field)
		}
	case language.Union:
		t.Kind = TypeKindUnion
		t.PossibleTypes = append(t.PossibleTypes, def.Types...)
	default:
		return nil, Errorf("type %q has unsupported kind %q", def.Name, def.Kind)
	}
	return t, nil
}

func convertField(f *language.FieldDefinition) (*Field, error) {
	if f.Type == nil {
		return nil, Errorf("field %q has no type", f.Name)
	}
	field := &Field{Name: f.Name, Description: f.Description, Type: convertTypeRef(f.Type)}
	for _, arg := range f.Arguments {
		iv, err := convertInputValue(arg.Name, arg.Description, arg.Type)
		if err != nil {
			return nil, err
		}
		field.Arguments = append(field.Arguments, iv)
	}
	return field, nil
}

func convertInputValue(name, description string, t *language.Type) (*InputValue, error) {
	if t == nil {
		return nil, Errorf("input value %q has no type", name)
	}
	return &InputValue{Name: name, Description: description, Type: convertTypeRef(t)}, nil
}

func convertTypeRef(t *language.Type) *TypeRef {
	var inner *TypeRef
	if t.NamedType != "" {
		inner = NamedType(t.NamedType)
	} else {
		inner = ListType(convertTypeRef(t.Elem))
	}
	if t.NonNull {
		return NonNullType(inner)
	}
	return inner
}
