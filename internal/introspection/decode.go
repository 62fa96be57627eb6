package introspection

import (
	"encoding/json"

	schema "github.com/autographql/autograph/internal/schema"
)

// Response mirrors the `__schema` shape of an introspection result.
type Response struct {
	Schema struct {
		QueryType    *namedRef  `json:"queryType"`
		MutationType *namedRef  `json:"mutationType"`
		Types        []fullType `json:"types"`
	} `json:"__schema"`
}

type namedRef struct {
	Name string `json:"name"`
}

type fullType struct {
	Kind          string       `json:"kind"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Fields        []field      `json:"fields"`
	InputFields   []inputValue `json:"inputFields"`
	EnumValues    []enumValue  `json:"enumValues"`
	PossibleTypes []typeRef    `json:"possibleTypes"`
}

type field struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Args        []inputValue `json:"args"`
	Type        *typeRef     `json:"type"`
}

type inputValue struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        *typeRef `json:"type"`
}

type enumValue struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type typeRef struct {
	Kind   string   `json:"kind"`
	Name   *string  `json:"name"`
	OfType *typeRef `json:"ofType"`
}

// Decode converts the data payload of an introspection execution into
// the adapter schema model, preserving the server's enumeration order.
func Decode(data any) (*schema.Schema, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, schema.Errorf("re-encode introspection data: %v", err)
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, schema.Errorf("decode introspection data: %v", err)
	}

	s := &schema.Schema{Types: make(map[string]*schema.Type, len(resp.Schema.Types))}
	if resp.Schema.QueryType != nil {
		s.QueryType = resp.Schema.QueryType.Name
	}
	if resp.Schema.MutationType != nil {
		s.MutationType = resp.Schema.MutationType.Name
	}

	for i := range resp.Schema.Types {
		ft := &resp.Schema.Types[i]
		if ft.Name == "" || len(ft.Name) >= 2 && ft.Name[:2] == "__" {
			continue
		}
		t, err := decodeType(ft)
		if err != nil {
			return nil, err
		}
		s.Types[t.Name] = t
	}
	return s, nil
}

func decodeType(ft *fullType) (*schema.Type, error) {
	t := &schema.Type{
		Name:        ft.Name,
		Kind:        schema.TypeKind(ft.Kind),
		Description: ft.Description,
	}
	switch t.Kind {
	case schema.TypeKindScalar:
	case schema.TypeKindEnum:
		for _, ev := range ft.EnumValues {
			t.EnumValues = append(t.EnumValues, &schema.EnumValue{Name: ev.Name, Description: ev.Description})
		}
	case schema.TypeKindInputObject:
		for _, iv := range ft.InputFields {
			converted, err := decodeInputValue(iv)
			if err != nil {
				return nil, err
			}
			t.InputFields = append(t.InputFields, converted)
		}
	case schema.TypeKindObject, schema.TypeKindInterface:
		for _, f := range ft.Fields {
			if f.Type == nil {
				return nil, schema.Errorf("field %q of %q has no type", f.Name, ft.Name)
			}
			converted := &schema.Field{
				Name:        f.Name,
				Description: f.Description,
				Type:        decodeTypeRef(f.Type),
			}
			for _, arg := range f.Args {
				iv, err := decodeInputValue(arg)
				if err != nil {
					return nil, err
				}
				converted.Arguments = append(converted.Arguments, iv)
			}
			t.Fields = append(t.Fields, converted)
		}
		fallthrough
	case schema.TypeKindUnion:
		for _, pt := range ft.PossibleTypes {
			if pt.Name == nil {
				return nil, schema.Errorf("member of %q has no name", ft.Name)
			}
			t.PossibleTypes = append(t.PossibleTypes, *pt.Name)
		}
	default:
		return nil, schema.Errorf("type %q has unsupported kind %q", ft.Name, ft.Kind)
	}
	return t, nil
}

func decodeInputValue(iv inputValue) (*schema.InputValue, error) {
	if iv.Type == nil {
		return nil, schema.Errorf("input value %q has no type", iv.Name)
	}
	return &schema.InputValue{Name: iv.Name, Description: iv.Description, Type: decodeTypeRef(iv.Type)}, nil
}

func decodeTypeRef(tr *typeRef) *schema.TypeRef {
	if tr == nil {
		return schema.NamedType("")
	}
	switch tr.Kind {
	case "NON_NULL":
		return schema.NonNullType(decodeTypeRef(tr.OfType))
	case "LIST":
		return schema.ListType(decodeTypeRef(tr.OfType))
	default:
		name := ""
		if tr.Name != nil {
			name = *tr.Name
		}
		return schema.NamedType(name)
	}
}
