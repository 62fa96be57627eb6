package schema

import (
	"sort"
	"strings"
)

// Render produces normalized SDL from the Schema.
// Deterministic ordering: type names sorted lexicographically; field,
// argument, enum value, and union member order is preserved as declared.
func Render(s *Schema) string {
	if s == nil {
		return ""
	}
	var b strings.Builder

	typeNames := make([]string, 0, len(s.Types))
	for name, typ := range s.Types {
		if typ.Kind == TypeKindScalar && isBuiltinScalar(name) {
			continue
		}
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	for _, name := range typeNames {
		typ := s.Types[name]
		switch typ.Kind {
		case TypeKindScalar:
			renderDescription(&b, typ.Description)
			b.WriteString("scalar " + typ.Name + "\n\n")
		case TypeKindEnum:
			renderEnum(&b, typ)
		case TypeKindInputObject:
			renderInputObject(&b, typ)
		case TypeKindObject:
			renderFieldedType(&b, "type", typ)
		case TypeKindInterface:
			renderFieldedType(&b, "interface", typ)
		case TypeKindUnion:
			renderDescription(&b, typ.Description)
			b.WriteString("union " + typ.Name + " = " + strings.Join(typ.PossibleTypes, " | ") + "\n\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderDescription(b *strings.Builder, desc string) {
	if desc == "" {
		return
	}
	b.WriteString("\"\"\"\n")
	b.WriteString(strings.ReplaceAll(desc, "\"", "\\\""))
	b.WriteString("\n\"\"\"\n")
}

func renderEnum(b *strings.Builder, t *Type) {
	renderDescription(b, t.Description)
	b.WriteString("enum " + t.Name + " {\n")
	for _, v := range t.EnumValues {
		b.WriteString("  " + v.Name + "\n")
	}
	b.WriteString("}\n\n")
}

func renderInputObject(b *strings.Builder, t *Type) {
	renderDescription(b, t.Description)
	b.WriteString("input " + t.Name + " {\n")
	for _, f := range t.InputFields {
		b.WriteString("  " + f.Name + ": " + f.Type.String() + "\n")
	}
	b.WriteString("}\n\n")
}

func renderFieldedType(b *strings.Builder, keyword string, t *Type) {
	renderDescription(b, t.Description)
	b.WriteString(keyword + " " + t.Name + " {\n")
	for _, f := range t.Fields {
		b.WriteString("  " + f.Name)
		if len(f.Arguments) > 0 {
			args := make([]string, len(f.Arguments))
			for i, a := range f.Arguments {
				args[i] = a.Name + ": " + a.Type.String()
			}
			b.WriteString("(" + strings.Join(args, ", ") + ")")
		}
		b.WriteString(": " + f.Type.String() + "\n")
	}
	b.WriteString("}\n\n")
}

func isBuiltinScalar(name string) bool {
	switch name {
	case "String", "Int", "Float", "Boolean", "ID":
		return true
	}
	return false
}
