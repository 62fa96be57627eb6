package literal

import (
	"strings"

	names "github.com/autographql/autograph/internal/names"
)

// Render serializes a normalized Value into GraphQL literal text.
// Objects render as `{ k: v, k2: v2 }` with wire-cased keys, lists as
// `[ v1, v2 ]`, everything else through EncodeScalar. Nesting depth in
// the text matches nesting depth in the value exactly.
func Render(v Value) (string, error) {
	switch v.Kind {
	case KindObject:
		pairs, err := RenderPairs(v.Fields)
		if err != nil {
			return "", err
		}
		return "{ " + pairs + " }", nil
	case KindList:
		parts := make([]string, len(v.List))
		for i, el := range v.List {
			s, err := Render(el)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[ " + strings.Join(parts, ", ") + " ]", nil
	default:
		return EncodeScalar(v)
	}
}

// RenderPairs serializes ordered object fields as a comma-separated
// `key: value` list without surrounding braces. Keys are converted to
// wire casing. This is the form used for an operation's argument list.
func RenderPairs(fields []ObjectField) (string, error) {
	parts := make([]string, len(fields))
	for i, f := range fields {
		s, err := Render(f.Value)
		if err != nil {
			return "", err
		}
		parts[i] = names.ToCamelCase(f.Name) + ": " + s
	}
	return strings.Join(parts, ", "), nil
}
