package literal

import (
	"encoding/json"
	"strconv"
	"time"
)

// EncodeScalar renders a single scalar Value as GraphQL literal text.
//
//	null / absent  -> null
//	bool           -> true / false
//	int / float    -> canonical numeric text
//	string         -> JSON-quoted string
//	time           -> JSON-quoted RFC 3339 string
//	enum           -> the raw wire value, unquoted
//
// List and object variants are not scalars and are rejected.
func EncodeScalar(v Value) (string, error) {
	switch v.Kind {
	case KindNull, KindAbsent:
		return "null", nil
	case KindBool:
		return strconv.FormatBool(v.Bool), nil
	case KindInt:
		return strconv.FormatInt(v.Int, 10), nil
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), nil
	case KindString:
		return quote(v.Str), nil
	case KindTime:
		return quote(v.Time.Format(time.RFC3339Nano)), nil
	case KindEnum:
		return v.Str, nil
	case KindList:
		return "", &UnsupportedScalarTypeError{GoType: "list"}
	case KindObject:
		return "", &UnsupportedScalarTypeError{GoType: "object"}
	}
	return "", &UnsupportedScalarTypeError{GoType: "unknown"}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
