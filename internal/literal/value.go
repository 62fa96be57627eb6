// Package literal renders runtime argument values into GraphQL literal
// syntax. Arbitrary Go values are first normalized into an explicit
// tagged variant (Value) and then rendered; all dispatch over value
// shape happens on the variant tag, never on open-ended reflection at
// render time.
package literal

import (
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindAbsent
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
	KindEnum
	KindList
	KindObject
)

// Value is the normalized form of one runtime argument value.
type Value struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Float  float64
	Str    string
	Time   time.Time
	List   []Value
	Fields []ObjectField
}

// ObjectField is one ordered key/value pair of an object value.
type ObjectField struct {
	Name  string
	Value Value
}

// Enum marks a string as a GraphQL enum literal: it is rendered as a
// bare identifier, not a quoted string. The raw value must already be
// a valid GraphQL identifier; no escaping is applied.
type Enum string

// EnumValuer lets domain enum types present their GraphQL wire value.
type EnumValuer interface {
	GraphQLEnum() string
}

// Absent is a sentinel distinct from nil for "argument not provided".
// It still renders as the null literal, exactly like nil: the engine
// offers no way to omit an argument from the generated text.
var Absent = absent{}

type absent struct{}

// Null returns the null Value.
func Null() Value { return Value{Kind: KindNull} }

// Object builds an object Value from ordered fields.
func Object(fields ...ObjectField) Value { return Value{Kind: KindObject, Fields: fields} }

var timeType = reflect.TypeOf(time.Time{})

// Normalize converts an arbitrary runtime value into a Value. Mappings
// and composite structs become ordered object variants, slices become
// list variants, and everything else must be a supported scalar.
// Unsupported types fail with UnsupportedScalarTypeError.
func Normalize(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Value{Kind: KindNull}, nil
	case absent:
		return Value{Kind: KindAbsent}, nil
	case Value:
		return x, nil
	case Enum:
		return Value{Kind: KindEnum, Str: string(x)}, nil
	case EnumValuer:
		return Value{Kind: KindEnum, Str: x.GraphQLEnum()}, nil
	case bool:
		return Value{Kind: KindBool, Bool: x}, nil
	case string:
		return Value{Kind: KindString, Str: x}, nil
	case time.Time:
		return Value{Kind: KindTime, Time: x}, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Value{Kind: KindNull}, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Value{Kind: KindBool, Bool: rv.Bool()}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Value{Kind: KindInt, Int: rv.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Value{Kind: KindInt, Int: int64(rv.Uint())}, nil
	case reflect.Float32, reflect.Float64:
		return Value{Kind: KindFloat, Float: rv.Float()}, nil
	case reflect.String:
		return Value{Kind: KindString, Str: rv.String()}, nil
	case reflect.Slice, reflect.Array:
		list := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			el, err := Normalize(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			list[i] = el
		}
		return Value{Kind: KindList, List: list}, nil
	case reflect.Map:
		return normalizeMap(rv)
	case reflect.Struct:
		if rv.Type() == timeType {
			return Value{Kind: KindTime, Time: rv.Interface().(time.Time)}, nil
		}
		return normalizeStruct(rv)
	}
	return Value{}, &UnsupportedScalarTypeError{GoType: reflect.TypeOf(v).String()}
}

// normalizeMap converts a string-keyed map. Go maps carry no insertion
// order, so keys are sorted to keep generated text deterministic;
// callers that need a specific argument order pass ordered ObjectFields
// or a struct instead.
func normalizeMap(rv reflect.Value) (Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return Value{}, &UnsupportedScalarTypeError{GoType: rv.Type().String()}
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	fields := make([]ObjectField, 0, len(keys))
	for _, k := range keys {
		val, err := Normalize(rv.MapIndex(reflect.ValueOf(k)).Interface())
		if err != nil {
			return Value{}, err
		}
		fields = append(fields, ObjectField{Name: k, Value: val})
	}
	return Value{Kind: KindObject, Fields: fields}, nil
}

// normalizeStruct converts an exported-field struct into an object
// value in field declaration order. Field names honor `graphql` then
// `json` tags before falling back to the Go field name.
func normalizeStruct(rv reflect.Value) (Value, error) {
	t := rv.Type()
	var fields []ObjectField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := fieldName(sf)
		if name == "-" {
			continue
		}
		val, err := Normalize(rv.Field(i).Interface())
		if err != nil {
			return Value{}, err
		}
		fields = append(fields, ObjectField{Name: name, Value: val})
	}
	return Value{Kind: KindObject, Fields: fields}, nil
}

func fieldName(sf reflect.StructField) string {
	for _, tag := range []string{"graphql", "json"} {
		if v, ok := sf.Tag.Lookup(tag); ok {
			if idx := strings.IndexByte(v, ','); idx >= 0 {
				v = v[:idx]
			}
			if v != "" {
				return v
			}
		}
	}
	r := []rune(sf.Name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
