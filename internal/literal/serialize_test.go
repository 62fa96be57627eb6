package literal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRender(t *testing.T, v any) string {
	t.Helper()
	norm, err := Normalize(v)
	require.NoError(t, err)
	s, err := Render(norm)
	require.NoError(t, err)
	return s
}

func TestEncodeScalar(t *testing.T) {
	ts := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"null", nil, "null"},
		{"absent", Absent, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"negative int", -7, "-7"},
		{"float", 3.5, "3.5"},
		{"whole float", 3.0, "3"},
		{"string", "hello", `"hello"`},
		{"string escaping", "a\"b", `"a\"b"`},
		{"timestamp", ts, `"2023-01-02T03:04:05Z"`},
		{"enum", Enum("ACTIVE"), "ACTIVE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mustRender(t, tc.in))
		})
	}
}

func TestEnumRendersUnquoted(t *testing.T) {
	// An enum member and a string with the same text must differ.
	assert.Equal(t, "ACTIVE", mustRender(t, Enum("ACTIVE")))
	assert.Equal(t, `"ACTIVE"`, mustRender(t, "ACTIVE"))
}

type customStatus int

func (customStatus) GraphQLEnum() string { return "SUSPENDED" }

func TestEnumValuer(t *testing.T) {
	assert.Equal(t, "SUSPENDED", mustRender(t, customStatus(0)))
}

func TestRenderList(t *testing.T) {
	got, err := RenderPairs([]ObjectField{{
		Name:  "tags",
		Value: mustNormalize(t, []string{"a", "b"}),
	}})
	require.NoError(t, err)
	assert.Equal(t, `tags: [ "a", "b" ]`, got)
}

func TestRenderNestedObject(t *testing.T) {
	// Brace nesting must match value nesting depth exactly.
	got := mustRender(t, map[string]any{
		"address": map[string]any{"city": "X", "zip": 1},
	})
	assert.Equal(t, `{ address: { city: "X", zip: 1 } }`, got)
}

func TestRenderPairsWireCasesKeys(t *testing.T) {
	got, err := RenderPairs([]ObjectField{{
		Name:  "new_name",
		Value: mustNormalize(t, "x"),
	}})
	require.NoError(t, err)
	assert.Equal(t, `newName: "x"`, got)
}

func TestNormalizeStruct(t *testing.T) {
	type address struct {
		City string
		Zip  int
	}
	type input struct {
		Name    string `graphql:"fullName"`
		Age     int    `json:"age"`
		Address address
	}

	got := mustRender(t, input{Name: "Alice", Age: 3, Address: address{City: "X", Zip: 1}})
	assert.Equal(t, `{ fullName: "Alice", age: 3, address: { city: "X", zip: 1 } }`, got)
}

func TestNormalizePointerAndNil(t *testing.T) {
	n := 5
	assert.Equal(t, "5", mustRender(t, &n))
	var p *int
	assert.Equal(t, "null", mustRender(t, p))
}

func TestNormalizeUnsupportedType(t *testing.T) {
	_, err := Normalize(make(chan int))
	var unsupported *UnsupportedScalarTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, unsupported.GoType, "chan int")
}

func TestNormalizeUnsupportedMapKey(t *testing.T) {
	_, err := Normalize(map[int]string{1: "a"})
	var unsupported *UnsupportedScalarTypeError
	require.ErrorAs(t, err, &unsupported)
}

func mustNormalize(t *testing.T, v any) Value {
	t.Helper()
	norm, err := Normalize(v)
	require.NoError(t, err)
	return norm
}
