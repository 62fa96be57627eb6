package introspection

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	executor "github.com/autographql/autograph/internal/executor"
	schema "github.com/autographql/autograph/internal/schema"
)

const introspectionJSON = `{
  "__schema": {
    "queryType": {"name": "Query"},
    "mutationType": {"name": "Mutation"},
    "types": [
      {
        "kind": "OBJECT",
        "name": "Query",
        "fields": [
          {
            "name": "user",
            "args": [
              {"name": "id", "type": {"kind": "NON_NULL", "ofType": {"kind": "SCALAR", "name": "ID"}}}
            ],
            "type": {"kind": "OBJECT", "name": "User"}
          },
          {
            "name": "search",
            "args": [],
            "type": {"kind": "UNION", "name": "SearchResult"}
          }
        ]
      },
      {
        "kind": "OBJECT",
        "name": "Mutation",
        "fields": [
          {
            "name": "setName",
            "args": [
              {"name": "newName", "type": {"kind": "NON_NULL", "ofType": {"kind": "SCALAR", "name": "String"}}}
            ],
            "type": {"kind": "OBJECT", "name": "User"}
          }
        ]
      },
      {
        "kind": "OBJECT",
        "name": "User",
        "fields": [
          {"name": "id", "args": [], "type": {"kind": "NON_NULL", "ofType": {"kind": "SCALAR", "name": "ID"}}},
          {"name": "friends", "args": [], "type": {"kind": "LIST", "ofType": {"kind": "NON_NULL", "ofType": {"kind": "OBJECT", "name": "User"}}}}
        ]
      },
      {
        "kind": "UNION",
        "name": "SearchResult",
        "possibleTypes": [{"kind": "OBJECT", "name": "Admin"}, {"kind": "OBJECT", "name": "Guest"}]
      },
      {
        "kind": "OBJECT",
        "name": "Admin",
        "fields": [{"name": "id", "args": [], "type": {"kind": "SCALAR", "name": "ID"}}]
      },
      {
        "kind": "OBJECT",
        "name": "Guest",
        "fields": [{"name": "id", "args": [], "type": {"kind": "SCALAR", "name": "ID"}}]
      },
      {
        "kind": "INPUT_OBJECT",
        "name": "SearchFilter",
        "inputFields": [
          {"name": "city", "type": {"kind": "SCALAR", "name": "String"}},
          {"name": "zip", "type": {"kind": "SCALAR", "name": "Int"}}
        ]
      },
      {
        "kind": "ENUM",
        "name": "Status",
        "enumValues": [{"name": "ACTIVE"}, {"name": "INACTIVE"}]
      },
      {
        "kind": "SCALAR",
        "name": "String"
      },
      {
        "kind": "OBJECT",
        "name": "__Type",
        "fields": [{"name": "name", "args": [], "type": {"kind": "SCALAR", "name": "String"}}]
      }
    ]
  }
}`

func decodeTestData(t *testing.T) any {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(introspectionJSON), &data))
	return data
}

func TestDecode(t *testing.T) {
	s, err := Decode(decodeTestData(t))
	require.NoError(t, err)

	assert.Equal(t, "Query", s.QueryType)
	assert.Equal(t, "Mutation", s.MutationType)

	user := s.Types["User"]
	require.NotNil(t, user)
	assert.Equal(t, schema.TypeKindObject, user.Kind)
	require.Len(t, user.Fields, 2)
	assert.Equal(t, "ID!", user.Fields[0].Type.String())
	assert.Equal(t, "[User!]", user.Fields[1].Type.String())

	result := s.Types["SearchResult"]
	require.NotNil(t, result)
	assert.True(t, result.IsAbstract())
	assert.Equal(t, []string{"Admin", "Guest"}, result.PossibleTypes)

	filter := s.Types["SearchFilter"]
	require.NotNil(t, filter)
	require.Len(t, filter.InputFields, 2)
	assert.Equal(t, "city", filter.InputFields[0].Name)

	status := s.Types["Status"]
	require.NotNil(t, status)
	require.Len(t, status.EnumValues, 2)
	assert.Equal(t, "ACTIVE", status.EnumValues[0].Name)
}

func TestDecodeDropsIntrospectionTypes(t *testing.T) {
	s, err := Decode(decodeTestData(t))
	require.NoError(t, err)
	assert.NotContains(t, s.Types, "__Type")
}

func TestDecodeUnsupportedKind(t *testing.T) {
	var data any
	require.NoError(t, json.Unmarshal([]byte(`{
	  "__schema": {"types": [{"kind": "WIBBLE", "name": "Odd"}]}
	}`), &data))
	_, err := Decode(data)
	var ie *schema.IntrospectionError
	require.ErrorAs(t, err, &ie)
}

func TestFetch(t *testing.T) {
	var gotQuery string
	exec := executor.Func(func(_ context.Context, query string) (*executor.ExecutionResult, error) {
		gotQuery = query
		var data any
		if err := json.Unmarshal([]byte(introspectionJSON), &data); err != nil {
			return nil, err
		}
		return &executor.ExecutionResult{Data: data}, nil
	})

	s, err := Fetch(context.Background(), exec)
	require.NoError(t, err)
	assert.Equal(t, Query, gotQuery)
	assert.Equal(t, "Query", s.QueryType)
}

func TestFetchAbortsOnServerErrors(t *testing.T) {
	exec := executor.Func(func(context.Context, string) (*executor.ExecutionResult, error) {
		return &executor.ExecutionResult{
			Data:   map[string]any{},
			Errors: []executor.GraphQLError{{Message: "introspection disabled"}},
		}, nil
	})
	_, err := Fetch(context.Background(), exec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "introspection disabled")
}

func TestFetchNoData(t *testing.T) {
	exec := executor.Func(func(context.Context, string) (*executor.ExecutionResult, error) {
		return &executor.ExecutionResult{}, nil
	})
	_, err := Fetch(context.Background(), exec)
	var ie *schema.IntrospectionError
	require.ErrorAs(t, err, &ie)
}
