package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	executor "github.com/autographql/autograph/internal/executor"
	language "github.com/autographql/autograph/internal/language"
	schema "github.com/autographql/autograph/internal/schema"
	template "github.com/autographql/autograph/internal/template"
)

const testSDL = `
type Query {
  ping: String!
  user(id: ID!): User
}

type Mutation {
  setName(newName: String!): User
}

type User {
  id: ID!
  name: String!
}
`

func newTestHandler(t *testing.T, exec executor.Executor, opts ...Option) *Handler {
	t.Helper()
	ast, err := language.LoadSchema("test.graphql", testSDL)
	require.NoError(t, err)
	s, err := schema.FromAST(ast)
	require.NoError(t, err)
	return New(template.NewRegistry(s, exec), opts...)
}

func echoExecutor(captured *string) executor.Executor {
	return executor.Func(func(_ context.Context, query string) (*executor.ExecutionResult, error) {
		if captured != nil {
			*captured = query
		}
		return &executor.ExecutionResult{Data: map[string]any{"ok": true}}, nil
	})
}

func TestListOperations(t *testing.T) {
	h := newTestHandler(t, echoExecutor(nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/operations", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Operations []string `json:"operations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{
		"query ping",
		"query user(id)",
		"mutation setName(newName)",
	}, resp.Operations)
}

func TestInvokeOperation(t *testing.T) {
	var captured string
	h := newTestHandler(t, echoExecutor(&captured))

	body := strings.NewReader(`{"args":{"newName":"Alice"}}`)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/operations/set_name", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mutation setName(newName: \"Alice\") {\n\tid\n\tname\n}", captured)

	var result executor.ExecutionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, map[string]any{"ok": true}, result.Data)
}

func TestInvokeByWireName(t *testing.T) {
	var captured string
	h := newTestHandler(t, echoExecutor(&captured))

	body := strings.NewReader(`{"args":{"newName":"Alice"}}`)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/operations/setName", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, captured, "mutation setName(")
}

func TestInvokeUnknownOperation(t *testing.T) {
	h := newTestHandler(t, echoExecutor(nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/operations/nope", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvokeBadJSON(t *testing.T) {
	h := newTestHandler(t, echoExecutor(nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/operations/ping", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvokeBodyTooLarge(t *testing.T) {
	h := newTestHandler(t, echoExecutor(nil), WithMaxBodyBytes(8))
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"args":{"newName":"a very long value"}}`)
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/operations/set_name", body))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestInvokeTransportFailure(t *testing.T) {
	exec := executor.Func(func(context.Context, string) (*executor.ExecutionResult, error) {
		return nil, context.DeadlineExceeded
	})
	h := newTestHandler(t, exec)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/operations/ping", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestNotFoundPath(t *testing.T) {
	h := newTestHandler(t, echoExecutor(nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t, echoExecutor(nil), WithCORS("https://app.example.com"))

	req := httptest.NewRequest(http.MethodOptions, "/operations", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	h := newTestHandler(t, echoExecutor(nil), WithCORS("https://app.example.com"))

	req := httptest.NewRequest(http.MethodGet, "/operations", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
