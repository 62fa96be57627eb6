package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	template "github.com/autographql/autograph/internal/template"
)

func TestRunNoCommand(t *testing.T) {
	assert.Error(t, run(nil))
}

func TestRunUnknownCommand(t *testing.T) {
	err := run([]string{"frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestRunHelp(t *testing.T) {
	assert.NoError(t, run([]string{"help"}))
	assert.NoError(t, run([]string{"help", "render"}))
	assert.Error(t, run([]string{"help", "frobnicate"}))
}

func writeTestSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.graphql")
	sdl := `
type Query {
  ping: String!
}

type Mutation {
  setName(newName: String!): User
}

type User {
  id: ID!
  name: String!
}
`
	require.NoError(t, os.WriteFile(path, []byte(sdl), 0o600))
	return path
}

func TestRenderFromSchemaFile(t *testing.T) {
	path := writeTestSchema(t)
	err := run([]string{"render", "-schema.file", path, "-operation", "set_name", "-args", `{"newName":"Alice"}`})
	assert.NoError(t, err)
}

func TestRenderRequiresOperation(t *testing.T) {
	path := writeTestSchema(t)
	err := run([]string{"render", "-schema.file", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-operation")
}

func TestRenderUnknownOperation(t *testing.T) {
	path := writeTestSchema(t)
	err := run([]string{"render", "-schema.file", path, "-operation", "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestOperationsFromSchemaFile(t *testing.T) {
	path := writeTestSchema(t)
	assert.NoError(t, run([]string{"operations", "-schema.file", path}))
}

func TestOperationsRequiresSource(t *testing.T) {
	err := run([]string{"operations"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-endpoint")
}

func TestSchemaFromFile(t *testing.T) {
	path := writeTestSchema(t)
	assert.NoError(t, run([]string{"schema", "-schema.file", path}))
}

func TestParseArgsSortsKeys(t *testing.T) {
	args, err := parseArgs(`{"b": 2, "a": 1}`)
	require.NoError(t, err)
	assert.Equal(t, template.Args{
		{Name: "a", Value: float64(1)},
		{Name: "b", Value: float64(2)},
	}, args)
}

func TestParseArgsInvalidJSON(t *testing.T) {
	_, err := parseArgs(`{`)
	assert.Error(t, err)
}

func TestStringListFlag(t *testing.T) {
	var list stringListFlag
	require.NoError(t, list.Set("a"))
	require.NoError(t, list.Set("b"))
	assert.Equal(t, stringListFlag{"a", "b"}, list)
	assert.Equal(t, "a,b", list.String())
}

func TestSourceInvalidLogLevel(t *testing.T) {
	path := writeTestSchema(t)
	err := run([]string{"operations", "-schema.file", path, "-log.level", "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestSourceInvalidHeader(t *testing.T) {
	src := source{endpoint: "http://example.com", headers: stringListFlag{"bogus"}}
	_, err := src.executor()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}
