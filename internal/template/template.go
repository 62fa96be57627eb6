// Package template derives one callable operation template per
// query/mutation a schema exposes. A template assembles the full
// operation text (arguments inlined as literals, response fields
// expanded into a nested selection set) and hands it to the execution
// collaborator; it never resolves anything itself.
package template

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	eventbus "github.com/autographql/autograph/internal/eventbus"
	events "github.com/autographql/autograph/internal/events"
	executor "github.com/autographql/autograph/internal/executor"
	fieldtree "github.com/autographql/autograph/internal/fieldtree"
	literal "github.com/autographql/autograph/internal/literal"
	names "github.com/autographql/autograph/internal/names"
	schema "github.com/autographql/autograph/internal/schema"
)

// Kind is the operation kind of a template.
type Kind string

const (
	Query    Kind = "query"
	Mutation Kind = "mutation"
)

// Arg is one named argument for an invocation. Argument order is
// preserved in the generated text.
type Arg struct {
	Name  string
	Value any
}

// Args is an ordered argument list.
type Args []Arg

// Template is one operation of the schema, callable as a function.
// The derived trees are computed on first use and memoized for the
// template's lifetime; recomputation from the same schema always
// yields the same trees.
type Template struct {
	kind     Kind
	name     string // wire name
	hostName string // snake-cased identifier
	field    *schema.Field
	schema   *schema.Schema
	exec     executor.Executor
	log      logrus.FieldLogger

	inputOnce sync.Once
	inputTree fieldtree.Tree
	inputErr  error

	fragOnce    sync.Once
	fragTree    fieldtree.Tree
	polymorphic bool
	fragText    string
	fragErr     error
}

// New builds a template for one schema field. The field and schema are
// borrowed, not owned; nothing is traversed until first use.
func New(kind Kind, field *schema.Field, s *schema.Schema, exec executor.Executor, log logrus.FieldLogger) *Template {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Template{
		kind:     kind,
		name:     field.Name,
		hostName: names.ToSnakeCase(field.Name),
		field:    field,
		schema:   s,
		exec:     exec,
		log:      log,
	}
}

// Name returns the operation's wire name.
func (t *Template) Name() string { return t.name }

// HostName returns the snake-cased identifier the registry exposes.
func (t *Template) HostName() string { return t.hostName }

// Kind returns the operation kind.
func (t *Template) Kind() Kind { return t.kind }

// Signature renders the operation for discovery listings:
// `query ping` or `mutation setName(newName)`. Argument names only.
func (t *Template) Signature() string {
	s := string(t.kind) + " " + t.name
	if len(t.field.Arguments) == 0 {
		return s
	}
	s += "("
	for i, arg := range t.field.Arguments {
		if i > 0 {
			s += ", "
		}
		s += arg.Name
	}
	return s + ")"
}

// InputTree returns the memoized structural tree of the operation's
// argument definitions.
func (t *Template) InputTree() (fieldtree.Tree, error) {
	t.inputOnce.Do(func() {
		t.inputTree, t.inputErr = fieldtree.BuildInputTree(t.field.Arguments, t.schema)
	})
	return t.inputTree, t.inputErr
}

// FragmentTree returns the memoized selection-set tree of the
// operation's response type, and whether it is polymorphic.
func (t *Template) FragmentTree() (fieldtree.Tree, bool, error) {
	t.buildFragment()
	return t.fragTree, t.polymorphic, t.fragErr
}

func (t *Template) buildFragment() {
	t.fragOnce.Do(func() {
		t.fragTree, t.polymorphic, t.fragErr = fieldtree.BuildResponseTree(t.field.Type, t.schema)
		if t.fragErr == nil {
			t.fragText = fieldtree.RenderFragment(t.fragTree, t.polymorphic)
		}
	})
}

// BuildQueryText assembles the complete operation text for the given
// arguments. The parenthesized argument list is omitted entirely when
// args is empty.
func (t *Template) BuildQueryText(args Args) (string, error) {
	if _, err := t.InputTree(); err != nil {
		return "", err
	}
	t.buildFragment()
	if t.fragErr != nil {
		return "", t.fragErr
	}

	header := string(t.kind) + " " + t.name
	if len(args) > 0 {
		fields := make([]literal.ObjectField, len(args))
		for i, arg := range args {
			v, err := literal.Normalize(arg.Value)
			if err != nil {
				return "", err
			}
			fields[i] = literal.ObjectField{Name: arg.Name, Value: v}
		}
		pairs, err := literal.RenderPairs(fields)
		if err != nil {
			return "", err
		}
		header += "(" + pairs + ")"
	}
	return header + " {\n" + t.fragText + "\n}", nil
}

// Invoke builds the operation text, logs it for diagnostics, executes
// it synchronously, and returns the executor's result unchanged.
// Tree-building and serialization failures propagate; the executor's
// own error payload stays inside the result.
func (t *Template) Invoke(ctx context.Context, args Args) (*executor.ExecutionResult, error) {
	query, err := t.BuildQueryText(args)
	if err != nil {
		return nil, err
	}

	eventbus.Publish(ctx, events.QueryGenerated{Operation: t.name, OperationType: string(t.kind), Query: query})
	t.log.WithFields(logrus.Fields{"operation": t.name, "kind": t.kind}).Debug(query)

	eventbus.Publish(ctx, events.ExecuteStart{Operation: t.name, OperationType: string(t.kind), Query: query})
	start := time.Now()
	result, err := t.exec.Execute(ctx, query)

	finish := events.ExecuteFinish{
		Operation:     t.name,
		OperationType: string(t.kind),
		Duration:      time.Since(start),
	}
	if err != nil {
		finish.Errors = []error{err}
	} else {
		for _, ge := range result.Errors {
			finish.Errors = append(finish.Errors, ge)
		}
	}
	eventbus.Publish(ctx, finish)

	return result, err
}
