package template

import (
	"strings"

	"github.com/sirupsen/logrus"

	executor "github.com/autographql/autograph/internal/executor"
	names "github.com/autographql/autograph/internal/names"
	schema "github.com/autographql/autograph/internal/schema"
)

// reservedNames are registry member identifiers that can never name an
// operation template.
var reservedNames = map[string]struct{}{
	"schema":     {},
	"operations": {},
}

// Registry derives one Template per query and mutation the schema
// exposes and resolves each by its snake-cased host identifier.
// Building a registry reads the schema once and executes nothing.
type Registry struct {
	schema    *schema.Schema
	templates map[string]*Template
	order     []string // host names in schema enumeration order
}

type RegistryOption func(*registryConfig)

type registryConfig struct {
	log logrus.FieldLogger
}

// WithLogger routes generated-query debug logging to the given logger.
func WithLogger(log logrus.FieldLogger) RegistryOption {
	return func(c *registryConfig) { c.log = log }
}

// NewRegistry enumerates the schema's query fields, then its mutation
// fields, in declaration order, and instantiates one Template per
// operation bound to the given executor.
func NewRegistry(s *schema.Schema, exec executor.Executor, opts ...RegistryOption) *Registry {
	cfg := registryConfig{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{
		schema:    s,
		templates: make(map[string]*Template),
	}
	r.register(s.GetQueryType(), Query, exec, cfg.log)
	r.register(s.GetMutationType(), Mutation, exec, cfg.log)
	return r
}

func (r *Registry) register(root *schema.Type, kind Kind, exec executor.Executor, log logrus.FieldLogger) {
	if root == nil {
		return
	}
	for _, field := range root.Fields {
		if strings.HasPrefix(field.Name, "__") {
			continue
		}
		t := New(kind, field, r.schema, exec, log)
		r.templates[t.HostName()] = t
		r.order = append(r.order, t.HostName())
	}
}

// Template resolves an operation by host name or wire name; nil when
// unknown.
func (r *Registry) Template(name string) *Template {
	if t, ok := r.templates[name]; ok {
		return t
	}
	return r.templates[names.ToSnakeCase(name)]
}

// Operations lists every template's signature in registration order,
// excluding reserved registry identifiers.
func (r *Registry) Operations() []string {
	out := make([]string, 0, len(r.order))
	for _, hostName := range r.order {
		if _, reserved := reservedNames[hostName]; reserved {
			continue
		}
		if strings.HasPrefix(hostName, "_") {
			continue
		}
		out = append(out, r.templates[hostName].Signature())
	}
	return out
}

// Schema returns the borrowed schema the registry was built from.
func (r *Registry) Schema() *schema.Schema { return r.schema }
