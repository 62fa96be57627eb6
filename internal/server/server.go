// Package server exposes a template registry over HTTP: operation
// discovery on GET /operations and invocation on POST /operations/{name}.
// The facade owns no GraphQL semantics; it decodes arguments, hands them
// to the template, and writes the execution result back as JSON.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	eventbus "github.com/autographql/autograph/internal/eventbus"
	events "github.com/autographql/autograph/internal/events"
	reqid "github.com/autographql/autograph/internal/reqid"
	template "github.com/autographql/autograph/internal/template"
)

// Handler is an http.Handler serving a template registry.
type Handler struct {
	registry *template.Registry
	opt      Options
}

type Options struct {
	// Timeout sets a default timeout if the incoming request context has none.
	// 0 means no default timeout.
	Timeout time.Duration

	// Pretty enables indented JSON responses (useful for dev).
	Pretty bool

	// MaxBodyBytes limits the size of the request body. 0 means unlimited.
	MaxBodyBytes int64

	// CORS configuration. If AllowedOrigins is empty, CORS is disabled.
	CORS CORSOptions
}

type Option func(*Options)

func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }
func WithPretty() Option                 { return func(o *Options) { o.Pretty = true } }
func WithMaxBodyBytes(n int64) Option    { return func(o *Options) { o.MaxBodyBytes = n } }
func WithCORS(origins ...string) Option {
	return func(o *Options) { o.CORS.AllowedOrigins = origins }
}

// CORSOptions holds simple CORS settings.
type CORSOptions struct {
	AllowedOrigins []string
}

// New creates the facade handler for the given registry.
func New(registry *template.Registry, opts ...Option) *Handler {
	op := Options{Timeout: 10 * time.Second}
	for _, f := range opts {
		f(&op)
	}
	return &Handler{registry: registry, opt: op}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := ctx.Deadline(); !ok && h.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opt.Timeout)
		defer cancel()
	}

	ctx, _ = reqid.NewContext(ctx)
	status := http.StatusOK
	start := time.Now()
	eventbus.Publish(ctx, events.HTTPStart{Request: r})
	defer func() {
		eventbus.Publish(ctx, events.HTTPFinish{Request: r, Status: status, Duration: time.Since(start)})
	}()

	if len(h.opt.CORS.AllowedOrigins) > 0 {
		setCORSHeaders(w, r, h.opt.CORS)
	}
	if r.Method == http.MethodOptions {
		status = http.StatusNoContent
		w.WriteHeader(status)
		return
	}

	name, isInvoke := strings.CutPrefix(r.URL.Path, "/operations/")
	switch {
	case r.URL.Path == "/operations" && r.Method == http.MethodGet:
		writeJSON(w, status, operationsResponse{Operations: h.registry.Operations()}, h.opt.Pretty)
	case isInvoke && name != "" && r.Method == http.MethodPost:
		status = h.invoke(ctx, w, r, name)
	default:
		status = http.StatusNotFound
		writeJSON(w, status, errorResponse{Error: "not found"}, h.opt.Pretty)
	}
}

type operationsResponse struct {
	Operations []string `json:"operations"`
}

type invokeRequest struct {
	Args map[string]json.RawMessage `json:"args"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) invoke(ctx context.Context, w http.ResponseWriter, r *http.Request, name string) int {
	tmpl := h.registry.Template(name)
	if tmpl == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown operation " + name}, h.opt.Pretty)
		return http.StatusNotFound
	}

	reader := io.Reader(r.Body)
	if h.opt.MaxBodyBytes > 0 {
		reader = io.LimitReader(r.Body, h.opt.MaxBodyBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read body"}, h.opt.Pretty)
		return http.StatusBadRequest
	}
	defer r.Body.Close()
	if h.opt.MaxBodyBytes > 0 && int64(len(body)) > h.opt.MaxBodyBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "body too large"}, h.opt.Pretty)
		return http.StatusRequestEntityTooLarge
	}

	args, err := decodeArgs(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()}, h.opt.Pretty)
		return http.StatusBadRequest
	}

	result, err := tmpl.Invoke(ctx, args)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()}, h.opt.Pretty)
		return http.StatusBadGateway
	}
	writeJSON(w, http.StatusOK, result, h.opt.Pretty)
	return http.StatusOK
}

// decodeArgs turns the JSON args object into an ordered argument list.
// JSON objects carry no order through decoding, so keys are sorted.
func decodeArgs(body []byte) (template.Args, error) {
	if len(body) == 0 {
		return nil, nil
	}
	var req invokeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(req.Args))
	for k := range req.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make(template.Args, 0, len(keys))
	for _, k := range keys {
		var v any
		if err := json.Unmarshal(req.Args[k], &v); err != nil {
			return nil, err
		}
		args = append(args, template.Arg{Name: k, Value: v})
	}
	return args, nil
}

func writeJSON(w http.ResponseWriter, status int, v any, pretty bool) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}

func setCORSHeaders(w http.ResponseWriter, r *http.Request, opts CORSOptions) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	allowed := false
	wildcard := false
	for _, o := range opts.AllowedOrigins {
		if o == "*" {
			allowed = true
			wildcard = true
			break
		}
		if o == origin {
			allowed = true
		}
	}
	if !allowed {
		return
	}
	if wildcard {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
	}
	if r.Method == http.MethodOptions {
		if hdr := r.Header.Get("Access-Control-Request-Headers"); hdr != "" {
			w.Header().Set("Access-Control-Allow-Headers", hdr)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	}
}
