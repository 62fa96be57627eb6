package executor

// GraphQLError is one server-side error from an execution result.
// Resolver and validation failures arrive here, not as Go errors.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string {
	return e.Message
}

// ExecutionResult is the structured outcome of executing an operation:
// a data payload plus a list of errors, either of which may be empty.
type ExecutionResult struct {
	Data   any            `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}
