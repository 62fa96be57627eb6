package schema

import "fmt"

// IntrospectionError reports that the external schema's descriptors are
// missing an expected shape (no type, no fields, no named type). The
// engine does not validate schemas defensively; a malformed descriptor
// is a programmer error surfaced to the caller unrecovered.
type IntrospectionError struct {
	Reason string
}

func (e *IntrospectionError) Error() string {
	return "schema introspection: " + e.Reason
}

// Errorf builds an IntrospectionError with a formatted reason.
func Errorf(format string, args ...any) *IntrospectionError {
	return &IntrospectionError{Reason: fmt.Sprintf(format, args...)}
}
