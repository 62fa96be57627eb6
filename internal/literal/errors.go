package literal

// UnsupportedScalarTypeError reports a runtime argument value whose Go
// type the encoder cannot render as a GraphQL literal.
type UnsupportedScalarTypeError struct {
	GoType string
}

func (e *UnsupportedScalarTypeError) Error() string {
	return "unsupported scalar type: " + e.GoType
}
