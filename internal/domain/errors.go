package domain

import "fmt"

// SchemaError reports a required source column missing from the input header.
// It is fatal: the run aborts without producing any output.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: required column %q is missing from the input", e.Column)
}

// CoercionError reports an identifier field that could not be coerced to an
// integer. Identifier coercion is fail-fast: one bad id aborts the whole run.
// Row is the zero-based data row index (header excluded).
type CoercionError struct {
	Column string
	Row    int
	Value  string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("coerce: column %q row %d: %q is not a numeric identifier", e.Column, e.Row, e.Value)
}
