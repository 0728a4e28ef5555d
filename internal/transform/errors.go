package transform

import "fmt"

// SchemaError indicates that a required column is absent from the input
// batch. It is fatal for the whole batch and never recoverable per row.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: required column %q missing from input", e.Column)
}
