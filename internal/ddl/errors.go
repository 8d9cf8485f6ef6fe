package ddl

import "fmt"

// SchemaLookupError reports that resolving the default foreign-key columns
// of Table required consulting the schema and the consultation itself failed.
type SchemaLookupError struct {
	Table string
	Err   error
}

func (e *SchemaLookupError) Error() string {
	return fmt.Sprintf("ddl: primary key lookup for %q: %v", e.Table, e.Err)
}

func (e *SchemaLookupError) Unwrap() error { return e.Err }

// ExecutionError reports that the database rejected a rendered statement.
type ExecutionError struct {
	Statement string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("ddl: execute statement: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
