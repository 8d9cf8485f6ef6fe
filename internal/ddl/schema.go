package ddl

import (
	"context"
	"errors"
)

// Schema is consulted while rendering a REFERENCES clause that names no
// column. PrimaryKey returns the declared primary-key columns of table in
// key order, or nil when the table has no explicit primary key.
type Schema interface {
	PrimaryKey(ctx context.Context, table string) ([]string, error)
}

// StaticSchema is a Schema backed by a fixed map from table name to
// primary-key columns.
type StaticSchema map[string][]string

// PrimaryKey implements Schema.
func (s StaticSchema) PrimaryKey(_ context.Context, table string) ([]string, error) {
	return s[table], nil
}

// NoSchema reports that no table has an explicit primary key.
var NoSchema Schema = StaticSchema(nil)

// lookupPrimaryKey wraps any failure from s in a *SchemaLookupError so callers
// see a single error kind regardless of the backing implementation.
func lookupPrimaryKey(ctx context.Context, s Schema, table string) ([]string, error) {
	if s == nil {
		return nil, nil
	}
	cols, err := s.PrimaryKey(ctx, table)
	if err != nil {
		var lookupErr *SchemaLookupError
		if errors.As(err, &lookupErr) {
			return nil, err
		}
		return nil, &SchemaLookupError{Table: table, Err: err}
	}
	return cols, nil
}
