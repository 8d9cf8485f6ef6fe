// Package ddl builds SQLite CREATE TABLE statements.
//
// A TableSpec is configured with ordered columns, each a ColumnSpec carrying
// its own constraints, and then rendered once into a single statement:
//
//	CREATE [TEMPORARY] TABLE [IF NOT EXISTS] "name" (
//	  "col" TYPE [PRIMARY KEY [ASC|DESC] [ON CONFLICT R] [AUTOINCREMENT]]
//	        [NOT NULL [ON CONFLICT R]] [UNIQUE [ON CONFLICT R]]
//	        [CHECK (expr)] [DEFAULT (expr)] [COLLATE name]
//	        [REFERENCES "t"(cols) [ON DELETE A] [ON UPDATE A]],
//	  ...
//	) [WITHOUT ROWID]
//
// The builder renders exactly what it is told. It does not check that
// referenced tables exist or that column names are unique; the database is the
// only semantic validator.
//
// A TableSpec is not safe for concurrent use.
package ddl

import (
	"context"
	"strings"

	"sqlddl/internal/sqlexpr"
)

// TableOptions are the table-level flags fixed at construction.
type TableOptions struct {
	Temporary    bool
	IfNotExists  bool
	WithoutRowID bool
}

// TableSpec describes one CREATE TABLE statement.
type TableSpec struct {
	name    string
	opts    TableOptions
	columns []*ColumnSpec
}

// NewTableSpec returns an empty table description.
func NewTableSpec(name string, opts TableOptions) *TableSpec {
	return &TableSpec{name: name, opts: opts}
}

// Name returns the table name.
func (t *TableSpec) Name() string { return t.name }

// Options returns the table-level flags.
func (t *TableSpec) Options() TableOptions { return t.opts }

// Columns returns the columns in the order they were added.
func (t *TableSpec) Columns() []*ColumnSpec {
	return append([]*ColumnSpec(nil), t.columns...)
}

// Column appends a new column and returns it for further configuration.
// Names are not checked for duplicates.
func (t *TableSpec) Column(name string, typ ColumnType) *ColumnSpec {
	c := &ColumnSpec{name: name, typ: typ}
	t.columns = append(t.columns, c)
	return c
}

// Render returns the CREATE TABLE statement. schema is consulted only for
// REFERENCES clauses without an explicit column; a failed lookup aborts the
// render with a *SchemaLookupError and no SQL.
func (t *TableSpec) Render(ctx context.Context, schema Schema) (string, error) {
	var sb strings.Builder
	sb.WriteString("CREATE ")
	if t.opts.Temporary {
		sb.WriteString("TEMPORARY ")
	}
	sb.WriteString("TABLE ")
	if t.opts.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(sqlexpr.QuoteIdent(t.name))
	sb.WriteString(" (")
	for i, c := range t.columns {
		def, err := c.render(ctx, schema)
		if err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(def)
	}
	sb.WriteByte(')')
	if t.opts.WithoutRowID {
		sb.WriteString(" WITHOUT ROWID")
	}
	return sb.String(), nil
}
