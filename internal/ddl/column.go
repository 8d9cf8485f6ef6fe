package ddl

import (
	"context"
	"strings"

	"sqlddl/internal/sqlexpr"
)

// RowIDColumn is the implicit row identifier referenced when the target of a
// REFERENCES clause declares no primary key.
const RowIDColumn = "_rowid_"

// PrimaryKey holds the options of a column PRIMARY KEY clause. A nil Order or
// OnConflict omits that sub-clause.
type PrimaryKey struct {
	Order         *Ordering
	OnConflict    *ConflictResolution
	Autoincrement bool
}

// ForeignKey holds the options of a column REFERENCES clause. An empty Column
// defers to the referenced table's primary key.
type ForeignKey struct {
	Table    string
	Column   string
	OnDelete *ForeignKeyAction
	OnUpdate *ForeignKeyAction
}

// ColumnSpec accumulates the constraints of a single column. It is created by
// TableSpec.Column and rendered as part of its owning table. Every setter
// overwrites the clause it owns and returns the receiver for chaining.
type ColumnSpec struct {
	name string
	typ  ColumnType

	primaryKey *PrimaryKey
	notNull    *ConflictResolution
	unique     *ConflictResolution
	check      sqlexpr.Expr
	def        sqlexpr.Expr
	collation  string
	references *ForeignKey
}

// Name returns the column name.
func (c *ColumnSpec) Name() string { return c.name }

// Type returns the declared column type.
func (c *ColumnSpec) Type() ColumnType { return c.typ }

// PrimaryKey marks the column as the table's primary key.
func (c *ColumnSpec) PrimaryKey(pk PrimaryKey) *ColumnSpec {
	c.primaryKey = &pk
	return c
}

// NotNull adds a NOT NULL constraint. Without an argument the resolution is
// Abort, which renders as a bare NOT NULL. Only the first argument is used.
func (c *ColumnSpec) NotNull(onConflict ...ConflictResolution) *ColumnSpec {
	r := resolution(onConflict)
	c.notNull = &r
	return c
}

// Unique adds a UNIQUE constraint with the same defaulting as NotNull.
func (c *ColumnSpec) Unique(onConflict ...ConflictResolution) *ColumnSpec {
	r := resolution(onConflict)
	c.unique = &r
	return c
}

// Check adds a CHECK constraint. The predicate receives a reference to this
// column and is evaluated once, immediately.
func (c *ColumnSpec) Check(predicate func(col sqlexpr.Column) sqlexpr.Expr) *ColumnSpec {
	c.check = predicate(sqlexpr.Col(c.name))
	return c
}

// Default sets the column default. v may be an sqlexpr.Expr or any value
// accepted by sqlexpr.Lit.
func (c *ColumnSpec) Default(v any) *ColumnSpec {
	c.def = sqlexpr.Value(v)
	return c
}

// Collate sets the column collation: a built-in such as CollateNoCase or the
// name of a collation registered on the connection.
func (c *ColumnSpec) Collate(name string) *ColumnSpec {
	c.collation = name
	return c
}

// References adds a foreign-key constraint.
func (c *ColumnSpec) References(fk ForeignKey) *ColumnSpec {
	c.references = &fk
	return c
}

func resolution(rs []ConflictResolution) ConflictResolution {
	if len(rs) == 0 {
		return Abort
	}
	return rs[0]
}

// render returns the column definition. Clauses appear in a fixed order
// regardless of the order the setters were called in.
func (c *ColumnSpec) render(ctx context.Context, schema Schema) (string, error) {
	parts := []string{sqlexpr.QuoteIdent(c.name), c.typ.String()}

	if pk := c.primaryKey; pk != nil {
		parts = append(parts, "PRIMARY KEY")
		if pk.Order != nil {
			parts = append(parts, pk.Order.String())
		}
		if pk.OnConflict != nil {
			parts = append(parts, "ON CONFLICT", pk.OnConflict.String())
		}
		if pk.Autoincrement {
			parts = append(parts, "AUTOINCREMENT")
		}
	}
	parts = appendConstraint(parts, "NOT NULL", c.notNull)
	parts = appendConstraint(parts, "UNIQUE", c.unique)
	if c.check != nil {
		parts = append(parts, "CHECK ("+sqlexpr.Render(c.check, nil)+")")
	}
	if c.def != nil {
		parts = append(parts, "DEFAULT ("+sqlexpr.Render(c.def, nil)+")")
	}
	if c.collation != "" {
		parts = append(parts, "COLLATE", c.collation)
	}
	if fk := c.references; fk != nil {
		cols, err := c.referencedColumns(ctx, schema)
		if err != nil {
			return "", err
		}
		parts = append(parts, "REFERENCES", sqlexpr.QuoteIdent(fk.Table)+"("+cols+")")
		if fk.OnDelete != nil {
			parts = append(parts, "ON DELETE", fk.OnDelete.String())
		}
		if fk.OnUpdate != nil {
			parts = append(parts, "ON UPDATE", fk.OnUpdate.String())
		}
	}
	return strings.Join(parts, " "), nil
}

func appendConstraint(parts []string, kw string, r *ConflictResolution) []string {
	if r == nil {
		return parts
	}
	parts = append(parts, kw)
	if *r != Abort {
		parts = append(parts, "ON CONFLICT", r.String())
	}
	return parts
}

// referencedColumns resolves the column list of the REFERENCES clause: the
// explicit column, else the referenced table's primary key, else the rowid.
func (c *ColumnSpec) referencedColumns(ctx context.Context, schema Schema) (string, error) {
	fk := c.references
	if fk.Column != "" {
		return sqlexpr.QuoteIdent(fk.Column), nil
	}
	pk, err := lookupPrimaryKey(ctx, schema, fk.Table)
	if err != nil {
		return "", err
	}
	if len(pk) == 0 {
		return RowIDColumn, nil
	}
	return quoteIdents(pk), nil
}
