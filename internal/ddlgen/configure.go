// Package ddlgen turns declarative schema documents into CREATE TABLE
// statements, rendering them offline or applying them to a repository.
package ddlgen

import (
	"fmt"

	"sqlddl/internal/config"
	"sqlddl/internal/ddl"
	"sqlddl/internal/sqlexpr"
)

// Options returns the table-level flags of t.
func Options(t config.Table) ddl.TableOptions {
	return ddl.TableOptions{
		Temporary:    t.Temporary,
		IfNotExists:  t.IfNotExists,
		WithoutRowID: t.WithoutRowID,
	}
}

// Configure parses the keywords of t and returns a function that adds t's
// columns to a TableSpec. Keyword errors are reported up front so the
// returned function cannot fail.
func Configure(t config.Table) (func(*ddl.TableSpec), error) {
	steps := make([]func(*ddl.TableSpec), 0, len(t.Columns))
	for i, c := range t.Columns {
		step, err := configureColumn(c)
		if err != nil {
			return nil, fmt.Errorf("ddlgen: table %q column[%d] %q: %w", t.Name, i, c.Name, err)
		}
		steps = append(steps, step)
	}
	return func(spec *ddl.TableSpec) {
		for _, step := range steps {
			step(spec)
		}
	}, nil
}

// Spec builds a configured TableSpec for t.
func Spec(t config.Table) (*ddl.TableSpec, error) {
	configure, err := Configure(t)
	if err != nil {
		return nil, err
	}
	spec := ddl.NewTableSpec(t.Name, Options(t))
	configure(spec)
	return spec, nil
}

func configureColumn(c config.Column) (func(*ddl.TableSpec), error) {
	typ, err := config.ColumnType(c.Type)
	if err != nil {
		return nil, err
	}

	var pk *ddl.PrimaryKey
	if c.PrimaryKey != nil {
		pk = &ddl.PrimaryKey{Autoincrement: c.PrimaryKey.Autoincrement}
		if c.PrimaryKey.Order != "" {
			o, err := ddl.ParseOrdering(c.PrimaryKey.Order)
			if err != nil {
				return nil, err
			}
			pk.Order = &o
		}
		if pk.OnConflict, err = optionalConflict(c.PrimaryKey.OnConflict); err != nil {
			return nil, err
		}
	}

	notNull, err := constraint(c.NotNull)
	if err != nil {
		return nil, err
	}
	unique, err := constraint(c.Unique)
	if err != nil {
		return nil, err
	}

	var fk *ddl.ForeignKey
	if ref := c.References; ref != nil {
		fk = &ddl.ForeignKey{Table: ref.Table, Column: ref.Column}
		if fk.OnDelete, err = optionalAction(ref.OnDelete); err != nil {
			return nil, err
		}
		if fk.OnUpdate, err = optionalAction(ref.OnUpdate); err != nil {
			return nil, err
		}
	}

	var def sqlexpr.Expr
	switch {
	case c.Default != nil && c.DefaultSQL != "":
		return nil, fmt.Errorf("default and default_sql are mutually exclusive")
	case c.Default != nil:
		def = sqlexpr.Lit(c.Default)
	case c.DefaultSQL != "":
		def = sqlexpr.Raw(c.DefaultSQL)
	}

	return func(spec *ddl.TableSpec) {
		col := spec.Column(c.Name, typ)
		if pk != nil {
			col.PrimaryKey(*pk)
		}
		if notNull != nil {
			col.NotNull(*notNull)
		}
		if unique != nil {
			col.Unique(*unique)
		}
		if c.Check != "" {
			col.Check(func(sqlexpr.Column) sqlexpr.Expr { return sqlexpr.Raw(c.Check) })
		}
		if def != nil {
			col.Default(def)
		}
		if c.Collate != "" {
			col.Collate(c.Collate)
		}
		if fk != nil {
			col.References(*fk)
		}
	}, nil
}

// constraint returns nil for a disabled constraint and the resolution
// (Abort when unset) otherwise.
func constraint(c *config.Constraint) (*ddl.ConflictResolution, error) {
	if !c.Enabled() {
		return nil, nil
	}
	r, err := optionalConflict(c.OnConflict)
	if err != nil || r != nil {
		return r, err
	}
	return ddl.Ptr(ddl.Abort), nil
}

func optionalConflict(s string) (*ddl.ConflictResolution, error) {
	if s == "" {
		return nil, nil
	}
	r, err := ddl.ParseConflictResolution(s)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func optionalAction(s string) (*ddl.ForeignKeyAction, error) {
	if s == "" {
		return nil, nil
	}
	a, err := ddl.ParseForeignKeyAction(s)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
