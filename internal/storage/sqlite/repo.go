// Package sqlite implements a SQLite-backed storage.Repository on
// database/sql with the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"sqlddl/internal/ddl"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Repository executes DDL against a SQLite database and answers primary-key
// lookups from its catalog.
type Repository struct {
	db *sql.DB
}

// Open opens a database/sql handle for dsn without checking connectivity.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// Each connection to :memory: is a separate database, and PRAGMA
	// foreign_keys is per connection.
	db.SetMaxOpenConns(1)
	return db, nil
}

// New wraps an existing handle. The caller keeps ownership of db.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// NewRepository opens a SQLite connection using cfg and returns a Repository
// plus a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := Open(cfg.DSN)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.pingTimeout())
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	if !cfg.DisableForeignKeys {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
		}
	}

	closeFn := func() { db.Close() }
	return &Repository{db: db}, closeFn, nil
}

// Exec executes a single SQL statement, typically DDL.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sql); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

// PrimaryKey returns the declared primary-key columns of table in key order.
// It returns nil for tables without an explicit primary key and for tables
// that do not exist; SQLite reports both as an empty pragma_table_info.
// Query failures are returned as *ddl.SchemaLookupError.
func (r *Repository) PrimaryKey(ctx context.Context, table string) ([]string, error) {
	const q = `SELECT name FROM pragma_table_info(?) WHERE pk > 0 ORDER BY pk`

	rows, err := r.db.QueryContext(ctx, q, table)
	if err != nil {
		return nil, &ddl.SchemaLookupError{Table: table, Err: err}
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &ddl.SchemaLookupError{Table: table, Err: err}
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, &ddl.SchemaLookupError{Table: table, Err: err}
	}
	return cols, nil
}

// Tables lists user tables in name order.
func (r *Repository) Tables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list tables: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: list tables: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// TableSQL returns the CREATE statement SQLite stored for table.
func (r *Repository) TableSQL(ctx context.Context, table string) (string, error) {
	var stmt string
	err := r.db.QueryRowContext(ctx,
		`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&stmt)
	if err != nil {
		return "", fmt.Errorf("sqlite: table sql %q: %w", table, err)
	}
	return stmt, nil
}
