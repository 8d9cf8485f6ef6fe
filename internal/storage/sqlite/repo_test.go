package sqlite

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"sqlddl/internal/ddl"
	"sqlddl/internal/sqlexpr"
	"sqlddl/internal/storage"
)

func newRepo(tb testing.TB) *Repository {
	tb.Helper()
	r, closeFn, err := NewRepository(context.Background(), Config{DSN: ":memory:"})
	if err != nil {
		tb.Fatalf("NewRepository(:memory:) error = %v", err)
	}
	tb.Cleanup(closeFn)
	return r
}

func mustExec(tb testing.TB, r *Repository, stmt string) {
	tb.Helper()
	if err := r.Exec(context.Background(), stmt); err != nil {
		tb.Fatalf("exec %q: %v", stmt, err)
	}
}

// wrap adapts a bare *Repository to storage.Repository for tests.
func wrap(r *Repository) storage.Repository {
	return &wrappedRepo{Repository: r}
}

func TestNewRepositoryEmptyDSN(t *testing.T) {
	t.Parallel()

	if _, _, err := NewRepository(context.Background(), Config{DSN: "  "}); err == nil {
		t.Fatalf("NewRepository(empty DSN) error = nil, want non-nil")
	}
}

// TestPrimaryKey covers single, composite, absent and missing tables.
func TestPrimaryKey(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	mustExec(t, r, `CREATE TABLE single (id INTEGER PRIMARY KEY, name TEXT)`)
	mustExec(t, r, `CREATE TABLE composite (b TEXT, a TEXT, x TEXT, PRIMARY KEY (a, b))`)
	mustExec(t, r, `CREATE TABLE nokey (x TEXT)`)

	tests := []struct {
		table string
		want  []string
	}{
		{table: "single", want: []string{"id"}},
		{table: "composite", want: []string{"a", "b"}},
		{table: "nokey", want: nil},
		{table: "missing", want: nil},
	}
	for _, tt := range tests {
		got, err := r.PrimaryKey(context.Background(), tt.table)
		if err != nil {
			t.Fatalf("PrimaryKey(%q) error = %v", tt.table, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PrimaryKey(%q) = %v, want %v", tt.table, got, tt.want)
		}
	}
}

// TestPrimaryKeyClosedDB verifies driver failures surface as
// *ddl.SchemaLookupError.
func TestPrimaryKeyClosedDB(t *testing.T) {
	t.Parallel()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	db.Close()

	_, err = New(db).PrimaryKey(context.Background(), "t")
	var lookupErr *ddl.SchemaLookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("PrimaryKey() error = %v, want *ddl.SchemaLookupError", err)
	}
}

// TestCreateTableRoundTrip applies generated DDL to SQLite and checks what
// the catalog stored.
func TestCreateTableRoundTrip(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	repo := wrap(r)
	ctx := context.Background()

	err := storage.CreateTable(ctx, repo, "teams", ddl.TableOptions{IfNotExists: true}, func(tbl *ddl.TableSpec) {
		tbl.Column("id", ddl.Integer).PrimaryKey(ddl.PrimaryKey{Autoincrement: true})
		tbl.Column("name", ddl.Text).NotNull().Unique(ddl.Replace).Collate(ddl.CollateNoCase)
	})
	if err != nil {
		t.Fatalf("CreateTable(teams) error = %v", err)
	}

	err = storage.CreateTable(ctx, repo, "members", ddl.TableOptions{}, func(tbl *ddl.TableSpec) {
		tbl.Column("id", ddl.Integer).PrimaryKey(ddl.PrimaryKey{})
		tbl.Column("team_id", ddl.Integer).NotNull().
			References(ddl.ForeignKey{Table: "teams", OnDelete: ddl.Ptr(ddl.Cascade)})
		tbl.Column("age", ddl.Integer).
			Check(func(c sqlexpr.Column) sqlexpr.Expr { return c.Ge(0) }).
			Default(18)
		tbl.Column("joined", ddl.DateTime).Default(sqlexpr.CurrentTimestamp)
	})
	if err != nil {
		t.Fatalf("CreateTable(members) error = %v", err)
	}

	tables, err := r.Tables(ctx)
	if err != nil {
		t.Fatalf("Tables() error = %v", err)
	}
	if want := []string{"members", "teams"}; !reflect.DeepEqual(tables, want) {
		t.Fatalf("Tables() = %v, want %v", tables, want)
	}

	stored, err := r.TableSQL(ctx, "members")
	if err != nil {
		t.Fatalf("TableSQL() error = %v", err)
	}
	for _, part := range []string{
		`REFERENCES "teams"("id") ON DELETE CASCADE`,
		`CHECK ("age" >= 0) DEFAULT (18)`,
		`DEFAULT (CURRENT_TIMESTAMP)`,
	} {
		if !strings.Contains(stored, part) {
			t.Errorf("stored DDL missing %q:\n%s", part, stored)
		}
	}

	// CHECK is enforced, DEFAULT applied, foreign keys on.
	mustExec(t, r, `INSERT INTO teams (name) VALUES ('red')`)
	mustExec(t, r, `INSERT INTO members (id, team_id) VALUES (1, 1)`)
	if err := r.Exec(ctx, `INSERT INTO members (id, team_id, age) VALUES (2, 1, -1)`); err == nil {
		t.Errorf("insert violating CHECK succeeded, want error")
	}
	if err := r.Exec(ctx, `INSERT INTO members (id, team_id) VALUES (3, 99)`); err == nil {
		t.Errorf("insert violating FOREIGN KEY succeeded, want error")
	}
}

// TestCreateTableRowIDFallback verifies a REFERENCES clause to a table
// without a declared primary key targets the rowid.
func TestCreateTableRowIDFallback(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	ctx := context.Background()
	mustExec(t, r, `CREATE TABLE tags (label TEXT)`)

	err := storage.CreateTable(ctx, wrap(r), "posts", ddl.TableOptions{}, func(tbl *ddl.TableSpec) {
		tbl.Column("tag", ddl.Integer).References(ddl.ForeignKey{Table: "tags"})
	})
	if err != nil {
		t.Fatalf("CreateTable() error = %v", err)
	}
	stored, err := r.TableSQL(ctx, "posts")
	if err != nil {
		t.Fatalf("TableSQL() error = %v", err)
	}
	if !strings.Contains(stored, `REFERENCES "tags"(_rowid_)`) {
		t.Fatalf("stored DDL = %q, want rowid reference", stored)
	}
}

// TestCreateTableExecutionError verifies SQLite rejections come back as
// *ddl.ExecutionError carrying the statement.
func TestCreateTableExecutionError(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	err := storage.CreateTable(context.Background(), wrap(r), "bad", ddl.TableOptions{}, func(tbl *ddl.TableSpec) {
		tbl.Column("id", ddl.Text).PrimaryKey(ddl.PrimaryKey{Autoincrement: true})
	})

	var execErr *ddl.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("CreateTable() error = %v, want *ddl.ExecutionError", err)
	}
	if !strings.Contains(execErr.Statement, "AUTOINCREMENT") {
		t.Fatalf("ExecutionError.Statement = %q, want the rendered statement", execErr.Statement)
	}
}

// TestCreateTableWithoutRowIDTemporary applies the table-level flags.
func TestCreateTableWithoutRowIDTemporary(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	ctx := context.Background()
	opts := ddl.TableOptions{Temporary: true, IfNotExists: true, WithoutRowID: true}
	configure := func(tbl *ddl.TableSpec) {
		tbl.Column("k", ddl.Text).PrimaryKey(ddl.PrimaryKey{})
		tbl.Column("v", ddl.Blob)
	}

	// IF NOT EXISTS makes the second call a no-op.
	for i := 0; i < 2; i++ {
		if err := storage.CreateTable(ctx, wrap(r), "kv", opts, configure); err != nil {
			t.Fatalf("CreateTable() call %d error = %v", i, err)
		}
	}
	mustExec(t, r, `INSERT INTO temp.kv (k, v) VALUES ('a', X'00')`)
}

// BenchmarkCreateTable measures render + execute of a small table.
func BenchmarkCreateTable(b *testing.B) {
	r := newRepo(b)
	repo := wrap(r)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		err := storage.CreateTable(ctx, repo, "events", ddl.TableOptions{IfNotExists: true}, func(tbl *ddl.TableSpec) {
			tbl.Column("id", ddl.Integer).PrimaryKey(ddl.PrimaryKey{})
			tbl.Column("payload", ddl.Text).NotNull()
		})
		if err != nil {
			b.Fatalf("CreateTable() error = %v", err)
		}
	}
}
