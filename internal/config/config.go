// Package config defines the declarative schema document: a JSON or YAML file
// listing the tables to create, in order, with their columns and constraints.
//
// Example (YAML):
//
//	job: app-schema
//	storage: {kind: sqlite, dsn: "file:app.db"}
//	tables:
//	  - name: users
//	    if_not_exists: true
//	    columns:
//	      - {name: id, type: INTEGER, primary_key: {autoincrement: true}}
//	      - {name: email, type: TEXT, not_null: true, unique: {on_conflict: REPLACE}, collate: NOCASE}
//	      - {name: age, type: INTEGER, check: "age >= 0", default: 0}
//	      - {name: team_id, type: INTEGER, references: {table: teams, on_delete: CASCADE}}
//
// Keyword fields (types, orderings, conflict resolutions, actions) are kept as
// strings here and parsed by ValidateDocument and the ddlgen package.
package config

// Document is the top-level object decoded from a schema file.
type Document struct {
	// Job labels metrics emitted while applying the document.
	Job string `json:"job" yaml:"job"`

	// Storage selects the database the document is applied to.
	Storage Storage `json:"storage" yaml:"storage"`

	// Tables are created in order; a REFERENCES clause without a column sees
	// the primary keys of tables created before it.
	Tables []Table `json:"tables" yaml:"tables"`
}

// Storage selects the backend and connection.
type Storage struct {
	// Kind is a registered storage kind, e.g. "sqlite".
	Kind string `json:"kind" yaml:"kind"`

	// DSN is handed to the backend driver unchanged.
	DSN string `json:"dsn" yaml:"dsn"`
}

// Table describes one CREATE TABLE statement.
type Table struct {
	Name         string   `json:"name" yaml:"name"`
	Temporary    bool     `json:"temporary" yaml:"temporary"`
	IfNotExists  bool     `json:"if_not_exists" yaml:"if_not_exists"`
	WithoutRowID bool     `json:"without_rowid" yaml:"without_rowid"`
	Columns      []Column `json:"columns" yaml:"columns"`
}

// Column describes one column definition.
type Column struct {
	Name string `json:"name" yaml:"name"`

	// Type is a column type keyword (TEXT, INTEGER, ...) or a logical alias
	// such as "int" or "string"; see ColumnType.
	Type string `json:"type" yaml:"type"`

	PrimaryKey *PrimaryKey `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	NotNull    *Constraint `json:"not_null,omitempty" yaml:"not_null,omitempty"`
	Unique     *Constraint `json:"unique,omitempty" yaml:"unique,omitempty"`

	// Check is a raw SQL boolean expression.
	Check string `json:"check,omitempty" yaml:"check,omitempty"`

	// Default is a literal value inlined into DEFAULT (...).
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// DefaultSQL is a raw SQL default expression such as CURRENT_TIMESTAMP.
	// It must not be combined with Default.
	DefaultSQL string `json:"default_sql,omitempty" yaml:"default_sql,omitempty"`

	// Collate names a built-in or connection-registered collation.
	Collate string `json:"collate,omitempty" yaml:"collate,omitempty"`

	References *References `json:"references,omitempty" yaml:"references,omitempty"`
}

// PrimaryKey configures a column PRIMARY KEY clause.
type PrimaryKey struct {
	Order         string `json:"order,omitempty" yaml:"order,omitempty"`
	OnConflict    string `json:"on_conflict,omitempty" yaml:"on_conflict,omitempty"`
	Autoincrement bool   `json:"autoincrement,omitempty" yaml:"autoincrement,omitempty"`
}

// References configures a column REFERENCES clause.
type References struct {
	Table string `json:"table" yaml:"table"`

	// Column is optional; when empty the referenced table's primary key, or
	// its rowid, is used.
	Column string `json:"column,omitempty" yaml:"column,omitempty"`

	OnDelete string `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
	OnUpdate string `json:"on_update,omitempty" yaml:"on_update,omitempty"`

	// External marks Table as existing outside this document, silencing the
	// unknown-table warning.
	External bool `json:"external,omitempty" yaml:"external,omitempty"`
}
