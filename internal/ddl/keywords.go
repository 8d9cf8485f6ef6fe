package ddl

import (
	"fmt"
	"strings"
)

// ColumnType is the declared type of a column. The rendered keyword is the
// exact token emitted after the column name.
type ColumnType int

const (
	Text ColumnType = iota
	Integer
	Double
	Numeric
	Boolean
	Blob
	Date
	DateTime
)

var columnTypeKeywords = [...]string{
	Text:     "TEXT",
	Integer:  "INTEGER",
	Double:   "DOUBLE",
	Numeric:  "NUMERIC",
	Boolean:  "BOOLEAN",
	Blob:     "BLOB",
	Date:     "DATE",
	DateTime: "DATETIME",
}

func (t ColumnType) String() string { return keyword(columnTypeKeywords[:], int(t)) }

// Ordering is the sort direction of a column PRIMARY KEY.
type Ordering int

const (
	Asc Ordering = iota
	Desc
)

var orderingKeywords = [...]string{
	Asc:  "ASC",
	Desc: "DESC",
}

func (o Ordering) String() string { return keyword(orderingKeywords[:], int(o)) }

// ConflictResolution is the algorithm named in an ON CONFLICT clause.
type ConflictResolution int

const (
	Rollback ConflictResolution = iota
	Abort
	Fail
	Ignore
	Replace
)

var conflictKeywords = [...]string{
	Rollback: "ROLLBACK",
	Abort:    "ABORT",
	Fail:     "FAIL",
	Ignore:   "IGNORE",
	Replace:  "REPLACE",
}

func (r ConflictResolution) String() string { return keyword(conflictKeywords[:], int(r)) }

// ForeignKeyAction is the action of an ON DELETE or ON UPDATE clause.
type ForeignKeyAction int

const (
	Cascade ForeignKeyAction = iota
	Restrict
	SetNull
	SetDefault
)

var actionKeywords = [...]string{
	Cascade:    "CASCADE",
	Restrict:   "RESTRICT",
	SetNull:    "SET NULL",
	SetDefault: "SET DEFAULT",
}

func (a ForeignKeyAction) String() string { return keyword(actionKeywords[:], int(a)) }

// Built-in collations. Any other name is taken to be a custom collation
// registered on the connection.
const (
	CollateBinary = "BINARY"
	CollateNoCase = "NOCASE"
	CollateRTrim  = "RTRIM"
)

func keyword(table []string, i int) string {
	if i < 0 || i >= len(table) {
		return fmt.Sprintf("%%!(%d)", i)
	}
	return table[i]
}

func parseKeyword(kind string, table []string, s string) (int, error) {
	norm := strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	for i, kw := range table {
		if kw == norm {
			return i, nil
		}
	}
	return 0, fmt.Errorf("ddl: unknown %s %q", kind, s)
}

// ParseColumnType maps a keyword such as "integer" to its ColumnType. Matching
// is case-insensitive.
func ParseColumnType(s string) (ColumnType, error) {
	i, err := parseKeyword("column type", columnTypeKeywords[:], s)
	return ColumnType(i), err
}

// ParseOrdering maps "ASC"/"DESC" to an Ordering.
func ParseOrdering(s string) (Ordering, error) {
	i, err := parseKeyword("ordering", orderingKeywords[:], s)
	return Ordering(i), err
}

// ParseConflictResolution maps a resolution keyword to a ConflictResolution.
func ParseConflictResolution(s string) (ConflictResolution, error) {
	i, err := parseKeyword("conflict resolution", conflictKeywords[:], s)
	return ConflictResolution(i), err
}

// ParseForeignKeyAction maps an action keyword to a ForeignKeyAction. Both
// "SET NULL" and "set  null" are accepted.
func ParseForeignKeyAction(s string) (ForeignKeyAction, error) {
	i, err := parseKeyword("foreign key action", actionKeywords[:], s)
	return ForeignKeyAction(i), err
}

// IsBuiltinCollation reports whether name is one of the collations SQLite
// ships with.
func IsBuiltinCollation(name string) bool {
	switch strings.ToUpper(name) {
	case CollateBinary, CollateNoCase, CollateRTrim:
		return true
	}
	return false
}

// Ptr returns a pointer to v, for filling the optional keyword fields of
// PrimaryKey and ForeignKey.
func Ptr[T ColumnType | Ordering | ConflictResolution | ForeignKeyAction](v T) *T {
	return &v
}
