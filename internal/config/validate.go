package config

import (
	"fmt"
	"strings"

	"sqlddl/internal/ddl"
)

// IssueSeverity represents the severity of a document issue.
type IssueSeverity string

const (
	// SeverityError indicates an issue that should block rendering.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates an issue worth surfacing that does not block.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the document (e.g. "tables[1].columns[0].type").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidateDocument performs static checks over a decoded document. It does
// not mutate the document.
//
// The table builder itself renders whatever it is given; these checks catch
// mistakes that would otherwise only surface when SQLite rejects the
// statement, or that SQLite would silently accept.
func ValidateDocument(d Document) []Issue {
	var issues []Issue

	if len(d.Tables) == 0 {
		issues = append(issues, Issue{SeverityError, "tables", "at least one table is required"})
	}

	known := make(map[string]bool, len(d.Tables))
	for _, t := range d.Tables {
		known[strings.ToLower(t.Name)] = true
	}

	seen := map[string]int{}
	for i, t := range d.Tables {
		path := fmt.Sprintf("tables[%d]", i)
		if t.Name == "" {
			issues = append(issues, Issue{SeverityError, path + ".name", "table name must not be empty"})
		} else if prev, dup := seen[strings.ToLower(t.Name)]; dup {
			issues = append(issues, Issue{SeverityWarning, path + ".name",
				fmt.Sprintf("table %q is also declared at tables[%d]", t.Name, prev)})
		} else {
			seen[strings.ToLower(t.Name)] = i
		}
		issues = append(issues, validateTable(path, t, known)...)
	}
	return issues
}

func validateTable(path string, t Table, known map[string]bool) []Issue {
	var issues []Issue

	if len(t.Columns) == 0 {
		issues = append(issues, Issue{SeverityError, path + ".columns", "at least one column is required"})
	}

	seen := map[string]int{}
	pkCount := 0
	for j, c := range t.Columns {
		cpath := fmt.Sprintf("%s.columns[%d]", path, j)
		if c.Name == "" {
			issues = append(issues, Issue{SeverityError, cpath + ".name", "column name must not be empty"})
		} else if prev, dup := seen[strings.ToLower(c.Name)]; dup {
			// SQLite column names are case-insensitive.
			issues = append(issues, Issue{SeverityWarning, cpath + ".name",
				fmt.Sprintf("column %q duplicates columns[%d]; SQLite will reject the table", c.Name, prev)})
		} else {
			seen[strings.ToLower(c.Name)] = j
		}
		if c.PrimaryKey != nil {
			pkCount++
		}
		issues = append(issues, validateColumn(cpath, c, known)...)
	}
	if pkCount > 1 {
		issues = append(issues, Issue{SeverityError, path + ".columns",
			fmt.Sprintf("%d columns declare primary_key; a table has at most one", pkCount)})
	}
	if t.WithoutRowID && pkCount == 0 {
		issues = append(issues, Issue{SeverityError, path + ".without_rowid",
			"WITHOUT ROWID tables require a primary key"})
	}
	return issues
}

func validateColumn(path string, c Column, known map[string]bool) []Issue {
	var issues []Issue
	errorf := func(field, format string, a ...any) {
		issues = append(issues, Issue{SeverityError, path + field, fmt.Sprintf(format, a...)})
	}

	typ, err := ColumnType(c.Type)
	if err != nil {
		errorf(".type", "unknown column type %q", c.Type)
	}

	if pk := c.PrimaryKey; pk != nil {
		desc := false
		if pk.Order != "" {
			o, err := ddl.ParseOrdering(pk.Order)
			if err != nil {
				errorf(".primary_key.order", "unknown ordering %q", pk.Order)
			}
			desc = err == nil && o == ddl.Desc
		}
		checkConflict(pk.OnConflict, path+".primary_key.on_conflict", &issues)
		if pk.Autoincrement && err == nil && typ != ddl.Integer {
			errorf(".primary_key.autoincrement", "AUTOINCREMENT requires type INTEGER, got %s", typ)
		}
		if pk.Autoincrement && desc {
			errorf(".primary_key.autoincrement", "AUTOINCREMENT is not allowed with DESC ordering")
		}
	}
	if c.NotNull.Enabled() {
		checkConflict(c.NotNull.OnConflict, path+".not_null.on_conflict", &issues)
	}
	if c.Unique.Enabled() {
		checkConflict(c.Unique.OnConflict, path+".unique.on_conflict", &issues)
	}
	if c.Default != nil && c.DefaultSQL != "" {
		errorf(".default", "default and default_sql are mutually exclusive")
	}
	if c.Collate != "" && !ddl.IsBuiltinCollation(c.Collate) {
		issues = append(issues, Issue{SeverityWarning, path + ".collate",
			fmt.Sprintf("collation %q is not built in; it must be registered on the connection", c.Collate)})
	}

	if ref := c.References; ref != nil {
		if ref.Table == "" {
			errorf(".references.table", "referenced table must not be empty")
		} else if !known[strings.ToLower(ref.Table)] && !ref.External {
			issues = append(issues, Issue{SeverityWarning, path + ".references.table",
				fmt.Sprintf("table %q is not declared in this document; set external: true if it already exists", ref.Table)})
		}
		actions := [...]struct{ field, v string }{
			{"on_delete", ref.OnDelete},
			{"on_update", ref.OnUpdate},
		}
		for _, a := range actions {
			if a.v == "" {
				continue
			}
			if _, err := ddl.ParseForeignKeyAction(a.v); err != nil {
				errorf(".references."+a.field, "unknown foreign key action %q", a.v)
			}
		}
	}
	return issues
}

func checkConflict(v, path string, issues *[]Issue) {
	if v == "" {
		return
	}
	if _, err := ddl.ParseConflictResolution(v); err != nil {
		*issues = append(*issues, Issue{SeverityError, path, fmt.Sprintf("unknown conflict resolution %q", v)})
	}
}
