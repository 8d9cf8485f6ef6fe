package config

import (
	"strings"

	"sqlddl/internal/ddl"
)

// typeAliases maps logical type names, as used by data contracts, onto
// column types. Exact column type keywords are matched first.
var typeAliases = map[string]ddl.ColumnType{
	"string":      ddl.Text,
	"varchar":     ddl.Text,
	"int":         ddl.Integer,
	"bigint":      ddl.Integer,
	"float":       ddl.Double,
	"real":        ddl.Double,
	"decimal":     ddl.Numeric,
	"bool":        ddl.Boolean,
	"bytes":       ddl.Blob,
	"timestamp":   ddl.DateTime,
	"timestamptz": ddl.DateTime,
}

// ColumnType resolves a document type name. It accepts every column type
// keyword case-insensitively plus the logical aliases above.
func ColumnType(s string) (ddl.ColumnType, error) {
	t, err := ddl.ParseColumnType(s)
	if err == nil {
		return t, nil
	}
	if alias, ok := typeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return alias, nil
	}
	return 0, err
}
