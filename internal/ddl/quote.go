package ddl

import (
	"strings"

	"sqlddl/internal/sqlexpr"
)

func quoteIdents(ids []string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = sqlexpr.QuoteIdent(id)
	}
	return strings.Join(out, ", ")
}
