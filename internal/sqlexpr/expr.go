// Package sqlexpr builds small SQL expression trees and renders them to text.
//
// Rendering either binds literal values as "?" placeholders, appending them to
// an argument slice, or inlines them into the text when no slice is given.
// DDL clauses such as CHECK and DEFAULT cannot carry bound parameters in
// SQLite, so the table builder always renders with a nil slice.
package sqlexpr

import (
	"strings"
)

// Expr is a renderable SQL expression.
type Expr interface {
	// AppendSQL writes the expression to b. When args is nil, literal values
	// are inlined; otherwise each literal is appended to *args and written as
	// a placeholder.
	AppendSQL(b *strings.Builder, args *[]any)
}

// Render returns the SQL text of e. See Expr.AppendSQL for the meaning of args.
func Render(e Expr, args *[]any) string {
	var b strings.Builder
	e.AppendSQL(&b, args)
	return b.String()
}

// Value converts v to an expression. An Expr is returned unchanged; any other
// value becomes a literal.
func Value(v any) Expr {
	if e, ok := v.(Expr); ok {
		return e
	}
	return Lit(v)
}

// QuoteIdent returns id as a double-quoted SQL identifier, doubling any
// embedded double quotes.
func QuoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

type raw string

// Raw returns sql verbatim. The caller is responsible for its validity.
func Raw(sql string) Expr { return raw(sql) }

func (r raw) AppendSQL(b *strings.Builder, _ *[]any) { b.WriteString(string(r)) }

// CurrentTimestamp is the SQLite CURRENT_TIMESTAMP keyword.
var CurrentTimestamp Expr = raw("CURRENT_TIMESTAMP")

// Null is the NULL literal.
var Null Expr = raw("NULL")

type funcCall struct {
	name string
	args []Expr
}

// Func renders name(arg, ...). Non-Expr arguments are converted with Value.
func Func(name string, args ...any) Expr {
	f := funcCall{name: name, args: make([]Expr, len(args))}
	for i, a := range args {
		f.args[i] = Value(a)
	}
	return f
}

func (f funcCall) AppendSQL(b *strings.Builder, args *[]any) {
	b.WriteString(f.name)
	b.WriteByte('(')
	for i, a := range f.args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.AppendSQL(b, args)
	}
	b.WriteByte(')')
}
