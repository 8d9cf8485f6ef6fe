package sqlexpr

import "strings"

// Column references a column by name.
type Column struct {
	Name string
}

// Col returns a reference to the named column.
func Col(name string) Column { return Column{Name: name} }

func (c Column) AppendSQL(b *strings.Builder, _ *[]any) {
	b.WriteString(QuoteIdent(c.Name))
}

func (c Column) Eq(v any) Expr { return binary{c, "=", Value(v)} }
func (c Column) Ne(v any) Expr { return binary{c, "<>", Value(v)} }
func (c Column) Lt(v any) Expr { return binary{c, "<", Value(v)} }
func (c Column) Le(v any) Expr { return binary{c, "<=", Value(v)} }
func (c Column) Gt(v any) Expr { return binary{c, ">", Value(v)} }
func (c Column) Ge(v any) Expr { return binary{c, ">=", Value(v)} }

// Like renders "col LIKE pattern".
func (c Column) Like(pattern any) Expr { return binary{c, "LIKE", Value(pattern)} }

// Glob renders "col GLOB pattern".
func (c Column) Glob(pattern any) Expr { return binary{c, "GLOB", Value(pattern)} }

// In renders "col IN (v1, v2, ...)".
func (c Column) In(values ...any) Expr {
	list := make([]Expr, len(values))
	for i, v := range values {
		list[i] = Value(v)
	}
	return in{lhs: c, list: list}
}

// Between renders "col BETWEEN lo AND hi".
func (c Column) Between(lo, hi any) Expr {
	return between{lhs: c, lo: Value(lo), hi: Value(hi)}
}

func (c Column) IsNull() Expr    { return postfix{c, "IS NULL"} }
func (c Column) IsNotNull() Expr { return postfix{c, "IS NOT NULL"} }

// Length renders length(col).
func (c Column) Length() Expr { return Func("length", c) }
