package sqlexpr

import "strings"

type binary struct {
	lhs Expr
	op  string
	rhs Expr
}

func (e binary) AppendSQL(b *strings.Builder, args *[]any) {
	e.lhs.AppendSQL(b, args)
	b.WriteByte(' ')
	b.WriteString(e.op)
	b.WriteByte(' ')
	e.rhs.AppendSQL(b, args)
}

// Compare renders "lhs op rhs" for an arbitrary binary operator such as "<>"
// or "||". Non-Expr operands are converted with Value.
func Compare(lhs any, op string, rhs any) Expr {
	return binary{Value(lhs), op, Value(rhs)}
}

type postfix struct {
	lhs Expr
	op  string
}

func (e postfix) AppendSQL(b *strings.Builder, args *[]any) {
	e.lhs.AppendSQL(b, args)
	b.WriteByte(' ')
	b.WriteString(e.op)
}

type in struct {
	lhs  Expr
	list []Expr
}

func (e in) AppendSQL(b *strings.Builder, args *[]any) {
	e.lhs.AppendSQL(b, args)
	b.WriteString(" IN (")
	for i, v := range e.list {
		if i > 0 {
			b.WriteString(", ")
		}
		v.AppendSQL(b, args)
	}
	b.WriteByte(')')
}

type between struct {
	lhs, lo, hi Expr
}

func (e between) AppendSQL(b *strings.Builder, args *[]any) {
	e.lhs.AppendSQL(b, args)
	b.WriteString(" BETWEEN ")
	e.lo.AppendSQL(b, args)
	b.WriteString(" AND ")
	e.hi.AppendSQL(b, args)
}

type junction struct {
	op    string
	terms []Expr
}

// And joins terms with AND. Each term is parenthesized when more than one is
// given; a single term renders unchanged.
func And(terms ...Expr) Expr { return junction{op: "AND", terms: terms} }

// Or joins terms with OR, parenthesizing as And does.
func Or(terms ...Expr) Expr { return junction{op: "OR", terms: terms} }

func (j junction) AppendSQL(b *strings.Builder, args *[]any) {
	switch len(j.terms) {
	case 0:
		// Empty AND is true, empty OR is false.
		if j.op == "AND" {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
		return
	case 1:
		j.terms[0].AppendSQL(b, args)
		return
	}
	for i, t := range j.terms {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(j.op)
			b.WriteByte(' ')
		}
		b.WriteByte('(')
		t.AppendSQL(b, args)
		b.WriteByte(')')
	}
}

type not struct{ e Expr }

// Not renders "NOT (e)".
func Not(e Expr) Expr { return not{e} }

func (n not) AppendSQL(b *strings.Builder, args *[]any) {
	b.WriteString("NOT (")
	n.e.AppendSQL(b, args)
	b.WriteByte(')')
}
