// Package querybuilder assembles Postgres statements with numbered placeholders.
// It covers the handful of shapes the repositories issue; anything richer is
// written as plain SQL next to its repository.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates statement text and bound args, numbering placeholders as it goes.
type sqlWriter struct {
	strings.Builder
	args []any
}

func (w *sqlWriter) bind(v any) {
	w.args = append(w.args, v)
	w.WriteString("$" + strconv.Itoa(len(w.args)))
}

func (w *sqlWriter) list(values []any) {
	for i, v := range values {
		if i > 0 {
			w.WriteString(", ")
		}
		w.bind(v)
	}
}

func (w *sqlWriter) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.WriteString(" WHERE ")
		} else {
			w.WriteString(" AND ")
		}
		c(w)
	}
}

func (w *sqlWriter) clause(keyword string, parts []string) {
	if len(parts) > 0 {
		w.WriteString(" " + keyword + " " + strings.Join(parts, ", "))
	}
}

// Condition renders one AND-joined predicate.
type Condition func(w *sqlWriter)

func Eq(column string, value any) Condition {
	return func(w *sqlWriter) {
		w.WriteString(column + " = ")
		w.bind(value)
	}
}

// In matches column against values. An empty set matches nothing.
func In(column string, values []any) Condition {
	return func(w *sqlWriter) {
		if len(values) == 0 {
			w.WriteString("FALSE")
			return
		}
		w.WriteString(column + " IN (")
		w.list(values)
		w.WriteString(")")
	}
}

func Between(column string, from, to any) Condition {
	return func(w *sqlWriter) {
		w.WriteString(column + " BETWEEN ")
		w.bind(from)
		w.WriteString(" AND ")
		w.bind(to)
	}
}

func IsNull(column string) Condition {
	return func(w *sqlWriter) { w.WriteString(column + " IS NULL") }
}

// Expr renders raw SQL, binding args in order to each ? in sql.
func Expr(sql string, args ...any) Condition {
	return func(w *sqlWriter) {
		parts := strings.Split(sql, "?")
		for i, part := range parts {
			w.WriteString(part)
			if i < len(parts)-1 && i < len(args) {
				w.bind(args[i])
			}
		}
	}
}

// All groups conds with AND inside parentheses.
func All(conds ...Condition) Condition {
	return group(" AND ", conds)
}

// Or groups conds with OR inside parentheses.
func Or(conds ...Condition) Condition {
	return group(" OR ", conds)
}

func group(sep string, conds []Condition) Condition {
	return func(w *sqlWriter) {
		w.WriteString("(")
		for i, c := range conds {
			if i > 0 {
				w.WriteString(sep)
			}
			c(w)
		}
		w.WriteString(")")
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder { b.table = table; return b }

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder { b.limit = n; return b }

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 || strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select needs columns and a table")
	}

	var w sqlWriter
	w.WriteString("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	w.where(b.where)
	w.clause("ORDER BY", b.orderBy)
	if b.limit > 0 {
		w.WriteString(" LIMIT " + strconv.Itoa(b.limit))
	}
	return w.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder { return &InsertBuilder{table: table} }

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder { b.columns = columns; return b }

func (b *InsertBuilder) Values(values ...any) *InsertBuilder { b.values = values; return b }

// Suffix appends raw SQL such as ON CONFLICT or RETURNING clauses.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder { b.suffix = strings.TrimSpace(sql); return b }

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.values) != len(b.columns):
		return "", nil, fmt.Errorf("insert has %d values for %d columns", len(b.values), len(b.columns))
	}

	var w sqlWriter
	w.WriteString("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES (")
	w.list(b.values)
	w.WriteString(")")
	if b.suffix != "" {
		w.WriteString(" " + b.suffix)
	}
	return w.String(), w.args, nil
}

type assignment struct {
	column string
	value  any
	raw    string
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder { return &UpdateBuilder{table: table} }

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a raw SQL expression, e.g. NOW(). The expression takes no args.
func (b *UpdateBuilder) SetExpr(column, expr string) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, raw: expr})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder { b.suffix = strings.TrimSpace(sql); return b }

// ToSQL refuses unconditional updates.
func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("update table is required")
	case len(b.sets) == 0:
		return "", nil, fmt.Errorf("update sets are required")
	case len(b.where) == 0:
		return "", nil, fmt.Errorf("update without conditions is not allowed")
	}

	var w sqlWriter
	w.WriteString("UPDATE " + b.table + " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString(s.column + " = ")
		if s.raw != "" {
			w.WriteString(s.raw)
			continue
		}
		w.bind(s.value)
	}
	w.where(b.where)
	if b.suffix != "" {
		w.WriteString(" " + b.suffix)
	}
	return w.String(), w.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder { return &DeleteBuilder{table: table} }

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.where = append(b.where, conds...)
	return b
}

// ToSQL refuses unconditional deletes.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete without conditions is not allowed")
	}

	var w sqlWriter
	w.WriteString("DELETE FROM " + b.table)
	w.where(b.where)
	return w.String(), w.args, nil
}
