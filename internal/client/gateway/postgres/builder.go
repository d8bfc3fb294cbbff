package postgres

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/jackc/pgx/v5"
)

// builder accumulates positional arguments while a statement is assembled.
type builder struct {
	args []any
}

func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// where renders filters and an optional policy predicate as a WHERE clause.
// uid is only bound when the predicate references it.
func (b *builder) where(t *table, filters []gateway.Filter, policy, uid string) (string, error) {
	parts := make([]string, 0, len(filters)+1)

	for _, f := range filters {
		if err := t.checkColumn(f.Column); err != nil {
			return "", err
		}
		switch f.Op {
		case gateway.OpEq:
			parts = append(parts, ident(f.Column)+" = "+b.arg(f.Value))
		case gateway.OpIn:
			parts = append(parts, ident(f.Column)+" = ANY("+b.arg(f.Value)+")")
		default:
			return "", fmt.Errorf("unsupported filter operator %q", f.Op)
		}
	}

	if policy != "" {
		parts = append(parts, strings.ReplaceAll(policy, uidPlaceholder, b.arg(uid)))
	}

	if len(parts) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(parts, " AND "), nil
}

func (b *builder) orderAndRange(t *table, q gateway.Query) (string, error) {
	var sb strings.Builder

	if q.Order != nil {
		if err := t.checkColumn(q.Order.Column); err != nil {
			return "", err
		}
		dir := "DESC"
		if q.Order.Ascending {
			dir = "ASC"
		}
		sb.WriteString(" ORDER BY " + ident(q.Order.Column) + " " + dir)
	}

	switch {
	case q.Range != nil:
		if q.Range.From < 0 || q.Range.To < q.Range.From {
			return "", fmt.Errorf("invalid range %d-%d", q.Range.From, q.Range.To)
		}
		sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", q.Range.To-q.Range.From+1, q.Range.From))
	case q.Limit > 0:
		sb.WriteString(fmt.Sprintf(" LIMIT %d", q.Limit))
	}

	return sb.String(), nil
}

func selectList(t *table, cols []string) (string, error) {
	if len(cols) == 0 {
		return "*", nil
	}
	quoted := make([]string, 0, len(cols))
	for _, c := range cols {
		if err := t.checkColumn(c); err != nil {
			return "", err
		}
		quoted = append(quoted, ident(c))
	}
	return strings.Join(quoted, ", "), nil
}
