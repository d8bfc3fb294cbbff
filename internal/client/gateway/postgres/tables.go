package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
)

var errNoFilters = errors.New("refusing to write without filters")

func (g *Gateway) Select(ctx context.Context, q gateway.Query) (*gateway.Result, error) {
	t, err := lookupTable(q.Table)
	if err != nil {
		return nil, err
	}

	cols, err := selectList(t, q.Columns)
	if err != nil {
		return nil, err
	}

	b := &builder{}
	where, err := b.where(t, q.Filters, "", "")
	if err != nil {
		return nil, err
	}
	tail, err := b.orderAndRange(t, q)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + cols + " FROM " + ident(t.name) + where + tail
	rows, err := g.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	out, err := scanRows(rows)
	if err != nil {
		return nil, err
	}

	res := &gateway.Result{Rows: out}
	if q.Count {
		countQuery := "SELECT count(*) FROM " + ident(t.name) + where
		if err := g.db.QueryRowContext(ctx, countQuery, b.args...).Scan(&res.Count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
	}
	return res, nil
}

func (g *Gateway) Insert(ctx context.Context, tableName string, rows ...gateway.Row) ([]gateway.Row, error) {
	t, err := lookupTable(tableName)
	if err != nil {
		return nil, err
	}
	if t.readOnly {
		return nil, gateway.ErrUnauthorized
	}
	if len(rows) == 0 {
		return nil, nil
	}

	uid, err := g.currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	cols := sortedKeys(rows[0])
	for _, c := range cols {
		if err := t.checkColumn(c); err != nil {
			return nil, err
		}
	}

	b := &builder{}
	tuples := make([]string, 0, len(rows))
	for _, r := range rows {
		if len(r) != len(cols) {
			return nil, fmt.Errorf("all rows inserted into %q must have the same columns", t.name)
		}
		if t.ownerColumn != "" && fmt.Sprint(r[t.ownerColumn]) != uid {
			return nil, gateway.ErrUnauthorized
		}
		placeholders := make([]string, 0, len(cols))
		for _, c := range cols {
			v, ok := r[c]
			if !ok {
				return nil, fmt.Errorf("all rows inserted into %q must have the same columns", t.name)
			}
			placeholders = append(placeholders, b.arg(v))
		}
		tuples = append(tuples, "("+strings.Join(placeholders, ", ")+")")
	}

	quoted := make([]string, 0, len(cols))
	for _, c := range cols {
		quoted = append(quoted, ident(c))
	}

	if t.parent != nil {
		if err := g.checkParent(ctx, t.parent, rows, uid); err != nil {
			return nil, err
		}
	}

	query := "INSERT INTO " + ident(t.name) + " (" + strings.Join(quoted, ", ") + ") VALUES " +
		strings.Join(tuples, ", ") + " RETURNING *"

	return g.queryRows(ctx, g.db, query, b.args)
}

func (g *Gateway) Update(ctx context.Context, tableName string, values gateway.Row, filters ...gateway.Filter) ([]gateway.Row, error) {
	t, err := lookupTable(tableName)
	if err != nil {
		return nil, err
	}
	if t.readOnly {
		return nil, gateway.ErrUnauthorized
	}
	if len(filters) == 0 {
		return nil, errNoFilters
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("nothing to update on %q", t.name)
	}

	uid, err := g.currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	b := &builder{}
	sets := make([]string, 0, len(values))
	for _, c := range sortedKeys(values) {
		if err := t.checkColumn(c); err != nil {
			return nil, err
		}
		sets = append(sets, ident(c)+" = "+b.arg(values[c]))
	}

	where, err := b.where(t, filters, t.updatePolicy, uid)
	if err != nil {
		return nil, err
	}

	query := "UPDATE " + ident(t.name) + " SET " + strings.Join(sets, ", ") + where + " RETURNING *"

	return g.queryRows(ctx, g.db, query, b.args)
}

func (g *Gateway) Delete(ctx context.Context, tableName string, filters ...gateway.Filter) (int64, error) {
	t, err := lookupTable(tableName)
	if err != nil {
		return 0, err
	}
	if t.readOnly {
		return 0, gateway.ErrUnauthorized
	}
	if len(filters) == 0 {
		return 0, errNoFilters
	}

	uid, err := g.currentUserID(ctx)
	if err != nil {
		return 0, err
	}

	b := &builder{}
	where, err := b.where(t, filters, t.deletePolicy, uid)
	if err != nil {
		return 0, err
	}

	res, err := g.db.ExecContext(ctx, "DELETE FROM "+ident(t.name)+where, b.args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (g *Gateway) queryRows(ctx context.Context, db dbx.DBTX, query string, args []any) ([]gateway.Row, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanRows(rows)
}

// scanRows drains rows into column maps and closes them.
func scanRows(rows *sql.Rows) ([]gateway.Row, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	out := make([]gateway.Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(gateway.Row, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}

// checkParent fails with ErrUnauthorized unless every parent referenced by
// rows is owned by uid.
func (g *Gateway) checkParent(ctx context.Context, p *parentRef, rows []gateway.Row, uid string) error {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		id, ok := int64Value(r[p.column])
		if !ok {
			return fmt.Errorf("%s must be an integer id", p.column)
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	query := "SELECT count(*) FROM " + ident(p.table) + " WHERE " + ident("id") + " = ANY($1) AND " +
		ident(p.ownerColumn) + " = $2"

	var owned int
	if err := g.db.QueryRowContext(ctx, query, ids, uid).Scan(&owned); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if owned != len(ids) {
		return gateway.ErrUnauthorized
	}
	return nil
}

func int64Value(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	}
	return 0, false
}

func sortedKeys(r gateway.Row) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
