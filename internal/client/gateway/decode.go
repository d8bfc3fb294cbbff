package gateway

import (
	"encoding/json"
	"fmt"
)

// Decode copies a row into dst, a pointer to a struct with json tags naming
// the columns.
func Decode(row Row, dst any) error {
	raw, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	return nil
}

// DecodeAll decodes every row into a new slice of T.
func DecodeAll[T any](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		var v T
		if err := Decode(r, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Single returns the only row, or ErrNotSingle for zero or many rows.
func Single(rows []Row) (Row, error) {
	if len(rows) != 1 {
		return nil, ErrNotSingle
	}
	return rows[0], nil
}

// MaybeSingle returns the only row, nil for no rows, and ErrNotSingle for
// more than one.
func MaybeSingle(rows []Row) (Row, error) {
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return rows[0], nil
	default:
		return nil, ErrNotSingle
	}
}
