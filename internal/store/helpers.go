package store

import (
	"database/sql"
	"fmt"
)

// scanOptional turns the common "GetContext into a zero value, sql.ErrNoRows
// means not-found" pattern into a (value, found, error) triple so callers
// don't each repeat the sql.ErrNoRows check.
func scanOptional[T any](v T, err error) (T, bool, error) {
	if err == sql.ErrNoRows {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("query: %w", err)
	}
	return v, true, nil
}
