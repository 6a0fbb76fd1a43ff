package store

import (
	"context"
	"fmt"
)

// CountTable returns the row count of one of the schema's own tables.
// Used by the `scan` CLI command to dump a bootstrap summary; table must
// be one of the fixed names in schema.go, never user input.
func (r *Repository) CountTable(ctx context.Context, table string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
