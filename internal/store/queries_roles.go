package store

import (
	"context"
	"fmt"

	"github.com/iroha-explorer/explorer/internal/domain"
)

func (r *Repository) ListRoles(ctx context.Context, p Page) (Paginated[domain.Role], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM roles`); err != nil {
		return Paginated[domain.Role]{}, fmt.Errorf("count roles: %w", err)
	}

	var rows []domain.Role
	err := r.db.SelectContext(ctx, &rows,
		`SELECT name, permissions FROM roles ORDER BY name ASC LIMIT ? OFFSET ?`, p.Limit(), p.Offset())
	if err != nil {
		return Paginated[domain.Role]{}, fmt.Errorf("list roles: %w", err)
	}
	return NewPaginated(rows, p, total), nil
}

func (r *Repository) GetRole(ctx context.Context, name string) (domain.Role, bool, error) {
	var role domain.Role
	err := r.db.GetContext(ctx, &role, `SELECT name, permissions FROM roles WHERE name = ?`, name)
	return scanOptional(role, err)
}

// RoleGrantees lists the accounts a role has been granted to.
func (r *Repository) RoleGrantees(ctx context.Context, name string, p Page) (Paginated[domain.AccountID], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM role_grants WHERE role = ?`, name); err != nil {
		return Paginated[domain.AccountID]{}, fmt.Errorf("count role grantees: %w", err)
	}

	var rows []struct {
		Signatory string `db:"account_signatory"`
		Domain    string `db:"account_domain"`
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT account_signatory, account_domain FROM role_grants WHERE role = ?
		 ORDER BY account_domain ASC, account_signatory ASC LIMIT ? OFFSET ?`, name, p.Limit(), p.Offset())
	if err != nil {
		return Paginated[domain.AccountID]{}, fmt.Errorf("list role grantees: %w", err)
	}

	ids := make([]domain.AccountID, len(rows))
	for i, row := range rows {
		ids[i] = domain.AccountID{Signatory: row.Signatory, Domain: row.Domain}
	}
	return NewPaginated(ids, p, total), nil
}
