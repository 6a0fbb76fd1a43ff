package store

import (
	"context"
	"fmt"

	"github.com/iroha-explorer/explorer/internal/domain"
)

// AccountView enriches Account with the account's granted role names
// (original_source/src/web.rs's AccountDTO carries `roles` alongside
// `id`/`metadata`).
type AccountView struct {
	domain.Account
	Roles []string `db:"-" json:"roles"`
}

func (r *Repository) ListAccounts(ctx context.Context, f AccountFilter, p Page) (Paginated[AccountView], error) {
	var cs clauseSet
	if f.Domain != nil {
		cs.add("domain = ?", *f.Domain)
	}

	countQ := newQB("SELECT COUNT(*) FROM accounts").where(cs.clauses, cs.args)
	var total int
	if err := r.db.GetContext(ctx, &total, countQ.String(), countQ.Args()...); err != nil {
		return Paginated[AccountView]{}, fmt.Errorf("count accounts: %w", err)
	}

	selectQ := newQB("SELECT signatory, domain, metadata FROM accounts").where(cs.clauses, cs.args)
	selectQ.append(" ORDER BY domain ASC, signatory ASC LIMIT ? OFFSET ?", p.Limit(), p.Offset())

	var rows []domain.Account
	if err := r.db.SelectContext(ctx, &rows, selectQ.String(), selectQ.Args()...); err != nil {
		return Paginated[AccountView]{}, fmt.Errorf("list accounts: %w", err)
	}

	views, err := r.attachRoles(ctx, rows)
	if err != nil {
		return Paginated[AccountView]{}, err
	}
	return NewPaginated(views, p, total), nil
}

func (r *Repository) GetAccount(ctx context.Context, id domain.AccountID) (AccountView, bool, error) {
	var a domain.Account
	err := r.db.GetContext(ctx, &a, `SELECT signatory, domain, metadata FROM accounts WHERE signatory = ? AND domain = ?`,
		id.Signatory, id.Domain)
	acct, found, err := scanOptional(a, err)
	if err != nil || !found {
		return AccountView{}, found, err
	}
	views, err := r.attachRoles(ctx, []domain.Account{acct})
	if err != nil {
		return AccountView{}, false, err
	}
	return views[0], true, nil
}

func (r *Repository) attachRoles(ctx context.Context, accounts []domain.Account) ([]AccountView, error) {
	views := make([]AccountView, len(accounts))
	for i, a := range accounts {
		var roles []string
		err := r.db.SelectContext(ctx, &roles,
			`SELECT role FROM role_grants WHERE account_signatory = ? AND account_domain = ? ORDER BY role ASC`,
			a.Signatory, a.Domain)
		if err != nil {
			return nil, fmt.Errorf("load roles for %s@%s: %w", a.Signatory, a.Domain, err)
		}
		if roles == nil {
			roles = []string{}
		}
		views[i] = AccountView{Account: a, Roles: roles}
	}
	return views, nil
}
