package store

import (
	"context"
	"fmt"
)

// DomainView is the enriched read-model for a domain: the row plus the
// derived counts and owner the original implementation exposes
// (original_source/src/schema.rs's `Domain` struct carries `accounts`,
// `assets`, `nfts`, `owned_by`).
type DomainView struct {
	Name      string  `db:"name" json:"id"`
	Logo      *string `db:"logo" json:"logo"`
	Metadata  string  `db:"metadata" json:"metadata"`
	OwnedBy   *string `db:"owned_by" json:"owned_by"`
	Accounts  int     `db:"accounts" json:"accounts"`
	Assets    int     `db:"assets" json:"asset_definitions"`
	Nfts      int     `db:"nfts" json:"nfts"`
}

const domainViewSelect = `
SELECT
	d.name, d.logo, d.metadata,
	(SELECT do2.account_signatory || '@' || do2.account_domain FROM domain_owners do2 WHERE do2.domain = d.name LIMIT 1) AS owned_by,
	(SELECT COUNT(*) FROM accounts a WHERE a.domain = d.name) AS accounts,
	(SELECT COUNT(*) FROM asset_definitions ad WHERE ad.domain = d.name) AS assets,
	(SELECT COUNT(*) FROM nfts n WHERE n.domain = d.name) AS nfts
FROM domains d`

func (r *Repository) ListDomains(ctx context.Context, p Page) (Paginated[DomainView], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM domains`); err != nil {
		return Paginated[DomainView]{}, fmt.Errorf("count domains: %w", err)
	}

	var rows []DomainView
	err := r.db.SelectContext(ctx, &rows, domainViewSelect+` ORDER BY d.name ASC LIMIT ? OFFSET ?`, p.Limit(), p.Offset())
	if err != nil {
		return Paginated[DomainView]{}, fmt.Errorf("list domains: %w", err)
	}
	return NewPaginated(rows, p, total), nil
}

func (r *Repository) GetDomain(ctx context.Context, name string) (DomainView, bool, error) {
	var d DomainView
	err := r.db.GetContext(ctx, &d, domainViewSelect+` WHERE d.name = ?`, name)
	return scanOptional(d, err)
}
