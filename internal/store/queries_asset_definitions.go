package store

import (
	"context"
	"fmt"

	"github.com/iroha-explorer/explorer/internal/domain"
)

func (r *Repository) ListAssetDefinitions(ctx context.Context, f AssetDefinitionFilter, p Page) (Paginated[domain.AssetDefinition], error) {
	var cs clauseSet
	if f.Domain != nil {
		cs.add("domain = ?", *f.Domain)
	}

	countQ := newQB("SELECT COUNT(*) FROM asset_definitions").where(cs.clauses, cs.args)
	var total int
	if err := r.db.GetContext(ctx, &total, countQ.String(), countQ.Args()...); err != nil {
		return Paginated[domain.AssetDefinition]{}, fmt.Errorf("count asset_definitions: %w", err)
	}

	selectQ := newQB(`SELECT name, domain, owned_by_signatory, owned_by_domain, mintable, logo, metadata FROM asset_definitions`).
		where(cs.clauses, cs.args)
	selectQ.append(" ORDER BY domain ASC, name ASC LIMIT ? OFFSET ?", p.Limit(), p.Offset())

	var rows []domain.AssetDefinition
	if err := r.db.SelectContext(ctx, &rows, selectQ.String(), selectQ.Args()...); err != nil {
		return Paginated[domain.AssetDefinition]{}, fmt.Errorf("list asset_definitions: %w", err)
	}
	return NewPaginated(rows, p, total), nil
}

func (r *Repository) GetAssetDefinition(ctx context.Context, id domain.AssetDefinitionID) (domain.AssetDefinition, bool, error) {
	var a domain.AssetDefinition
	err := r.db.GetContext(ctx, &a,
		`SELECT name, domain, owned_by_signatory, owned_by_domain, mintable, logo, metadata
		 FROM asset_definitions WHERE name = ? AND domain = ?`, id.Name, id.Domain)
	return scanOptional(a, err)
}
