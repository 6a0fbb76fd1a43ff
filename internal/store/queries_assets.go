package store

import (
	"context"
	"fmt"

	"github.com/iroha-explorer/explorer/internal/domain"
)

// AssetView is a row from v_assets: the balance plus its synthesized
// composite id (spec.md §5).
type AssetView struct {
	DefinitionName   string `db:"definition_name"`
	DefinitionDomain string `db:"definition_domain"`
	OwnedBySig       string `db:"owned_by_signatory"`
	OwnedByDomain    string `db:"owned_by_domain"`
	Value            string `db:"value"`
	ID               string `db:"id"`
}

func (r *Repository) ListAssets(ctx context.Context, f AssetFilter, p Page) (Paginated[AssetView], error) {
	var cs clauseSet
	if f.Owner != nil {
		owner, err := domain.ParseAccountID(*f.Owner)
		if err != nil {
			return Paginated[AssetView]{}, fmt.Errorf("%w: owner filter: %w", ErrInvalidFilter, err)
		}
		cs.add("owned_by_signatory = ? AND owned_by_domain = ?", owner.Signatory, owner.Domain)
	}
	if f.Definition != nil {
		def, err := domain.ParseAssetDefinitionID(*f.Definition)
		if err != nil {
			return Paginated[AssetView]{}, fmt.Errorf("%w: definition filter: %w", ErrInvalidFilter, err)
		}
		cs.add("definition_name = ? AND definition_domain = ?", def.Name, def.Domain)
	}

	countQ := newQB("SELECT COUNT(*) FROM v_assets").where(cs.clauses, cs.args)
	var total int
	if err := r.db.GetContext(ctx, &total, countQ.String(), countQ.Args()...); err != nil {
		return Paginated[AssetView]{}, fmt.Errorf("count assets: %w", err)
	}

	selectQ := newQB(`SELECT definition_name, definition_domain, owned_by_signatory, owned_by_domain, value, id FROM v_assets`).
		where(cs.clauses, cs.args)
	selectQ.append(" ORDER BY definition_domain ASC, definition_name ASC, owned_by_domain ASC, owned_by_signatory ASC LIMIT ? OFFSET ?",
		p.Limit(), p.Offset())

	var rows []AssetView
	if err := r.db.SelectContext(ctx, &rows, selectQ.String(), selectQ.Args()...); err != nil {
		return Paginated[AssetView]{}, fmt.Errorf("list assets: %w", err)
	}
	return NewPaginated(rows, p, total), nil
}

func (r *Repository) GetAsset(ctx context.Context, id domain.AssetID) (AssetView, bool, error) {
	var a AssetView
	err := r.db.GetContext(ctx, &a,
		`SELECT definition_name, definition_domain, owned_by_signatory, owned_by_domain, value, id
		 FROM v_assets WHERE definition_name = ? AND definition_domain = ? AND owned_by_signatory = ? AND owned_by_domain = ?`,
		id.DefinitionName, id.DefinitionDomain, id.Owner.Signatory, id.Owner.Domain)
	return scanOptional(a, err)
}

// AssetHolders lists the accounts currently holding a non-zero balance of
// the given asset definition (spec.md §6's asset-definition `accounts`
// field).
func (r *Repository) AssetHolders(ctx context.Context, def domain.AssetDefinitionID) ([]domain.AccountID, error) {
	var rows []struct {
		Signatory string `db:"owned_by_signatory"`
		Domain    string `db:"owned_by_domain"`
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT owned_by_signatory, owned_by_domain FROM assets
		 WHERE definition_name = ? AND definition_domain = ?
		 ORDER BY owned_by_domain ASC, owned_by_signatory ASC`, def.Name, def.Domain)
	if err != nil {
		return nil, fmt.Errorf("list asset holders: %w", err)
	}

	ids := make([]domain.AccountID, len(rows))
	for i, row := range rows {
		ids[i] = domain.AccountID{Signatory: row.Signatory, Domain: row.Domain}
	}
	return ids, nil
}
