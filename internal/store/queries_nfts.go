package store

import (
	"context"
	"fmt"

	"github.com/iroha-explorer/explorer/internal/domain"
)

// NftView is a row from v_nfts: the token plus its synthesized composite
// id and owner.
type NftView struct {
	Name          string `db:"name"`
	Domain        string `db:"domain"`
	OwnedBySig    string `db:"owned_by_signatory"`
	OwnedByDomain string `db:"owned_by_domain"`
	Content       string `db:"content"`
	ID            string `db:"id"`
	OwnedBy       string `db:"owned_by"`
}

func (r *Repository) ListNfts(ctx context.Context, f NftFilter, p Page) (Paginated[NftView], error) {
	var cs clauseSet
	if f.Domain != nil {
		cs.add("domain = ?", *f.Domain)
	}
	if f.Owner != nil {
		owner, err := domain.ParseAccountID(*f.Owner)
		if err != nil {
			return Paginated[NftView]{}, fmt.Errorf("%w: owner filter: %w", ErrInvalidFilter, err)
		}
		cs.add("owned_by_signatory = ? AND owned_by_domain = ?", owner.Signatory, owner.Domain)
	}

	countQ := newQB("SELECT COUNT(*) FROM v_nfts").where(cs.clauses, cs.args)
	var total int
	if err := r.db.GetContext(ctx, &total, countQ.String(), countQ.Args()...); err != nil {
		return Paginated[NftView]{}, fmt.Errorf("count nfts: %w", err)
	}

	selectQ := newQB(`SELECT name, domain, owned_by_signatory, owned_by_domain, content, id, owned_by FROM v_nfts`).
		where(cs.clauses, cs.args)
	selectQ.append(" ORDER BY domain ASC, name ASC LIMIT ? OFFSET ?", p.Limit(), p.Offset())

	var rows []NftView
	if err := r.db.SelectContext(ctx, &rows, selectQ.String(), selectQ.Args()...); err != nil {
		return Paginated[NftView]{}, fmt.Errorf("list nfts: %w", err)
	}
	return NewPaginated(rows, p, total), nil
}

func (r *Repository) GetNft(ctx context.Context, id domain.NftID) (NftView, bool, error) {
	var n NftView
	err := r.db.GetContext(ctx, &n,
		`SELECT name, domain, owned_by_signatory, owned_by_domain, content, id, owned_by
		 FROM v_nfts WHERE name = ? AND domain = ?`, id.Name, id.Domain)
	return scanOptional(n, err)
}
