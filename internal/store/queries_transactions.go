package store

import (
	"context"
	"fmt"
	"time"

	"github.com/iroha-explorer/explorer/internal/domain"
)

// TransactionView is a row from v_transactions: the transaction plus its
// derived authority display form and committed/rejected status.
type TransactionView struct {
	Hash            string     `db:"hash"`
	BlockHeight     uint64     `db:"block_height"`
	CreatedAt       time.Time  `db:"created_at"`
	AuthoritySig    string     `db:"authority_signatory"`
	AuthorityDomain string     `db:"authority_domain"`
	Signature       string     `db:"signature"`
	Nonce           *uint32    `db:"nonce"`
	Metadata        string     `db:"metadata"`
	TimeToLiveMs    *uint64    `db:"time_to_live_ms"`
	Executable      domain.Executable `db:"executable"`
	Error           *string    `db:"error"`
	Authority       string     `db:"authority"`
	Status          string     `db:"status"`
}

func (r *Repository) ListTransactions(ctx context.Context, f TransactionFilter, p Page) (Paginated[TransactionView], error) {
	var cs clauseSet
	if f.Block != nil {
		cs.add("block_height = ?", *f.Block)
	}
	if f.Authority != nil {
		a, err := domain.ParseAccountID(*f.Authority)
		if err != nil {
			return Paginated[TransactionView]{}, fmt.Errorf("%w: authority filter: %w", ErrInvalidFilter, err)
		}
		cs.add("authority_signatory = ? AND authority_domain = ?", a.Signatory, a.Domain)
	}
	if f.Status != nil {
		cs.add("status = ?", *f.Status)
	}

	countQ := newQB("SELECT COUNT(*) FROM v_transactions").where(cs.clauses, cs.args)
	var total int
	if err := r.db.GetContext(ctx, &total, countQ.String(), countQ.Args()...); err != nil {
		return Paginated[TransactionView]{}, fmt.Errorf("count transactions: %w", err)
	}

	selectQ := newQB(`SELECT hash, block_height, created_at, authority_signatory, authority_domain,
		signature, nonce, metadata, time_to_live_ms, executable, error, authority, status
		FROM v_transactions`).where(cs.clauses, cs.args)
	selectQ.append(" ORDER BY block_height DESC, hash ASC LIMIT ? OFFSET ?", p.Limit(), p.Offset())

	var rows []TransactionView
	if err := r.db.SelectContext(ctx, &rows, selectQ.String(), selectQ.Args()...); err != nil {
		return Paginated[TransactionView]{}, fmt.Errorf("list transactions: %w", err)
	}
	return NewPaginated(rows, p, total), nil
}

func (r *Repository) GetTransaction(ctx context.Context, hash string) (TransactionView, bool, error) {
	var t TransactionView
	err := r.db.GetContext(ctx, &t,
		`SELECT hash, block_height, created_at, authority_signatory, authority_domain,
		signature, nonce, metadata, time_to_live_ms, executable, error, authority, status
		FROM v_transactions WHERE hash = ?`, hash)
	return scanOptional(t, err)
}
