package store

import (
	"context"
	"fmt"
	"time"

	"github.com/iroha-explorer/explorer/internal/domain"
)

// InstructionView is a row from v_instructions: one instruction exploded
// out of its parent transaction's Instructions array, carrying enough of
// the parent transaction's context to filter and display without a join
// at the httpapi layer.
type InstructionView struct {
	TransactionHash   string    `db:"transaction_hash"`
	Position          int       `db:"position"`
	Kind              string    `db:"kind"`
	Payload           string    `db:"payload"` // raw JSON
	CreatedAt         time.Time `db:"created_at"`
	Authority         string    `db:"authority"`
	TransactionStatus string    `db:"transaction_status"`
	BlockHeight       uint64    `db:"block_height"`
}

func (r *Repository) ListInstructions(ctx context.Context, f InstructionFilter, p Page) (Paginated[InstructionView], error) {
	var cs clauseSet
	if f.Kind != nil {
		cs.add("kind = ?", *f.Kind)
	}
	if f.Authority != nil {
		a, err := domain.ParseAccountID(*f.Authority)
		if err != nil {
			return Paginated[InstructionView]{}, fmt.Errorf("%w: authority filter: %w", ErrInvalidFilter, err)
		}
		cs.add("authority = ?", a.String())
	}
	if f.TransactionStatus != nil {
		cs.add("transaction_status = ?", *f.TransactionStatus)
	}
	if f.TransactionHash != nil {
		cs.add("transaction_hash = ?", *f.TransactionHash)
	}
	if f.Block != nil {
		cs.add("block_height = ?", *f.Block)
	}

	countQ := newQB("SELECT COUNT(*) FROM v_instructions").where(cs.clauses, cs.args)
	var total int
	if err := r.db.GetContext(ctx, &total, countQ.String(), countQ.Args()...); err != nil {
		return Paginated[InstructionView]{}, fmt.Errorf("count instructions: %w", err)
	}

	selectQ := newQB(`SELECT transaction_hash, position, kind, payload, created_at, authority, transaction_status, block_height
		FROM v_instructions`).where(cs.clauses, cs.args)
	selectQ.append(" ORDER BY created_at DESC, transaction_hash ASC, position ASC LIMIT ? OFFSET ?", p.Limit(), p.Offset())

	var rows []InstructionView
	if err := r.db.SelectContext(ctx, &rows, selectQ.String(), selectQ.Args()...); err != nil {
		return Paginated[InstructionView]{}, fmt.Errorf("list instructions: %w", err)
	}
	return NewPaginated(rows, p, total), nil
}
