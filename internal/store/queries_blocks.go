package store

import (
	"context"
	"fmt"

	"github.com/iroha-explorer/explorer/internal/domain"
)

// ListBlocks returns blocks ordered by height descending (spec.md §4.2).
func (r *Repository) ListBlocks(ctx context.Context, p Page) (Paginated[domain.Block], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM blocks`); err != nil {
		return Paginated[domain.Block]{}, fmt.Errorf("count blocks: %w", err)
	}

	var rows []domain.Block
	err := r.db.SelectContext(ctx, &rows, `
		SELECT height, hash, prev_block_hash, transactions_hash, created_at, transactions_count
		FROM blocks ORDER BY height DESC LIMIT ? OFFSET ?`, p.Limit(), p.Offset())
	if err != nil {
		return Paginated[domain.Block]{}, fmt.Errorf("list blocks: %w", err)
	}

	return NewPaginated(rows, p, total), nil
}

// GetBlockByHeight looks up a block by its height.
func (r *Repository) GetBlockByHeight(ctx context.Context, height uint64) (domain.Block, bool, error) {
	var b domain.Block
	err := r.db.GetContext(ctx, &b, `
		SELECT height, hash, prev_block_hash, transactions_hash, created_at, transactions_count
		FROM blocks WHERE height = ?`, height)
	return scanOptional(b, err)
}

// GetBlockByHash looks up a block by its content hash.
func (r *Repository) GetBlockByHash(ctx context.Context, hash string) (domain.Block, bool, error) {
	var b domain.Block
	err := r.db.GetContext(ctx, &b, `
		SELECT height, hash, prev_block_hash, transactions_hash, created_at, transactions_count
		FROM blocks WHERE hash = ?`, hash)
	return scanOptional(b, err)
}

// ChainTip returns the highest known block height, or 0 if the store is empty.
func (r *Repository) ChainTip(ctx context.Context) (uint64, error) {
	var height uint64
	err := r.db.GetContext(ctx, &height, `SELECT COALESCE(MAX(height), 0) FROM blocks`)
	return height, err
}
