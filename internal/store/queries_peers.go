package store

import (
	"context"
	"fmt"

	"github.com/iroha-explorer/explorer/internal/domain"
)

// ListPeers returns the peers the ledger has registered (supplemented,
// SPEC_FULL.md §3). This is the ledger's view of the topology, served at
// /api/v1/peer/peers and distinct from C5's live-reachability fleet
// snapshot served at /api/v1/telemetry.
func (r *Repository) ListPeers(ctx context.Context, p Page) (Paginated[domain.Peer], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM peers`); err != nil {
		return Paginated[domain.Peer]{}, fmt.Errorf("count peers: %w", err)
	}

	var rows []domain.Peer
	err := r.db.SelectContext(ctx, &rows,
		`SELECT peer_url, public_key FROM peers ORDER BY peer_url ASC LIMIT ? OFFSET ?`, p.Limit(), p.Offset())
	if err != nil {
		return Paginated[domain.Peer]{}, fmt.Errorf("list peers: %w", err)
	}
	return NewPaginated(rows, p, total), nil
}
