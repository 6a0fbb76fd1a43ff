package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/domain"
	"github.com/iroha-explorer/explorer/internal/store"
)

func peerToDTO(p domain.Peer) map[string]string {
	return map[string]string{"url": p.URL, "public_key": p.PublicKey}
}

// listPeers serves /api/v1/peer/peers from the ledger's materialized
// Peer table. If the table is empty (a chain whose blocks register no
// peers) it falls back to the configured peers the telemetry aggregator
// polls, listed by URL with an empty public key, so the endpoint does not
// return an empty page while peers are configured (SPEC_FULL.md §6). The
// route sits behind requireReady, so this runs only after bootstrap.
func (h *handler) listPeers(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	result, err := h.repo.ListPeers(c.Request().Context(), page)
	if err != nil {
		return err
	}
	if result.Pagination.TotalItems != nil && *result.Pagination.TotalItems > 0 {
		return c.JSON(http.StatusOK, paginated(result.Items, result.Pagination, func(p domain.Peer) any { return peerToDTO(p) }))
	}

	urls := h.telemetry.PeerURLs()
	fallback := make([]domain.Peer, len(urls))
	for i, url := range urls {
		fallback[i] = domain.Peer{URL: url}
	}
	paged, pagination := paginateSlice(fallback, page)
	return c.JSON(http.StatusOK, paginated(paged, pagination, func(p domain.Peer) any { return peerToDTO(p) }))
}

func paginateSlice(items []domain.Peer, p store.Page) ([]domain.Peer, store.Pagination) {
	total := len(items)
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.Limit()
	if end > total {
		end = total
	}
	return items[start:end], store.NewPaginated(items[start:end], p, total).Pagination
}

// peerStatus serves /api/v1/peer/status?url=…: the requested peer's
// most recent telemetry sample (spec.md §4.1's status(peer_url), as
// seen through C5's polled view rather than a fresh round trip).
func (h *handler) peerStatus(c echo.Context) error {
	url := c.QueryParam("url")
	if url == "" {
		return newValidationError("url is required")
	}

	snapshot := h.telemetry.Snapshot()
	for _, p := range snapshot.Peers {
		if p.URL == url {
			return c.JSON(http.StatusOK, peerSnapshotToDTO(p))
		}
	}
	return newNotFoundError("peer", url)
}
