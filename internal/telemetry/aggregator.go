package telemetry

import (
	"context"
	"log/slog"
	"sort"
	"time"

	cache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/iroha-explorer/explorer/internal/chainclient"
)

const ringBufferCapacity = 1024

// Aggregator runs one poller per configured peer and serves fleet-wide
// snapshots derived from their rolling series (spec.md §4.5).
type Aggregator struct {
	peers  map[string]*peer
	logger *slog.Logger
	cache  *cache.Cache
}

// New builds an Aggregator for the given peer URLs. clientTimeout bounds
// each individual chain-client round trip.
func New(peerURLs []string, clientTimeout time.Duration, logger *slog.Logger) *Aggregator {
	peers := make(map[string]*peer, len(peerURLs))
	for _, url := range peerURLs {
		peers[url] = newPeer(url, chainclient.New(url, clientTimeout), ringBufferCapacity)
	}
	return &Aggregator{
		peers:  peers,
		logger: logger,
		// Fleet snapshots are cheap to recompute, but under load many
		// concurrent /api/v1/telemetry requests would otherwise all pay
		// the same map-iteration cost; a short TTL collapses that.
		cache: cache.New(500*time.Millisecond, time.Minute),
	}
}

// PeerURLs returns the configured peer URLs, sorted for determinism.
// Used as the fallback source for /api/v1/peer/peers when the ledger's
// materialized Peer table is still empty (SPEC_FULL.md §6).
func (a *Aggregator) PeerURLs() []string {
	urls := make([]string, 0, len(a.peers))
	for url := range a.peers {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// Run starts one poller goroutine per peer and blocks until ctx is
// cancelled, at which point all pollers are signaled and joined
// (spec.md §4.5's cancellation contract).
func (a *Aggregator) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range a.peers {
		p := p
		g.Go(func() error {
			p.run(gctx, a.logger)
			return nil
		})
	}
	return g.Wait()
}
