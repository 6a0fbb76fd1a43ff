package telemetry

import (
	"fmt"
	"time"
)

// PeerSnapshot is one peer's entry in a fleet-wide telemetry read.
type PeerSnapshot struct {
	URL       string
	Status    string // "reachable" | "unreachable"
	Sample    Sample
	HasSample bool
}

// FleetSnapshot composes every configured peer's latest sample plus
// aggregates derived across the fleet (spec.md §4.5).
type FleetSnapshot struct {
	Peers            []PeerSnapshot
	MaxBlockHeight   uint64
	MinBlockHeight   uint64
	ReachableCount   int
	TotalCount       int
}

const snapshotCacheKey = "fleet"

// Snapshot composes /api/v1/telemetry's response: each peer's latest
// sample plus derived aggregates.
func (a *Aggregator) Snapshot() FleetSnapshot {
	if cached, ok := a.cache.Get(snapshotCacheKey); ok {
		return cached.(FleetSnapshot)
	}

	snap := FleetSnapshot{TotalCount: len(a.peers)}
	var haveAny bool

	for url, p := range a.peers {
		sample, hasSample, reachable := p.latest()
		status := "unreachable"
		if reachable {
			status = "reachable"
			a.tally(&snap, sample, &haveAny)
		}
		snap.Peers = append(snap.Peers, PeerSnapshot{
			URL:       url,
			Status:    status,
			Sample:    sample,
			HasSample: hasSample,
		})
		if reachable {
			snap.ReachableCount++
		}
	}

	a.cache.SetDefault(snapshotCacheKey, snap)
	return snap
}

func (a *Aggregator) tally(snap *FleetSnapshot, sample Sample, haveAny *bool) {
	if !*haveAny {
		snap.MaxBlockHeight = sample.BlockHeight
		snap.MinBlockHeight = sample.BlockHeight
		*haveAny = true
		return
	}
	if sample.BlockHeight > snap.MaxBlockHeight {
		snap.MaxBlockHeight = sample.BlockHeight
	}
	if sample.BlockHeight < snap.MinBlockHeight {
		snap.MinBlockHeight = sample.BlockHeight
	}
}

// ErrUnknownPeer is returned by Series when the given peer URL is not
// one of the configured peers.
type ErrUnknownPeer struct{ URL string }

func (e ErrUnknownPeer) Error() string { return fmt.Sprintf("telemetry: unknown peer %q", e.URL) }

// Series returns every sample newer than since for the given peer
// (spec.md §4.5's `since` query parameter).
func (a *Aggregator) Series(peerURL string, since time.Time) ([]Sample, error) {
	p, ok := a.peers[peerURL]
	if !ok {
		return nil, ErrUnknownPeer{URL: peerURL}
	}
	return p.series.since(since), nil
}
