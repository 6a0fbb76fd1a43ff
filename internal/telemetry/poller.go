package telemetry

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iroha-explorer/explorer/internal/chainclient"
)

const (
	statusInterval  = 1 * time.Second
	metricsInterval = 5 * time.Second
	pollTimeout     = 2 * time.Second
)

// peer holds one configured peer's poller state: its client, its rolling
// series, and the reachability the last poll observed.
type peer struct {
	url       string
	client    *chainclient.Client
	series    *ringBuffer
	reachable atomic.Bool
	backoff   *backoff.ExponentialBackOff
}

// latest returns the peer's most recent sample and whether it is
// currently considered reachable.
func (p *peer) latest() (Sample, bool, bool) {
	s, ok := p.series.latest()
	return s, ok, p.reachable.Load()
}

func newPeer(url string, client *chainclient.Client, bufferCap int) *peer {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 0
	return &peer{
		url:     url,
		client:  client,
		series:  newRingBuffer(bufferCap),
		backoff: b,
	}
}

// run polls status on statusInterval and metrics on metricsInterval until
// ctx is cancelled. A failed poll marks the peer unreachable without
// stopping the loop; it resumes normally on the next successful poll.
func (p *peer) run(ctx context.Context, logger *slog.Logger) {
	statusTicker := time.NewTicker(statusInterval)
	metricsTicker := time.NewTicker(metricsInterval)
	defer statusTicker.Stop()
	defer metricsTicker.Stop()

	var pendingMetrics string
	var retryTimer *time.Timer

	for {
		var retryC <-chan time.Time
		if retryTimer != nil {
			retryC = retryTimer.C
		}

		select {
		case <-ctx.Done():
			return
		case <-retryC:
			sctx, cancel := context.WithTimeout(ctx, pollTimeout)
			status, err := p.client.PeerStatus(sctx)
			cancel()
			if err != nil {
				logger.Debug("telemetry: status retry failed", slog.String("peer", p.url), slog.String("err", err.Error()))
				retryTimer = time.NewTimer(p.backoff.NextBackOff())
				continue
			}
			p.reachable.Store(true)
			p.backoff.Reset()
			p.record(status, pendingMetrics)
		case <-metricsTicker.C:
			mctx, cancel := context.WithTimeout(ctx, pollTimeout)
			raw, err := p.client.Metrics(mctx)
			cancel()
			if err == nil {
				pendingMetrics = raw
			} else {
				logger.Debug("telemetry: metrics poll failed", slog.String("peer", p.url), slog.String("err", err.Error()))
			}
		case <-statusTicker.C:
			sctx, cancel := context.WithTimeout(ctx, pollTimeout)
			status, err := p.client.PeerStatus(sctx)
			cancel()

			if err != nil {
				p.reachable.Store(false)
				logger.Debug("telemetry: status poll failed", slog.String("peer", p.url), slog.String("err", err.Error()))
				retryTimer = time.NewTimer(p.backoff.NextBackOff())
				continue
			}

			p.reachable.Store(true)
			p.backoff.Reset()
			p.record(status, pendingMetrics)
		}
	}
}

func (p *peer) record(status chainclient.Status, metricsRaw string) {
	sample := Sample{
		Timestamp:     time.Now(),
		PeerCount:     status.Peers,
		BlockHeight:   status.Block,
		TxsAccepted:   status.TxsAccepted,
		TxsRejected:   status.TxsRejected,
		ViewChanges:   status.ViewChanges,
		UptimeSeconds: status.UptimeSeconds,
		QueueDepth:    status.QueueSize,
		MetricsRaw:    metricsRaw,
	}
	p.series.push(sample)
}
