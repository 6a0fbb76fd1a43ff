// Package ingest drives the ingest pipeline's lifecycle: bootstrap from
// genesis, tail the live block stream, and recover from reconnects and
// gaps (spec.md §4.4).
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iroha-explorer/explorer/internal/chainclient"
	"github.com/iroha-explorer/explorer/internal/domain"
	"github.com/iroha-explorer/explorer/internal/reducer"
	"github.com/iroha-explorer/explorer/internal/store"
)

// State is one node of the supervisor's lifecycle state machine.
type State string

const (
	StateInit      State = "init"
	StateReset     State = "reset"
	StateBootstrap State = "bootstrap"
	StateLive      State = "live"
	StateReconnect State = "reconnect"
)

const (
	backoffBase = 500 * time.Millisecond
	backoffCap  = 30 * time.Second
)

// Supervisor owns the single write path into the store: it is the only
// caller of Repository.Apply (spec.md §4.4, §5).
type Supervisor struct {
	client *chainclient.Client
	repo   *store.Repository
	logger *slog.Logger

	ready           atomic.Bool
	lastHeight      uint64
	bootstrapTarget uint64 // peer's reported tip height when bootstrap began
	state           State

	// reconnectBackoff grows across consecutive reconnects; a successfully
	// applied block drops it so the next fault starts again at backoffBase.
	reconnectBackoff *backoff.ExponentialBackOff
}

func New(client *chainclient.Client, repo *store.Repository, logger *slog.Logger) *Supervisor {
	return &Supervisor{
		client: client,
		repo:   repo,
		logger: logger,
		state:  StateInit,
	}
}

// Ready reports whether bootstrap has completed at least once; C6 gates
// /api/ready on this.
func (s *Supervisor) Ready() bool { return s.ready.Load() }

// Run drives the state machine until ctx is cancelled. A shutdown signal
// stops the subscription within one block-apply; the in-flight batch
// either completes or rolls back atomically (store.Apply's transaction).
func (s *Supervisor) Run(ctx context.Context) error {
	s.state = StateReset

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		switch s.state {
		case StateReset:
			if err := s.reset(ctx); err != nil {
				return fmt.Errorf("ingest: reset: %w", err)
			}
			s.state = StateBootstrap

		case StateBootstrap, StateLive:
			err := s.tail(ctx)
			if err == nil || errors.Is(err, context.Canceled) {
				return err
			}
			s.logger.Warn("ingest: stream interrupted, reconnecting", slog.String("err", err.Error()))
			s.state = StateReconnect

		case StateReconnect:
			if err := s.waitBackoff(ctx); err != nil {
				return err
			}
			s.state = StateReset
		}
	}
}

// reset truncates the store back to genesis and drops the supervisor's own
// progress marker with it (spec.md §4.4, "Reconnect: ... reopen at height
// 1, drop back to Reset"); leaving lastHeight stale here would make tail's
// gap check pass against a store that was just emptied.
func (s *Supervisor) reset(ctx context.Context) error {
	s.logger.Info("ingest: resetting store to genesis")
	if err := s.repo.BeginReset(ctx); err != nil {
		return err
	}
	s.lastHeight = 0
	return nil
}

// tail opens the block subscription at lastHeight+1 and applies blocks as
// they arrive. It returns nil only when ctx is cancelled; any other
// return value is a fault the caller reconnects from.
func (s *Supervisor) tail(ctx context.Context) error {
	from := s.lastHeight + 1

	if s.state == StateBootstrap {
		status, err := s.client.PeerStatus(ctx)
		if err != nil {
			return fmt.Errorf("fetch peer status: %w", err)
		}
		s.bootstrapTarget = status.Block
	}

	stream, err := s.client.SubscribeBlocks(ctx, from)
	if err != nil {
		return fmt.Errorf("subscribe from height %d: %w", from, err)
	}
	defer stream.Close()

	for {
		if ctx.Err() != nil {
			return nil
		}

		block, err := stream.Next()
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("read block: %w", err)
		}

		if s.lastHeight != 0 && block.Height != s.lastHeight+1 {
			return fmt.Errorf("gap detected: expected height %d, got %d", s.lastHeight+1, block.Height)
		}

		if err := s.apply(ctx, block); err != nil {
			return fmt.Errorf("apply block %d: %w", block.Height, err)
		}

		s.lastHeight = block.Height
		s.reconnectBackoff = nil
		if s.state == StateBootstrap && block.Height >= s.bootstrapTarget {
			s.state = StateLive
			s.ready.Store(true)
			s.logger.Info("ingest: bootstrap complete", slog.Uint64("height", block.Height))
		}
	}
}

func (s *Supervisor) apply(ctx context.Context, block domain.DecodedBlock) error {
	muts, err := reducer.Reduce(block)
	if err != nil {
		return fmt.Errorf("reduce: %w", err)
	}
	if err := s.repo.Apply(ctx, muts); err != nil {
		return fmt.Errorf("store apply: %w", err)
	}
	return s.repo.Checkpoint(ctx, block.Height, block.Hash)
}

func (s *Supervisor) waitBackoff(ctx context.Context) error {
	if s.reconnectBackoff == nil {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = backoffBase
		b.MaxInterval = backoffCap
		b.MaxElapsedTime = 0 // retry forever; the supervisor never gives up on a peer
		b.Reset()
		s.reconnectBackoff = b
	}

	wait := s.reconnectBackoff.NextBackOff()
	s.logger.Warn("ingest: waiting before reconnect", slog.Duration("wait", wait))

	t := time.NewTimer(wait)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
