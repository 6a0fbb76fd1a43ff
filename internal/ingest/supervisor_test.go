package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iroha-explorer/explorer/internal/domain"
	"github.com/iroha-explorer/explorer/internal/store"
)

func TestSupervisorApplyAdvancesCheckpoint(t *testing.T) {
	repo, err := store.Open(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	s := New(nil, repo, nil)
	block := domain.DecodedBlock{Height: 1, Hash: "hash1", CreatedAt: time.Now().UTC()}

	require.NoError(t, s.apply(context.Background(), block))

	height, hash, ok, err := repo.LastCheckpoint(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(1), height)
	assert.Equal(t, "hash1", hash)
}

func TestSupervisorNotReadyUntilBootstrapped(t *testing.T) {
	repo, err := store.Open(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	s := New(nil, repo, nil)
	assert.False(t, s.Ready())
}
