//go:build sample

package samplesource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iroha-explorer/explorer/internal/domain"
	"github.com/iroha-explorer/explorer/internal/store"
)

func TestLoadAppliesFixtureBlocksInOrder(t *testing.T) {
	repo, err := store.Open(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, Load(context.Background(), repo))

	block, ok, err := repo.GetBlockByHeight(context.Background(), 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "block00000000000000000000000000000000000000000000000000000003", block.Hash)

	domains, err := repo.ListDomains(context.Background(), store.Page{Number: 1, PerPage: 15})
	require.NoError(t, err)
	require.Len(t, domains.Items, 1)
	assert.Equal(t, "wonderland", domains.Items[0].Name)
}

func TestLoadProducesValidSignatories(t *testing.T) {
	for _, sig := range []string{genesisSig, aliceSig, bobSig} {
		assert.NoError(t, domain.ValidateSignatory(sig))
	}
}

func TestLoadBalancesAfterTransfer(t *testing.T) {
	repo, err := store.Open(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, Load(context.Background(), repo))

	assets, err := repo.ListAssets(context.Background(), store.AssetFilter{}, store.Page{Number: 1, PerPage: 15})
	require.NoError(t, err)
	require.Len(t, assets.Items, 2)

	balances := map[string]string{}
	for _, a := range assets.Items {
		balances[a.OwnedBySig] = a.Value
	}
	assert.Equal(t, "70", balances[aliceSig])
	assert.Equal(t, "30", balances[bobSig])
}
