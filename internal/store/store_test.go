package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iroha-explorer/explorer/internal/domain"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestApplyInsertsBlockAndReads(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	muts := []domain.Mutation{
		domain.InsertBlock{Block: domain.Block{
			Height:            1,
			Hash:              "hash1",
			CreatedAt:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			TransactionsCount: 0,
		}},
		domain.UpsertDomain{Name: "wonderland", Metadata: "{}"},
		domain.UpsertAccount{Signatory: "alice", Domain: "wonderland", Metadata: "{}"},
	}

	require.NoError(t, repo.Apply(ctx, muts))

	block, ok, err := repo.GetBlockByHeight(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hash1", block.Hash)

	domains, err := repo.ListDomains(ctx, Page{Number: 1, PerPage: 15})
	require.NoError(t, err)
	require.Len(t, domains.Items, 1)
	assert.Equal(t, "wonderland", domains.Items[0].Name)

	accounts, err := repo.ListAccounts(ctx, AccountFilter{}, Page{Number: 1, PerPage: 15})
	require.NoError(t, err)
	require.Len(t, accounts.Items, 1)
	assert.Equal(t, "alice", accounts.Items[0].Signatory)
}

func TestApplyAssetBalanceAccumulatesDeltas(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	muts := []domain.Mutation{
		domain.InsertBlock{Block: domain.Block{Height: 1, Hash: "h1", CreatedAt: time.Now().UTC()}},
		domain.UpsertDomain{Name: "wonderland", Metadata: "{}"},
		domain.UpsertAccount{Signatory: "alice", Domain: "wonderland", Metadata: "{}"},
		domain.UpsertAssetDefinition{Name: "rose", Domain: "wonderland", Mintable: domain.MintableInfinitely, Metadata: "{}", OwnedBySig: "alice", OwnedByDomain: "wonderland"},
		domain.UpsertAsset{DefinitionName: "rose", DefinitionDomain: "wonderland", OwnedBySig: "alice", OwnedByDomain: "wonderland", Value: "100"},
	}
	require.NoError(t, repo.Apply(ctx, muts))

	require.NoError(t, repo.Apply(ctx, []domain.Mutation{
		domain.InsertBlock{Block: domain.Block{Height: 2, Hash: "h2", PrevBlockHash: strPtr("h1"), CreatedAt: time.Now().UTC()}},
		domain.UpsertAsset{DefinitionName: "rose", DefinitionDomain: "wonderland", OwnedBySig: "alice", OwnedByDomain: "wonderland", Value: "-30"},
	}))

	assets, err := repo.ListAssets(ctx, AssetFilter{}, Page{Number: 1, PerPage: 15})
	require.NoError(t, err)
	require.Len(t, assets.Items, 1)
	assert.Equal(t, "70", assets.Items[0].Value)
}

func TestApplyRollsBackOnError(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	muts := []domain.Mutation{
		domain.InsertBlock{Block: domain.Block{Height: 1, Hash: "h1", CreatedAt: time.Now().UTC()}},
		domain.InsertBlock{Block: domain.Block{Height: 1, Hash: "h1-dup", CreatedAt: time.Now().UTC()}}, // duplicate height violates PK
	}

	err := repo.Apply(ctx, muts)
	require.Error(t, err)

	_, ok, err := repo.GetBlockByHeight(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok, "a failed batch must not leave a partial block row behind")
}

func strPtr(s string) *string { return &s }
