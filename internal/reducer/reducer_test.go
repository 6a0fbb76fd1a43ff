package reducer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iroha-explorer/explorer/internal/domain"
)

func accountPayload(sig, dom string) map[string]any {
	return map[string]any{"signatory": sig, "domain": dom}
}

func assetPayload(defName, defDom, ownerSig, ownerDom string) map[string]any {
	return map[string]any{
		"definition": map[string]any{"name": defName, "domain": defDom},
		"account":    accountPayload(ownerSig, ownerDom),
	}
}

func ins(kind domain.InstructionKind, object domain.ObjectKind, payload map[string]any) domain.InstructionPayload {
	return domain.InstructionPayload{Kind: kind, Object: object, Payload: payload, RawJSON: "{}"}
}

func block(txs ...domain.SignedTransaction) domain.DecodedBlock {
	return domain.DecodedBlock{
		Height:       1,
		Hash:         "blockhash",
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Transactions: txs,
	}
}

func TestReduceInsertsBlockAndTransaction(t *testing.T) {
	tx := domain.SignedTransaction{
		Hash:       "tx1",
		Executable: domain.ExecutableInstructions,
		Instructions: []domain.InstructionPayload{
			ins(domain.KindRegister, domain.ObjectDomain, map[string]any{"id": "wonderland"}),
		},
	}

	muts, err := Reduce(block(tx))
	require.NoError(t, err)
	require.Len(t, muts, 4) // InsertBlock, InsertTransaction, InsertInstruction, UpsertDomain

	_, isBlock := muts[0].(domain.InsertBlock)
	assert.True(t, isBlock)
	_, isTx := muts[1].(domain.InsertTransaction)
	assert.True(t, isTx)
}

func TestReduceRejectedTransactionSkipsWorldMutations(t *testing.T) {
	errJSON := `{"reason":"InsufficientFunds"}`
	tx := domain.SignedTransaction{
		Hash:       "tx1",
		Executable: domain.ExecutableInstructions,
		Error:      &errJSON,
		Instructions: []domain.InstructionPayload{
			ins(domain.KindMint, domain.ObjectAsset, assetPayload("rose", "wonderland", "alice", "wonderland")),
		},
	}

	muts, err := Reduce(block(tx))
	require.NoError(t, err)

	for _, m := range muts {
		_, isAsset := m.(domain.UpsertAsset)
		assert.False(t, isAsset, "rejected transaction must not mutate world state (P4)")
	}
	// history rows still recorded: InsertBlock, InsertTransaction, InsertInstruction
	assert.Len(t, muts, 3)
}

func TestReduceMintEmitsPositiveDelta(t *testing.T) {
	tx := domain.SignedTransaction{
		Hash:       "tx1",
		Executable: domain.ExecutableInstructions,
		Instructions: []domain.InstructionPayload{
			ins(domain.KindMint, domain.ObjectAsset, map[string]any{
				"id":     assetPayload("rose", "wonderland", "alice", "wonderland"),
				"amount": "100",
			}),
		},
	}

	muts, err := Reduce(block(tx))
	require.NoError(t, err)

	var found *domain.UpsertAsset
	for _, m := range muts {
		if a, ok := m.(domain.UpsertAsset); ok {
			found = &a
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "100", found.Value)
}

func TestReduceBurnEmitsNegativeDelta(t *testing.T) {
	tx := domain.SignedTransaction{
		Hash:       "tx1",
		Executable: domain.ExecutableInstructions,
		Instructions: []domain.InstructionPayload{
			ins(domain.KindBurn, domain.ObjectAsset, map[string]any{
				"id":     assetPayload("rose", "wonderland", "alice", "wonderland"),
				"amount": "30",
			}),
		},
	}

	muts, err := Reduce(block(tx))
	require.NoError(t, err)

	var found *domain.UpsertAsset
	for _, m := range muts {
		if a, ok := m.(domain.UpsertAsset); ok {
			found = &a
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "-30", found.Value)
}

func TestReduceTransferEmitsSourceAndDestinationDeltas(t *testing.T) {
	tx := domain.SignedTransaction{
		Hash:       "tx1",
		Executable: domain.ExecutableInstructions,
		Instructions: []domain.InstructionPayload{
			ins(domain.KindTransfer, domain.ObjectAsset, map[string]any{
				"source_id":      assetPayload("rose", "wonderland", "alice", "wonderland"),
				"destination_id": assetPayload("rose", "wonderland", "bob", "wonderland"),
				"amount":         "30",
			}),
		},
	}

	muts, err := Reduce(block(tx))
	require.NoError(t, err)

	var deltas []domain.UpsertAsset
	for _, m := range muts {
		if a, ok := m.(domain.UpsertAsset); ok {
			deltas = append(deltas, a)
		}
	}
	require.Len(t, deltas, 2)
	assert.Equal(t, "-30", deltas[0].Value)
	assert.Equal(t, "alice", deltas[0].OwnedBySig)
	assert.Equal(t, "30", deltas[1].Value)
	assert.Equal(t, "bob", deltas[1].OwnedBySig)
}

func TestReduceTransferAssetDefinitionSurfacesAmbiguity(t *testing.T) {
	tx := domain.SignedTransaction{
		Hash:       "tx1",
		Executable: domain.ExecutableInstructions,
		Instructions: []domain.InstructionPayload{
			ins(domain.KindTransfer, domain.ObjectAssetDefinition, map[string]any{
				"id":             assetDefPayload("rose", "wonderland"),
				"destination_id": accountPayload("bob", "wonderland"),
			}),
		},
	}

	_, err := Reduce(block(tx))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrReducer)
}

func assetDefPayload(name, dom string) map[string]any {
	return map[string]any{"name": name, "domain": dom}
}

func TestReduceIsDeterministic(t *testing.T) {
	tx := domain.SignedTransaction{
		Hash:       "tx1",
		Executable: domain.ExecutableInstructions,
		Instructions: []domain.InstructionPayload{
			ins(domain.KindRegister, domain.ObjectAccount, map[string]any{
				"id":       accountPayload("alice", "wonderland"),
				"metadata": map[string]any{},
			}),
		},
	}
	b := block(tx)

	first, err := Reduce(b)
	require.NoError(t, err)
	second, err := Reduce(b)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
