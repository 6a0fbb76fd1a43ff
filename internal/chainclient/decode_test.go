package chainclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iroha-explorer/explorer/internal/domain"
)

func TestDecodeBlockSplitsAuthorityID(t *testing.T) {
	w := wireBlock{
		Height:    1,
		Hash:      "hash1",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Transactions: []wireTransaction{
			{
				Hash:      "tx1",
				Authority: validSig + "@wonderland",
				Metadata:  []byte(`{}`),
				Instructions: []wireInstruction{
					{Kind: "Register", Object: "Domain", Payload: []byte(`{"id":"wonderland"}`)},
				},
			},
		},
	}

	block, err := decodeBlock(w)
	require.NoError(t, err)
	require.Len(t, block.Transactions, 1)

	tx := block.Transactions[0]
	assert.Equal(t, validSig, tx.AuthoritySig)
	assert.Equal(t, "wonderland", tx.AuthorityDomain)
	assert.Equal(t, domain.ExecutableInstructions, tx.Executable)
	require.Len(t, tx.Instructions, 1)
	assert.Equal(t, `{"Register":{"id":"wonderland"}}`, tx.Instructions[0].RawJSON)
}

func TestDecodeBlockRejectsMalformedAuthority(t *testing.T) {
	w := wireBlock{
		Transactions: []wireTransaction{
			{Hash: "tx1", Authority: "not-an-account-id"},
		},
	}
	_, err := decodeBlock(w)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrDecodeError)
}

func TestDecodeBlockTreatsWASMTransactionsAsOpaque(t *testing.T) {
	w := wireBlock{
		Transactions: []wireTransaction{
			{Hash: "tx1", Authority: validSig + "@wonderland", WASM: []byte{0x00, 0x61, 0x73, 0x6d}},
		},
	}
	block, err := decodeBlock(w)
	require.NoError(t, err)
	require.Len(t, block.Transactions, 1)
	assert.Equal(t, domain.ExecutableWASM, block.Transactions[0].Executable)
	assert.Empty(t, block.Transactions[0].Instructions)
}

const validSig = "ed012000000000000000000000000000000000000000000000000000000000000001"
