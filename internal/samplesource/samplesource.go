//go:build sample

// Package samplesource implements C7, the fixture dataset loader that
// backs `serve-sample`: it replaces C1 (chain client) and C4 (ingest
// supervisor) with a static set of blocks fed straight through the same
// reducer and repository the live pipeline uses, so the HTTP surface and
// telemetry views behave identically against fixture data (spec.md §4.7).
package samplesource

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iroha-explorer/explorer/internal/domain"
	"github.com/iroha-explorer/explorer/internal/reducer"
	"github.com/iroha-explorer/explorer/internal/store"
)

func jsonMarshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// fixtureTime anchors the fixture blocks to a fixed instant so the sample
// dataset is reproducible across runs.
func fixtureTime() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

// sig builds a well-formed hex-encoded signatory: "ed0120" (the ed25519
// multicodec prefix iroha uses) plus 28 zero bytes and a one-byte suffix
// distinguishing each fixture account, so domain.ValidateSignatory accepts
// it the same way it would a real chain-issued key.
func sig(suffix byte) string {
	return fmt.Sprintf("ed0120%056x%02x", 0, suffix)
}

var (
	genesisSig = sig(0x00)
	aliceSig   = sig(0x01)
	bobSig     = sig(0x02)
)

// Load resets repo to an empty schema and applies the fixture blocks in
// order, exactly as the ingest supervisor would apply live ones.
func Load(ctx context.Context, repo *store.Repository) error {
	if err := repo.BeginReset(ctx); err != nil {
		return fmt.Errorf("reset store for sample data: %w", err)
	}

	for _, block := range fixtureBlocks() {
		muts, err := reducer.Reduce(block)
		if err != nil {
			return fmt.Errorf("reduce fixture block %d: %w", block.Height, err)
		}
		if err := repo.Apply(ctx, muts); err != nil {
			return fmt.Errorf("apply fixture block %d: %w", block.Height, err)
		}
		if err := repo.Checkpoint(ctx, block.Height, block.Hash); err != nil {
			return fmt.Errorf("checkpoint fixture block %d: %w", block.Height, err)
		}
	}
	return nil
}

func tagged(kind string, content map[string]any) string {
	body, err := jsonMarshal(content)
	if err != nil {
		body = "{}"
	}
	return fmt.Sprintf(`{"%s":%s}`, kind, body)
}

func accountID(signatory, dom string) map[string]any {
	return map[string]any{"signatory": signatory, "domain": dom}
}

func assetDefID(name, dom string) map[string]any {
	return map[string]any{"name": name, "domain": dom}
}

func assetID(defName, defDomain, ownerSig, ownerDomain string) map[string]any {
	return map[string]any{
		"definition": assetDefID(defName, defDomain),
		"account":    accountID(ownerSig, ownerDomain),
	}
}

func instruction(kind domain.InstructionKind, object domain.ObjectKind, payload map[string]any) domain.InstructionPayload {
	return domain.InstructionPayload{
		Kind:    kind,
		Object:  object,
		Payload: payload,
		RawJSON: tagged(string(kind), payload),
	}
}

func fixtureBlocks() []domain.DecodedBlock {
	t0 := fixtureTime()

	genesis := domain.DecodedBlock{
		Height:    1,
		Hash:      "genesis0000000000000000000000000000000000000000000000000000000",
		CreatedAt: t0,
		Transactions: []domain.SignedTransaction{
			{
				Hash:            "tx0000000000000000000000000000000000000000000000000000000001",
				AuthoritySig:    genesisSig,
				AuthorityDomain: "genesis",
				Signature:       "sig0001",
				Metadata:        "{}",
				Executable:      domain.ExecutableInstructions,
				Instructions: []domain.InstructionPayload{
					instruction(domain.KindRegister, domain.ObjectDomain, map[string]any{"id": "wonderland"}),
					instruction(domain.KindRegister, domain.ObjectAccount, map[string]any{
						"id":       accountID(aliceSig, "wonderland"),
						"metadata": map[string]any{},
					}),
					instruction(domain.KindRegister, domain.ObjectAccount, map[string]any{
						"id":       accountID(bobSig, "wonderland"),
						"metadata": map[string]any{},
					}),
					instruction(domain.KindRegister, domain.ObjectAssetDefinition, map[string]any{
						"id":       assetDefID("rose", "wonderland"),
						"owned_by": accountID(aliceSig, "wonderland"),
						"mintable": string(domain.MintableInfinitely),
						"metadata": map[string]any{},
					}),
				},
			},
		},
	}
	genesisHash := genesis.Hash

	mintBlock := domain.DecodedBlock{
		Height:        2,
		Hash:          "block00000000000000000000000000000000000000000000000000000002",
		PrevBlockHash: genesisHash,
		CreatedAt:     t0.Add(5 * time.Second),
		Transactions: []domain.SignedTransaction{
			{
				Hash:            "tx0000000000000000000000000000000000000000000000000000000002",
				AuthoritySig:    aliceSig,
				AuthorityDomain: "wonderland",
				Signature:       "sig0002",
				Metadata:        "{}",
				Executable:      domain.ExecutableInstructions,
				Instructions: []domain.InstructionPayload{
					instruction(domain.KindMint, domain.ObjectAsset, map[string]any{
						"id":     assetID("rose", "wonderland", aliceSig, "wonderland"),
						"amount": "100",
					}),
				},
			},
		},
	}

	transferBlock := domain.DecodedBlock{
		Height:        3,
		Hash:          "block00000000000000000000000000000000000000000000000000000003",
		PrevBlockHash: mintBlock.Hash,
		CreatedAt:     t0.Add(10 * time.Second),
		Transactions: []domain.SignedTransaction{
			{
				Hash:            "tx0000000000000000000000000000000000000000000000000000000003",
				AuthoritySig:    aliceSig,
				AuthorityDomain: "wonderland",
				Signature:       "sig0003",
				Metadata:        "{}",
				Executable:      domain.ExecutableInstructions,
				Instructions: []domain.InstructionPayload{
					instruction(domain.KindTransfer, domain.ObjectAsset, map[string]any{
						"source_id":      assetID("rose", "wonderland", aliceSig, "wonderland"),
						"destination_id": assetID("rose", "wonderland", bobSig, "wonderland"),
						"amount":         "30",
					}),
				},
			},
			{
				Hash:            "tx0000000000000000000000000000000000000000000000000000000004",
				AuthoritySig:    bobSig,
				AuthorityDomain: "wonderland",
				Signature:       "sig0004",
				Metadata:        "{}",
				Executable:      domain.ExecutableInstructions,
				Error:           strPtr(`{"reason":"InsufficientFunds"}`),
				Instructions: []domain.InstructionPayload{
					instruction(domain.KindTransfer, domain.ObjectAsset, map[string]any{
						"source_id":      assetID("rose", "wonderland", bobSig, "wonderland"),
						"destination_id": assetID("rose", "wonderland", aliceSig, "wonderland"),
						"amount":         "99999",
					}),
				},
			},
		},
	}

	return []domain.DecodedBlock{genesis, mintBlock, transferBlock}
}

func strPtr(s string) *string { return &s }
