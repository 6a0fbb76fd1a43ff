package chainclient

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iroha-explorer/explorer/internal/domain"
)

// wireBlock mirrors the peer's NDJSON block envelope. Field names follow
// the upstream SDK's wire casing; decodeBlock adapts it into the
// system-internal domain.DecodedBlock shape consumed by C3.
type wireBlock struct {
	Height           uint64            `json:"height"`
	Hash             string            `json:"hash"`
	PrevBlockHash    *string           `json:"prev_block_hash"`
	TransactionsHash *string           `json:"transactions_hash"`
	CreatedAt        time.Time         `json:"created_at"`
	Transactions     []wireTransaction `json:"transactions"`
}

type wireTransaction struct {
	Hash            string                `json:"hash"`
	Authority       string                `json:"authority"` // "<signatory>@<domain>"
	Signature       string                `json:"signature"`
	Nonce           *uint32               `json:"nonce"`
	Metadata        json.RawMessage       `json:"metadata"`
	TimeToLiveMs    *uint64               `json:"time_to_live_ms"`
	Instructions    []wireInstruction     `json:"instructions"`
	WASM            []byte                `json:"wasm"`
	Error           *string               `json:"error"`
}

type wireInstruction struct {
	Kind    string          `json:"kind"`
	Object  string          `json:"object"`
	Payload json.RawMessage `json:"payload"`
}

// decodeBlock converts a wireBlock into a domain.DecodedBlock, splitting
// each transaction into either an Instructions batch or a WASM payload
// (spec.md §4.3).
func decodeBlock(w wireBlock) (domain.DecodedBlock, error) {
	block := domain.DecodedBlock{
		Height:           w.Height,
		Hash:             w.Hash,
		PrevBlockHash:    derefOr(w.PrevBlockHash, ""),
		TransactionsHash: derefOr(w.TransactionsHash, ""),
		CreatedAt:        w.CreatedAt,
	}

	for _, wt := range w.Transactions {
		authority, err := domain.ParseAccountID(wt.Authority)
		if err != nil {
			return domain.DecodedBlock{}, fmt.Errorf("%w: tx %s: authority: %v", ErrDecodeError, wt.Hash, err)
		}

		tx := domain.SignedTransaction{
			Hash:            wt.Hash,
			AuthoritySig:    authority.Signatory,
			AuthorityDomain: authority.Domain,
			Signature:       wt.Signature,
			Nonce:           wt.Nonce,
			TimeToLiveMs:    wt.TimeToLiveMs,
			Error:           wt.Error,
			WASM:            wt.WASM,
		}
		if len(wt.Metadata) > 0 {
			tx.Metadata = string(wt.Metadata)
		}

		if len(wt.WASM) > 0 {
			tx.Executable = domain.ExecutableWASM
		} else {
			tx.Executable = domain.ExecutableInstructions
			tx.Instructions = make([]domain.InstructionPayload, 0, len(wt.Instructions))
			for _, wi := range wt.Instructions {
				payload, err := decodeInstructionPayload(wi.Payload)
				if err != nil {
					return domain.DecodedBlock{}, fmt.Errorf("%w: tx %s: instruction %s: %v", ErrDecodeError, wt.Hash, wi.Kind, err)
				}
				rawEnvelope, err := taggedEnvelope(wi.Kind, wi.Payload)
				if err != nil {
					return domain.DecodedBlock{}, fmt.Errorf("%w: tx %s: instruction %s: %v", ErrDecodeError, wt.Hash, wi.Kind, err)
				}
				tx.Instructions = append(tx.Instructions, domain.InstructionPayload{
					Kind:    domain.InstructionKind(wi.Kind),
					Object:  domain.ObjectKind(wi.Object),
					Payload: payload,
					RawJSON: rawEnvelope,
				})
			}
		}

		block.Transactions = append(block.Transactions, tx)
	}

	return block, nil
}

func decodeInstructionPayload(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// taggedEnvelope re-encodes a (kind, payload) pair into the canonical
// `{"<Kind>": {...}}` single-key form that v_instructions' json_each
// explosion expects (spec.md §9).
func taggedEnvelope(kind string, payload json.RawMessage) (string, error) {
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	raw, err := json.Marshal(map[string]json.RawMessage{kind: payload})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func derefOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
