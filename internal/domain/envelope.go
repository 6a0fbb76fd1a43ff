package domain

import "time"

// DecodedBlock is a committed block as handed to the reducer (C3) by the
// ingest supervisor (C4), after C1 has decoded it from the peer's JSON
// block stream. It intentionally mirrors only the fields the reducer consumes.
type DecodedBlock struct {
	Height           uint64
	Hash             string
	PrevBlockHash    string // empty for genesis
	TransactionsHash string
	CreatedAt        time.Time
	Transactions     []SignedTransaction
}

// SignedTransaction is one entry of a block's transaction list.
type SignedTransaction struct {
	Hash            string
	AuthoritySig    string
	AuthorityDomain string
	Signature       string
	Nonce           *uint32
	Metadata        string // raw JSON object
	TimeToLiveMs    *uint64
	Executable      Executable
	Instructions    []InstructionPayload // only populated when Executable == ExecutableInstructions
	WASM            []byte               // only populated when Executable == ExecutableWASM
	Error           *string              // raw JSON, nil iff committed
}

func (tx SignedTransaction) Status() TransactionStatus {
	if tx.Error == nil {
		return StatusCommitted
	}
	return StatusRejected
}

// InstructionPayload is one tagged instruction within a transaction.
// RawJSON is the canonical `{"<Kind>": {...}}` encoding persisted verbatim
// into the Instruction row; Kind/Object/Payload are the decoded view the
// reducer switches on.
type InstructionPayload struct {
	Kind    InstructionKind
	Object  ObjectKind
	Payload map[string]any
	RawJSON string
}
