package domain

import "time"

// Mintable mirrors the AssetDefinition mintability policy (spec.md §3).
type Mintable string

const (
	MintableOnce       Mintable = "Once"
	MintableNot        Mintable = "Not"
	MintableInfinitely Mintable = "Infinitely"
)

// Executable discriminates a transaction's payload shape.
type Executable string

const (
	ExecutableInstructions Executable = "Instructions"
	ExecutableWASM         Executable = "WASM"
)

// TransactionStatus is derived from the presence of Transaction.Error.
type TransactionStatus string

const (
	StatusCommitted TransactionStatus = "committed"
	StatusRejected  TransactionStatus = "rejected"
)

// InstructionKind enumerates the tagged variants a transaction's
// Instructions payload may contain (spec.md §4.3).
type InstructionKind string

const (
	KindRegister       InstructionKind = "Register"
	KindUnregister     InstructionKind = "Unregister"
	KindMint           InstructionKind = "Mint"
	KindBurn           InstructionKind = "Burn"
	KindTransfer       InstructionKind = "Transfer"
	KindSetKeyValue    InstructionKind = "SetKeyValue"
	KindRemoveKeyValue InstructionKind = "RemoveKeyValue"
	KindGrant          InstructionKind = "Grant"
	KindRevoke         InstructionKind = "Revoke"
	KindExecuteTrigger InstructionKind = "ExecuteTrigger"
	KindLog            InstructionKind = "Log"
	KindSetParameter   InstructionKind = "SetParameter"
	KindUpgrade        InstructionKind = "Upgrade"
	KindCustom         InstructionKind = "Custom"
)

// ObjectKind enumerates what a Register/Unregister/Mint/Burn/Transfer
// instruction's content addresses.
type ObjectKind string

const (
	ObjectDomain          ObjectKind = "Domain"
	ObjectAccount         ObjectKind = "Account"
	ObjectAssetDefinition ObjectKind = "AssetDefinition"
	ObjectAsset           ObjectKind = "Asset"
	ObjectNft             ObjectKind = "Nft"
	ObjectPeer            ObjectKind = "Peer"
	ObjectRole            ObjectKind = "Role"
)

// Tagged is the generic {t, c} envelope used on the wire for sum types
// (spec.md §9).
type Tagged struct {
	Tag     string `json:"t"`
	Content any    `json:"c"`
}

// Block is a consensus-committed batch of transactions (spec.md §3).
type Block struct {
	Height            uint64    `db:"height" json:"height"`
	Hash              string    `db:"hash" json:"hash"`
	PrevBlockHash     *string   `db:"prev_block_hash" json:"prev_block_hash"`
	TransactionsHash  *string   `db:"transactions_hash" json:"transactions_hash"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	TransactionsCount int       `db:"transactions_count" json:"transactions_count"`
}

// Domain is a namespace owning accounts, asset definitions and NFTs.
type DomainRow struct {
	Name     string `db:"name" json:"id"`
	Logo     *string `db:"logo" json:"logo"`
	Metadata string `db:"metadata" json:"metadata"` // raw JSON
}

// Account is a (signatory, domain) identity.
type Account struct {
	Signatory string `db:"signatory" json:"-"`
	Domain    string `db:"domain" json:"-"`
	Metadata  string `db:"metadata" json:"metadata"`
}

func (a Account) ID() AccountID { return AccountID{Signatory: a.Signatory, Domain: a.Domain} }

// DomainOwner links an account to a domain it owns.
type DomainOwner struct {
	AccountSignatory string `db:"account_signatory"`
	AccountDomain    string `db:"account_domain"`
	Domain           string `db:"domain"`
}

// AssetDefinition declares a fungible asset kind.
type AssetDefinition struct {
	Name            string   `db:"name" json:"-"`
	Domain          string   `db:"domain" json:"-"`
	OwnedBySig      string   `db:"owned_by_signatory" json:"-"`
	OwnedByDomain   string   `db:"owned_by_domain" json:"-"`
	Mintable        Mintable `db:"mintable" json:"mintable"`
	Logo            *string  `db:"logo" json:"logo"`
	Metadata        string   `db:"metadata" json:"metadata"`
}

func (a AssetDefinition) ID() AssetDefinitionID {
	return AssetDefinitionID{Name: a.Name, Domain: a.Domain}
}

func (a AssetDefinition) OwnedBy() AccountID {
	return AccountID{Signatory: a.OwnedBySig, Domain: a.OwnedByDomain}
}

// Asset is a fungible balance held by an account.
type Asset struct {
	DefinitionName  string `db:"definition_name" json:"-"`
	DefinitionDomain string `db:"definition_domain" json:"-"`
	OwnedBySig      string `db:"owned_by_signatory" json:"-"`
	OwnedByDomain   string `db:"owned_by_domain" json:"-"`
	Value           string `db:"value" json:"-"` // JSON-quoted decimal string
}

func (a Asset) ID() AssetID {
	return AssetID{
		DefinitionName:   a.DefinitionName,
		DefinitionDomain: a.DefinitionDomain,
		Owner:            AccountID{Signatory: a.OwnedBySig, Domain: a.OwnedByDomain},
	}
}

// Nft is a non-fungible token.
type Nft struct {
	Name          string `db:"name" json:"-"`
	Domain        string `db:"domain" json:"-"`
	OwnedBySig    string `db:"owned_by_signatory" json:"-"`
	OwnedByDomain string `db:"owned_by_domain" json:"-"`
	Content       string `db:"content" json:"content"`
}

func (n Nft) ID() NftID { return NftID{Name: n.Name, Domain: n.Domain} }

func (n Nft) OwnedBy() AccountID {
	return AccountID{Signatory: n.OwnedBySig, Domain: n.OwnedByDomain}
}

// Role is a named bundle of permission tokens (supplemented, SPEC_FULL.md §3).
type Role struct {
	Name        string `db:"name" json:"name"`
	Permissions string `db:"permissions" json:"permissions"` // JSON array
}

// RoleGrant links an account to a role it has been granted.
type RoleGrant struct {
	AccountSignatory string `db:"account_signatory"`
	AccountDomain    string `db:"account_domain"`
	Role             string `db:"role"`
}

// Peer is a network participant registered via Register(Peer) (supplemented).
type Peer struct {
	URL       string `db:"peer_url" json:"url"`
	PublicKey string `db:"public_key" json:"public_key"`
}

// Transaction is a signed, ordered batch of instructions (or a WASM blob).
type Transaction struct {
	Hash             string     `db:"hash" json:"hash"`
	BlockHeight      uint64     `db:"block_height" json:"block"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	AuthoritySig     string     `db:"authority_signatory" json:"-"`
	AuthorityDomain  string     `db:"authority_domain" json:"-"`
	Signature        string     `db:"signature" json:"signature"`
	Nonce            *uint32    `db:"nonce" json:"nonce"`
	Metadata         string     `db:"metadata" json:"metadata"`
	TimeToLiveMs     *uint64    `db:"time_to_live_ms" json:"time_to_live_ms"`
	Executable       Executable `db:"executable" json:"executable"`
	Error            *string    `db:"error" json:"error"` // raw JSON, nil iff committed
}

func (t Transaction) Authority() AccountID {
	return AccountID{Signatory: t.AuthoritySig, Domain: t.AuthorityDomain}
}

func (t Transaction) Status() TransactionStatus {
	if t.Error == nil {
		return StatusCommitted
	}
	return StatusRejected
}

// Instruction is one element of a transaction's Instructions payload.
type Instruction struct {
	TransactionHash string `db:"transaction_hash" json:"transaction_hash"`
	Position        int    `db:"position" json:"-"`
	Value           string `db:"value" json:"-"` // raw JSON {"<Kind>": {...}}
}
