package domain

import "time"

// Mutation is the marker interface implemented by every directive the
// reducer (C3) emits and the repository (C2) applies inside a single
// transaction per block (spec.md §4.2, §4.3). Mutations are plain data:
// the repository package type-switches over them and performs the actual
// SQL, keeping the reducer free of any store dependency.
type Mutation interface {
	mutation()
}

type InsertBlock struct {
	Block Block
}

type InsertTransaction struct {
	Transaction Transaction
}

type InsertInstruction struct {
	Instruction Instruction
}

type UpsertDomain struct {
	Name     string
	Logo     *string
	Metadata string
}

type UpsertAccount struct {
	Signatory string
	Domain    string
	Metadata  string
}

type UpsertDomainOwner struct {
	AccountSignatory string
	AccountDomain    string
	Domain           string
}

type DeleteDomainOwner struct {
	Domain string
}

type UpsertAssetDefinition struct {
	Name          string
	Domain        string
	Mintable      Mintable
	Logo          *string
	Metadata      string
	OwnedBySig    string
	OwnedByDomain string
}

type ReassignAssetDefinitionOwner struct {
	Name          string
	Domain        string
	OwnedBySig    string
	OwnedByDomain string
}

type DeleteAssetDefinition struct {
	Name   string
	Domain string
}

type UpsertNft struct {
	Name          string
	Domain        string
	OwnedBySig    string
	OwnedByDomain string
	Content       string
}

type UpdateNftOwner struct {
	Name          string
	Domain        string
	OwnedBySig    string
	OwnedByDomain string
}

type DeleteNft struct {
	Name   string
	Domain string
}

// UpsertAsset carries a signed decimal delta in Value (negative for Burn and
// for the source side of a Transfer); the repository adds it to the current
// balance and deletes the row when the result is zero or negative
// (spec.md §4.3, "on zero, delete").
type UpsertAsset struct {
	DefinitionName   string
	DefinitionDomain string
	OwnedBySig       string
	OwnedByDomain    string
	Value            string
}

type DeleteAsset struct {
	DefinitionName   string
	DefinitionDomain string
	OwnedBySig       string
	OwnedByDomain    string
}

type DeleteAccount struct {
	Signatory string
	Domain    string
}

type DeleteDomain struct {
	Name string
}

// PatchMetadataTarget names which metadata-bearing table a SetKeyValue /
// RemoveKeyValue instruction targets.
type PatchMetadataTarget string

const (
	MetadataTargetDomain          PatchMetadataTarget = "domain"
	MetadataTargetAccount         PatchMetadataTarget = "account"
	MetadataTargetAssetDefinition PatchMetadataTarget = "asset_definition"
	MetadataTargetNft             PatchMetadataTarget = "nft"
)

type PatchMetadata struct {
	Target PatchMetadataTarget
	Key1   string // primary natural-key column (name/signatory)
	Key2   string // secondary natural-key column (domain), empty if n/a
	Path   string // dotted JSON key path
	Value  string // raw JSON value to set
}

type RemoveMetadataKey struct {
	Target PatchMetadataTarget
	Key1   string
	Key2   string
	Path   string
}

type UpsertRole struct {
	Name        string
	Permissions string
}

type GrantRole struct {
	AccountSignatory string
	AccountDomain    string
	Role             string
}

type RevokeRole struct {
	AccountSignatory string
	AccountDomain    string
	Role             string
}

type UpsertPeer struct {
	URL       string
	PublicKey string
}

type DeletePeer struct {
	URL string
}

// Checkpoint records the highest applied block height/hash (C2.checkpoint).
type Checkpoint struct {
	Height    uint64
	Hash      string
	AppliedAt time.Time
}

func (InsertBlock) mutation()                  {}
func (InsertTransaction) mutation()             {}
func (InsertInstruction) mutation()             {}
func (UpsertDomain) mutation()                  {}
func (UpsertAccount) mutation()                 {}
func (UpsertDomainOwner) mutation()             {}
func (DeleteDomainOwner) mutation()              {}
func (UpsertAssetDefinition) mutation()         {}
func (ReassignAssetDefinitionOwner) mutation()  {}
func (DeleteAssetDefinition) mutation()         {}
func (UpsertNft) mutation()                     {}
func (UpdateNftOwner) mutation()                {}
func (DeleteNft) mutation()                     {}
func (UpsertAsset) mutation()                   {}
func (DeleteAsset) mutation()                   {}
func (DeleteAccount) mutation()                 {}
func (DeleteDomain) mutation()                  {}
func (PatchMetadata) mutation()                 {}
func (RemoveMetadataKey) mutation()             {}
func (UpsertRole) mutation()                    {}
func (GrantRole) mutation()                     {}
func (RevokeRole) mutation()                    {}
func (UpsertPeer) mutation()                    {}
func (DeletePeer) mutation()                    {}
func (Checkpoint) mutation()                    {}
