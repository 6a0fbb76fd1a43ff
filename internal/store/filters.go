package store

// Filters accepted per endpoint (spec.md §6). A filter referencing a
// non-existent entity is not an error — it produces an empty page
// (spec.md §4.2). Unknown query parameters are not rejected: the HTTP
// handlers read the filter keys they know and ignore any others.

type TransactionFilter struct {
	Block     *uint64
	Authority *string // "<signatory>@<domain>"
	Status    *string // "committed" | "rejected"
}

type InstructionFilter struct {
	Kind              *string
	Authority         *string
	TransactionStatus *string
	TransactionHash   *string
	Block             *uint64
}

type DomainFilter struct{}

type AccountFilter struct {
	Domain *string
}

type AssetDefinitionFilter struct {
	Domain *string
}

type AssetFilter struct {
	Owner      *string // "<signatory>@<domain>"
	Definition *string // "<name>#<domain>"
}

type NftFilter struct {
	Domain *string
	Owner  *string
}

type RoleFilter struct{}
