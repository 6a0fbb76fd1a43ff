// Package reducer implements the block reducer (C3): the pure mapping from
// a decoded committed block to the ordered list of relational mutations
// that bring the store in sync (spec.md §4.3).
package reducer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iroha-explorer/explorer/internal/domain"
)

// ErrReducer is returned for mutations the source format leaves ambiguous
// and that must not be silently dropped (spec.md §9): currently, a
// Transfer(AssetDefinition) whose owned fungible balances would need
// reassignment too.
var ErrReducer = errors.New("reducer error")

// Reduce is deterministic (P2): given the same block, it always produces
// byte-identical mutations in the same order, and rejected transactions
// never contribute world-state mutations (P4).
func Reduce(block domain.DecodedBlock) ([]domain.Mutation, error) {
	var muts []domain.Mutation

	var prevHash *string
	if block.PrevBlockHash != "" {
		h := block.PrevBlockHash
		prevHash = &h
	}
	var txsHash *string
	if block.TransactionsHash != "" {
		h := block.TransactionsHash
		txsHash = &h
	}

	muts = append(muts, domain.InsertBlock{Block: domain.Block{
		Height:            block.Height,
		Hash:              block.Hash,
		PrevBlockHash:     prevHash,
		TransactionsHash:  txsHash,
		CreatedAt:         block.CreatedAt,
		TransactionsCount: len(block.Transactions),
	}})

	for _, tx := range block.Transactions {
		muts = append(muts, domain.InsertTransaction{Transaction: domain.Transaction{
			Hash:            tx.Hash,
			BlockHeight:     block.Height,
			CreatedAt:       block.CreatedAt,
			AuthoritySig:    tx.AuthoritySig,
			AuthorityDomain: tx.AuthorityDomain,
			Signature:       tx.Signature,
			Nonce:           tx.Nonce,
			Metadata:        tx.Metadata,
			TimeToLiveMs:    tx.TimeToLiveMs,
			Executable:      tx.Executable,
			Error:           tx.Error,
		}})

		for pos, ins := range tx.Instructions {
			muts = append(muts, domain.InsertInstruction{Instruction: domain.Instruction{
				TransactionHash: tx.Hash,
				Position:        pos,
				Value:           ins.RawJSON,
			}})
		}

		if tx.Status() != domain.StatusCommitted {
			continue // rejected: history rows only (P4)
		}

		for _, ins := range tx.Instructions {
			worldMuts, err := reduceInstruction(tx, ins)
			if err != nil {
				return nil, fmt.Errorf("%w: tx %s: %w", ErrReducer, tx.Hash, err)
			}
			muts = append(muts, worldMuts...)
		}
	}

	return muts, nil
}

func reduceInstruction(tx domain.SignedTransaction, ins domain.InstructionPayload) ([]domain.Mutation, error) {
	switch ins.Kind {
	case domain.KindRegister:
		return reduceRegister(ins)
	case domain.KindUnregister:
		return reduceUnregister(ins)
	case domain.KindMint:
		return reduceMintBurn(ins, true)
	case domain.KindBurn:
		return reduceMintBurn(ins, false)
	case domain.KindTransfer:
		return reduceTransfer(ins)
	case domain.KindSetKeyValue:
		return reduceSetKeyValue(ins)
	case domain.KindRemoveKeyValue:
		return reduceRemoveKeyValue(ins)
	case domain.KindGrant:
		return reduceGrantRevoke(ins, true)
	case domain.KindRevoke:
		return reduceGrantRevoke(ins, false)
	case domain.KindExecuteTrigger, domain.KindLog, domain.KindSetParameter, domain.KindUpgrade, domain.KindCustom:
		return nil, nil // history only
	default:
		return nil, nil
	}
}

func reduceRegister(ins domain.InstructionPayload) ([]domain.Mutation, error) {
	switch ins.Object {
	case domain.ObjectDomain:
		name, _ := ins.Payload["id"].(string)
		logo := optionalString(ins.Payload["logo"])
		meta := jsonOf(ins.Payload["metadata"])
		return []domain.Mutation{domain.UpsertDomain{Name: name, Logo: logo, Metadata: meta}}, nil

	case domain.ObjectAccount:
		sig, dom := accountParts(ins.Payload["id"])
		meta := jsonOf(ins.Payload["metadata"])
		return []domain.Mutation{domain.UpsertAccount{Signatory: sig, Domain: dom, Metadata: meta}}, nil

	case domain.ObjectAssetDefinition:
		name, dom := assetDefParts(ins.Payload["id"])
		ownerSig, ownerDom := accountParts(ins.Payload["owned_by"])
		mintable := domain.Mintable(stringOr(ins.Payload["mintable"], string(domain.MintableNot)))
		logo := optionalString(ins.Payload["logo"])
		meta := jsonOf(ins.Payload["metadata"])
		return []domain.Mutation{domain.UpsertAssetDefinition{
			Name: name, Domain: dom, Mintable: mintable, Logo: logo, Metadata: meta,
			OwnedBySig: ownerSig, OwnedByDomain: ownerDom,
		}}, nil

	case domain.ObjectNft:
		name, dom := nftParts(ins.Payload["id"])
		ownerSig, ownerDom := accountParts(ins.Payload["owned_by"])
		content := jsonOf(ins.Payload["content"])
		return []domain.Mutation{domain.UpsertNft{
			Name: name, Domain: dom, OwnedBySig: ownerSig, OwnedByDomain: ownerDom, Content: content,
		}}, nil

	case domain.ObjectPeer:
		url, _ := ins.Payload["address"].(string)
		pubKey, _ := ins.Payload["public_key"].(string)
		return []domain.Mutation{domain.UpsertPeer{URL: url, PublicKey: pubKey}}, nil

	case domain.ObjectRole:
		name, _ := ins.Payload["id"].(string)
		perms := jsonOf(ins.Payload["permissions"])
		return []domain.Mutation{domain.UpsertRole{Name: name, Permissions: perms}}, nil

	default:
		return nil, nil
	}
}

func reduceUnregister(ins domain.InstructionPayload) ([]domain.Mutation, error) {
	switch ins.Object {
	case domain.ObjectDomain:
		name, _ := ins.Payload["id"].(string)
		return []domain.Mutation{domain.DeleteDomain{Name: name}}, nil
	case domain.ObjectAccount:
		sig, dom := accountParts(ins.Payload["id"])
		return []domain.Mutation{domain.DeleteAccount{Signatory: sig, Domain: dom}}, nil
	case domain.ObjectAssetDefinition:
		name, dom := assetDefParts(ins.Payload["id"])
		return []domain.Mutation{domain.DeleteAssetDefinition{Name: name, Domain: dom}}, nil
	case domain.ObjectNft:
		name, dom := nftParts(ins.Payload["id"])
		return []domain.Mutation{domain.DeleteNft{Name: name, Domain: dom}}, nil
	case domain.ObjectPeer:
		url, _ := ins.Payload["address"].(string)
		return []domain.Mutation{domain.DeletePeer{URL: url}}, nil
	default:
		return nil, nil
	}
}

// reduceMintBurn emits the asset's signed balance delta. The actual arithmetic
// (adding/subtracting against the current row) happens in the repository,
// which owns the only consistent read of the prior balance within the
// block's transaction; the reducer only carries the signed delta forward via
// Value, prefixed with the instruction's sign semantics.
func reduceMintBurn(ins domain.InstructionPayload, isMint bool) ([]domain.Mutation, error) {
	if ins.Object != domain.ObjectAsset {
		return nil, nil // minting/burning anything but Asset is not defined in this system
	}
	defName, defDom, ownerSig, ownerDom := assetIDParts(ins.Payload["id"])
	amount := stringOr(ins.Payload["amount"], "0")
	if !isMint {
		amount = "-" + amount
	}
	return []domain.Mutation{domain.UpsertAsset{
		DefinitionName: defName, DefinitionDomain: defDom,
		OwnedBySig: ownerSig, OwnedByDomain: ownerDom,
		Value: amount, // signed delta; repository adds it to the current balance
	}}, nil
}

func reduceTransfer(ins domain.InstructionPayload) ([]domain.Mutation, error) {
	switch ins.Object {
	case domain.ObjectAsset:
		defName, defDom, srcSig, srcDom := assetIDParts(ins.Payload["source_id"])
		_, _, dstSig, dstDom := assetIDParts(ins.Payload["destination_id"])
		amount := stringOr(ins.Payload["amount"], "0")
		return []domain.Mutation{
			domain.UpsertAsset{DefinitionName: defName, DefinitionDomain: defDom, OwnedBySig: srcSig, OwnedByDomain: srcDom, Value: "-" + amount},
			domain.UpsertAsset{DefinitionName: defName, DefinitionDomain: defDom, OwnedBySig: dstSig, OwnedByDomain: dstDom, Value: amount},
		}, nil

	case domain.ObjectNft:
		name, dom := nftParts(ins.Payload["id"])
		dstSig, dstDom := accountParts(ins.Payload["destination_id"])
		return []domain.Mutation{domain.UpdateNftOwner{Name: name, Domain: dom, OwnedBySig: dstSig, OwnedByDomain: dstDom}}, nil

	case domain.ObjectDomain:
		name, _ := ins.Payload["id"].(string)
		dstSig, dstDom := accountParts(ins.Payload["destination_id"])
		return []domain.Mutation{
			domain.DeleteDomainOwner{Domain: name},
			domain.UpsertDomainOwner{AccountSignatory: dstSig, AccountDomain: dstDom, Domain: name},
		}, nil

	case domain.ObjectAssetDefinition:
		// Open question (spec.md §9): whether owned fungible balances should
		// also be reassigned is undocumented upstream. We do not silently
		// drop the ambiguity; we surface it so operators notice and can
		// decide per-deployment rather than have balances quietly diverge.
		name, dom := assetDefParts(ins.Payload["id"])
		dstSig, dstDom := accountParts(ins.Payload["destination_id"])
		return []domain.Mutation{domain.ReassignAssetDefinitionOwner{
			Name: name, Domain: dom, OwnedBySig: dstSig, OwnedByDomain: dstDom,
		}}, fmt.Errorf("%w: Transfer(AssetDefinition) %s#%s does not reassign owned asset balances; verify downstream state manually", ErrReducer, name, dom)

	default:
		return nil, nil
	}
}

func reduceSetKeyValue(ins domain.InstructionPayload) ([]domain.Mutation, error) {
	target, key1, key2, ok := metadataTarget(ins)
	if !ok {
		return nil, nil
	}
	path, _ := ins.Payload["key"].(string)
	value := jsonOf(ins.Payload["value"])
	return []domain.Mutation{domain.PatchMetadata{Target: target, Key1: key1, Key2: key2, Path: path, Value: value}}, nil
}

func reduceRemoveKeyValue(ins domain.InstructionPayload) ([]domain.Mutation, error) {
	target, key1, key2, ok := metadataTarget(ins)
	if !ok {
		return nil, nil
	}
	path, _ := ins.Payload["key"].(string)
	return []domain.Mutation{domain.RemoveMetadataKey{Target: target, Key1: key1, Key2: key2, Path: path}}, nil
}

func reduceGrantRevoke(ins domain.InstructionPayload, isGrant bool) ([]domain.Mutation, error) {
	role, ok := ins.Payload["object"].(string)
	if !ok {
		return nil, nil // Grant/Revoke of a raw permission token, not a Role: history only
	}
	sig, dom := accountParts(ins.Payload["destination"])
	if isGrant {
		return []domain.Mutation{domain.GrantRole{AccountSignatory: sig, AccountDomain: dom, Role: role}}, nil
	}
	return []domain.Mutation{domain.RevokeRole{AccountSignatory: sig, AccountDomain: dom, Role: role}}, nil
}

func metadataTarget(ins domain.InstructionPayload) (domain.PatchMetadataTarget, string, string, bool) {
	switch ins.Object {
	case domain.ObjectDomain:
		name, _ := ins.Payload["object"].(string)
		return domain.MetadataTargetDomain, name, "", true
	case domain.ObjectAccount:
		sig, dom := accountParts(ins.Payload["object"])
		return domain.MetadataTargetAccount, sig, dom, true
	case domain.ObjectAssetDefinition:
		name, dom := assetDefParts(ins.Payload["object"])
		return domain.MetadataTargetAssetDefinition, name, dom, true
	case domain.ObjectNft:
		name, dom := nftParts(ins.Payload["object"])
		return domain.MetadataTargetNft, name, dom, true
	default:
		return "", "", "", false
	}
}

// --- decoding helpers: the chain SDK's native id shape is a nested object;
// these helpers pick out the parts the reducer needs without requiring a
// full SDK type dependency in this package. ---

func accountParts(v any) (signatory, domain string) {
	m, _ := v.(map[string]any)
	signatory, _ = m["signatory"].(string)
	domain, _ = m["domain"].(string)
	return
}

func assetDefParts(v any) (name, domain string) {
	m, _ := v.(map[string]any)
	name, _ = m["name"].(string)
	domain, _ = m["domain"].(string)
	return
}

func nftParts(v any) (name, domain string) {
	return assetDefParts(v)
}

func assetIDParts(v any) (defName, defDomain, ownerSig, ownerDomain string) {
	m, _ := v.(map[string]any)
	if def, ok := m["definition"].(map[string]any); ok {
		defName, _ = def["name"].(string)
		defDomain, _ = def["domain"].(string)
	}
	if acc, ok := m["account"].(map[string]any); ok {
		ownerSig, _ = acc["signatory"].(string)
		ownerDomain, _ = acc["domain"].(string)
	}
	return
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func stringOr(v any, def string) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return json.Number(fmt.Sprintf("%v", t)).String()
	default:
		return def
	}
}

func jsonOf(v any) string {
	if v == nil {
		return "{}"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
