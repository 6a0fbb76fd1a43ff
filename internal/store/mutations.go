package store

import (
	"context"
	"fmt"
	"math/big"

	"github.com/jmoiron/sqlx"

	"github.com/iroha-explorer/explorer/internal/domain"
)

// Apply runs an ordered batch of mutations inside a single transaction
// (spec.md §4.2, one transaction per block). It takes the exclusive write
// lock for the whole batch so reads always observe either the pre- or
// post-block snapshot, never a partial one (spec.md §5, block-boundary
// consistency).
func (r *Repository) Apply(ctx context.Context, muts []domain.Mutation) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, m := range muts {
		if err := applyOne(ctx, tx, m); err != nil {
			return fmt.Errorf("apply mutation %T: %w", m, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

func applyOne(ctx context.Context, tx *sqlx.Tx, m domain.Mutation) error {
	switch v := m.(type) {
	case domain.InsertBlock:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO blocks (height, hash, prev_block_hash, transactions_hash, created_at, transactions_count)
			VALUES (?, ?, ?, ?, ?, ?)`,
			v.Block.Height, v.Block.Hash, v.Block.PrevBlockHash, v.Block.TransactionsHash,
			v.Block.CreatedAt.UTC().Format(timeLayout), v.Block.TransactionsCount)
		return err

	case domain.InsertTransaction:
		t := v.Transaction
		_, err := tx.ExecContext(ctx, `
			INSERT INTO transactions
				(hash, block_height, created_at, authority_signatory, authority_domain, signature, nonce, metadata, time_to_live_ms, executable, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.Hash, t.BlockHeight, t.CreatedAt.UTC().Format(timeLayout), t.AuthoritySig, t.AuthorityDomain,
			t.Signature, t.Nonce, t.Metadata, t.TimeToLiveMs, string(t.Executable), t.Error)
		return err

	case domain.InsertInstruction:
		i := v.Instruction
		_, err := tx.ExecContext(ctx, `INSERT INTO instructions (transaction_hash, position, value) VALUES (?, ?, ?)`,
			i.TransactionHash, i.Position, i.Value)
		return err

	case domain.UpsertDomain:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO domains (name, logo, metadata) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET logo = excluded.logo, metadata = excluded.metadata`,
			v.Name, v.Logo, orDefault(v.Metadata, "{}"))
		return err

	case domain.DeleteDomain:
		return cascadeDeleteDomain(ctx, tx, v.Name)

	case domain.UpsertAccount:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO accounts (signatory, domain, metadata) VALUES (?, ?, ?)
			ON CONFLICT(signatory, domain) DO UPDATE SET metadata = excluded.metadata`,
			v.Signatory, v.Domain, orDefault(v.Metadata, "{}"))
		return err

	case domain.DeleteAccount:
		return cascadeDeleteAccount(ctx, tx, v.Signatory, v.Domain)

	case domain.UpsertDomainOwner:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO domain_owners (account_signatory, account_domain, domain) VALUES (?, ?, ?)
			ON CONFLICT(account_signatory, account_domain, domain) DO NOTHING`,
			v.AccountSignatory, v.AccountDomain, v.Domain)
		return err

	case domain.DeleteDomainOwner:
		_, err := tx.ExecContext(ctx, `DELETE FROM domain_owners WHERE domain = ?`, v.Domain)
		return err

	case domain.UpsertAssetDefinition:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO asset_definitions (name, domain, owned_by_signatory, owned_by_domain, mintable, logo, metadata)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(name, domain) DO UPDATE SET
				owned_by_signatory = excluded.owned_by_signatory,
				owned_by_domain = excluded.owned_by_domain,
				mintable = excluded.mintable,
				logo = excluded.logo,
				metadata = excluded.metadata`,
			v.Name, v.Domain, v.OwnedBySig, v.OwnedByDomain, string(v.Mintable), v.Logo, orDefault(v.Metadata, "{}"))
		return err

	case domain.ReassignAssetDefinitionOwner:
		_, err := tx.ExecContext(ctx, `
			UPDATE asset_definitions SET owned_by_signatory = ?, owned_by_domain = ? WHERE name = ? AND domain = ?`,
			v.OwnedBySig, v.OwnedByDomain, v.Name, v.Domain)
		return err

	case domain.DeleteAssetDefinition:
		if _, err := tx.ExecContext(ctx, `DELETE FROM assets WHERE definition_name = ? AND definition_domain = ?`, v.Name, v.Domain); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM asset_definitions WHERE name = ? AND domain = ?`, v.Name, v.Domain)
		return err

	case domain.UpsertNft:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO nfts (name, domain, owned_by_signatory, owned_by_domain, content) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(name, domain) DO UPDATE SET
				owned_by_signatory = excluded.owned_by_signatory,
				owned_by_domain = excluded.owned_by_domain,
				content = excluded.content`,
			v.Name, v.Domain, v.OwnedBySig, v.OwnedByDomain, orDefault(v.Content, "{}"))
		return err

	case domain.UpdateNftOwner:
		_, err := tx.ExecContext(ctx, `
			UPDATE nfts SET owned_by_signatory = ?, owned_by_domain = ? WHERE name = ? AND domain = ?`,
			v.OwnedBySig, v.OwnedByDomain, v.Name, v.Domain)
		return err

	case domain.DeleteNft:
		_, err := tx.ExecContext(ctx, `DELETE FROM nfts WHERE name = ? AND domain = ?`, v.Name, v.Domain)
		return err

	case domain.UpsertAsset:
		return applyAssetDelta(ctx, tx, v)

	case domain.DeleteAsset:
		_, err := tx.ExecContext(ctx, `
			DELETE FROM assets WHERE definition_name = ? AND definition_domain = ? AND owned_by_signatory = ? AND owned_by_domain = ?`,
			v.DefinitionName, v.DefinitionDomain, v.OwnedBySig, v.OwnedByDomain)
		return err

	case domain.PatchMetadata:
		return patchMetadata(ctx, tx, v)

	case domain.RemoveMetadataKey:
		return removeMetadataKey(ctx, tx, v)

	case domain.UpsertRole:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO roles (name, permissions) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET permissions = excluded.permissions`,
			v.Name, orDefault(v.Permissions, "[]"))
		return err

	case domain.GrantRole:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO role_grants (account_signatory, account_domain, role) VALUES (?, ?, ?)
			ON CONFLICT(account_signatory, account_domain, role) DO NOTHING`,
			v.AccountSignatory, v.AccountDomain, v.Role)
		return err

	case domain.RevokeRole:
		_, err := tx.ExecContext(ctx, `
			DELETE FROM role_grants WHERE account_signatory = ? AND account_domain = ? AND role = ?`,
			v.AccountSignatory, v.AccountDomain, v.Role)
		return err

	case domain.UpsertPeer:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO peers (peer_url, public_key) VALUES (?, ?)
			ON CONFLICT(peer_url) DO UPDATE SET public_key = excluded.public_key`,
			v.URL, v.PublicKey)
		return err

	case domain.DeletePeer:
		_, err := tx.ExecContext(ctx, `DELETE FROM peers WHERE peer_url = ?`, v.URL)
		return err

	case domain.Checkpoint:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO checkpoint (id, height, hash, applied_at) VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET height = excluded.height, hash = excluded.hash, applied_at = excluded.applied_at`,
			v.Height, v.Hash, v.AppliedAt.UTC().Format(timeLayout))
		return err

	default:
		return fmt.Errorf("unknown mutation type %T", m)
	}
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// applyAssetDelta adds v.Value (a signed decimal string) to the asset's
// current balance (a missing row counts as zero) and stores the sum; when
// the sum is zero or negative the row is deleted instead, which clamps the
// balance at zero (spec.md §4.3). The sum is arbitrary-precision and has no
// upper bound: no overflow is detected or reported.
func applyAssetDelta(ctx context.Context, tx *sqlx.Tx, v domain.UpsertAsset) error {
	var current string
	err := tx.GetContext(ctx, &current, `
		SELECT value FROM assets WHERE definition_name = ? AND definition_domain = ? AND owned_by_signatory = ? AND owned_by_domain = ?`,
		v.DefinitionName, v.DefinitionDomain, v.OwnedBySig, v.OwnedByDomain)
	if err != nil {
		current = "0"
	}

	currentRat, ok := new(big.Rat).SetString(current)
	if !ok {
		return fmt.Errorf("corrupt asset balance %q", current)
	}
	deltaRat, ok := new(big.Rat).SetString(v.Value)
	if !ok {
		return fmt.Errorf("invalid asset delta %q", v.Value)
	}
	result := new(big.Rat).Add(currentRat, deltaRat)

	if result.Sign() <= 0 {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM assets WHERE definition_name = ? AND definition_domain = ? AND owned_by_signatory = ? AND owned_by_domain = ?`,
			v.DefinitionName, v.DefinitionDomain, v.OwnedBySig, v.OwnedByDomain)
		return err
	}

	value := result.FloatString(decimalPrecision(result))
	_, err = tx.ExecContext(ctx, `
		INSERT INTO assets (definition_name, definition_domain, owned_by_signatory, owned_by_domain, value)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(definition_name, definition_domain, owned_by_signatory, owned_by_domain) DO UPDATE SET value = excluded.value`,
		v.DefinitionName, v.DefinitionDomain, v.OwnedBySig, v.OwnedByDomain, value)
	return err
}

func decimalPrecision(r *big.Rat) int {
	if r.IsInt() {
		return 0
	}
	return 20
}

func patchMetadata(ctx context.Context, tx *sqlx.Tx, v domain.PatchMetadata) error {
	table, col, where, args := metadataTableAndWhere(v.Target, v.Key1, v.Key2)
	_, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = json_set(%s, ?, json(?)) WHERE %s`, table, col, col, where),
		append([]any{"$." + v.Path, v.Value}, args...)...)
	return err
}

func removeMetadataKey(ctx context.Context, tx *sqlx.Tx, v domain.RemoveMetadataKey) error {
	table, col, where, args := metadataTableAndWhere(v.Target, v.Key1, v.Key2)
	_, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = json_remove(%s, ?) WHERE %s`, table, col, col, where),
		append([]any{"$." + v.Path}, args...)...)
	return err
}

func metadataTableAndWhere(target domain.PatchMetadataTarget, key1, key2 string) (table, col, where string, args []any) {
	switch target {
	case domain.MetadataTargetDomain:
		return "domains", "metadata", "name = ?", []any{key1}
	case domain.MetadataTargetAccount:
		return "accounts", "metadata", "signatory = ? AND domain = ?", []any{key1, key2}
	case domain.MetadataTargetAssetDefinition:
		return "asset_definitions", "metadata", "name = ? AND domain = ?", []any{key1, key2}
	case domain.MetadataTargetNft:
		return "nfts", "content", "name = ? AND domain = ?", []any{key1, key2}
	default:
		return "", "", "1 = 0", nil
	}
}

func cascadeDeleteDomain(ctx context.Context, tx *sqlx.Tx, name string) error {
	stmts := []string{
		`DELETE FROM assets WHERE definition_domain = ? OR owned_by_domain = ?`,
		`DELETE FROM nfts WHERE domain = ? OR owned_by_domain = ?`,
		`DELETE FROM asset_definitions WHERE domain = ?`,
		`DELETE FROM role_grants WHERE account_domain = ?`,
		`DELETE FROM domain_owners WHERE domain = ? OR account_domain = ?`,
		`DELETE FROM accounts WHERE domain = ?`,
		`DELETE FROM domains WHERE name = ?`,
	}
	argSets := [][]any{
		{name, name}, {name, name}, {name}, {name}, {name, name}, {name}, {name},
	}
	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, argSets[i]...); err != nil {
			return err
		}
	}
	return nil
}

func cascadeDeleteAccount(ctx context.Context, tx *sqlx.Tx, signatory, dom string) error {
	stmts := []string{
		`DELETE FROM assets WHERE owned_by_signatory = ? AND owned_by_domain = ?`,
		`DELETE FROM nfts WHERE owned_by_signatory = ? AND owned_by_domain = ?`,
		`DELETE FROM asset_definitions WHERE owned_by_signatory = ? AND owned_by_domain = ?`,
		`DELETE FROM role_grants WHERE account_signatory = ? AND account_domain = ?`,
		`DELETE FROM domain_owners WHERE account_signatory = ? AND account_domain = ?`,
		`DELETE FROM accounts WHERE signatory = ? AND domain = ?`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, signatory, dom); err != nil {
			return err
		}
	}
	return nil
}
