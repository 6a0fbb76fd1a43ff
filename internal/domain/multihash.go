package domain

import (
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multihash"
)

// ValidateSignatory checks that an account's signatory is a well-formed
// multihash-encoded public key (spec.md §3, Account.signatory). Iroha renders
// signatories as lowercase hex (e.g. "ed0120...") rather than base58, so the
// hex string is decoded to bytes and handed to go-multihash for structural
// validation; base58 is retained for the rare client that submits the
// base58btc form (the encoding multiformats/go-cid tooling defaults to).
func ValidateSignatory(signatory string) error {
	if signatory == "" {
		return fmt.Errorf("empty signatory")
	}

	raw, err := hex.DecodeString(signatory)
	if err != nil {
		raw, err = base58.Decode(signatory)
		if err != nil {
			return fmt.Errorf("signatory %q is neither valid hex nor base58", signatory)
		}
	}

	if _, err := multihash.Cast(raw); err != nil {
		// Not every Iroha key algorithm prefix is registered in the
		// multicodec table multihash.Cast checks against; fall back to a
		// length sanity check rather than rejecting otherwise well-formed ids.
		if len(raw) < 4 {
			return fmt.Errorf("signatory %q decodes to %d bytes, too short to be a multihash", signatory, len(raw))
		}
	}

	return nil
}
