// Package domain holds the wire-level value types shared by the store, the
// reducer and the HTTP surface: composite identifiers, tagged unions, and the
// big-integer/decimal encodings the frontend depends on.
package domain

import (
	"fmt"
	"strings"
)

// AccountID is the pair (signatory, domain), displayed as "<signatory>@<domain>".
type AccountID struct {
	Signatory string
	Domain    string
}

func (id AccountID) String() string {
	return id.Signatory + "@" + id.Domain
}

// ParseAccountID parses the displayable form of an account id. The input is
// expected to already be percent-decoded by the caller (see UnescapeID).
func ParseAccountID(s string) (AccountID, error) {
	at := strings.LastIndex(s, "@")
	if at < 0 || at == 0 || at == len(s)-1 {
		return AccountID{}, fmt.Errorf("invalid account id %q: expected <signatory>@<domain>", s)
	}
	signatory := s[:at]
	if err := ValidateSignatory(signatory); err != nil {
		return AccountID{}, fmt.Errorf("invalid account id %q: %w", s, err)
	}
	return AccountID{Signatory: signatory, Domain: s[at+1:]}, nil
}

// AssetDefinitionID is the pair (name, domain), displayed as "<name>#<domain>".
type AssetDefinitionID struct {
	Name   string
	Domain string
}

func (id AssetDefinitionID) String() string {
	return id.Name + "#" + id.Domain
}

func ParseAssetDefinitionID(s string) (AssetDefinitionID, error) {
	hash := strings.Index(s, "#")
	if hash < 0 || hash == 0 || hash == len(s)-1 {
		return AssetDefinitionID{}, fmt.Errorf("invalid asset definition id %q: expected <name>#<domain>", s)
	}
	return AssetDefinitionID{Name: s[:hash], Domain: s[hash+1:]}, nil
}

// NftID is the pair (name, domain), displayed as "<name>$<domain>".
type NftID struct {
	Name   string
	Domain string
}

func (id NftID) String() string {
	return id.Name + "$" + id.Domain
}

func ParseNftID(s string) (NftID, error) {
	dollar := strings.Index(s, "$")
	if dollar < 0 || dollar == 0 || dollar == len(s)-1 {
		return NftID{}, fmt.Errorf("invalid nft id %q: expected <name>$<domain>", s)
	}
	return NftID{Name: s[:dollar], Domain: s[dollar+1:]}, nil
}

// AssetID unions an AssetDefinitionID and an AccountID. When the asset
// definition's domain matches the owning account's domain the short form
// "<name>##<signatory>@<domain>" is used; otherwise the long form
// "<name>#<def_domain>#<signatory>@<owner_domain>".
type AssetID struct {
	DefinitionName   string
	DefinitionDomain string
	Owner            AccountID
}

func (id AssetID) String() string {
	if id.DefinitionDomain == id.Owner.Domain {
		return fmt.Sprintf("%s##%s", id.DefinitionName, id.Owner.String())
	}
	return fmt.Sprintf("%s#%s#%s", id.DefinitionName, id.DefinitionDomain, id.Owner.String())
}

// ParseAssetID accepts both the short and long composite forms.
func ParseAssetID(s string) (AssetID, error) {
	if idx := strings.Index(s, "##"); idx >= 0 {
		name := s[:idx]
		rest := s[idx+2:]
		if name == "" || rest == "" {
			return AssetID{}, fmt.Errorf("invalid asset id %q", s)
		}
		owner, err := ParseAccountID(rest)
		if err != nil {
			return AssetID{}, fmt.Errorf("invalid asset id %q: %w", s, err)
		}
		return AssetID{DefinitionName: name, DefinitionDomain: owner.Domain, Owner: owner}, nil
	}

	parts := strings.SplitN(s, "#", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return AssetID{}, fmt.Errorf("invalid asset id %q: expected <name>#<def_domain>#<signatory>@<owner_domain>", s)
	}
	owner, err := ParseAccountID(parts[2])
	if err != nil {
		return AssetID{}, fmt.Errorf("invalid asset id %q: %w", s, err)
	}
	return AssetID{DefinitionName: parts[0], DefinitionDomain: parts[1], Owner: owner}, nil
}

// UnescapeID percent-decodes a single path segment exactly once. Per the
// routing contract, "#" must be submitted as "%23" so it is not confused with
// the literal separator; other separators ("@", "$", "##") pass through
// unescaped and need no special handling from callers.
func UnescapeID(raw string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+2 >= len(raw) {
			return "", fmt.Errorf("invalid percent-encoding in %q", raw)
		}
		hi, ok1 := hexVal(raw[i+1])
		lo, ok2 := hexVal(raw[i+2])
		if !ok1 || !ok2 {
			return "", fmt.Errorf("invalid percent-encoding in %q", raw)
		}
		b.WriteByte(hi<<4 | lo)
		i += 2
	}

	return b.String(), nil
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
