package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSig = "ed012000000000000000000000000000000000000000000000000000000000000001"

func TestAccountIDRoundTrip(t *testing.T) {
	id, err := ParseAccountID(validSig + "@wonderland")
	require.NoError(t, err)
	assert.Equal(t, validSig, id.Signatory)
	assert.Equal(t, "wonderland", id.Domain)
	assert.Equal(t, validSig+"@wonderland", id.String())
}

func TestAccountIDRejectsMalformed(t *testing.T) {
	t.Run("no separator", func(t *testing.T) {
		_, err := ParseAccountID(validSig)
		require.Error(t, err)
	})

	t.Run("empty domain", func(t *testing.T) {
		_, err := ParseAccountID(validSig + "@")
		require.Error(t, err)
	})

	t.Run("invalid signatory", func(t *testing.T) {
		_, err := ParseAccountID("not-hex-or-base58!!@wonderland")
		require.Error(t, err)
	})
}

func TestAssetDefinitionIDRoundTrip(t *testing.T) {
	id, err := ParseAssetDefinitionID("rose#wonderland")
	require.NoError(t, err)
	assert.Equal(t, AssetDefinitionID{Name: "rose", Domain: "wonderland"}, id)
	assert.Equal(t, "rose#wonderland", id.String())
}

func TestNftIDRoundTrip(t *testing.T) {
	id, err := ParseNftID("token$wonderland")
	require.NoError(t, err)
	assert.Equal(t, NftID{Name: "token", Domain: "wonderland"}, id)
	assert.Equal(t, "token$wonderland", id.String())
}

func TestAssetIDShortForm(t *testing.T) {
	s := "rose##" + validSig + "@wonderland"
	id, err := ParseAssetID(s)
	require.NoError(t, err)
	assert.Equal(t, "rose", id.DefinitionName)
	assert.Equal(t, "wonderland", id.DefinitionDomain)
	assert.Equal(t, validSig, id.Owner.Signatory)
	assert.Equal(t, s, id.String())
}

func TestAssetIDLongForm(t *testing.T) {
	s := "rose#otherdomain#" + validSig + "@wonderland"
	id, err := ParseAssetID(s)
	require.NoError(t, err)
	assert.Equal(t, "rose", id.DefinitionName)
	assert.Equal(t, "otherdomain", id.DefinitionDomain)
	assert.Equal(t, "wonderland", id.Owner.Domain)
	assert.Equal(t, s, id.String())
}

func TestUnescapeIDDecodesPercentEscapes(t *testing.T) {
	out, err := UnescapeID("rose%23wonderland")
	require.NoError(t, err)
	assert.Equal(t, "rose#wonderland", out)
}

func TestUnescapeIDPassesThroughOtherSeparators(t *testing.T) {
	out, err := UnescapeID(validSig + "@wonderland")
	require.NoError(t, err)
	assert.Equal(t, validSig+"@wonderland", out)
}

func TestUnescapeIDRejectsTruncatedEscape(t *testing.T) {
	_, err := UnescapeID("rose%2")
	require.Error(t, err)
}

func TestUnescapeIDRejectsInvalidHexDigits(t *testing.T) {
	_, err := UnescapeID("rose%zz")
	require.Error(t, err)
}
