package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSignatoryAcceptsHex(t *testing.T) {
	require.NoError(t, ValidateSignatory(validSig))
}

func TestValidateSignatoryRejectsEmpty(t *testing.T) {
	require.Error(t, ValidateSignatory(""))
}

func TestValidateSignatoryRejectsGarbage(t *testing.T) {
	require.Error(t, ValidateSignatory("not valid hex or base58!!"))
}

func TestValidateSignatoryRejectsTooShort(t *testing.T) {
	require.Error(t, ValidateSignatory("ab"))
}
