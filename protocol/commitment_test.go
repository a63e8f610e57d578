package protocol

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustField(t *testing.T, s string) fr.Element {
	fe, err := FieldFromDecimal(s)
	require.NoError(t, err)
	return fe
}

func TestDeriveCardKeyDeterministic(t *testing.T) {
	nonce := mustField(t, "7999")
	photoHash := mustField(t, "3")
	contract := mustField(t, "4")

	k1 := DeriveCardKey(2001, nonce, photoHash, contract)
	k2 := DeriveCardKey(2001, nonce, photoHash, contract)
	assert.Equal(t, k1, k2)
}

func TestDeriveCardKeyBindsEveryInput(t *testing.T) {
	nonce := mustField(t, "7999")
	photoHash := mustField(t, "3")
	contract := mustField(t, "4")

	base := DeriveCardKey(2001, nonce, photoHash, contract)

	assert.NotEqual(t, base, DeriveCardKey(2002, nonce, photoHash, contract))
	assert.NotEqual(t, base, DeriveCardKey(2001, mustField(t, "8000"), photoHash, contract))
	assert.NotEqual(t, base, DeriveCardKey(2001, nonce, mustField(t, "5"), contract))
	assert.NotEqual(t, base, DeriveCardKey(2001, nonce, photoHash, mustField(t, "5")))
}

func TestDeriveCardKeyCompressesSums(t *testing.T) {
	// only birthday + nonce and photo_hash * contract enter the compression,
	// so inputs with equal sum and product collide by construction
	k1 := DeriveCardKey(2001, mustField(t, "7999"), mustField(t, "3"), mustField(t, "4"))
	k2 := DeriveCardKey(2000, mustField(t, "8000"), mustField(t, "4"), mustField(t, "3"))
	assert.Equal(t, k1, k2)
}

func TestGenerateNonceUnique(t *testing.T) {
	n1, err := GenerateNonce()
	require.NoError(t, err)
	n2, err := GenerateNonce()
	require.NoError(t, err)
	assert.NotEqual(t, n1, n2)
}
