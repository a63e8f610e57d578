package protocol

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// DeriveCardKey computes the card key binding a birthday and a secret nonce
// to a photo hash and contract identifier:
//
//	MiMC(birthday + nonce, photo_hash * contract)
//
// A different contract or photo yields an unrelated key even for the same
// birthday and nonce, so a key certified for one context cannot be replayed
// in another. The same compression runs inside the circuit; the two must
// stay constraint-compatible.
func DeriveCardKey(birthday int64, nonce fr.Element, photoHash fr.Element, contract fr.Element) fr.Element {
	var x, k fr.Element
	x.SetInt64(birthday)
	x.Add(&x, &nonce)
	k.Mul(&photoHash, &contract)

	hasher := mimc.NewMiMC()
	hasher.Write(x.Marshal())
	hasher.Write(k.Marshal())

	var cardKey fr.Element
	cardKey.SetBytes(hasher.Sum(nil))
	return cardKey
}

// GenerateNonce draws a uniformly random field element from a
// cryptographically seeded source; one nonce per certification.
func GenerateNonce() (fr.Element, error) {
	var nonce fr.Element
	if _, err := nonce.SetRandom(); err != nil {
		return nonce, fmt.Errorf("failed to generate nonce; %s", err.Error())
	}
	return nonce, nil
}
