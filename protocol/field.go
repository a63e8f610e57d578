package protocol

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrDecode indicates a malformed field element encoding
var ErrDecode = errors.New("malformed field element encoding")

// FieldFromBytes interprets the given bytes as a big-endian integer reduced
// into the scalar field. Total for any input length.
func FieldFromBytes(buf []byte) fr.Element {
	var fe fr.Element
	fe.SetBytes(buf)
	return fe
}

// FieldToBytes renders a field element as its fixed-width big-endian byte
// sequence, zero padded to the field's 32-byte width.
func FieldToBytes(fe fr.Element) []byte {
	buf := fe.Bytes()
	return buf[:]
}

// FieldFromDecimal parses a canonical decimal field element. Non-numeric
// input, negative values and values at or above the field modulus are
// rejected.
func FieldFromDecimal(s string) (fr.Element, error) {
	var fe fr.Element

	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fe, fmt.Errorf("%w; not a decimal integer: %s", ErrDecode, s)
	}
	if i.Sign() < 0 || i.Cmp(fr.Modulus()) >= 0 {
		return fe, fmt.Errorf("%w; value out of field range: %s", ErrDecode, s)
	}

	fe.SetBigInt(i)
	return fe, nil
}

// FieldToDecimal renders a field element in canonical decimal form.
func FieldToDecimal(fe fr.Element) string {
	return fe.BigInt(new(big.Int)).String()
}

// FieldFromInt64 coerces a machine integer to a field element. Reserved for
// the day-number and flag fields crossing the circuit boundary.
func FieldFromInt64(v int64) fr.Element {
	var fe fr.Element
	fe.SetInt64(v)
	return fe
}
