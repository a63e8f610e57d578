package protocol

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse indicates a structurally invalid proof transport string, as
// opposed to a well-formed artifact carrying a cryptographically invalid
// proof.
var ErrParse = errors.New("malformed proof transport encoding")

const transportPrefix = "agekey.v1"
const transportFieldCount = 6

// String renders the artifact as a single opaque line suitable for QR
// encoding and file storage. Encoding then decoding reproduces an identical
// artifact.
func (qr *ProofQrCode) String() string {
	return strings.Join([]string{
		transportPrefix,
		strconv.FormatInt(qr.Public.Today, 10),
		strconv.FormatInt(qr.Public.Delta, 10),
		qr.Public.Relation.String(),
		FieldToDecimal(qr.Public.Contract),
		base64.RawURLEncoding.EncodeToString(qr.Proof),
	}, ":")
}

// ParseProofQrCode decodes the transport string form produced by String.
func ParseProofQrCode(s string) (*ProofQrCode, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != transportFieldCount {
		return nil, fmt.Errorf("%w; expected %d fields, got %d", ErrParse, transportFieldCount, len(parts))
	}
	if parts[0] != transportPrefix {
		return nil, fmt.Errorf("%w; unknown version prefix: %s", ErrParse, parts[0])
	}

	today, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || today < 0 {
		return nil, fmt.Errorf("%w; invalid today field: %s", ErrParse, parts[1])
	}

	delta, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || delta < 0 {
		return nil, fmt.Errorf("%w; invalid delta field: %s", ErrParse, parts[2])
	}

	relation, err := ParseRelation(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w; %s", ErrParse, err.Error())
	}

	contract, err := FieldFromDecimal(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w; invalid contract field; %s", ErrParse, err.Error())
	}

	proof, err := base64.RawURLEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w; invalid proof encoding; %s", ErrParse, err.Error())
	}

	return &ProofQrCode{
		Public: PublicQr{
			Today:    today,
			Contract: contract,
			Delta:    delta,
			Relation: relation,
		},
		Proof: proof,
	}, nil
}
