package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProofQrCode(t *testing.T) *ProofQrCode {
	return &ProofQrCode{
		Public: PublicQr{
			Today:    2459000,
			Contract: mustField(t, "4"),
			Delta:    6574,
			Relation: RelationYounger,
		},
		Proof: []byte{0x00, 0x01, 0xfe, 0xff, 0x42},
	}
}

func TestTransportRoundTrip(t *testing.T) {
	qr := sampleProofQrCode(t)

	encoded := qr.String()
	assert.True(t, strings.HasPrefix(encoded, "agekey.v1:"))
	assert.NotContains(t, encoded, "\n")

	decoded, err := ParseProofQrCode(encoded)
	require.NoError(t, err)
	assert.Equal(t, qr, decoded)

	// encode-decode-encode is a fixed point
	assert.Equal(t, encoded, decoded.String())
}

func TestTransportRejectsOutOfRangeRelation(t *testing.T) {
	qr := sampleProofQrCode(t)
	qr.Public.Relation = Relation(7)

	_, err := ParseProofQrCode(qr.String())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseProofQrCodeRejectsMalformedInput(t *testing.T) {
	valid := sampleProofQrCode(t).String()

	tt := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing fields", "agekey.v1:2459000:6574"},
		{"extra field", valid + ":extra"},
		{"wrong prefix", strings.Replace(valid, "agekey.v1", "agekey.v2", 1)},
		{"non-numeric today", strings.Replace(valid, ":2459000:", ":soon:", 1)},
		{"non-numeric delta", strings.Replace(valid, ":6574:", ":x:", 1)},
		{"negative today", strings.Replace(valid, ":2459000:", ":-2459000:", 1)},
		{"negative delta", strings.Replace(valid, ":6574:", ":-1:", 1)},
		{"unknown relation", strings.Replace(valid, ":younger:", ":about:", 1)},
		{"out-of-field contract", strings.Replace(valid, ":4:", ":21888242871839275222246405745257275088548364400416034343698204186575808495617:", 1)},
		{"invalid proof encoding", valid + "!"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseProofQrCode(tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}
