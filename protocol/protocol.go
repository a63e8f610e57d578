package protocol

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Relation is the claimed ordering between the holder's age and a threshold.
type Relation int

const (
	// RelationOlder claims the holder is strictly older than the threshold
	RelationOlder Relation = iota

	// RelationYounger claims the holder is strictly younger than the threshold
	RelationYounger
)

func (r Relation) String() string {
	switch r {
	case RelationOlder:
		return "older"
	case RelationYounger:
		return "younger"
	}
	return fmt.Sprintf("invalid(%d)", int(r))
}

// ParseRelation parses the string form emitted by Relation.String
func ParseRelation(s string) (Relation, error) {
	switch s {
	case "older":
		return RelationOlder, nil
	case "younger":
		return RelationYounger, nil
	}
	return RelationOlder, fmt.Errorf("unknown relation: %s", s)
}

// Private is the prover's secret material. It is consumed as circuit input
// only and is never serialized into any output artifact.
type Private struct {
	Birthday int64
	Nonce    fr.Element
}

// PublicQr is the public claim embedded verbatim in the transportable proof.
type PublicQr struct {
	Today    int64
	Contract fr.Element
	Delta    int64
	Relation Relation
}

// PublicChain is the chain record bound to a contract. At verification time
// only an independently supplied copy is authoritative.
type PublicChain struct {
	PhotoHash fr.Element
	ProverKey fr.Element
}

// QrRequest is a single proof request; it is fully consumed by the proof
// generation orchestrator.
type QrRequest struct {
	Qr      PublicQr
	Chain   PublicChain
	Private Private
}

// ProofQrCode is the transportable proof artifact; it carries no private
// material.
type ProofQrCode struct {
	Public PublicQr
	Proof  []byte
}

// IsRelationValid reports whether the requested claim is actually true for
// the holder's birthday. The inequalities are strict: on the threshold day
// itself neither relation holds.
func (rq *QrRequest) IsRelationValid() bool {
	diff := rq.Qr.Today - rq.Private.Birthday
	if rq.Qr.Relation == RelationYounger {
		return diff < rq.Qr.Delta
	}
	return diff > rq.Qr.Delta
}
