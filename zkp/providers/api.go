package providers

import (
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
)

// ZKSnarkProverProviderGnark gnark zksnark prover provider
const ZKSnarkProverProviderGnark = "gnark"

// ProverProvider provides a common interface to interact with the external
// proving engine. Compiled circuits and key material cross this boundary as
// opaque byte blobs whose format is owned by the engine.
type ProverProvider interface {
	Compile(circuit frontend.Circuit) ([]byte, error)
	Execute(binary []byte, witness witness.Witness) error
	Setup(binary []byte) ([]byte, []byte, error)
	Prove(binary, provingKey []byte, witness witness.Witness) ([]byte, error)
	Verify(proof, verifyingKey []byte, publicWitness witness.Witness) error
	ExportVerifier(verifyingKey []byte) ([]byte, error)
}
