package providers

import (
	"bytes"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/provideplatform/agekey/common"
)

// GnarkProverProvider interacts with the go-native gnark package; the
// proving scheme is Groth16 over BN254
type GnarkProverProvider struct {
	curveID ecc.ID
}

// InitGnarkProverProvider initializes and configures a new
// GnarkProverProvider instance
func InitGnarkProverProvider() *GnarkProverProvider {
	return &GnarkProverProvider{
		curveID: ecc.BN254,
	}
}

func (p *GnarkProverProvider) decodeR1CS(encodedR1CS []byte) (constraint.ConstraintSystem, error) {
	decodedR1CS := groth16.NewCS(p.curveID)
	_, err := decodedR1CS.ReadFrom(bytes.NewReader(encodedR1CS))
	if err != nil {
		common.Log.Warningf("unable to decode R1CS; %s", err.Error())
		return nil, err
	}
	return decodedR1CS, nil
}

func (p *GnarkProverProvider) decodeProvingKey(pk []byte) (groth16.ProvingKey, error) {
	provingKey := groth16.NewProvingKey(p.curveID)
	n, err := provingKey.ReadFrom(bytes.NewReader(pk))
	if err != nil {
		common.Log.Warningf("unable to decode proving key; %s", err.Error())
		return nil, err
	}
	common.Log.Debugf("read %d bytes during attempted proving key deserialization", n)
	return provingKey, nil
}

func (p *GnarkProverProvider) decodeVerifyingKey(vk []byte) (groth16.VerifyingKey, error) {
	verifyingKey := groth16.NewVerifyingKey(p.curveID)
	n, err := verifyingKey.ReadFrom(bytes.NewReader(vk))
	if err != nil {
		common.Log.Warningf("unable to decode verifying key; %s", err.Error())
		return nil, err
	}
	common.Log.Debugf("read %d bytes during attempted verifying key deserialization", n)
	return verifyingKey, nil
}

func (p *GnarkProverProvider) decodeProof(proof []byte) (groth16.Proof, error) {
	prf := groth16.NewProof(p.curveID)
	_, err := prf.ReadFrom(bytes.NewReader(proof))
	if err != nil {
		common.Log.Debugf("unable to decode proof; %s", err.Error())
		return nil, err
	}
	return prf, nil
}

// Compile the circuit to its serialized constraint system
func (p *GnarkProverProvider) Compile(circuit frontend.Circuit) ([]byte, error) {
	cs, err := frontend.Compile(p.curveID.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		common.Log.Warningf("failed to compile circuit to r1cs using gnark; %s", err.Error())
		return nil, err
	}

	buf := new(bytes.Buffer)
	if _, err := cs.WriteTo(buf); err != nil {
		common.Log.Warningf("failed to marshal binary constraint system; %s", err.Error())
		return nil, err
	}

	return buf.Bytes(), nil
}

// Execute runs the constraint system against the given witness without
// proving; an error means the witness does not satisfy the circuit
func (p *GnarkProverProvider) Execute(binary []byte, w witness.Witness) error {
	cs, err := p.decodeR1CS(binary)
	if err != nil {
		return err
	}
	return cs.IsSolved(w)
}

// Setup runs the Groth16 setup for the compiled circuit and returns the
// serialized proving and verifying keys
func (p *GnarkProverProvider) Setup(binary []byte) ([]byte, []byte, error) {
	cs, err := p.decodeR1CS(binary)
	if err != nil {
		return nil, nil, err
	}

	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		common.Log.Warningf("failed to setup verifier and proving keys; %s", err.Error())
		return nil, nil, err
	}

	pkBuf := new(bytes.Buffer)
	if _, err := pk.WriteTo(pkBuf); err != nil {
		return nil, nil, err
	}

	vkBuf := new(bytes.Buffer)
	if _, err := vk.WriteTo(vkBuf); err != nil {
		return nil, nil, err
	}

	return pkBuf.Bytes(), vkBuf.Bytes(), nil
}

// Prove generates a proof for the given witness
func (p *GnarkProverProvider) Prove(binary, provingKey []byte, w witness.Witness) ([]byte, error) {
	cs, err := p.decodeR1CS(binary)
	if err != nil {
		return nil, err
	}

	pk, err := p.decodeProvingKey(provingKey)
	if err != nil {
		return nil, err
	}

	proof, err := groth16.Prove(cs, pk, w)
	if err != nil {
		common.Log.Warningf("failed to generate proof using gnark; %s", err.Error())
		return nil, err
	}

	buf := new(bytes.Buffer)
	if _, err := proof.WriteTo(buf); err != nil {
		common.Log.Warningf("failed to marshal binary proof; %s", err.Error())
		return nil, err
	}

	return buf.Bytes(), nil
}

// Verify the given proof against the reconstructed public witness
func (p *GnarkProverProvider) Verify(proof, verifyingKey []byte, publicWitness witness.Witness) error {
	prf, err := p.decodeProof(proof)
	if err != nil {
		return err
	}

	vk, err := p.decodeVerifyingKey(verifyingKey)
	if err != nil {
		return err
	}

	return groth16.Verify(prf, vk, publicWitness)
}

// ExportVerifier exports the verifier smart contract for on-chain use
func (p *GnarkProverProvider) ExportVerifier(verifyingKey []byte) ([]byte, error) {
	vk, err := p.decodeVerifyingKey(verifyingKey)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := vk.ExportSolidity(buf); err != nil {
		common.Log.Warningf("failed to export verifier contract using gnark; %s", err.Error())
		return nil, err
	}

	return buf.Bytes(), nil
}
