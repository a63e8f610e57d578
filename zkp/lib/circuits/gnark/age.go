package gnark

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// AgeCircuit proves that the holder of a certified birthday is strictly
// older or younger than a public day threshold, without revealing the
// birthday. The commitment constraint ties the secret inputs to the card
// key certified on chain.
//
// Public input ordering is contractual: gnark serializes the public witness
// in declaration order, and the verifier reconstructs it in the same order.
type AgeCircuit struct {
	Delta     frontend.Variable `gnark:",public"`
	Today     frontend.Variable `gnark:",public"`
	IsYounger frontend.Variable `gnark:",public"`
	PhotoHash frontend.Variable `gnark:",public"`
	Contract  frontend.Variable `gnark:",public"`
	ProverKey frontend.Variable `gnark:",public"`

	Birthday frontend.Variable
	Nonce    frontend.Variable
}

// Define declares the circuit's constraints
func (circuit *AgeCircuit) Define(api frontend.API) error {
	api.AssertIsBoolean(circuit.IsYounger)

	hasher, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	hasher.Write(
		api.Add(circuit.Birthday, circuit.Nonce),
		api.Mul(circuit.PhotoHash, circuit.Contract),
	)
	api.AssertIsEqual(hasher.Sum(), circuit.ProverKey)

	// strict ordering on the day threshold; equality on the threshold day
	// must not satisfy either relation
	diff := api.Sub(circuit.Today, circuit.Birthday)
	lhs := api.Select(circuit.IsYounger, diff, circuit.Delta)
	rhs := api.Select(circuit.IsYounger, circuit.Delta, diff)
	api.AssertIsLessOrEqual(api.Add(lhs, 1), rhs)

	return nil
}
