/*
 * Copyright 2017-2022 Provide Technologies Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package verifier

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/provideplatform/agekey/artifacts"
	"github.com/provideplatform/agekey/common"
	"github.com/provideplatform/agekey/protocol"
	circuit "github.com/provideplatform/agekey/zkp/lib/circuits/gnark"
	zkp "github.com/provideplatform/agekey/zkp/providers"
)

// Verify checks the given proof against the public values it transported and
// the authoritative chain record for the contract. The public witness is
// reconstructed here rather than taken from the prover, so a decoy proof or
// a proof bound to other chain data fails the pairing check.
//
// All failures collapse to false; callers learn nothing about whether the
// proof was malformed, bound to different inputs, or cryptographically
// invalid.
func Verify(a *artifacts.Artifacts, qr *protocol.ProofQrCode, chain *protocol.PublicChain) bool {
	isYounger := int64(0)
	if qr.Public.Relation == protocol.RelationYounger {
		isYounger = 1
	}

	assignment := &circuit.AgeCircuit{
		Delta:     qr.Public.Delta,
		Today:     qr.Public.Today,
		IsYounger: isYounger,
		PhotoHash: chain.PhotoHash,
		Contract:  qr.Public.Contract,
		ProverKey: chain.ProverKey,
	}

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		common.Log.Debugf("failed to assemble public witness; %s", err.Error())
		return false
	}

	provider := zkp.InitGnarkProverProvider()

	if err := provider.Verify(qr.Proof, a.VerifyingKey, witness); err != nil {
		common.Log.Debugf("proof verification failed; %s", err.Error())
		return false
	}

	return true
}
