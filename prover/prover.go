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

package prover

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/provideplatform/agekey/artifacts"
	"github.com/provideplatform/agekey/common"
	"github.com/provideplatform/agekey/protocol"
	circuit "github.com/provideplatform/agekey/zkp/lib/circuits/gnark"
	zkp "github.com/provideplatform/agekey/zkp/providers"
)

// ErrExecutionFailed indicates the circuit could not be solved for the
// assembled witness, i.e., the certified secrets do not satisfy the
// commitment or relation constraints
var ErrExecutionFailed = errors.New("circuit execution failed")

// Generate produces the proof artifact for the given request.
//
// When the requested claim does not hold for the certified birthday, a decoy
// proof is generated instead of an error: the circuit is run with a zero day
// threshold (satisfiable for any birthday in the past) while the transported
// public values keep the requested claim. The decoy is structurally
// indistinguishable from a genuine proof and fails verification only when
// the verifier reconstructs the public inputs from the transported values.
// Generation time and output shape therefore do not leak claim validity.
func Generate(a *artifacts.Artifacts, rq *protocol.QrRequest) (*protocol.ProofQrCode, error) {
	delta := rq.Qr.Delta
	isYounger := int64(0)
	if rq.IsRelationValid() {
		if rq.Qr.Relation == protocol.RelationYounger {
			isYounger = 1
		}
	} else {
		common.Log.Debugf("substituting decoy inputs for unsatisfied %s claim", rq.Qr.Relation)
		delta = 0
	}

	assignment := &circuit.AgeCircuit{
		Delta:     delta,
		Today:     rq.Qr.Today,
		IsYounger: isYounger,
		PhotoHash: rq.Chain.PhotoHash,
		Contract:  rq.Qr.Contract,
		ProverKey: rq.Chain.ProverKey,
		Birthday:  rq.Private.Birthday,
		Nonce:     rq.Private.Nonce,
	}

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("failed to assemble witness; %s", err.Error())
	}

	provider := zkp.InitGnarkProverProvider()

	if err := provider.Execute(a.Binary, witness); err != nil {
		common.Log.Warningf("failed to solve age circuit; %s", err.Error())
		return nil, fmt.Errorf("%w; %s", ErrExecutionFailed, err.Error())
	}

	proof, err := provider.Prove(a.Binary, a.ProvingKey, witness)
	if err != nil {
		return nil, fmt.Errorf("failed to generate proof; %s", err.Error())
	}

	return &protocol.ProofQrCode{
		Public: rq.Qr,
		Proof:  proof,
	}, nil
}
