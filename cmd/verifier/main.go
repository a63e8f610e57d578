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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/provideplatform/agekey/artifacts"
	"github.com/provideplatform/agekey/common"
	"github.com/provideplatform/agekey/protocol"
	"github.com/provideplatform/agekey/verifier"
)

// usage: verifier <proof-file> <photo-hash> <prover-key>
//
// prints 1 when the proof verifies against the given chain data, 0 otherwise
func main() {
	if len(os.Args) != 4 {
		common.Log.Panicf("required 3 arguments: proof file, photo hash, prover key")
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		common.Log.Panicf("failed to read proof file; %s", err.Error())
	}

	photoHash, err := protocol.FieldFromDecimal(os.Args[2])
	if err != nil {
		common.Log.Panicf("failed to parse photo hash; %s", err.Error())
	}

	proverKey, err := protocol.FieldFromDecimal(os.Args[3])
	if err != nil {
		common.Log.Panicf("failed to parse prover key; %s", err.Error())
	}

	chain := &protocol.PublicChain{
		PhotoHash: photoHash,
		ProverKey: proverKey,
	}

	result := false
	qr, err := protocol.ParseProofQrCode(strings.TrimSpace(string(raw)))
	if err == nil {
		proofArtifacts, err := artifacts.FromEnv()
		if err != nil {
			common.Log.Panicf("failed to load proving artifacts; %s", err.Error())
		}
		result = verifier.Verify(proofArtifacts, qr, chain)
	}

	if result {
		fmt.Println(1)
	} else {
		fmt.Println(0)
	}
}
