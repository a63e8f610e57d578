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
	"flag"
	"os"

	"github.com/provideplatform/agekey/artifacts"
	"github.com/provideplatform/agekey/common"
	"github.com/provideplatform/agekey/zkp/providers"
)

func main() {
	out := flag.String("out", "./artifacts", "output directory for the generated proving artifacts")
	solidity := flag.String("solidity", "", "optional path for the exported solidity verifier contract")
	flag.Parse()

	common.Log.Infof("compiling age circuit and running setup")

	proofArtifacts, err := artifacts.Generate()
	if err != nil {
		common.Log.Panicf("failed to generate proving artifacts; %s", err.Error())
	}

	if err := proofArtifacts.Write(*out); err != nil {
		common.Log.Panicf("failed to persist proving artifacts; %s", err.Error())
	}
	common.Log.Infof("wrote proving artifacts to %s", *out)

	if *solidity != "" {
		provider := providers.InitGnarkProverProvider()
		contract, err := provider.ExportVerifier(proofArtifacts.VerifyingKey)
		if err != nil {
			common.Log.Panicf("failed to export verifier contract; %s", err.Error())
		}
		if err := os.WriteFile(*solidity, contract, 0o644); err != nil {
			common.Log.Panicf("failed to write verifier contract; %s", err.Error())
		}
		common.Log.Infof("wrote verifier contract to %s", *solidity)
	}
}
