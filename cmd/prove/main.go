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
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/provideplatform/agekey/artifacts"
	"github.com/provideplatform/agekey/common"
	"github.com/provideplatform/agekey/protocol"
	"github.com/provideplatform/agekey/prover"
)

// proverDb holds the holder-side secrets issued at certification time
type proverDb struct {
	Birthday  int64  `json:"birthday"`
	Nonce     string `json:"nonce"`
	Contract  string `json:"contract"`
	PhotoHash string `json:"photo_hash"`
}

func main() {
	older := flag.Int("older", 0, "generate the proof that the holder is older than YEARS")
	younger := flag.Int("younger", 0, "generate the proof that the holder is younger than YEARS")
	today := flag.String("today", "", "current date as YYYY-MM-DD; defaults to the system date")
	proverDbPath := flag.String("prover-db", "prover-db.json", "input .json file containing the holder's secrets")
	proofPath := flag.String("proof", "proof.txt", "output file for the generated proof transport string")
	flag.Parse()

	if (*older == 0) == (*younger == 0) {
		common.Log.Panicf("exactly one of -older or -younger is required")
	}

	relation := protocol.RelationOlder
	age := *older
	if *younger != 0 {
		relation = protocol.RelationYounger
		age = *younger
	}

	raw, err := os.ReadFile(*proverDbPath)
	if err != nil {
		common.Log.Panicf("failed to read prover db; %s", err.Error())
	}

	pdb := &proverDb{}
	if err := json.Unmarshal(raw, pdb); err != nil {
		common.Log.Panicf("failed to unmarshal prover db; %s", err.Error())
	}

	nonce, err := protocol.FieldFromDecimal(pdb.Nonce)
	if err != nil {
		common.Log.Panicf("cannot decode nonce in the prover db file; %s", err.Error())
	}

	contract, err := protocol.FieldFromDecimal(pdb.Contract)
	if err != nil {
		common.Log.Panicf("cannot decode contract in the prover db file; %s", err.Error())
	}

	photoHash, err := protocol.FieldFromDecimal(pdb.PhotoHash)
	if err != nil {
		common.Log.Panicf("cannot decode photo_hash in the prover db file; %s", err.Error())
	}

	todayDate := time.Now().UTC()
	if *today != "" {
		todayDate, err = protocol.ParseDate(*today)
		if err != nil {
			common.Log.Panicf("failed to parse today; %s", err.Error())
		}
	}

	delta := protocol.AgeToDelta(pdb.Birthday, age, relation)
	proverKey := protocol.DeriveCardKey(pdb.Birthday, nonce, photoHash, contract)

	rq := &protocol.QrRequest{
		Qr: protocol.PublicQr{
			Today:    protocol.DayNumber(todayDate),
			Contract: contract,
			Delta:    delta,
			Relation: relation,
		},
		Chain: protocol.PublicChain{
			PhotoHash: photoHash,
			ProverKey: proverKey,
		},
		Private: protocol.Private{
			Birthday: pdb.Birthday,
			Nonce:    nonce,
		},
	}

	proofArtifacts, err := artifacts.FromEnv()
	if err != nil {
		common.Log.Panicf("failed to load proving artifacts; %s", err.Error())
	}

	qr, err := prover.Generate(proofArtifacts, rq)
	if err != nil {
		common.Log.Panicf("failed to generate proof; %s", err.Error())
	}

	transport := qr.String()
	if err := os.WriteFile(*proofPath, []byte(transport), 0o644); err != nil {
		common.Log.Panicf("failed to write proof; %s", err.Error())
	}

	fmt.Println(transport)
}
