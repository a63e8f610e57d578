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
	"strconv"

	"github.com/provideplatform/agekey/common"
	"github.com/provideplatform/agekey/protocol"
)

// usage: certifier <birthday-day-number> <photo-hash> <contract>
//
// draws a random nonce, derives the card key and prints "<nonce> <prover-key>"
// in decimal for handoff to the holder and the chain
func main() {
	if len(os.Args) != 4 {
		common.Log.Panicf("required 3 arguments: birthday, photo hash, contract")
	}

	birthday, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil {
		common.Log.Panicf("failed to parse birthday day number; %s", err.Error())
	}

	photoHash, err := protocol.FieldFromDecimal(os.Args[2])
	if err != nil {
		common.Log.Panicf("failed to parse photo hash; %s", err.Error())
	}

	contract, err := protocol.FieldFromDecimal(os.Args[3])
	if err != nil {
		common.Log.Panicf("failed to parse contract; %s", err.Error())
	}

	nonce, err := protocol.GenerateNonce()
	if err != nil {
		common.Log.Panicf("failed to generate nonce; %s", err.Error())
	}

	proverKey := protocol.DeriveCardKey(birthday, nonce, photoHash, contract)

	fmt.Printf("%s %s\n", protocol.FieldToDecimal(nonce), protocol.FieldToDecimal(proverKey))
}
