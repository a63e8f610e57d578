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

package registry

import (
	"testing"

	"github.com/provideplatform/agekey/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertifyDerivesMatchingKey(t *testing.T) {
	photoHash := protocol.FieldFromInt64(3)
	contract := protocol.FieldFromInt64(4)

	certification, nonce, err := Certify(2001, photoHash, contract)
	require.NoError(t, err)
	require.NotNil(t, nonce)

	assert.Equal(t, "4", certification.Contract)
	assert.Equal(t, "3", certification.PhotoHash)

	expected := protocol.DeriveCardKey(2001, *nonce, photoHash, contract)
	assert.Equal(t, protocol.FieldToDecimal(expected), certification.ProverKey)
}

func TestCertifyDrawsFreshNonces(t *testing.T) {
	photoHash := protocol.FieldFromInt64(3)
	contract := protocol.FieldFromInt64(4)

	c1, n1, err := Certify(2001, photoHash, contract)
	require.NoError(t, err)
	c2, n2, err := Certify(2001, photoHash, contract)
	require.NoError(t, err)

	assert.NotEqual(t, *n1, *n2)
	assert.NotEqual(t, c1.ProverKey, c2.ProverKey)
}

func TestPublicChainRoundTrip(t *testing.T) {
	photoHash := protocol.FieldFromInt64(3)
	contract := protocol.FieldFromInt64(4)

	certification, _, err := Certify(2001, photoHash, contract)
	require.NoError(t, err)

	chain, err := certification.PublicChain()
	require.NoError(t, err)
	assert.Equal(t, photoHash, chain.PhotoHash)
	assert.Equal(t, protocol.FieldToDecimal(chain.ProverKey), certification.ProverKey)
}

func TestValidateRejectsMalformedFields(t *testing.T) {
	certification := &Certification{
		Contract:  "not-a-field-element",
		PhotoHash: "3",
		ProverKey: "4",
	}

	assert.False(t, certification.validate())
	require.Len(t, certification.Errors, 1)
	assert.Contains(t, *certification.Errors[0].Message, "contract")
}
