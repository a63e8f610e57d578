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
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	dbconf "github.com/kthomas/go-db-config"
	"github.com/provideplatform/agekey/artifacts"
	"github.com/provideplatform/agekey/common"
	"github.com/provideplatform/agekey/protocol"
	"github.com/provideplatform/agekey/verifier"
)

// InstallAPI registers the registry API handlers with gin
func InstallAPI(r *gin.Engine, a *artifacts.Artifacts) {
	r.POST("/api/v1/certifications", createCertificationHandler)
	r.GET("/api/v1/certifications/:contract", certificationDetailsHandler)
	r.POST("/api/v1/verifications", verificationHandler(a))
}

func renderError(message string, status int, c *gin.Context) {
	c.JSON(status, map[string]interface{}{
		"errors": []*Error{{Message: common.StringOrNil(message)}},
	})
}

type certificationRequest struct {
	Birthday  *int64  `json:"birthday"`
	Birthdate *string `json:"birthdate"`
	PhotoHash *string `json:"photo_hash"`
	Contract  *string `json:"contract"`
}

// certify: draw a nonce, derive the card key, anchor the public record
func createCertificationHandler(c *gin.Context) {
	buf, err := c.GetRawData()
	if err != nil {
		renderError(err.Error(), 400, c)
		return
	}

	params := &certificationRequest{}
	err = json.Unmarshal(buf, params)
	if err != nil {
		renderError(err.Error(), 422, c)
		return
	}

	var birthday int64
	switch {
	case params.Birthday != nil:
		birthday = *params.Birthday
	case params.Birthdate != nil:
		born, err := protocol.ParseDate(*params.Birthdate)
		if err != nil {
			renderError(err.Error(), 422, c)
			return
		}
		birthday = protocol.DayNumber(born)
	default:
		renderError("birthday or birthdate is required", 422, c)
		return
	}

	if params.PhotoHash == nil || params.Contract == nil {
		renderError("photo_hash and contract are required", 422, c)
		return
	}

	photoHash, err := protocol.FieldFromDecimal(*params.PhotoHash)
	if err != nil {
		renderError(err.Error(), 422, c)
		return
	}

	contract, err := protocol.FieldFromDecimal(*params.Contract)
	if err != nil {
		renderError(err.Error(), 422, c)
		return
	}

	certification, nonce, err := Certify(birthday, photoHash, contract)
	if err != nil {
		renderError(err.Error(), 500, c)
		return
	}

	db := dbconf.DatabaseConnection()
	if certification.Create(db) {
		// the nonce leaves the process exactly once, in this response
		c.JSON(http.StatusCreated, map[string]interface{}{
			"id":         certification.ID,
			"created_at": certification.CreatedAt,
			"contract":   certification.Contract,
			"photo_hash": certification.PhotoHash,
			"prover_key": certification.ProverKey,
			"nonce":      protocol.FieldToDecimal(*nonce),
		})
	} else {
		c.JSON(422, map[string]interface{}{
			"errors": certification.Errors,
		})
	}
}

// fetch the public chain record for a contract
func certificationDetailsHandler(c *gin.Context) {
	contract := c.Param("contract")
	if _, err := protocol.FieldFromDecimal(contract); err != nil {
		renderError(err.Error(), 422, c)
		return
	}

	db := dbconf.DatabaseConnection()
	certification := Resolve(db, contract)
	if certification == nil {
		renderError("certification not found", 404, c)
		return
	}

	c.JSON(http.StatusOK, certification)
}

type verificationRequest struct {
	Proof *string `json:"proof"`
}

// verify a transported proof against the anchored chain record; the response
// carries a bare verdict so callers cannot distinguish failure modes
func verificationHandler(a *artifacts.Artifacts) gin.HandlerFunc {
	return func(c *gin.Context) {
		buf, err := c.GetRawData()
		if err != nil {
			renderError(err.Error(), 400, c)
			return
		}

		params := &verificationRequest{}
		err = json.Unmarshal(buf, params)
		if err != nil || params.Proof == nil {
			renderError("proof is required", 422, c)
			return
		}

		result := false

		// a malformed transport string renders the same verdict as a failed
		// pairing check; only the missing or undecodable request body above
		// is reported distinctly
		qr, err := protocol.ParseProofQrCode(*params.Proof)
		if err != nil {
			common.Log.Debugf("failed to parse proof transport string during verification; %s", err.Error())
		} else {
			db := dbconf.DatabaseConnection()
			certification := Resolve(db, protocol.FieldToDecimal(qr.Public.Contract))
			if certification != nil {
				chain, err := certification.PublicChain()
				if err == nil {
					result = verifier.Verify(a, qr, chain)
				} else {
					common.Log.Warningf("failed to load chain data during verification; %s", err.Error())
				}
			}
		}

		c.JSON(http.StatusOK, map[string]interface{}{
			"result": result,
		})
	}
}
