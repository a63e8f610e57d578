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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	InstallAPI(r, nil)
	return r
}

func postVerification(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/verifications", strings.NewReader(body))
	r.ServeHTTP(w, req)
	return w
}

func TestVerificationHandlerCollapsesMalformedProof(t *testing.T) {
	r := testRouter()

	// a structurally invalid transport string yields the same verdict as a
	// cryptographically failed verification, with no distinguishing detail
	for _, proof := range []string{
		"not a transport string",
		"agekey.v1:2459000:6574",
		"agekey.v2:2459000:6574:older:4:AAH-_0I",
	} {
		w := postVerification(r, `{"proof": "`+proof+`"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"result": false}`, w.Body.String())
	}
}

func TestVerificationHandlerRequiresProof(t *testing.T) {
	r := testRouter()

	// only an absent or undecodable request body is reported distinctly
	for _, body := range []string{`{}`, `{"proof": null}`, `not json`} {
		w := postVerification(r, body)
		assert.Equal(t, 422, w.Code)
	}
}
