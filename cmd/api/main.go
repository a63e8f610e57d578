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

	"github.com/gin-gonic/gin"
	dbconf "github.com/kthomas/go-db-config"
	"github.com/provideplatform/agekey/artifacts"
	"github.com/provideplatform/agekey/common"
	"github.com/provideplatform/agekey/registry"
)

const defaultListenPort = "8080"

func main() {
	db := dbconf.DatabaseConnection()
	db.AutoMigrate(&registry.Certification{})

	proofArtifacts, err := artifacts.FromEnv()
	if err != nil {
		common.Log.Panicf("failed to load proving artifacts; %s", err.Error())
	}

	r := gin.New()
	r.Use(gin.Recovery())

	registry.InstallAPI(r, proofArtifacts)

	r.GET("/status", func(c *gin.Context) {
		c.JSON(200, nil)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultListenPort
	}

	common.Log.Infof("api listening on port %s", port)
	if err := r.Run(fmt.Sprintf(":%s", port)); err != nil {
		common.Log.Panicf("api server terminated; %s", err.Error())
	}
}
