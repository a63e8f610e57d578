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
	"fmt"
	"sync"
	"time"

	dbconf "github.com/kthomas/go-db-config"
	natsutil "github.com/kthomas/go-natsutil"
	"github.com/nats-io/nats.go"
	"github.com/provideplatform/agekey/common"
)

const defaultNatsStream = "agekey"

const natsCertificationCreatedSubject = "agekey.certification.created"
const natsCertificationCreatedMaxInFlight = 32
const certificationCreatedAckWait = time.Minute * 5
const certificationCreatedMaxDeliveries = 5

func init() {
	if !common.ConsumeNATSStreamingSubscriptions {
		common.Log.Debug("registry package consumer configured to skip NATS streaming subscription setup")
		return
	}

	natsutil.EstablishSharedNatsConnection(nil)
	natsutil.NatsCreateStream(defaultNatsStream, []string{
		fmt.Sprintf("%s.>", defaultNatsStream),
	})

	var waitGroup sync.WaitGroup

	createNatsCertificationCreatedSubscriptions(&waitGroup)
}

func createNatsCertificationCreatedSubscriptions(wg *sync.WaitGroup) {
	for i := uint64(0); i < natsutil.GetNatsConsumerConcurrency(); i++ {
		natsutil.RequireNatsJetstreamSubscription(wg,
			certificationCreatedAckWait,
			natsCertificationCreatedSubject,
			natsCertificationCreatedSubject,
			natsCertificationCreatedSubject,
			consumeCertificationCreatedMsg,
			certificationCreatedAckWait,
			natsCertificationCreatedMaxInFlight,
			certificationCreatedMaxDeliveries,
			nil,
		)
	}
}

// warm the chain-data cache for newly anchored certifications
func consumeCertificationCreatedMsg(msg *nats.Msg) {
	defer func() {
		if r := recover(); r != nil {
			common.Log.Warningf("recovered during certification created message handler; %s", r)
			msg.Nak()
		}
	}()

	common.Log.Debugf("consuming %d-byte NATS certification created message on subject: %s", len(msg.Data), msg.Subject)

	params := map[string]interface{}{}
	err := json.Unmarshal(msg.Data, &params)
	if err != nil {
		common.Log.Warningf("failed to unmarshal certification created message; %s", err.Error())
		msg.Nak()
		return
	}

	contract, contractOk := params["contract"].(string)
	if !contractOk {
		common.Log.Warning("failed to unmarshal contract during certification created message handler")
		msg.Nak()
		return
	}

	db := dbconf.DatabaseConnection()

	certification := Resolve(db, contract)
	if certification == nil {
		common.Log.Warningf("failed to resolve certification for contract: %s", contract)
		msg.Nak()
		return
	}

	msg.Ack()
}
