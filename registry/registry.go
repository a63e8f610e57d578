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
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/jinzhu/gorm"
	natsutil "github.com/kthomas/go-natsutil"
	redisutil "github.com/kthomas/go-redisutil"
	uuid "github.com/kthomas/go.uuid"
	"github.com/provideplatform/agekey/common"
	"github.com/provideplatform/agekey/protocol"
)

const chainCacheTTL = time.Hour * 1

// Error is a human-readable model validation message
type Error struct {
	Message *string `json:"message"`
}

// Certification is the public record the certifier anchors per contract: the
// photo hash and the derived card key. The nonce drawn during certification
// is handed back to the holder exactly once and never persisted, so the
// registry cannot reconstruct or test birthdays.
type Certification struct {
	ID        uuid.UUID `sql:"primary_key;type:uuid;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Contract  string `gorm:"unique_index" json:"contract"`
	PhotoHash string `json:"photo_hash"`
	ProverKey string `json:"prover_key"`

	Errors []*Error `gorm:"-" json:"-"`
}

// TableName returns the db table name for gorm
func (c *Certification) TableName() string {
	return "certifications"
}

// BeforeCreate hook for gorm
func (c *Certification) BeforeCreate(scope *gorm.Scope) error {
	if c.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		scope.SetColumn("ID", id)
	}
	return nil
}

// Certify derives the card key for the given birthday under a freshly drawn
// nonce and returns the unsaved chain record together with the nonce
func Certify(birthday int64, photoHash, contract fr.Element) (*Certification, *fr.Element, error) {
	nonce, err := protocol.GenerateNonce()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate certification nonce; %s", err.Error())
	}

	proverKey := protocol.DeriveCardKey(birthday, nonce, photoHash, contract)

	certification := &Certification{
		Contract:  protocol.FieldToDecimal(contract),
		PhotoHash: protocol.FieldToDecimal(photoHash),
		ProverKey: protocol.FieldToDecimal(proverKey),
	}

	return certification, &nonce, nil
}

func (c *Certification) validate() bool {
	c.Errors = make([]*Error, 0)

	for name, val := range map[string]string{
		"contract":   c.Contract,
		"photo_hash": c.PhotoHash,
		"prover_key": c.ProverKey,
	} {
		if _, err := protocol.FieldFromDecimal(val); err != nil {
			c.Errors = append(c.Errors, &Error{
				Message: common.StringOrNil(fmt.Sprintf("invalid %s; %s", name, err.Error())),
			})
		}
	}

	return len(c.Errors) == 0
}

// Create persists the certification and emits the created event
func (c *Certification) Create(db *gorm.DB) bool {
	if !c.validate() {
		return false
	}

	result := db.Create(&c)
	rowsAffected := result.RowsAffected
	errors := result.GetErrors()
	if len(errors) > 0 {
		for _, err := range errors {
			c.Errors = append(c.Errors, &Error{
				Message: common.StringOrNil(err.Error()),
			})
		}
	}

	if !db.NewRecord(c) && rowsAffected > 0 {
		payload, _ := json.Marshal(map[string]interface{}{
			"certification_id": c.ID.String(),
			"contract":         c.Contract,
		})
		if _, err := natsutil.NatsJetstreamPublish(natsCertificationCreatedSubject, payload); err != nil {
			common.Log.Warningf("failed to publish %s; %s", natsCertificationCreatedSubject, err.Error())
		}

		c.cache()
		return true
	}

	return false
}

// PublicChain returns the chain-side public inputs carried by the record
func (c *Certification) PublicChain() (*protocol.PublicChain, error) {
	photoHash, err := protocol.FieldFromDecimal(c.PhotoHash)
	if err != nil {
		return nil, fmt.Errorf("malformed photo hash on certification %s; %s", c.ID, err.Error())
	}

	proverKey, err := protocol.FieldFromDecimal(c.ProverKey)
	if err != nil {
		return nil, fmt.Errorf("malformed prover key on certification %s; %s", c.ID, err.Error())
	}

	return &protocol.PublicChain{
		PhotoHash: photoHash,
		ProverKey: proverKey,
	}, nil
}

func chainCacheKey(contract string) string {
	return fmt.Sprintf("agekey.chain.%s", contract)
}

func (c *Certification) cache() {
	if !common.RedisEnabled {
		return
	}

	raw, _ := json.Marshal(c)
	ttl := chainCacheTTL
	if err := redisutil.Set(chainCacheKey(c.Contract), string(raw), &ttl); err != nil {
		common.Log.Warningf("failed to cache certification for contract %s; %s", c.Contract, err.Error())
	}
}

// Resolve fetches the certification for the given contract, consulting the
// redis cache first when configured
func Resolve(db *gorm.DB, contract string) *Certification {
	if common.RedisEnabled {
		cached, err := redisutil.Get(chainCacheKey(contract))
		if err == nil && cached != nil {
			certification := &Certification{}
			if err := json.Unmarshal([]byte(*cached), certification); err == nil {
				return certification
			}
		}
	}

	certification := &Certification{}
	db.Where("contract = ?", contract).Find(&certification)
	if certification.ID == uuid.Nil {
		return nil
	}

	certification.cache()
	return certification
}
