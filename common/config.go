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

package common

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/kthomas/go-logger"
	redisutil "github.com/kthomas/go-redisutil"
)

var (
	// Log is the configured logger
	Log *logger.Logger

	// ConsumeNATSStreamingSubscriptions toggles the NATS JetStream consumers at boot
	ConsumeNATSStreamingSubscriptions bool

	// RedisEnabled is true when a redis connection has been configured
	RedisEnabled bool
)

func init() {
	godotenv.Load()

	requireLogger()
	requireFlags()

	if os.Getenv("REDIS_HOSTS") != "" {
		redisutil.RequireRedis()
		RedisEnabled = true
	}
}

func requireLogger() {
	lvl := os.Getenv("LOG_LEVEL")
	if lvl == "" {
		lvl = "INFO"
	}

	var endpoint *string
	if os.Getenv("SYSLOG_ENDPOINT") != "" {
		endpt := os.Getenv("SYSLOG_ENDPOINT")
		endpoint = &endpt
	}

	Log = logger.NewLogger("agekey", lvl, endpoint)
}

func requireFlags() {
	ConsumeNATSStreamingSubscriptions = os.Getenv("CONSUME_NATS_STREAMING_SUBSCRIPTIONS") == "true"
}
