// Copyright 2026 The Warden Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use file except in compliance with the License.
// You may obtain a copy of the license at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gamewarden/warden"
)

// Config is the daemon's startup surface.  All of it comes from the
// environment, optionally seeded from a dotenv file; a missing required
// value is a fatal startup error.
type Config struct {
	Token      string // gateway bearer token
	ServerBin  string // game server binary path
	ServerDir  string // game server working directory
	Deployment string // deployment/session identifier
	Listen     string
	Period     time.Duration
	StopGrace  time.Duration
}

func loadConfig(envFile string) (*Config, error) {
	// The default dotenv file is optional and never overrides the
	// real environment.  A file named explicitly must exist.
	if envFile != "" {
		if e := godotenv.Load(envFile); e != nil {
			return nil, e
		}
	} else {
		godotenv.Load()
	}

	cfg := &Config{
		Listen: "127.0.0.1:8321",
		Period: warden.DefaultPeriod,
	}

	var e error
	if cfg.Token, e = requireEnv("WARDEN_TOKEN"); e != nil {
		return nil, e
	}
	if cfg.ServerBin, e = requireEnv("WARDEN_SERVER_BIN"); e != nil {
		return nil, e
	}
	if cfg.ServerDir, e = requireEnv("WARDEN_SERVER_DIR"); e != nil {
		return nil, e
	}
	if cfg.Deployment, e = requireEnv("WARDEN_DEPLOYMENT"); e != nil {
		return nil, e
	}

	if v := os.Getenv("WARDEN_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("WARDEN_PERIOD"); v != "" {
		if cfg.Period, e = time.ParseDuration(v); e != nil {
			return nil, fmt.Errorf("WARDEN_PERIOD: %v", e)
		}
	}
	if v := os.Getenv("WARDEN_STOP_GRACE"); v != "" {
		if cfg.StopGrace, e = time.ParseDuration(v); e != nil {
			return nil, fmt.Errorf("WARDEN_STOP_GRACE: %v", e)
		}
	}
	return cfg, nil
}

func requireEnv(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s is not provided", key)
}
