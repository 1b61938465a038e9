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
	"errors"
	"os"
	"strings"

	"github.com/gamewarden/warden/rest"
)

const defaultAddress = "http://127.0.0.1:8321"

func dial() (*rest.Client, error) {
	addr := flagAddr
	if strings.TrimSpace(addr) == "" {
		addr = os.Getenv("WARDEN_ADDR")
	}
	if strings.TrimSpace(addr) == "" {
		addr = defaultAddress
	}

	token := flagToken
	if token == "" {
		token = os.Getenv("WARDEN_TOKEN")
	}
	if token == "" {
		return nil, errors.New("auth token is required; use --token or WARDEN_TOKEN")
	}

	c := rest.NewClient(nil, addr)
	c.SetToken(token)
	return c, nil
}
