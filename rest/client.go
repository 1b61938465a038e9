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

package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gamewarden/warden"
)

// Client talks to a wardend gateway.
type Client struct {
	base   string // URI to root of tree on server
	token  string
	client *http.Client
}

// NewClient returns a Client handle.  The transport may be nil to use a
// default transport, but it may also be adjusted to support additional
// options such as TLS.  baseURI is the base URL to use.
func NewClient(t *http.Transport, baseURI string) *Client {
	if t == nil {
		t = &http.Transport{}
	}
	return &Client{
		base:   strings.TrimRight(baseURI, "/"),
		client: &http.Client{Transport: t},
	}
}

// SetToken establishes the bearer token presented on every request.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Start asks the daemon to start the server, returning the
// acknowledgement message once the operation has settled.
func (c *Client) Start(ctx context.Context) (string, error) {
	return c.postCommand(ctx, "start")
}

// Stop asks the daemon to stop the server.
func (c *Client) Stop(ctx context.Context) (string, error) {
	return c.postCommand(ctx, "stop")
}

// Restart asks the daemon to restart the server.
func (c *Client) Restart(ctx context.Context) (string, error) {
	return c.postCommand(ctx, "restart")
}

// Status fetches the current supervisor status.
func (c *Client) Status(ctx context.Context) (*StatusInfo, error) {
	v := &StatusInfo{}
	if e := c.get(ctx, c.base+"/server", v); e != nil {
		return nil, e
	}
	return v, nil
}

// Presence fetches the most recently published presence line.
func (c *Client) Presence(ctx context.Context) (*PresenceInfo, error) {
	v := &PresenceInfo{}
	if e := c.get(ctx, c.base+"/presence", v); e != nil {
		return nil, e
	}
	return v, nil
}

// Log fetches supervisor event records newer than since.  Since zero
// fetches everything retained.
func (c *Client) Log(ctx context.Context, since int64) ([]warden.Record, error) {
	var v []warden.Record
	url := c.base + "/log"
	if since != 0 {
		url += "?since=" + strconv.FormatInt(since, 10)
	}
	if e := c.get(ctx, url, &v); e != nil {
		return nil, e
	}
	return v, nil
}

func (c *Client) postCommand(ctx context.Context, action string) (string, error) {
	req, e := http.NewRequestWithContext(ctx, "POST",
		c.base+"/server/"+action, strings.NewReader(""))
	if e != nil {
		return "", e
	}
	req.Header.Set("Content-Type", "text/plain") // we don't really care
	ack := &Ack{}
	if e := c.do(req, ack); e != nil {
		return "", e
	}
	return ack.Message, nil
}

func (c *Client) get(ctx context.Context, url string, v interface{}) error {
	req, e := http.NewRequestWithContext(ctx, "GET", url, nil)
	if e != nil {
		return e
	}
	return c.do(req, v)
}

func (c *Client) do(req *http.Request, v interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	res, e := c.client.Do(req)
	if e != nil {
		return e
	}
	defer res.Body.Close()
	body, e := io.ReadAll(res.Body)
	if e != nil {
		return e
	}
	if res.StatusCode != http.StatusOK {
		re := &Error{}
		if json.Unmarshal(body, re) != nil || re.Message == "" {
			re = &Error{Message: res.Status}
		}
		re.Code = res.StatusCode
		return re
	}
	return json.Unmarshal(body, v)
}
