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
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/gamewarden/warden"
)

// Controller is the slice of the supervisor the gateway drives.  It is
// satisfied by *warden.Supervisor.
type Controller interface {
	Start() error
	Stop() error
	Restart() error
	Status() warden.Status
	Events(last int64) ([]warden.Record, int64)
}

// Handler exposes the lifecycle commands over HTTP.  The route table is
// built once at construction; every route sits behind bearer token
// authentication.  Handler also implements warden.Sink, retaining the
// latest presence line for operators to read back.
type Handler struct {
	c     Controller
	r     *mux.Router
	token string

	mx       sync.Mutex
	presence PresenceInfo
}

// NewHandler builds the gateway around a Controller.  The token must
// match the Authorization bearer token of every request.
func NewHandler(c Controller, token string) *Handler {
	r := mux.NewRouter()
	h := &Handler{c: c, r: r, token: token}
	r.Use(h.authenticate)
	r.HandleFunc("/server", h.getStatus).Methods("GET")
	r.HandleFunc("/server/start", h.startServer).Methods("POST")
	r.HandleFunc("/server/stop", h.stopServer).Methods("POST")
	r.HandleFunc("/server/restart", h.restartServer).Methods("POST")
	r.HandleFunc("/presence", h.getPresence).Methods("GET")
	r.HandleFunc("/log", h.getLog).Methods("GET")
	return h
}

// Publish implements warden.Sink.
func (h *Handler) Publish(text string, online bool) error {
	h.mx.Lock()
	h.presence = PresenceInfo{
		Text:      text,
		Online:    online,
		TimeStamp: time.Now(),
	}
	h.mx.Unlock()
	return nil
}

func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(tok), []byte(h.token)) != 1 {
			h.writeError(w, &Error{http.StatusUnauthorized,
				"Missing or invalid token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) internalError(w http.ResponseWriter, e error) {
	http.Error(w, e.Error(), http.StatusInternalServerError)
}

func (h *Handler) writeJson(w http.ResponseWriter, v interface{}) {
	if b, e := json.Marshal(v); e != nil {
		h.internalError(w, e)
	} else {
		w.Header().Set("Content-Type", mimeJson)
		w.Write(b)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, e *Error) {
	if b, err := json.Marshal(e); err != nil {
		h.internalError(w, err)
	} else {
		w.Header().Set("Content-Type", mimeJson)
		w.WriteHeader(e.Code)
		w.Write(b)
	}
}

// The lifecycle handlers reply only after the operation has fully
// settled, so the acknowledgement doubles as the deferred reply.  A
// command arriving while another is in flight simply queues on the
// supervisor's lifecycle lock.

func (h *Handler) startServer(w http.ResponseWriter, r *http.Request) {
	if e := h.c.Start(); e != nil {
		h.writeError(w, &Error{http.StatusBadRequest, e.Error()})
		return
	}
	h.writeJson(w, Ack{Message: AckStarted})
}

func (h *Handler) stopServer(w http.ResponseWriter, r *http.Request) {
	if e := h.c.Stop(); e != nil {
		h.writeError(w, &Error{http.StatusBadRequest, e.Error()})
		return
	}
	h.writeJson(w, Ack{Message: AckStopped})
}

func (h *Handler) restartServer(w http.ResponseWriter, r *http.Request) {
	if e := h.c.Restart(); e != nil {
		h.writeError(w, &Error{http.StatusBadRequest, e.Error()})
		return
	}
	h.writeJson(w, Ack{Message: AckRestarted})
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	st := h.c.Status()
	info := &StatusInfo{
		State:     string(st.State),
		PID:       st.PID,
		TimeStamp: time.Now(),
	}
	if !st.StartedAt.IsZero() {
		t := st.StartedAt
		info.StartedAt = &t
	}
	h.writeJson(w, info)
}

func (h *Handler) getPresence(w http.ResponseWriter, r *http.Request) {
	h.mx.Lock()
	p := h.presence
	h.mx.Unlock()
	h.writeJson(w, p)
}

func (h *Handler) getLog(w http.ResponseWriter, r *http.Request) {
	var since int64
	if v := r.URL.Query().Get("since"); v != "" {
		since, _ = strconv.ParseInt(v, 10, 64)
	}
	recs, id := h.c.Events(since)
	w.Header().Set("Etag", strconv.FormatInt(id, 10))
	h.writeJson(w, recs)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.r.ServeHTTP(w, req)
}
