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

// Command wardend supervises a single game server process and exposes
// start/stop/restart/status over an authenticated HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gamewarden/warden"
	"github.com/gamewarden/warden/rest"
)

var addr string = ""
var envFile string = ""

func main() {
	flag.StringVar(&addr, "a", addr, "listen address (overrides WARDEN_LISTEN)")
	flag.StringVar(&envFile, "f", envFile, "dotenv file to seed the environment")
	flag.Parse()

	cfg, e := loadConfig(envFile)
	if e != nil {
		log.Fatalf("Bad configuration: %v", e)
	}
	if addr != "" {
		cfg.Listen = addr
	}

	logger := log.New(os.Stderr, "wardend: ", log.LstdFlags)

	sup := warden.NewSupervisor(warden.SupervisorConfig{
		Path:      cfg.ServerBin,
		Dir:       cfg.ServerDir,
		StopGrace: cfg.StopGrace,
		Logger:    logger,
	})

	gateway := rest.NewHandler(sup, cfg.Token)

	pubCtx, cancel := context.WithCancel(context.Background())
	pub := warden.NewPublisher(warden.SystemSource{}, sup.Status,
		gateway, cfg.Period, logger)

	ln, e := net.Listen("tcp", cfg.Listen)
	if e != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.Listen, e)
	}
	srv := &http.Server{Handler: gateway}
	go func() {
		if e := srv.Serve(ln); e != nil && !errors.Is(e, http.ErrServerClosed) &&
			!errors.Is(e, net.ErrClosed) {
			logger.Printf("Gateway serve error: %v", e)
		}
	}()

	lc := warden.NewLifecycle(sup, cancel, ln, logger)

	go pub.Run(pubCtx)
	// Gateway session is established; open the publishing gate.
	pub.Ready()
	logger.Printf("Deployment %s listening at %s", cfg.Deployment, cfg.Listen)

	// Signals are only forwarded here; the shutdown sequence runs on
	// this goroutine, never in a handler.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	sig := <-sigs

	lc.Shutdown(sig.String())
	<-lc.Done()
}
