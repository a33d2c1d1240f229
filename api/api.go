// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// Config contains the configuration for the API server
type Config struct {
	ListenAddress string
}

// Api is the REST API server exposing the coordinator's operations. It
// is a thin shell over the coordinator; no approval logic lives here.
type Api struct {
	config      Config
	logger      *slog.Logger
	coordinator Coordinator
	httpServer  *http.Server
	mu          sync.Mutex
}

// New creates a new API server instance
func New(
	cfg Config,
	coordinator Coordinator,
	logger *slog.Logger,
) *Api {
	if logger == nil {
		logger = slog.New(
			slog.NewJSONHandler(io.Discard, nil),
		)
	}
	logger = logger.With("component", "api")
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":8080"
	}
	return &Api{
		config:      cfg,
		logger:      logger,
		coordinator: coordinator,
	}
}

// Start starts the HTTP server in a background goroutine
func (a *Api) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.httpServer != nil {
		a.mu.Unlock()
		return errors.New("server already started")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", a.handleRoot)
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc(
		"POST /v1/groups/{groupId}/proposals",
		a.handleCreateProposal,
	)
	mux.HandleFunc(
		"GET /v1/groups/{groupId}/proposals",
		a.handleListProposals,
	)
	mux.HandleFunc(
		"GET /v1/proposals/{proposalId}",
		a.handleGetProposal,
	)
	mux.HandleFunc(
		"POST /v1/proposals/{proposalId}/signatures",
		a.handleSignProposal,
	)
	mux.HandleFunc(
		"POST /v1/proposals/{proposalId}/execute",
		a.handleExecuteProposal,
	)

	server := &http.Server{
		Addr:              a.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 60 * time.Second,
	}
	a.httpServer = server
	a.mu.Unlock()

	if err := a.startServer(server); err != nil {
		a.mu.Lock()
		a.httpServer = nil
		a.mu.Unlock()
		return err
	}

	a.logger.Info(
		"API listener started on " + a.config.ListenAddress,
	)

	// Monitor context for cancellation
	go func() {
		<-ctx.Done()
		a.mu.Lock()
		srv := a.httpServer
		a.httpServer = nil
		a.mu.Unlock()
		if srv != nil {
			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				5*time.Second,
			)
			defer cancel()
			srv.Shutdown(shutdownCtx) //nolint:errcheck
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server
func (a *Api) Stop(ctx context.Context) error {
	a.mu.Lock()
	srv := a.httpServer
	a.httpServer = nil
	a.mu.Unlock()
	if srv != nil {
		a.logger.Debug("shutting down API server")
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown API server: %w", err)
		}
	}
	return nil
}

// startServer begins listening and reports immediate startup failures
// (bad address, port in use) deterministically
func (a *Api) startServer(server *http.Server) error {
	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}
	go func() {
		if err := server.Serve(listener); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(
				"API server failed",
				"error", err,
			)
		}
	}()
	return nil
}
