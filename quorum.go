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
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package quorum coordinates multi-party approval of shared ledger
// transactions: a proposal collects one signature per authorized group
// member until the quorum frozen at creation time is reached, after which
// exactly one execution attempt submits the signed transaction to the
// ledger network.
//
// All cross-process correctness (no double execution, no signature
// replay, no execution below quorum) rests on two store primitives: a
// composite unique index on (proposal, signer) and compare-and-set status
// transitions. The coordinator itself holds no locks and multiple
// instances may run against the same database.
package quorum

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/blinklabs-io/quorum/event"
)

// Member is one active group member as reported by the membership resolver
type Member struct {
	Id             string
	SigningAddress string
}

// MembershipResolver answers a group's current active membership. The
// result is snapshotted into requiredSignatures at proposal creation and
// consulted again per-signer at signing time.
type MembershipResolver interface {
	ActiveMembers(ctx context.Context, groupId string) ([]Member, error)
}

// CredentialGate answers whether a signer currently holds a valid
// membership credential for a group
type CredentialGate interface {
	HasValidCredential(
		ctx context.Context,
		signerId string,
		groupId string,
	) (bool, error)
}

// Coordinator is the proposal/signature coordination engine
type Coordinator struct {
	config       Config
	logger       *slog.Logger
	metrics      *coordinatorMetrics
	done         chan struct{}
	sweepWg      sync.WaitGroup
	shutdownOnce sync.Once
}

// New creates a new Coordinator from the provided config
func New(cfg Config) (*Coordinator, error) {
	if cfg.db == nil {
		return nil, errors.New("no database provided")
	}
	if cfg.ledgerClient == nil {
		return nil, errors.New("no ledger client provided")
	}
	if cfg.membership == nil {
		cfg.membership = NewStoreMembershipResolver(cfg.db)
	}
	if cfg.credentials == nil {
		cfg.credentials = NewStoreCredentialGate(cfg.db)
	}
	logger := cfg.logger
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	c := &Coordinator{
		config: cfg,
		logger: logger.With("component", "coordinator"),
		done:   make(chan struct{}),
	}
	if cfg.promRegistry != nil {
		c.initMetrics(cfg.promRegistry)
	}
	return c, nil
}

// Start launches the background expiry sweep, if enabled. Lazy expiration
// on Sign/Execute does not depend on the sweep being active.
func (c *Coordinator) Start() error {
	if c.config.sweepInterval > 0 {
		c.sweepWg.Add(1)
		go c.sweepLoop()
	}
	return nil
}

// Stop shuts down the background sweep
func (c *Coordinator) Stop() error {
	c.shutdownOnce.Do(func() {
		close(c.done)
	})
	c.sweepWg.Wait()
	return nil
}

// publishEvent sends an event on the configured bus, if any
func (c *Coordinator) publishEvent(eventType event.EventType, data any) {
	if c.config.eventBus == nil {
		return
	}
	c.config.eventBus.PublishAsync(
		eventType,
		event.NewEvent(eventType, data),
	)
}
