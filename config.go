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

package quorum

import (
	"log/slog"
	"time"

	"github.com/blinklabs-io/quorum/database"
	"github.com/blinklabs-io/quorum/event"
	"github.com/blinklabs-io/quorum/ledger"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultProposalTTL is the fixed window between proposal creation
	// and expiry
	DefaultProposalTTL = 24 * time.Hour
	// DefaultPrepareTimeout bounds the ledger prepare call during
	// proposal creation
	DefaultPrepareTimeout = 30 * time.Second
	// DefaultSubmitTimeout bounds the ledger submission during execution.
	// A proposal never remains in EXECUTING past this bound; on timeout
	// it transitions to FAILED with a timeout-classified error.
	DefaultSubmitTimeout = 90 * time.Second
	// DefaultSweepInterval is how often the background sweep marks
	// stale proposals expired
	DefaultSweepInterval = 5 * time.Minute
)

type Config struct {
	logger         *slog.Logger
	db             *database.Database
	ledgerClient   ledger.Client
	membership     MembershipResolver
	credentials    CredentialGate
	eventBus       *event.EventBus
	promRegistry   prometheus.Registerer
	proposalTTL    time.Duration
	prepareTimeout time.Duration
	submitTimeout  time.Duration
	sweepInterval  time.Duration
}

type ConfigOptionFunc func(*Config)

// NewConfig creates a new coordinator config with default values
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		proposalTTL:    DefaultProposalTTL,
		prepareTimeout: DefaultPrepareTimeout,
		submitTimeout:  DefaultSubmitTimeout,
		sweepInterval:  DefaultSweepInterval,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger specifies the logger to use
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithDatabase specifies the database to use
func WithDatabase(db *database.Database) ConfigOptionFunc {
	return func(c *Config) {
		c.db = db
	}
}

// WithLedgerClient specifies the ledger client to use
func WithLedgerClient(client ledger.Client) ConfigOptionFunc {
	return func(c *Config) {
		c.ledgerClient = client
	}
}

// WithMembershipResolver specifies the membership resolver to use.
// Defaults to a resolver backed by the coordinator's own database.
func WithMembershipResolver(resolver MembershipResolver) ConfigOptionFunc {
	return func(c *Config) {
		c.membership = resolver
	}
}

// WithCredentialGate specifies the credential gate to use. Defaults to a
// gate backed by the coordinator's own database.
func WithCredentialGate(gate CredentialGate) ConfigOptionFunc {
	return func(c *Config) {
		c.credentials = gate
	}
}

// WithEventBus specifies the event bus to use
func WithEventBus(eventBus *event.EventBus) ConfigOptionFunc {
	return func(c *Config) {
		c.eventBus = eventBus
	}
}

// WithPrometheusRegistry specifies a prometheus registry for metrics
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithProposalTTL specifies the proposal expiry window
func WithProposalTTL(ttl time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.proposalTTL = ttl
	}
}

// WithPrepareTimeout specifies the ledger prepare timeout
func WithPrepareTimeout(timeout time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.prepareTimeout = timeout
	}
}

// WithSubmitTimeout specifies the ledger submission timeout
func WithSubmitTimeout(timeout time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.submitTimeout = timeout
	}
}

// WithSweepInterval specifies the expiry sweep interval. Zero disables
// the background sweep; lazy expiration still applies.
func WithSweepInterval(interval time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.sweepInterval = interval
	}
}
