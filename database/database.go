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

package database

import (
	"io"
	"log/slog"

	"github.com/blinklabs-io/quorum/database/plugin/metadata"
	"github.com/prometheus/client_golang/prometheus"
)

// Config contains the configuration for a Database
type Config struct {
	Logger         *slog.Logger
	PromRegistry   prometheus.Registerer
	DataDir        string
	MetadataPlugin string
	MysqlDsn       string
}

// Database is the single source of truth for proposal state. All
// mutation flows through conditional store operations; no caller holds a
// stale in-memory copy of proposal state across calls.
type Database struct {
	logger   *slog.Logger
	metadata metadata.MetadataStore
	dataDir  string
}

// New creates a new database instance with optional persistence using the
// provided data directory
func New(cfg *Config) (*Database, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	plugin := cfg.MetadataPlugin
	if plugin == "" {
		plugin = "sqlite"
	}
	metadataDb, err := metadata.New(
		plugin,
		cfg.DataDir,
		cfg.MysqlDsn,
		logger,
		cfg.PromRegistry,
	)
	if err != nil {
		return nil, err
	}
	return &Database{
		logger:   logger,
		metadata: metadataDb,
		dataDir:  cfg.DataDir,
	}, nil
}

// DataDir returns the path to the data directory used for storage
func (d *Database) DataDir() string {
	return d.dataDir
}

// Logger returns the logger instance
func (d *Database) Logger() *slog.Logger {
	return d.logger
}

// Metadata returns the underlying metadata store instance
func (d *Database) Metadata() metadata.MetadataStore {
	return d.metadata
}

// Close cleans up the database connections
func (d *Database) Close() error {
	return d.metadata.Close()
}
