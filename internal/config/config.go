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

package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "quorum.config"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

const (
	DefaultMetadataPlugin  = "sqlite"
	DefaultApiAddress      = ":8080"
	DefaultMetricsAddress  = ":12798"
	DefaultShutdownTimeout = "30s"
)

// Config holds service configuration. Duration fields are strings in
// time.ParseDuration format so they read naturally in YAML and env vars;
// empty values fall back to the coordinator's defaults.
type Config struct {
	MetadataPlugin   string `yaml:"metadataPlugin"   envconfig:"QUORUM_DATABASE_METADATA_PLUGIN"`
	DatabasePath     string `yaml:"databasePath"                                                 split_words:"true"`
	MysqlDsn         string `yaml:"mysqlDsn"         envconfig:"QUORUM_DATABASE_MYSQL_DSN"`
	ApiAddress       string `yaml:"apiAddress"                                                   split_words:"true"`
	MetricsAddress   string `yaml:"metricsAddress"                                               split_words:"true"`
	LedgerGatewayUrl string `yaml:"ledgerGatewayUrl"                                             split_words:"true"`
	ProposalTTL      string `yaml:"proposalTtl"      envconfig:"QUORUM_PROPOSAL_TTL"`
	PrepareTimeout   string `yaml:"prepareTimeout"                                               split_words:"true"`
	SubmitTimeout    string `yaml:"submitTimeout"                                                split_words:"true"`
	SweepInterval    string `yaml:"sweepInterval"                                                split_words:"true"`
	ShutdownTimeout  string `yaml:"shutdownTimeout"                                              split_words:"true"`
}

// Load reads configuration from an optional YAML file, then applies
// environment variable overrides on top
func Load(configFile string) (*Config, error) {
	cfg := &Config{
		MetadataPlugin:  DefaultMetadataPlugin,
		ApiAddress:      DefaultApiAddress,
		MetricsAddress:  DefaultMetricsAddress,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	if err := envconfig.Process("quorum", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.MetadataPlugin {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unknown metadata plugin: %s", c.MetadataPlugin)
	}
	if c.MetadataPlugin == "mysql" && c.MysqlDsn == "" {
		return fmt.Errorf("mysql metadata plugin requires a DSN")
	}
	if c.LedgerGatewayUrl == "" {
		return fmt.Errorf("no ledger gateway URL configured")
	}
	for name, value := range map[string]string{
		"proposalTtl":     c.ProposalTTL,
		"prepareTimeout":  c.PrepareTimeout,
		"submitTimeout":   c.SubmitTimeout,
		"sweepInterval":   c.SweepInterval,
		"shutdownTimeout": c.ShutdownTimeout,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// Duration parses a duration config value, returning the given default
// for empty values. Load has already validated the format.
func Duration(value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
