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

package mysql

import (
	"errors"
	"io"
	"log/slog"

	"github.com/blinklabs-io/quorum/database/models"
	"github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

const mysqlErrDuplicateEntry = 1062

// MetadataStoreMysql stores metadata in MySQL. It implements the same
// store interface as the SQLite plugin for deployments that share one
// database server across multiple coordinator instances.
type MetadataStoreMysql struct {
	promRegistry prometheus.Registerer
	db           *gorm.DB
	logger       *slog.Logger
	dsn          string
}

// New creates a MySQL metadata store from a DSN in go-sql-driver format
func New(
	dsn string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (*MetadataStoreMysql, error) {
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	// Validate the DSN up front for a clearer error than a failed dial
	if _, err := mysql.ParseDSN(dsn); err != nil {
		return nil, err
	}
	metadataDb, err := gorm.Open(
		gormmysql.Open(dsn),
		&gorm.Config{
			Logger:                 gormlogger.Discard,
			SkipDefaultTransaction: true,
		},
	)
	if err != nil {
		return nil, err
	}
	db := &MetadataStoreMysql{
		db:           metadataDb,
		dsn:          dsn,
		logger:       logger,
		promRegistry: promRegistry,
	}
	// Configure tracing for GORM
	if err := db.db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return db, err
	}
	// Create table schemas
	for _, model := range models.MigrateModels {
		if err := db.db.AutoMigrate(model); err != nil {
			return db, err
		}
	}
	return db, nil
}

// Close closes the underlying database connection
func (d *MetadataStoreMysql) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the underlying gorm DB handle
func (d *MetadataStoreMysql) DB() *gorm.DB {
	return d.db
}

// Transaction starts a new database transaction and returns a handle to it
func (d *MetadataStoreMysql) Transaction() *gorm.DB {
	return d.db.Begin()
}

func (d *MetadataStoreMysql) resolveDB(txn *gorm.DB) *gorm.DB {
	if txn != nil {
		return txn
	}
	return d.db
}

// isUniqueConstraintError returns true for duplicate-key insert failures
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	return false
}
