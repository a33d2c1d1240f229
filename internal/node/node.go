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

package node

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blinklabs-io/quorum"
	"github.com/blinklabs-io/quorum/api"
	"github.com/blinklabs-io/quorum/database"
	"github.com/blinklabs-io/quorum/event"
	"github.com/blinklabs-io/quorum/internal/config"
	"github.com/blinklabs-io/quorum/ledger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Run(cfg *config.Config, logger *slog.Logger) error {
	logger.Debug(fmt.Sprintf("config: %+v", cfg), "component", "node")

	shutdownTimeout := config.Duration(cfg.ShutdownTimeout, 30*time.Second)

	db, err := database.New(&database.Config{
		Logger:         logger,
		PromRegistry:   prometheus.DefaultRegisterer,
		DataDir:        cfg.DatabasePath,
		MetadataPlugin: cfg.MetadataPlugin,
		MysqlDsn:       cfg.MysqlDsn,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	eventBus := event.NewEventBus(prometheus.DefaultRegisterer)
	defer eventBus.Stop()

	ledgerClient := ledger.NewRPCClient(cfg.LedgerGatewayUrl, logger)

	coordinator, err := quorum.New(
		quorum.NewConfig(
			quorum.WithLogger(logger),
			quorum.WithDatabase(db),
			quorum.WithLedgerClient(ledgerClient),
			quorum.WithEventBus(eventBus),
			quorum.WithPrometheusRegistry(prometheus.DefaultRegisterer),
			quorum.WithProposalTTL(
				config.Duration(cfg.ProposalTTL, quorum.DefaultProposalTTL),
			),
			quorum.WithPrepareTimeout(
				config.Duration(
					cfg.PrepareTimeout,
					quorum.DefaultPrepareTimeout,
				),
			),
			quorum.WithSubmitTimeout(
				config.Duration(cfg.SubmitTimeout, quorum.DefaultSubmitTimeout),
			),
			quorum.WithSweepInterval(
				config.Duration(cfg.SweepInterval, quorum.DefaultSweepInterval),
			),
		),
	)
	if err != nil {
		return err
	}
	if err := coordinator.Start(); err != nil {
		return err
	}

	// Metrics listener
	http.Handle("/metrics", promhttp.Handler())
	logger.Info(
		"serving prometheus metrics on "+cfg.MetricsAddress,
		"component", "node",
	)
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddress,
		ReadHeaderTimeout: 60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			logger.Error(
				fmt.Sprintf("failed to start metrics listener: %s", err),
				"component", "node",
			)
			os.Exit(1)
		}
	}()

	// Wait for interrupt/termination signal
	signalCtx, signalCtxStop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer signalCtxStop()

	apiServer := api.New(
		api.Config{ListenAddress: cfg.ApiAddress},
		coordinator,
		logger,
	)
	if err := apiServer.Start(signalCtx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}

	// Wait for signal
	<-signalCtx.Done()
	logger.Info("signal received, initiating graceful shutdown")
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		shutdownTimeout,
	)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}
	if err := coordinator.Stop(); err != nil {
		logger.Error("coordinator shutdown error", "error", err)
	}
	return nil
}
