package handlers

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/rlcluster/internal/orchestration"
	"github.com/imamik/rlcluster/internal/provisioning"
)

// Teardown handles the teardown command.
func Teardown(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	client, err := newPlatformClient(ctx, cfg)
	if err != nil {
		return err
	}

	log := logr.FromContextOrDiscard(ctx)
	log.Info("Tearing down namespace", "driver", cfg.Platform.Driver)

	metrics := provisioning.NewMetrics()
	teardownErr := newOrchestrator(cfg, client, orchestration.WithMetrics(metrics)).Teardown(ctx)

	if err := writeMetrics(metrics, opts.MetricsFile); err != nil {
		log.Error(err, "Failed to write metrics", "path", opts.MetricsFile)
	}

	if teardownErr != nil {
		return fmt.Errorf("teardown failed: %w", teardownErr)
	}

	log.Info("Namespace torn down")
	return nil
}
