package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"cosmossdk.io/log"

	"github.com/otimlabs/wormhole-admin/metrics"
	"github.com/otimlabs/wormhole-admin/solana"
	"github.com/otimlabs/wormhole-admin/types"
)

var errFiltered = errors.New("VAA filtered")

// operationFunc performs one admin operation. skipped reports that nothing
// had to be sent because the on-chain state was already in place.
type operationFunc func(ctx context.Context, logger log.Logger, m *metrics.PromMetrics) (skipped bool, err error)

// runOperation records the outcome and duration of fn and pushes metrics
// when a pushgateway is configured
func runOperation(cmd *cobra.Command, a *AppState, name string, fn operationFunc) error {
	logger := a.Logger.With("operation", name)
	m := metrics.InitPromMetrics()

	start := time.Now()
	skipped, err := fn(cmd.Context(), logger, m)

	status := "success"
	switch {
	case errors.Is(err, errFiltered):
		status = "filtered"
	case err != nil:
		status = "failed"
	case skipped:
		status = "skipped"
	}
	m.IncOperation(name, status)
	m.ObserveDuration(name, time.Since(start))
	logger.Debug("Operation finished", "status", status, "elapsed", time.Since(start).String())

	pushMetrics(a.Config.Metrics, m, logger)
	return err
}

// pushMetrics never fails the command
func pushMetrics(cfg types.MetricsSettings, m *metrics.PromMetrics, logger log.Logger) {
	if cfg.PushgatewayURL == "" {
		return
	}
	job := cfg.Job
	if job == "" {
		job = metrics.DefaultJob
	}
	if err := m.Push(cfg.PushgatewayURL, job); err != nil {
		logger.Error("Failed to push metrics", "url", cfg.PushgatewayURL, "error", err)
		return
	}
	logger.Debug("Pushed metrics", "url", cfg.PushgatewayURL, "job", job)
}

// connectSolana loads the payer key, prints it, and checks the RPC is reachable.
// The caller closes the client.
func connectSolana(ctx context.Context, out io.Writer, cfg *types.Config, logger log.Logger, m *metrics.PromMetrics) (*solana.Client, error) {
	client, err := solana.NewClientFromSettings(cfg.Solana)
	if err != nil {
		return nil, fmt.Errorf("error creating solana client: %w", err)
	}
	client.SetMetrics(m)

	fmt.Fprintln(out, "payer", client.Payer().String())

	if err := client.Connect(ctx, logger); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
