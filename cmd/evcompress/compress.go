// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/evcompress/internal/compressor"
	"github.com/holomush/evcompress/internal/config"
	"github.com/holomush/evcompress/internal/notify"
	"github.com/holomush/evcompress/internal/pipeline"
	"github.com/holomush/evcompress/pkg/errutil"
)

// CodeMetricsFailed is the error code for metrics export failures.
const CodeMetricsFailed = "METRICS_FAILED"

// NewCompressCmd creates the compress subcommand.
func NewCompressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compress [flags] FILE...",
		Short: "Replace event fires with direct handler calls",
		Long: `Collects every subscription and fire in the given files, then rewrites
each fire call site into direct calls to its handlers.

Transformed files are written under --out-dir at their relative path. Without
--out-dir the transformed sources are printed to stdout in argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if err := runCompress(cmd, cfg, logger, args); err != nil {
				errutil.LogError(logger, "compress failed", err)
				return err
			}
			return nil
		},
	}
}

func runCompress(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, paths []string) error {
	reg, err := loadRegistry(cfg, logger)
	if err != nil {
		return err
	}

	session, err := compressor.NewSession(compressor.Options{
		Namespace:      cfg.Namespace,
		ModuleAccessor: cfg.ModuleAccessor,
		Include:        cfg.Include,
		Exclude:        cfg.Exclude,
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	logger.Info("starting compression", "session", session.ID().String(), "files", len(paths))

	metricsReg := prometheus.NewRegistry()
	sink := notify.Multi{notify.NewLogger(logger), notify.NewMetrics(metricsReg)}

	p := pipeline.New(pipeline.Options{
		Session:  session,
		Registry: reg,
		Sink:     sink,
		Workers:  cfg.Workers,
		Logger:   logger,
	})
	outputs, err := p.Run(cmd.Context(), paths, cfg.OutDir)
	if err != nil {
		return err
	}

	if cfg.OutDir == "" {
		for _, o := range outputs {
			if _, err := fmt.Fprint(cmd.OutOrStdout(), o.Result.Output); err != nil {
				return oops.Code(pipeline.CodeWriteFailed).Wrapf(err, "writing output")
			}
		}
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, metricsReg); err != nil {
			return oops.Code(CodeMetricsFailed).With("path", cfg.MetricsFile).Wrapf(err, "writing metrics textfile")
		}
	}

	substitutions, skipped := 0, 0
	for _, o := range outputs {
		substitutions += o.Result.Substitutions
		skipped += o.Result.Skipped
	}
	logger.Info("compression complete",
		"files", len(outputs),
		"substitutions", substitutions,
		"skipped", skipped)
	return nil
}
