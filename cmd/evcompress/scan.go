// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/evcompress/internal/compressor"
	"github.com/holomush/evcompress/internal/pipeline"
	"github.com/holomush/evcompress/internal/report"
	"github.com/holomush/evcompress/pkg/errutil"
)

// NewScanCmd creates the scan subcommand.
func NewScanCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan [flags] FILE...",
		Short: "Report the subscriptions and fires found in files",
		Long: `Collects every subscription and fire in the given files and prints the
resulting tables grouped by event id. No file is modified.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			session, err := compressor.NewSession(compressor.Options{
				Namespace:      cfg.Namespace,
				ModuleAccessor: cfg.ModuleAccessor,
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			p := pipeline.New(pipeline.Options{Session: session, Workers: cfg.Workers, Logger: logger})
			units, err := p.Read(cmd.Context(), args)
			if err != nil {
				errutil.LogError(logger, "scan failed", err)
				return err
			}
			p.Collect(units)

			r := report.Build(session.Subscriptions(), session.Fires())
			return report.Encode(cmd.OutOrStdout(), r, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", report.FormatJSON, "output format (json or yaml)")

	return cmd
}
