// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/evcompress/internal/config"
	"github.com/holomush/evcompress/internal/registry"
)

// NewValidateRegistryCmd creates the validate-registry subcommand.
func NewValidateRegistryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-registry [MANIFEST]",
		Short: "Validate a listener registry manifest",
		Long: `Validates a listener manifest against its JSON Schema and the manifest
rules without touching any source file. The manifest defaults to --registry.
Exits with code 0 on success, non-zero on failure.

Useful in CI pipelines to catch manifest errors early:
  evcompress validate-registry listeners.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			path := cfg.Registry
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return oops.Code(config.CodeInvalid).Errorf("no manifest given and registry is not configured")
			}

			reg, err := registry.Load(path)
			if err != nil {
				logger.Error("registry validation failed", "path", path, "detail", registry.FormatSchemaError(err))
				return err
			}

			logger.Info("registry manifest valid", "path", path, "events", reg.Len())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d events)\n", path, reg.Len())
			return err
		},
	}
}
