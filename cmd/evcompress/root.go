// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"log/slog"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/evcompress/internal/config"
	"github.com/holomush/evcompress/internal/logging"
	"github.com/holomush/evcompress/internal/registry"
	"github.com/holomush/evcompress/internal/xdg"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the evcompress CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evcompress",
		Short: "evcompress - compile event dispatch into direct calls",
		Long: `evcompress rewrites Event::fire call sites in PHP sources into direct
calls to the handlers subscribed to each event, removing the runtime
dispatch layer from hot paths.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/evcompress/config.yaml)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewCompressCmd())
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewValidateRegistryCmd())

	return cmd
}

// loadSettings resolves the configuration for cmd and installs the default
// logger it describes.
func loadSettings(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path := configFile
	if path == "" {
		path = xdg.ExistingConfigFile()
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, oops.Code(config.CodeInvalid).With("log-level", cfg.LogLevel).Wrap(err)
	}
	logger := logging.SetDefault(logging.Options{
		Service: "evcompress",
		Version: version,
		Format:  cfg.LogFormat,
		Level:   level,
		Writer:  cmd.ErrOrStderr(),
	})
	return cfg, logger, nil
}

// loadRegistry loads the configured manifest. Without one every lookup finds
// no listeners.
func loadRegistry(cfg *config.Config, logger *slog.Logger) (*registry.Static, error) {
	if cfg.Registry == "" {
		logger.Debug("no registry manifest configured")
		return registry.New(), nil
	}
	reg, err := registry.Load(cfg.Registry)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded registry manifest", "path", cfg.Registry, "events", reg.Len())
	return reg, nil
}
