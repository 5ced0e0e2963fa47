// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads evcompress settings from defaults, an optional YAML
// file and command-line flags, in increasing order of precedence.
package config

import (
	"runtime"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/evcompress/internal/resolve"
	"github.com/holomush/evcompress/internal/scan"
)

// CodeInvalid is the error code for configuration failures.
const CodeInvalid = "CONFIG_INVALID"

// Config holds the settings shared by all subcommands.
type Config struct {
	Namespace      string   `koanf:"namespace"`
	ModuleAccessor string   `koanf:"module-accessor"`
	Registry       string   `koanf:"registry"`
	Include        []string `koanf:"include"`
	Exclude        []string `koanf:"exclude"`
	OutDir         string   `koanf:"out-dir"`
	Workers        int      `koanf:"workers"`
	LogFormat      string   `koanf:"log-format"`
	LogLevel       string   `koanf:"log-level"`
	MetricsFile    string   `koanf:"metrics-file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Namespace:      scan.DefaultNamespace,
		ModuleAccessor: resolve.DefaultModuleAccessor,
		Workers:        runtime.NumCPU(),
		LogFormat:      "text",
		LogLevel:       "info",
	}
}

// RegisterFlags defines a flag for every setting on fs, defaulting to
// Default().
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("namespace", d.Namespace, "class exposing the static event API")
	fs.String("module-accessor", d.ModuleAccessor, "host function returning a module by id")
	fs.String("registry", d.Registry, "listener manifest (listeners.yaml)")
	fs.StringSlice("include", nil, "event id glob patterns to compress (default all)")
	fs.StringSlice("exclude", nil, "event id glob patterns to leave untouched")
	fs.String("out-dir", d.OutDir, "directory receiving transformed files")
	fs.Int("workers", d.Workers, "files processed in parallel")
	fs.String("log-format", d.LogFormat, "log format (json or text)")
	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	fs.String("metrics-file", d.MetricsFile, "write Prometheus metrics to this textfile after a run")
}

// Load builds the configuration. path may be empty to skip the file; flags
// may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code(CodeInvalid).With("path", path).Wrapf(err, "loading config file")
		}
	}
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code(CodeInvalid).Wrapf(err, "loading flags")
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code(CodeInvalid).Wrapf(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return oops.Code(CodeInvalid).Errorf("namespace is required")
	}
	if c.ModuleAccessor == "" {
		return oops.Code(CodeInvalid).Errorf("module-accessor is required")
	}
	if c.Workers < 1 {
		return oops.Code(CodeInvalid).With("workers", c.Workers).Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code(CodeInvalid).With("log-format", c.LogFormat).Errorf("log-format must be 'json' or 'text', got %q", c.LogFormat)
	}
	return nil
}
