// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `
version: "1.0.0"
listeners:
  - event: save
    handlers:
      - module: store
        method: persist
        compressable: true
`

// execute runs the root command with args in an isolated environment and
// returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	configFile = ""
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	out, _, err := execute(t, "--help")

	require.NoError(t, err)
	for _, sub := range []string{"compress", "scan", "validate-registry"} {
		assert.Contains(t, out, sub, "Help missing %q command", sub)
	}
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantFlag string
	}{
		{
			name:     "config flag",
			args:     []string{"--config", "/path/to/config.yaml", "--help"},
			wantFlag: "/path/to/config.yaml",
		},
		{
			name:     "config flag with equals",
			args:     []string{"--config=/etc/evcompress.yaml", "--help"},
			wantFlag: "/etc/evcompress.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, configFile)
		})
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"namespace", "module-accessor", "registry", "include", "exclude", "out-dir", "workers", "log-format", "log-level", "metrics-file"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag %q", name)
	}
}

func TestLoadSettings_RejectsUnknownLevel(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.php", "Event::fire('e');\n")

	_, _, err := execute(t, "compress", "--log-level", "loud", src)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestLoadSettings_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.php", "Bus::subscribe('e', 'h');\nBus::fire('e', array(1));\n")
	cfg := writeFile(t, dir, "config.yaml", "namespace: Bus\nlog-format: text\n")

	out, _, err := execute(t, "--config", cfg, "compress", src)

	require.NoError(t, err)
	assert.Equal(t, "Bus::subscribe('e', 'h');\nh(1);\n", out)
}
