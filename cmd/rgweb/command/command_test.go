// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func fixtureConfig(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(
		"versions:\n  config: 1.0.0\nupstream:\n  mode: fixture\n"+
			"logging:\n  level: error\n",
	), 0o600))
	return p
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("NEST_API_URL", "")
	out, err := run(t, "config", "-c", fixtureConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "mode: fixture")
	assert.Contains(t, out, "config: 1.0.0")
}

func TestReportCommand(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("NEST_API_URL", "")
	cfg := fixtureConfig(t)
	dst := filepath.Join(t.TempDir(), "tech.pdf")
	_, err := run(t,
		"report", "technician_report", "--id", "11", "-o", dst, "-c", cfg,
	)
	require.NoError(t, err)
	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))

	_, err = run(t, "report", "nope", "-o", dst, "-c", cfg)
	assert.Error(t, err)
}
