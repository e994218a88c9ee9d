// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files and allows rgweb to instantiate its components from the
// adapter and use cases layers with the loaded settings.
// The file format is versioned and each version is maintained by its
// own sub-package. Loaded settings are passed to the components as
// mandatory params and functional options, so each component still
// validates what it receives.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/momeni/repair-gateway/pkg/adapter/config/cfg1"
	"github.com/momeni/repair-gateway/pkg/adapter/config/vers"
)

// Environment variables which are consulted by Load and Path.
const (
	EnvAPIURL       = "API_URL"
	EnvLegacyAPIURL = "NEST_API_URL"
	EnvConfigFile   = "CONFIG_FILE"
)

// DefaultPath is used when neither a flag nor CONFIG_FILE names the
// configuration file.
const DefaultPath = "configs/sample-config.yaml"

// Config is the latest configuration format.
type Config = cfg1.Config

// Path returns flag if it is not empty, then the CONFIG_FILE variable,
// and finally the DefaultPath.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	return DefaultPath
}

// LoadEnv reads the .env file of the working directory, if any, into
// the process environment. Variables which are already set win.
func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load reads, validates, and normalizes the configuration file.
// The upstream.api-url setting is overridden by API_URL (or the
// legacy NEST_API_URL) environment variable.
func Load(path string) (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	if err := v.Validate(cfg1.Major, cfg1.Minor); err != nil {
		return nil, err
	}
	c, err := cfg1.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading cfg1.Config: %w", err)
	}
	if u := apiURL(); u != "" {
		c.Upstream.APIURL = &u
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating cfg1.Config: %w", err)
	}
	return c, nil
}

func apiURL() string {
	if u := os.Getenv(EnvAPIURL); u != "" {
		return u
	}
	return os.Getenv(EnvLegacyAPIURL)
}
