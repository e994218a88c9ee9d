// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers parses the format version of a configuration file.
// The version is read before the rest of the file, so the matching
// versioned struct can decode the remaining settings.
package vers

import (
	"fmt"

	"github.com/momeni/repair-gateway/pkg/core/cerr"
	"github.com/momeni/repair-gateway/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config is embedded inline by the versioned configuration structs.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions keeps the format version of the configuration file.
type Versions struct {
	Config model.SemVer `yaml:"config"`
}

// Load decodes the versions part of data. Other keys are ignored.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate returns a *cerr.MismatchingSemVerError if the configuration
// file version cannot be read by a binary which supports the given
// major and minor version. The major versions must match and the file
// may not be newer than minor.
func (vc *Config) Validate(major, minor uint) error {
	v := vc.Versions.Config
	if v[0] != major || v[1] > minor {
		return fmt.Errorf(
			"unsupported config version: %w",
			&cerr.MismatchingSemVerError{{major, minor, 0}, v},
		)
	}
	return nil
}
