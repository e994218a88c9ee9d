// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/repair-gateway/pkg/adapter/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the normalized configuration settings",
	Long: `Print the configuration settings after validation, environment
overrides (API_URL or NEST_API_URL), and filling of the default values.
The output is a valid configuration file itself.`,
	Args: cobra.NoArgs,
	RunE: printConfig,
}

func printConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	return c.Print(cmd.OutOrStdout())
}

func init() {
	rootCmd.AddCommand(configCmd)
}
