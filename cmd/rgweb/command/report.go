// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/momeni/repair-gateway/pkg/core/usecase/reportsuc"
	"github.com/spf13/cobra"
)

var reportFlags struct {
	id, status, token, output string
	threshold                 int64
}

var reportCmd = &cobra.Command{
	Use:   "report <name>",
	Short: "Render a PDF report into a file",
	Long: `Render one of the PDF reports into a file, using the same use case
which serves the GraphQL report fields. Supported names are:
  ` + strings.Join(reportsuc.Names(), "\n  ") + `
The technician, repair order, and equipment reports need --id and the
repair orders by status report needs --status. The --token is sent to
the REST backend as the Authorization header.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: reportsuc.Names(),
	RunE:      renderReport,
}

func renderReport(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	u, err := c.NewUpstream(nil)
	if err != nil {
		return err
	}
	r, err := c.NewRenderer(nil)
	if err != nil {
		return err
	}
	reports, err := c.NewReportsUseCase(u, r)
	if err != nil {
		return fmt.Errorf("creating reports use case: %w", err)
	}
	p := reportsuc.Params{
		ID:        reportFlags.id,
		Status:    reportFlags.status,
		Threshold: reports.LowStockThreshold(),
	}
	if cmd.Flags().Changed("threshold") {
		p.Threshold = reportFlags.threshold
	}
	pdf, err := reports.PDF(cmd.Context(), reportFlags.token, args[0], p)
	if err != nil {
		return err
	}
	if err = os.WriteFile(reportFlags.output, pdf, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", reportFlags.output, err)
	}
	return nil
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportFlags.id, "id", "", "entity id")
	f.StringVar(&reportFlags.status, "status", "", "repair order status")
	f.Int64Var(
		&reportFlags.threshold, "threshold", 0,
		"low stock threshold (defaults to reports.low-stock-threshold)",
	)
	f.StringVar(&reportFlags.token, "token", "", "bearer token")
	f.StringVarP(&reportFlags.output, "output", "o", "", "output PDF path")
	_ = reportCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(reportCmd)
}
