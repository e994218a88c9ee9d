// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reportsuc_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/momeni/repair-gateway/pkg/adapter/report"
	"github.com/momeni/repair-gateway/pkg/adapter/report/pdf"
	"github.com/momeni/repair-gateway/pkg/adapter/upstream/fixturerp"
	"github.com/momeni/repair-gateway/pkg/core/cerr"
	"github.com/momeni/repair-gateway/pkg/core/model"
	"github.com/momeni/repair-gateway/pkg/core/usecase/reportsuc"
	"github.com/stretchr/testify/suite"
)

// capturer is a fake renderer which keeps the last report.
type capturer struct {
	last model.Report
	err  error
}

func (c *capturer) Render(_ context.Context, r model.Report) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.last = r
	return []byte("%PDF-" + r.Name), nil
}

type ReportsUseCaseTestSuite struct {
	suite.Suite

	Ctx      context.Context
	UC       *reportsuc.UseCase
	Renderer *capturer
}

func TestReportsUseCaseTestSuite(t *testing.T) {
	up, err := fixturerp.New()
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}
	r := &capturer{}
	uc, err := reportsuc.New(up, r)
	if err != nil {
		t.Fatalf("creating use case: %v", err)
	}
	suite.Run(t, &ReportsUseCaseTestSuite{
		Ctx:      context.Background(),
		UC:       uc,
		Renderer: r,
	})
}

func (ruts *ReportsUseCaseTestSuite) render(name string, p reportsuc.Params) model.Report {
	pdf, err := ruts.UC.PDF(ruts.Ctx, "tok", name, p)
	ruts.Require().NoError(err)
	ruts.Equal("%PDF-"+name, string(pdf))
	ruts.Equal(name, ruts.Renderer.last.Name)
	return ruts.Renderer.last
}

func (ruts *ReportsUseCaseTestSuite) TestBase64() {
	s, err := ruts.UC.UsersReport(ruts.Ctx, "tok")
	ruts.Require().NoError(err)
	pdf, err := base64.StdEncoding.DecodeString(s)
	ruts.Require().NoError(err)
	ruts.Equal("%PDF-users_report", string(pdf))
}

func (ruts *ReportsUseCaseTestSuite) TestUsers() {
	rep := ruts.render(reportsuc.Users, reportsuc.Params{})
	rows := rep.Sections["rows"]
	ruts.Equal(8, rows.Columns)
	ruts.Require().Len(rows.Rows, 3)
	ruts.Equal(model.Values(
		"1", "Mario", "Delgado", "mario@mail.com", "0999999999", "Manta",
		"2025-10-18", "USER",
	), rows.Rows[0])
}

func (ruts *ReportsUseCaseTestSuite) TestTechnician() {
	rep := ruts.render(reportsuc.Technician, reportsuc.Params{ID: "11"})
	ruts.Equal("Paola", rep.Fields["name"])
	ruts.Equal("3", rep.Fields["experienceYears"])
	ruts.Equal("No", rep.Fields["isEvaluator"])
	ruts.Equal("Sí", rep.Fields["active"])

	_, err := ruts.UC.TechnicianReport(ruts.Ctx, "tok", "")
	var ce *cerr.Error
	ruts.Require().ErrorAs(err, &ce)
	ruts.Equal(http.StatusBadRequest, ce.HTTPStatusCode)

	_, err = ruts.UC.TechnicianReport(ruts.Ctx, "tok", "404")
	ruts.Require().ErrorAs(err, &ce)
	ruts.Equal(http.StatusNotFound, ce.HTTPStatusCode)
}

func (ruts *ReportsUseCaseTestSuite) TestTechniciansCards() {
	rep := ruts.render(reportsuc.Technicians, reportsuc.Params{})
	cards := rep.Sections["cards"]
	ruts.Equal(model.LayoutCards, cards.Layout)
	ruts.Require().Len(cards.Rows, 4)
	carlos := cards.Rows[2]
	ruts.Require().Len(carlos, 12)
	ruts.Equal(model.Cell{Label: "Nombres", Value: "Carlos"}, carlos[1])
	ruts.Equal(model.Cell{Label: "Activo", Value: "No"}, carlos[9])
}

func (ruts *ReportsUseCaseTestSuite) TestRepairOrder() {
	rep := ruts.render(reportsuc.RepairOrder, reportsuc.Params{ID: "1"})
	ruts.Equal("1", rep.Fields["order_id"])
	ruts.Equal("125.50", rep.Fields["finalCost"])
	ruts.Equal("HP-PV15-0001", rep.Fields["equipment_serialNumber"])
	ruts.Equal("andres@mail.com", rep.Fields["tech_email"])
	ruts.Equal(model.Values(
		"1", "45.00", "0", "45.00", "COMPLETED", "Cambio de fuente de poder.",
	), rep.Sections["details_rows"].Rows[0])
	ruts.Equal(
		model.Values("1", "1", "95.50"), rep.Sections["parts_rows"].Rows[0],
	)

	rep = ruts.render(reportsuc.RepairOrder, reportsuc.Params{ID: "3"})
	ruts.Equal(model.NotRecorded, rep.Fields["warrantyStartDate"])
	ruts.Empty(rep.Sections["details_rows"].Rows)
	ruts.Equal(
		"No registra detalles de servicios.",
		rep.Sections["details_rows"].Empty,
	)
	ruts.Empty(rep.Sections["parts_rows"].Rows)
}

func (ruts *ReportsUseCaseTestSuite) TestEquipmentWithoutOwner() {
	rep := ruts.render(reportsuc.Equipment, reportsuc.Params{ID: "4"})
	ruts.Equal("Lenovo Tab M10", rep.Fields["equipment_name"])
	ruts.Equal("COMPLETED", rep.Fields["equipment_status"])
	ruts.Equal(model.NotRecorded, rep.Fields["equipment_serialNumber"])
	ruts.Equal(model.NotRecorded, rep.Fields["user_name"])
	ruts.Empty(rep.Sections["orders_rows"].Rows)
	ruts.Equal(7, rep.Sections["orders_rows"].Columns)
}

func (ruts *ReportsUseCaseTestSuite) TestSpareParts() {
	rep := ruts.render(reportsuc.SpareParts, reportsuc.Params{})
	rows := rep.Sections["rows"].Rows
	ruts.Require().Len(rows, 5)
	ruts.Equal("42.75", rows[4][4].Value, "price fallback")
}

func (ruts *ReportsUseCaseTestSuite) TestLowStock() {
	rep := ruts.render(
		reportsuc.SparePartsLowStock, reportsuc.Params{Threshold: 10},
	)
	ruts.Equal("10", rep.Fields["threshold"])
	ruts.Equal("2", rep.Fields["count_low_stock"])
	rows := rep.Sections["parts_rows"].Rows
	ruts.Require().Len(rows, 2)
	ruts.Equal(model.Values("2", "Batería ASUS", "8", "$68.90"), rows[0])
	ruts.Equal(
		model.Values("5", "Pantalla táctil Samsung A30", "10", "$42.75"),
		rows[1],
	)

	rep = ruts.render(
		reportsuc.SparePartsLowStock, reportsuc.Params{Threshold: 1},
	)
	ruts.Equal("0", rep.Fields["count_low_stock"])
	ruts.Equal(
		"No hay repuestos con stock menor o igual a 1.",
		rep.Sections["parts_rows"].Empty,
	)
}

func (ruts *ReportsUseCaseTestSuite) TestByStatus() {
	rep := ruts.render(
		reportsuc.RepairOrdersByStatus,
		reportsuc.Params{Status: "COMPLETED"},
	)
	ruts.Equal("COMPLETED", rep.Fields["status"])
	ruts.Equal("1", rep.Fields["total_orders"])
	ruts.Equal("$125.50", rep.Fields["total_sum"])
	ruts.Equal(model.Values(
		"1", "Mario Delgado", "Andrés García", "COMPLETED", "$125.50",
		"2025-10-01",
	), rep.Sections["orders_rows"].Rows[0])

	rep = ruts.render(
		reportsuc.RepairOrdersByStatus, reportsuc.Params{Status: "CANCELLED"},
	)
	ruts.Equal("0", rep.Fields["total_orders"])
	ruts.Equal("$0.00", rep.Fields["total_sum"])
}

func (ruts *ReportsUseCaseTestSuite) TestPerformance() {
	rep := ruts.render(reportsuc.TechniciansPerformance, reportsuc.Params{})
	ruts.Equal("4", rep.Fields["total_technicians"])
	ruts.Equal("3", rep.Fields["global_orders"])
	ruts.Equal("120.00", rep.Fields["global_income"])
	rows := rep.Sections["rows"].Rows
	ruts.Require().Len(rows, 4)
	ruts.Equal(model.Values(
		"10", "Andrés García", "andres@mail.com",
		"Reparación de laptops y PCs", "5", "Activo", "1", "$45.00",
	), rows[0])
	ruts.Equal("Inactivo", rows[2][5].Value)
	ruts.Equal("0", rows[2][6].Value)
	ruts.Equal("1", rows[3][6].Value, "evaluator fallback")
}

func (ruts *ReportsUseCaseTestSuite) TestDashboard() {
	rep := ruts.render(reportsuc.BusinessDashboard, reportsuc.Params{})
	ruts.Equal(map[string]string{
		"total_users":        "3",
		"total_clients":      "1",
		"total_technicians":  "4",
		"active_technicians": "3",
		"total_orders":       "3",
		"total_services":     "4",
		"low_stock_count":    "0",
	}, rep.Fields)
}

func (ruts *ReportsUseCaseTestSuite) TestUnknownReport() {
	_, err := ruts.UC.PDF(ruts.Ctx, "tok", "cars_report", reportsuc.Params{})
	var ce *cerr.Error
	ruts.Require().ErrorAs(err, &ce)
	ruts.Equal(http.StatusBadRequest, ce.HTTPStatusCode)
}

func (ruts *ReportsUseCaseTestSuite) TestRendererFailure() {
	up, err := fixturerp.New()
	ruts.Require().NoError(err)
	boom := errors.New("boom")
	uc, err := reportsuc.New(up, &capturer{err: boom})
	ruts.Require().NoError(err)
	_, err = uc.SparePartsReport(ruts.Ctx, "tok")
	ruts.ErrorIs(err, boom)
}

func (ruts *ReportsUseCaseTestSuite) TestNames() {
	names := reportsuc.Names()
	ruts.Len(names, 10)
	ruts.Contains(names, reportsuc.BusinessDashboard)
	ruts.IsNonDecreasing(names)
}

func (ruts *ReportsUseCaseTestSuite) TestOptions() {
	up, err := fixturerp.New()
	ruts.Require().NoError(err)
	_, err = reportsuc.New(
		up, ruts.Renderer,
		reportsuc.WithLowStockThreshold(3),
		reportsuc.WithLowStockThreshold(4),
	)
	ruts.Error(err)
	_, err = reportsuc.New(up, ruts.Renderer, reportsuc.WithLowStockThreshold(-1))
	ruts.Error(err)

	uc, err := reportsuc.New(up, ruts.Renderer, reportsuc.WithLowStockThreshold(10))
	ruts.Require().NoError(err)
	_, err = uc.BusinessDashboardReport(ruts.Ctx, "tok")
	ruts.Require().NoError(err)
	ruts.Equal("2", ruts.Renderer.last.Fields["low_stock_count"])
}

func (ruts *ReportsUseCaseTestSuite) TestAllReportsAsPDF() {
	up, err := fixturerp.New()
	ruts.Require().NoError(err)
	conv, err := pdf.New(pdf.WithCompression(false))
	ruts.Require().NoError(err)
	r, err := report.New(report.WithConverter(conv))
	ruts.Require().NoError(err)
	uc, err := reportsuc.New(up, r)
	ruts.Require().NoError(err)

	p := reportsuc.Params{ID: "1", Status: "COMPLETED", Threshold: 10}
	for _, name := range reportsuc.Names() {
		if name == reportsuc.Technician {
			p.ID = "11"
		}
		var doc []byte
		ruts.Require().NotPanics(func() {
			doc, err = uc.PDF(ruts.Ctx, "tok", name, p)
		}, name)
		ruts.Require().NoError(err, name)
		ruts.True(strings.HasPrefix(string(doc), "%PDF-"), name)
		p.ID = "1"
	}
}
