// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package adminuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/momeni/repair-gateway/pkg/adapter/upstream/fixturerp"
	"github.com/momeni/repair-gateway/pkg/core/cerr"
	"github.com/momeni/repair-gateway/pkg/core/model"
	"github.com/momeni/repair-gateway/pkg/core/repo"
	"github.com/momeni/repair-gateway/pkg/core/usecase/adminuc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AdminUseCasesTestSuite struct {
	suite.Suite

	Ctx context.Context
	UC  *adminuc.UseCase
	Up  repo.Upstream
}

func TestAdminUseCasesTestSuite(t *testing.T) {
	up, err := fixturerp.New()
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}
	uc, err := adminuc.New(up)
	if err != nil {
		t.Fatalf("creating use case: %v", err)
	}
	suite.Run(t, &AdminUseCasesTestSuite{
		Ctx: context.Background(),
		UC:  uc,
		Up:  up,
	})
}

func (auts *AdminUseCasesTestSuite) requireDecimal(exp string, d decimal.Decimal) {
	auts.True(
		decimal.RequireFromString(exp).Equal(d), "expected %s, got %s", exp, d,
	)
}

func (auts *AdminUseCasesTestSuite) TestEntities() {
	users, err := auts.UC.Users(auts.Ctx, "tok")
	auts.Require().NoError(err)
	auts.Len(users, 3)
	auts.Equal("Mario", *users[0].Name)

	techs, err := auts.UC.Technicians(auts.Ctx, "tok")
	auts.Require().NoError(err)
	auts.Require().Len(techs, 4)
	auts.Equal(int64(7), techs[2].ExperienceYears)
	auts.False(*techs[2].Active)

	tech, err := auts.UC.Technician(auts.Ctx, "tok", "11")
	auts.Require().NoError(err)
	auts.Equal("Paola", *tech.Name)

	eq, err := auts.UC.Equipment(auts.Ctx, "tok", "4")
	auts.Require().NoError(err)
	auts.Nil(eq.SerialNumber)
	auts.Nil(eq.UserName)

	order, err := auts.UC.RepairOrder(auts.Ctx, "tok", "1")
	auts.Require().NoError(err)
	auts.Require().Len(order.Details, 1)
	auts.Require().Len(order.Parts, 1)
	auts.Equal("Diagnóstico general", *order.Details[0].Service.ServiceName)
	auts.requireDecimal("95.50", order.Parts[0].SubTotal)

	_, err = auts.UC.User(auts.Ctx, "tok", "404")
	var ce *cerr.Error
	auts.Require().ErrorAs(err, &ce)
	auts.Equal(http.StatusNotFound, ce.HTTPStatusCode)
}

func (auts *AdminUseCasesTestSuite) TestRepairOrdersByStatus() {
	rows, err := auts.UC.RepairOrdersByStatus(auts.Ctx, "tok", "COMPLETED")
	auts.Require().NoError(err)
	auts.Require().Len(rows, 1)
	r := rows[0]
	auts.Equal("1", *r.ID)
	auts.Equal("Mario", *r.ClientName)
	auts.Equal("García", *r.TechnicianLastName)
	auts.Equal("LAPTOP", *r.EquipmentType)
	auts.requireDecimal("125.5", r.FinalCost)

	rows, err = auts.UC.RepairOrdersByStatus(auts.Ctx, "tok", "UNKNOWN")
	auts.Require().NoError(err)
	auts.NotNil(rows)
	auts.Empty(rows)
}

func (auts *AdminUseCasesTestSuite) TestSparePartsLowStock() {
	parts, err := auts.UC.SparePartsLowStock(auts.Ctx, "tok", 10)
	auts.Require().NoError(err)
	auts.Require().Len(parts, 2)
	auts.Equal("2", *parts[0].ID)
	auts.Equal("5", *parts[1].ID)
	auts.requireDecimal("42.75", parts[1].Price)

	parts, err = auts.UC.SparePartsLowStock(auts.Ctx, "tok", model.DefaultLowStockThreshold)
	auts.Require().NoError(err)
	auts.Empty(parts)
}

func (auts *AdminUseCasesTestSuite) TestTechniciansPerformance() {
	perf, err := auts.UC.TechniciansPerformance(auts.Ctx, "tok")
	auts.Require().NoError(err)
	auts.Require().Len(perf, 3)
	auts.Equal("10", perf[0].TechnicianID)
	auts.requireDecimal("45", perf[0].Revenue)
	auts.Equal("11", perf[1].TechnicianID)
	auts.requireDecimal("75", perf[1].Revenue)
	auts.Equal("13", perf[2].TechnicianID, "falls back to evaluatedBy")
	auts.Equal(int64(1), perf[2].Orders)
	auts.True(perf[2].Revenue.IsZero())
}

func (auts *AdminUseCasesTestSuite) TestRepairOrdersSummary() {
	sums, err := auts.UC.RepairOrdersSummary(auts.Ctx, "tok")
	auts.Require().NoError(err)
	auts.Require().Len(sums, 3)
	auts.Equal("COMPLETED", *sums[0].Status)
	auts.requireDecimal("120", sums[0].TotalEstimatedCost)
	auts.requireDecimal("125.5", sums[0].TotalFinalCost)
	auts.Equal("IN_PROGRESS", *sums[1].Status)
	auts.Equal("OPEN", *sums[2].Status)
	auts.requireDecimal("0", sums[2].TotalFinalCost)
}

func (auts *AdminUseCasesTestSuite) TestDashboard() {
	d, err := auts.UC.Dashboard(auts.Ctx, "tok")
	auts.Require().NoError(err)
	auts.Equal(model.Dashboard{
		TotalUsers:               3,
		TotalClients:             1,
		TotalTechnicians:         4,
		ActiveTechnicians:        3,
		TotalRepairOrders:        3,
		TotalMaintenanceServices: 4,
		StockCriticalCount:       0,
	}, *d)

	uc, err := adminuc.New(auts.Up, adminuc.WithLowStockThreshold(10))
	auts.Require().NoError(err)
	d, err = uc.Dashboard(auts.Ctx, "tok")
	auts.Require().NoError(err)
	auts.Equal(int64(2), d.StockCriticalCount)

	_, err = adminuc.New(auts.Up, adminuc.WithLowStockThreshold(-1))
	auts.Error(err)
}

func (auts *AdminUseCasesTestSuite) TestActorViews() {
	details, err := auts.UC.AssignedRepairOrders(auts.Ctx, "tok", "10", "COMPLETED")
	auts.Require().NoError(err)
	auts.Require().Len(details, 1)
	auts.Equal("Diagnóstico general", *details[0].Service.ServiceName)
	auts.requireDecimal("45", details[0].SubTotal)

	details, err = auts.UC.AssignedRepairOrders(auts.Ctx, "tok", "10", "IN_PROGRESS")
	auts.Require().NoError(err)
	auts.Empty(details)

	orders, err := auts.UC.ClientRepairOrders(auts.Ctx, "tok", "1", "IN_PROGRESS")
	auts.Require().NoError(err)
	auts.Require().Len(orders, 1)
	auts.Equal("2", *orders[0].ID)
	auts.Require().Len(orders[0].Details, 1)
	auts.requireDecimal("75", orders[0].Details[0].SubTotal)

	orders, err = auts.UC.ClientRepairOrders(auts.Ctx, "tok", "99", "OPEN")
	auts.Require().NoError(err)
	auts.Empty(orders)
}

var errDown = errors.New("upstream is down")

type brokenUpstream struct {
	repo.UpstreamQueryer
	token *string
}

func (bu brokenUpstream) Bearer(token string) repo.UpstreamQueryer {
	*bu.token = token
	return bu
}

func (bu brokenUpstream) RepairOrders(context.Context) ([]model.Record, error) {
	return nil, errDown
}

func (auts *AdminUseCasesTestSuite) TestFailuresPropagate() {
	var token string
	q := auts.Up.Bearer("")
	uc, err := adminuc.New(brokenUpstream{UpstreamQueryer: q, token: &token})
	auts.Require().NoError(err)

	_, err = uc.Dashboard(auts.Ctx, "Bearer abc")
	auts.ErrorIs(err, errDown)
	auts.Equal("Bearer abc", token)

	_, err = uc.RepairOrdersSummary(auts.Ctx, "abc")
	auts.ErrorIs(err, errDown)
	auts.Equal("abc", token)
}
