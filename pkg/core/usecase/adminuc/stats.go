// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package adminuc

import (
	"context"
	"fmt"

	"github.com/momeni/repair-gateway/pkg/core/model"
)

// RepairOrdersByStatus lists the orders with exactly the given status
// as flattened rows. An unknown status yields an empty list.
func (uc *UseCase) RepairOrdersByStatus(
	ctx context.Context, token, status string,
) ([]*model.RepairOrderRow, error) {
	recs, err := uc.upstream.Bearer(token).RepairOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching repair orders: %w", err)
	}
	rows := make([]*model.RepairOrderRow, 0)
	for _, r := range recs {
		if !model.HasStatus(r, status) {
			continue
		}
		row, err := model.RepairOrderRowFromRecord(r)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SparePartsLowStock lists the spare parts which their stock is at most
// equal to threshold.
func (uc *UseCase) SparePartsLowStock(
	ctx context.Context, token string, threshold int64,
) ([]*model.SparePart, error) {
	recs, err := uc.upstream.Bearer(token).SpareParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching spare parts: %w", err)
	}
	low, err := model.LowStock(recs, threshold)
	if err != nil {
		return nil, err
	}
	return spareParts(low)
}

// TechniciansPerformance aggregates the repair orders by their
// attributed technicians, in the order of first attribution.
func (uc *UseCase) TechniciansPerformance(
	ctx context.Context, token string,
) ([]model.TechnicianPerformance, error) {
	recs, err := uc.upstream.Bearer(token).RepairOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching repair orders: %w", err)
	}
	return model.PerformanceByOrders(recs)
}

// RepairOrdersSummary groups the repair orders by status.
func (uc *UseCase) RepairOrdersSummary(
	ctx context.Context, token string,
) ([]model.StatusSummary, error) {
	recs, err := uc.upstream.Bearer(token).RepairOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching repair orders: %w", err)
	}
	return model.SummarizeByStatus(recs)
}

// Dashboard computes the business counters. The five upstream lists
// are fetched concurrently and the first failure fails the dashboard.
func (uc *UseCase) Dashboard(
	ctx context.Context, token string,
) (*model.Dashboard, error) {
	q := uc.upstream.Bearer(token)
	var users, techs, orders, services, parts []model.Record
	err := fetchAll(ctx,
		func(ctx context.Context) (err error) {
			users, err = q.Users(ctx)
			return
		},
		func(ctx context.Context) (err error) {
			techs, err = q.Technicians(ctx)
			return
		},
		func(ctx context.Context) (err error) {
			orders, err = q.RepairOrders(ctx)
			return
		},
		func(ctx context.Context) (err error) {
			services, err = q.Services(ctx)
			return
		},
		func(ctx context.Context) (err error) {
			parts, err = q.SpareParts(ctx)
			return
		},
	)
	if err != nil {
		return nil, fmt.Errorf("fetching dashboard lists: %w", err)
	}
	return model.NewDashboard(
		users, techs, orders, services, parts, *uc.lowStockThreshold,
	)
}

// AssignedRepairOrders lists the service lines which are assigned to
// the technicianID technician (from its roster ticketServices) and
// have exactly the given status. An unknown technician yields an empty
// list.
func (uc *UseCase) AssignedRepairOrders(
	ctx context.Context, token, technicianID, status string,
) ([]*model.RepairOrderDetail, error) {
	techs, err := uc.upstream.Bearer(token).Technicians(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching technicians: %w", err)
	}
	details := make([]*model.RepairOrderDetail, 0)
	for _, t := range techs {
		if t.ID() != technicianID {
			continue
		}
		for _, dr := range t.Objects("ticketServices") {
			if !model.HasStatus(dr, status) {
				continue
			}
			d, err := model.RepairOrderDetailFromRecord(dr)
			if err != nil {
				return nil, err
			}
			details = append(details, d)
		}
	}
	return details, nil
}

// ClientRepairOrders lists the repair orders of all equipments which
// belong to the clientID user and have exactly the given status.
func (uc *UseCase) ClientRepairOrders(
	ctx context.Context, token, clientID, status string,
) ([]*model.RepairOrder, error) {
	users, err := uc.upstream.Bearer(token).Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	var recs []model.Record
	for _, u := range users {
		if u.ID() != clientID {
			continue
		}
		for _, eq := range u.Objects("equipments") {
			recs = append(recs, eq.Objects("repairOrders")...)
		}
	}
	return repairOrders(recs, func(r model.Record) bool {
		return model.HasStatus(r, status)
	})
}
