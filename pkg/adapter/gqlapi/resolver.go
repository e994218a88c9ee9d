// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gqlapi

import (
	"context"

	"github.com/graph-gophers/graphql-go"
	"github.com/momeni/repair-gateway/pkg/core/usecase/adminuc"
	"github.com/momeni/repair-gateway/pkg/core/usecase/reportsuc"
)

// resolver is the root of the Query type.
type resolver struct {
	admin   *adminuc.UseCase
	reports *reportsuc.UseCase
}

type idArgs struct {
	ID graphql.ID
}

type statusArgs struct {
	Status string
}

// thresholdArgs.Threshold is nil when the caller passes an explicit
// null, and then the configured low-stock threshold is used.
type thresholdArgs struct {
	Threshold *int32
}

func (r *resolver) threshold(args thresholdArgs) int64 {
	if args.Threshold == nil {
		return r.reports.LowStockThreshold()
	}
	return int64(*args.Threshold)
}

type technicianStatusArgs struct {
	TechnicianID graphql.ID
	Status       string
}

type clientStatusArgs struct {
	ClientID graphql.ID
	Status   string
}

func (r *resolver) Users(ctx context.Context) ([]*user, error) {
	us, err := r.admin.Users(ctx, tokenFrom(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return mapAll(us, newUser), nil
}

func (r *resolver) User(ctx context.Context, args idArgs) (*user, error) {
	u, err := r.admin.User(ctx, tokenFrom(ctx), string(args.ID))
	if err != nil {
		return nil, wrap(err)
	}
	return newUser(u), nil
}

func (r *resolver) Technicians(ctx context.Context) ([]*technician, error) {
	ts, err := r.admin.Technicians(ctx, tokenFrom(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return mapAll(ts, newTechnician), nil
}

func (r *resolver) Technician(
	ctx context.Context, args idArgs,
) (*technician, error) {
	t, err := r.admin.Technician(ctx, tokenFrom(ctx), string(args.ID))
	if err != nil {
		return nil, wrap(err)
	}
	return newTechnician(t), nil
}

func (r *resolver) Equipments(ctx context.Context) ([]*equipment, error) {
	es, err := r.admin.Equipments(ctx, tokenFrom(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return mapAll(es, newEquipment), nil
}

func (r *resolver) Equipment(
	ctx context.Context, args idArgs,
) (*equipment, error) {
	e, err := r.admin.Equipment(ctx, tokenFrom(ctx), string(args.ID))
	if err != nil {
		return nil, wrap(err)
	}
	return newEquipment(e), nil
}

func (r *resolver) SpareParts(ctx context.Context) ([]*sparePart, error) {
	ps, err := r.admin.SpareParts(ctx, tokenFrom(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return mapAll(ps, newSparePart), nil
}

func (r *resolver) Services(
	ctx context.Context,
) ([]*maintenanceService, error) {
	ss, err := r.admin.Services(ctx, tokenFrom(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return mapAll(ss, newMaintenanceService), nil
}

func (r *resolver) RepairOrders(ctx context.Context) ([]*repairOrder, error) {
	orders, err := r.admin.RepairOrders(ctx, tokenFrom(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return mapAll(orders, newRepairOrder), nil
}

func (r *resolver) RepairOrder(
	ctx context.Context, args idArgs,
) (*repairOrder, error) {
	o, err := r.admin.RepairOrder(ctx, tokenFrom(ctx), string(args.ID))
	if err != nil {
		return nil, wrap(err)
	}
	return newRepairOrder(o), nil
}

func (r *resolver) RepairOrdersByStatus(
	ctx context.Context, args statusArgs,
) ([]*repairOrderRow, error) {
	rows, err := r.admin.RepairOrdersByStatus(
		ctx, tokenFrom(ctx), args.Status,
	)
	if err != nil {
		return nil, wrap(err)
	}
	return mapAll(rows, newRepairOrderRow), nil
}

func (r *resolver) SparePartsLowStock(
	ctx context.Context, args thresholdArgs,
) ([]*sparePart, error) {
	ps, err := r.admin.SparePartsLowStock(
		ctx, tokenFrom(ctx), r.threshold(args),
	)
	if err != nil {
		return nil, wrap(err)
	}
	return mapAll(ps, newSparePart), nil
}

func (r *resolver) TechniciansPerformance(
	ctx context.Context,
) ([]*technicianPerformance, error) {
	perf, err := r.admin.TechniciansPerformance(ctx, tokenFrom(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return mapAll(perf, newTechnicianPerformance), nil
}

func (r *resolver) RepairOrdersSummary(
	ctx context.Context,
) ([]*statusSummary, error) {
	sum, err := r.admin.RepairOrdersSummary(ctx, tokenFrom(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return mapAll(sum, newStatusSummary), nil
}

func (r *resolver) Dashboard(ctx context.Context) (*dashboard, error) {
	d, err := r.admin.Dashboard(ctx, tokenFrom(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return newDashboard(d), nil
}

func (r *resolver) AssignedRepairOrders(
	ctx context.Context, args technicianStatusArgs,
) ([]*repairOrderDetail, error) {
	ds, err := r.admin.AssignedRepairOrders(
		ctx, tokenFrom(ctx), string(args.TechnicianID), args.Status,
	)
	if err != nil {
		return nil, wrap(err)
	}
	return mapAll(ds, newRepairOrderDetail), nil
}

func (r *resolver) ClientRepairOrders(
	ctx context.Context, args clientStatusArgs,
) ([]*repairOrder, error) {
	orders, err := r.admin.ClientRepairOrders(
		ctx, tokenFrom(ctx), string(args.ClientID), args.Status,
	)
	if err != nil {
		return nil, wrap(err)
	}
	return mapAll(orders, newRepairOrder), nil
}

func (r *resolver) UsersReport(ctx context.Context) (string, error) {
	s, err := r.reports.UsersReport(ctx, tokenFrom(ctx))
	return s, wrap(err)
}

func (r *resolver) TechnicianReport(
	ctx context.Context, args idArgs,
) (string, error) {
	s, err := r.reports.TechnicianReport(
		ctx, tokenFrom(ctx), string(args.ID),
	)
	return s, wrap(err)
}

func (r *resolver) TechniciansReport(ctx context.Context) (string, error) {
	s, err := r.reports.TechniciansReport(ctx, tokenFrom(ctx))
	return s, wrap(err)
}

func (r *resolver) RepairOrderReport(
	ctx context.Context, args idArgs,
) (string, error) {
	s, err := r.reports.RepairOrderReport(
		ctx, tokenFrom(ctx), string(args.ID),
	)
	return s, wrap(err)
}

func (r *resolver) EquipmentReport(
	ctx context.Context, args idArgs,
) (string, error) {
	s, err := r.reports.EquipmentReport(
		ctx, tokenFrom(ctx), string(args.ID),
	)
	return s, wrap(err)
}

func (r *resolver) SparePartsReport(ctx context.Context) (string, error) {
	s, err := r.reports.SparePartsReport(ctx, tokenFrom(ctx))
	return s, wrap(err)
}

func (r *resolver) SparePartsLowStockReport(
	ctx context.Context, args thresholdArgs,
) (string, error) {
	s, err := r.reports.SparePartsLowStockReport(
		ctx, tokenFrom(ctx), r.threshold(args),
	)
	return s, wrap(err)
}

func (r *resolver) RepairOrdersByStatusReport(
	ctx context.Context, args statusArgs,
) (string, error) {
	s, err := r.reports.RepairOrdersByStatusReport(
		ctx, tokenFrom(ctx), args.Status,
	)
	return s, wrap(err)
}

func (r *resolver) TechniciansPerformanceReport(
	ctx context.Context,
) (string, error) {
	s, err := r.reports.TechniciansPerformanceReport(ctx, tokenFrom(ctx))
	return s, wrap(err)
}

func (r *resolver) BusinessDashboardReport(
	ctx context.Context,
) (string, error) {
	s, err := r.reports.BusinessDashboardReport(ctx, tokenFrom(ctx))
	return s, wrap(err)
}
