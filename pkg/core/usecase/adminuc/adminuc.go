// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package adminuc contains the admin UseCase which serves the query
// side of the gateway:
//  1. Listing and fetching users, technicians, equipments, spare parts,
//     maintenance services, and repair orders,
//  2. Filtering repair orders by status and spare parts by stock,
//  3. Aggregating technicians performance, status summaries, and the
//     business dashboard counters,
//  4. Listing the orders of one technician or one client.
//
// Every method takes the caller bearer token which is forwarded to the
// upstream API. Nothing is cached, so each call fetches fresh records.
package adminuc

import (
	"context"
	"fmt"

	"github.com/momeni/repair-gateway/pkg/core/model"
	"github.com/momeni/repair-gateway/pkg/core/repo"
	"golang.org/x/sync/errgroup"
)

// UseCase represents the admin queries use case. It holds the upstream
// repository and the use case specific settings.
type UseCase struct {
	upstream repo.Upstream

	lowStockThreshold *int64
}

// New instantiates an admin use case.
// Required parameters are passed individually, while optional ones
// are passed as a series of functional options.
func New(u repo.Upstream, opts ...Option) (*UseCase, error) {
	uc := &UseCase{upstream: u}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.lowStockThreshold == nil {
		n := int64(model.DefaultLowStockThreshold)
		uc.lowStockThreshold = &n
	}
	return uc, nil
}

// Users lists all users.
func (uc *UseCase) Users(ctx context.Context, token string) ([]*model.User, error) {
	recs, err := uc.upstream.Bearer(token).Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	users := make([]*model.User, 0, len(recs))
	for _, r := range recs {
		users = append(users, model.UserFromRecord(r))
	}
	return users, nil
}

// User fetches one user by its id.
func (uc *UseCase) User(ctx context.Context, token, id string) (*model.User, error) {
	r, err := uc.upstream.Bearer(token).User(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching user %q: %w", id, err)
	}
	return model.UserFromRecord(r), nil
}

// Technicians lists the technicians roster. Records with other roles
// are dropped, in case the upstream roster contains them.
func (uc *UseCase) Technicians(
	ctx context.Context, token string,
) ([]*model.Technician, error) {
	recs, err := uc.upstream.Bearer(token).Technicians(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching technicians: %w", err)
	}
	techs := make([]*model.Technician, 0, len(recs))
	for _, r := range recs {
		if !model.HasRole(r, model.RoleTechnician) {
			continue
		}
		t, err := model.TechnicianFromRecord(r)
		if err != nil {
			return nil, err
		}
		techs = append(techs, t)
	}
	return techs, nil
}

// Technician fetches one technician by its user id.
func (uc *UseCase) Technician(
	ctx context.Context, token, id string,
) (*model.Technician, error) {
	r, err := uc.upstream.Bearer(token).User(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching technician %q: %w", id, err)
	}
	return model.TechnicianFromRecord(r)
}

// Equipments lists all equipments.
func (uc *UseCase) Equipments(
	ctx context.Context, token string,
) ([]*model.Equipment, error) {
	recs, err := uc.upstream.Bearer(token).Equipments(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching equipments: %w", err)
	}
	eqs := make([]*model.Equipment, 0, len(recs))
	for _, r := range recs {
		eqs = append(eqs, model.EquipmentFromRecord(r))
	}
	return eqs, nil
}

// Equipment fetches one equipment, including its owner names.
func (uc *UseCase) Equipment(
	ctx context.Context, token, id string,
) (*model.Equipment, error) {
	r, err := uc.upstream.Bearer(token).Equipment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching equipment %q: %w", id, err)
	}
	return model.EquipmentFromRecord(r), nil
}

// SpareParts lists all spare parts.
func (uc *UseCase) SpareParts(
	ctx context.Context, token string,
) ([]*model.SparePart, error) {
	recs, err := uc.upstream.Bearer(token).SpareParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching spare parts: %w", err)
	}
	return spareParts(recs)
}

// Services lists all maintenance services.
func (uc *UseCase) Services(
	ctx context.Context, token string,
) ([]*model.MaintenanceService, error) {
	recs, err := uc.upstream.Bearer(token).Services(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching services: %w", err)
	}
	services := make([]*model.MaintenanceService, 0, len(recs))
	for _, r := range recs {
		s, err := model.ServiceFromRecord(r)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, nil
}

// RepairOrders lists all repair orders with their details and parts.
func (uc *UseCase) RepairOrders(
	ctx context.Context, token string,
) ([]*model.RepairOrder, error) {
	recs, err := uc.upstream.Bearer(token).RepairOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching repair orders: %w", err)
	}
	return repairOrders(recs, func(model.Record) bool { return true })
}

// RepairOrder fetches one repair order with its details and parts.
func (uc *UseCase) RepairOrder(
	ctx context.Context, token, id string,
) (*model.RepairOrder, error) {
	r, err := uc.upstream.Bearer(token).RepairOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching repair order %q: %w", id, err)
	}
	return model.RepairOrderFromRecord(r)
}

func spareParts(recs []model.Record) ([]*model.SparePart, error) {
	parts := make([]*model.SparePart, 0, len(recs))
	for _, r := range recs {
		p, err := model.SparePartFromRecord(r)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

func repairOrders(
	recs []model.Record, keep func(model.Record) bool,
) ([]*model.RepairOrder, error) {
	orders := make([]*model.RepairOrder, 0, len(recs))
	for _, r := range recs {
		if !keep(r) {
			continue
		}
		o, err := model.RepairOrderFromRecord(r)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// fetchAll runs the given fetchers concurrently and stops at the first
// failure, cancelling the rest of them.
func fetchAll(
	ctx context.Context,
	fetchers ...func(ctx context.Context) error,
) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, f := range fetchers {
		g.Go(func() error { return f(ctx) })
	}
	return g.Wait()
}
