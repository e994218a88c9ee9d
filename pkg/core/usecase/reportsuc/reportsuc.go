// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reportsuc contains the reports UseCase which fetches upstream
// records, maps them with the report display policy (absent values
// are shown as "No registra"), and renders them as PDF documents.
// Documents are returned as raw bytes (PDF method) or as standard
// base64 strings, so they can be carried by GraphQL string fields.
package reportsuc

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/momeni/repair-gateway/pkg/core/cerr"
	"github.com/momeni/repair-gateway/pkg/core/log"
	"github.com/momeni/repair-gateway/pkg/core/model"
	"github.com/momeni/repair-gateway/pkg/core/repo"
	"golang.org/x/sync/errgroup"
)

// Names of the supported reports. Each one is rendered using the
// template with the same name.
const (
	Users                  = "users_report"
	Technician             = "technician_report"
	Technicians            = "technicians_report"
	RepairOrder            = "repair_order_report"
	Equipment              = "equipment_report"
	SpareParts             = "spare_parts_report"
	SparePartsLowStock     = "spare_parts_low_stock_report"
	RepairOrdersByStatus   = "repair_orders_by_status_report"
	TechniciansPerformance = "technicians_performance_report"
	BusinessDashboard      = "business_dashboard_report"
)

// Params carries the report arguments. ID is required by the single
// technician, repair order, and equipment reports. Status is used by
// the repair orders by status report and Threshold by the low stock
// report.
type Params struct {
	ID        string
	Status    string
	Threshold int64
}

type builder func(
	uc *UseCase, ctx context.Context, q repo.UpstreamQueryer, p Params,
) (model.Report, error)

var builders = map[string]builder{
	Users:                  (*UseCase).usersReport,
	Technician:             (*UseCase).technicianReport,
	Technicians:            (*UseCase).techniciansReport,
	RepairOrder:            (*UseCase).repairOrderReport,
	Equipment:              (*UseCase).equipmentReport,
	SpareParts:             (*UseCase).sparePartsReport,
	SparePartsLowStock:     (*UseCase).sparePartsLowStockReport,
	RepairOrdersByStatus:   (*UseCase).repairOrdersByStatusReport,
	TechniciansPerformance: (*UseCase).techniciansPerformanceReport,
	BusinessDashboard:      (*UseCase).businessDashboardReport,
}

// Names lists the supported report names, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for n := range builders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// UseCase represents the reports use case. It holds the upstream
// repository, the PDF renderer, and the use case specific settings.
type UseCase struct {
	upstream repo.Upstream
	renderer repo.Renderer

	lowStockThreshold *int64
}

// New instantiates a reports use case.
func New(
	u repo.Upstream, r repo.Renderer, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{upstream: u, renderer: r}
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

// LowStockThreshold returns the configured stock level which marks
// a spare part as low on stock.
func (uc *UseCase) LowStockThreshold() int64 {
	return *uc.lowStockThreshold
}

// PDF fetches the records of the name report on behalf of the token
// holder and renders them as a PDF document.
func (uc *UseCase) PDF(
	ctx context.Context, token, name string, p Params,
) ([]byte, error) {
	b, ok := builders[name]
	if !ok {
		return nil, cerr.BadRequest(fmt.Errorf("unknown report %q", name))
	}
	rep, err := b(uc, ctx, uc.upstream.Bearer(token), p)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}
	pdf, err := uc.renderer.Render(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	log.Info(
		ctx, "report is rendered",
		slog.String("report", name),
		slog.Int("size", len(pdf)),
	)
	return pdf, nil
}

// Base64 works like PDF and encodes the document with the standard
// base64 encoding.
func (uc *UseCase) Base64(
	ctx context.Context, token, name string, p Params,
) (string, error) {
	pdf, err := uc.PDF(ctx, token, name, p)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(pdf), nil
}

// UsersReport lists all users.
func (uc *UseCase) UsersReport(ctx context.Context, token string) (string, error) {
	return uc.Base64(ctx, token, Users, Params{})
}

// TechnicianReport describes the id technician.
func (uc *UseCase) TechnicianReport(ctx context.Context, token, id string) (string, error) {
	return uc.Base64(ctx, token, Technician, Params{ID: id})
}

// TechniciansReport lists the technicians roster as cards.
func (uc *UseCase) TechniciansReport(ctx context.Context, token string) (string, error) {
	return uc.Base64(ctx, token, Technicians, Params{})
}

// RepairOrderReport describes the id repair order with its details,
// parts, equipment, and evaluating technician.
func (uc *UseCase) RepairOrderReport(ctx context.Context, token, id string) (string, error) {
	return uc.Base64(ctx, token, RepairOrder, Params{ID: id})
}

// EquipmentReport describes the id equipment with its owner and orders.
func (uc *UseCase) EquipmentReport(ctx context.Context, token, id string) (string, error) {
	return uc.Base64(ctx, token, Equipment, Params{ID: id})
}

// SparePartsReport lists all spare parts.
func (uc *UseCase) SparePartsReport(ctx context.Context, token string) (string, error) {
	return uc.Base64(ctx, token, SpareParts, Params{})
}

// SparePartsLowStockReport lists the spare parts with a stock which is
// at most equal to threshold.
func (uc *UseCase) SparePartsLowStockReport(
	ctx context.Context, token string, threshold int64,
) (string, error) {
	return uc.Base64(
		ctx, token, SparePartsLowStock, Params{Threshold: threshold},
	)
}

// RepairOrdersByStatusReport lists the orders with the given status.
func (uc *UseCase) RepairOrdersByStatusReport(
	ctx context.Context, token, status string,
) (string, error) {
	return uc.Base64(
		ctx, token, RepairOrdersByStatus, Params{Status: status},
	)
}

// TechniciansPerformanceReport lists every roster technician with its
// attributed orders and income.
func (uc *UseCase) TechniciansPerformanceReport(
	ctx context.Context, token string,
) (string, error) {
	return uc.Base64(ctx, token, TechniciansPerformance, Params{})
}

// BusinessDashboardReport prints the business counters.
func (uc *UseCase) BusinessDashboardReport(
	ctx context.Context, token string,
) (string, error) {
	return uc.Base64(ctx, token, BusinessDashboard, Params{})
}

func requireID(p Params) error {
	if p.ID == "" {
		return cerr.BadRequest(errors.New("id is required"))
	}
	return nil
}

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
