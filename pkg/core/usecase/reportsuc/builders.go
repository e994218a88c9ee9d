// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reportsuc

import (
	"context"
	"fmt"
	"strconv"

	"github.com/momeni/repair-gateway/pkg/core/model"
	"github.com/momeni/repair-gateway/pkg/core/repo"
	"github.com/shopspring/decimal"
)

var technicianCardLabels = []struct{ label, key string }{
	{"ID", "id"},
	{"Nombres", "name"},
	{"Apellidos", "lastName"},
	{"Email", "email"},
	{"Teléfono", "phone"},
	{"Dirección", "address"},
	{"Especialidad", "specialty"},
	{"Años Exp.", "experienceYears"},
	{"Evaluador", "isEvaluator"},
	{"Activo", "active"},
	{"Fecha creación", "createdAt"},
	{"Fecha actualización", "updatedAt"},
}

func display(r model.Record, keys ...string) model.Row {
	row := make(model.Row, 0, len(keys))
	for _, k := range keys {
		row = append(row, model.Cell{Value: r.Display(k)})
	}
	return row
}

func fields(r model.Record, prefix string, keys ...string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, k := range keys {
		m[prefix+k] = r.Display(k)
	}
	return m
}

func merge(dst map[string]string, srcs ...map[string]string) map[string]string {
	for _, src := range srcs {
		for k, v := range src {
			dst[k] = v
		}
	}
	return dst
}

func fullName(r model.Record) string {
	return r.Display("name") + " " + r.Display("lastName")
}

func (uc *UseCase) usersReport(
	ctx context.Context, q repo.UpstreamQueryer, _ Params,
) (model.Report, error) {
	users, err := q.Users(ctx)
	if err != nil {
		return model.Report{}, fmt.Errorf("fetching users: %w", err)
	}
	sec := model.Section{
		Empty:   "No existen usuarios registrados.",
		Columns: 8,
	}
	for _, u := range users {
		sec.Rows = append(sec.Rows, display(
			u, "id", "name", "lastName", "email", "phone", "address",
			"createdAt", "role",
		))
	}
	return model.Report{
		Name:     Users,
		Sections: map[string]model.Section{"rows": sec},
	}, nil
}

func (uc *UseCase) technicianReport(
	ctx context.Context, q repo.UpstreamQueryer, p Params,
) (model.Report, error) {
	if err := requireID(p); err != nil {
		return model.Report{}, err
	}
	t, err := q.User(ctx, p.ID)
	if err != nil {
		return model.Report{}, fmt.Errorf("fetching technician: %w", err)
	}
	f := fields(
		t, "", "id", "name", "lastName", "email", "phone", "address",
		"specialty", "experienceYears",
	)
	f["isEvaluator"] = model.YesNo(t.Truthy("isEvaluator"))
	f["active"] = model.YesNo(t.Truthy("active"))
	return model.Report{Name: Technician, Fields: f}, nil
}

func (uc *UseCase) techniciansReport(
	ctx context.Context, q repo.UpstreamQueryer, _ Params,
) (model.Report, error) {
	techs, err := q.Technicians(ctx)
	if err != nil {
		return model.Report{}, fmt.Errorf("fetching technicians: %w", err)
	}
	sec := model.Section{
		Layout:  model.LayoutCards,
		Empty:   "No existen técnicos registrados.",
		Columns: 1,
	}
	for _, t := range techs {
		row := make(model.Row, 0, len(technicianCardLabels))
		for _, l := range technicianCardLabels {
			row = append(row, model.Cell{
				Label: l.label, Value: t.Display(l.key),
			})
		}
		sec.Rows = append(sec.Rows, row)
	}
	return model.Report{
		Name:     Technicians,
		Sections: map[string]model.Section{"cards": sec},
	}, nil
}

func (uc *UseCase) repairOrderReport(
	ctx context.Context, q repo.UpstreamQueryer, p Params,
) (model.Report, error) {
	if err := requireID(p); err != nil {
		return model.Report{}, err
	}
	o, err := q.RepairOrder(ctx, p.ID)
	if err != nil {
		return model.Report{}, fmt.Errorf("fetching repair order: %w", err)
	}
	f := fields(
		o, "", "status", "problemDescription", "diagnosis",
		"estimatedCost", "finalCost", "warrantyStartDate",
		"warrantyEndDate", "createdAt",
	)
	f["order_id"] = o.Display("id")
	merge(
		f,
		fields(
			o.Object("equipment"), "equipment_", "name", "type", "brand",
			"model", "serialNumber", "currentStatus",
		),
		fields(o.Object("evaluatedBy"), "tech_", "name", "lastName", "email"),
	)
	details := model.Section{
		Empty:   "No registra detalles de servicios.",
		Columns: 7,
	}
	for _, d := range o.Objects(model.DetailKeys...) {
		details.Rows = append(details.Rows, display(
			d, "id", "unitPrice", "discount", "subTotal", "status", "notes",
		))
	}
	parts := model.Section{
		Empty:   "No registra partes asociadas.",
		Columns: 4,
	}
	for _, pr := range o.Objects("repairOrderParts", "parts") {
		parts.Rows = append(parts.Rows, display(
			pr, "id", "quantity", "subTotal",
		))
	}
	return model.Report{
		Name:   RepairOrder,
		Fields: f,
		Sections: map[string]model.Section{
			"details_rows": details,
			"parts_rows":   parts,
		},
	}, nil
}

func (uc *UseCase) equipmentReport(
	ctx context.Context, q repo.UpstreamQueryer, p Params,
) (model.Report, error) {
	if err := requireID(p); err != nil {
		return model.Report{}, err
	}
	e, err := q.Equipment(ctx, p.ID)
	if err != nil {
		return model.Report{}, fmt.Errorf("fetching equipment: %w", err)
	}
	f := fields(
		e, "equipment_", "id", "name", "type", "brand", "model",
		"serialNumber", "createdAt",
	)
	f["equipment_status"] = e.Display("currentStatus")
	merge(f, fields(
		e.Object("user"), "user_", "name", "lastName", "email", "phone",
		"address",
	))
	orders := model.Section{
		Empty:   "Este equipo no tiene órdenes de reparación registradas.",
		Columns: 7,
	}
	for _, o := range e.Objects("repairOrders") {
		orders.Rows = append(orders.Rows, display(
			o, "id", "problemDescription", "diagnosis", "estimatedCost",
			"finalCost", "status", "createdAt",
		))
	}
	return model.Report{
		Name:     Equipment,
		Fields:   f,
		Sections: map[string]model.Section{"orders_rows": orders},
	}, nil
}

func (uc *UseCase) sparePartsReport(
	ctx context.Context, q repo.UpstreamQueryer, _ Params,
) (model.Report, error) {
	parts, err := q.SpareParts(ctx)
	if err != nil {
		return model.Report{}, fmt.Errorf("fetching spare parts: %w", err)
	}
	sec := model.Section{
		Empty:   "No hay repuestos registrados.",
		Columns: 7,
	}
	for _, p := range parts {
		price := "unitPrice"
		if p[price] == nil {
			price = "price"
		}
		sec.Rows = append(sec.Rows, display(
			p, "id", "name", "description", "stock", price, "createdAt",
		))
	}
	return model.Report{
		Name:     SpareParts,
		Sections: map[string]model.Section{"rows": sec},
	}, nil
}

func (uc *UseCase) sparePartsLowStockReport(
	ctx context.Context, q repo.UpstreamQueryer, p Params,
) (model.Report, error) {
	parts, err := q.SpareParts(ctx)
	if err != nil {
		return model.Report{}, fmt.Errorf("fetching spare parts: %w", err)
	}
	low, err := model.LowStock(parts, p.Threshold)
	if err != nil {
		return model.Report{}, fmt.Errorf("LowStock: %w", err)
	}
	sec := model.Section{
		Empty: fmt.Sprintf(
			"No hay repuestos con stock menor o igual a %d.", p.Threshold,
		),
		Columns: 4,
	}
	for _, sp := range low {
		part, err := model.SparePartFromRecord(sp)
		if err != nil {
			return model.Report{}, err
		}
		sec.Rows = append(sec.Rows, model.Values(
			sp.Display("id"),
			sp.Display("name"),
			strconv.FormatInt(part.Stock, 10),
			model.Money(part.Price),
		))
	}
	return model.Report{
		Name: SparePartsLowStock,
		Fields: map[string]string{
			"threshold":       strconv.FormatInt(p.Threshold, 10),
			"count_low_stock": strconv.Itoa(len(low)),
		},
		Sections: map[string]model.Section{"parts_rows": sec},
	}, nil
}

func (uc *UseCase) repairOrdersByStatusReport(
	ctx context.Context, q repo.UpstreamQueryer, p Params,
) (model.Report, error) {
	orders, err := q.RepairOrders(ctx)
	if err != nil {
		return model.Report{}, fmt.Errorf("fetching repair orders: %w", err)
	}
	sec := model.Section{
		Empty:   "No existen órdenes con este estado.",
		Columns: 6,
	}
	sum := decimal.Zero
	for _, o := range orders {
		if !model.HasStatus(o, p.Status) {
			continue
		}
		total, err := o.Decimal("finalCost")
		if err != nil {
			return model.Report{}, fmt.Errorf("repair order %q: %w", o.ID(), err)
		}
		sum = sum.Add(total)
		sec.Rows = append(sec.Rows, model.Values(
			o.Display("id"),
			fullName(o.Object("equipment").Object("user")),
			fullName(o.Object("evaluatedBy")),
			o.Display("status"),
			model.Money(total),
			o.Display("createdAt"),
		))
	}
	status := p.Status
	if status == "" {
		status = model.NotRecorded
	}
	return model.Report{
		Name: RepairOrdersByStatus,
		Fields: map[string]string{
			"status":       status,
			"total_orders": strconv.Itoa(len(sec.Rows)),
			"total_sum":    model.Money(sum),
		},
		Sections: map[string]model.Section{"orders_rows": sec},
	}, nil
}

func (uc *UseCase) techniciansPerformanceReport(
	ctx context.Context, q repo.UpstreamQueryer, _ Params,
) (model.Report, error) {
	var roster, orders []model.Record
	err := fetchAll(ctx,
		func(ctx context.Context) (err error) {
			if roster, err = q.Technicians(ctx); err != nil {
				return fmt.Errorf("fetching technicians: %w", err)
			}
			return nil
		},
		func(ctx context.Context) (err error) {
			if orders, err = q.RepairOrders(ctx); err != nil {
				return fmt.Errorf("fetching repair orders: %w", err)
			}
			return nil
		},
	)
	if err != nil {
		return model.Report{}, err
	}
	perf, err := model.PerformanceByRoster(roster, orders)
	if err != nil {
		return model.Report{}, fmt.Errorf("PerformanceByRoster: %w", err)
	}
	sec := model.Section{
		Empty:   "No existen técnicos registrados.",
		Columns: 8,
	}
	var globalOrders int64
	globalIncome := decimal.Zero
	for i, t := range roster {
		tp := perf[i]
		globalOrders += tp.Orders
		globalIncome = globalIncome.Add(tp.Revenue)
		status := "Inactivo"
		if t.Truthy("active") {
			status = "Activo"
		}
		sec.Rows = append(sec.Rows, model.Values(
			t.Display("id"),
			fullName(t),
			t.Display("email"),
			t.Display("specialty"),
			t.Display("experienceYears"),
			status,
			strconv.FormatInt(tp.Orders, 10),
			model.Money(tp.Revenue),
		))
	}
	return model.Report{
		Name: TechniciansPerformance,
		Fields: map[string]string{
			"total_technicians": strconv.Itoa(len(roster)),
			"global_orders":     strconv.FormatInt(globalOrders, 10),
			"global_income":     globalIncome.StringFixed(2),
		},
		Sections: map[string]model.Section{"rows": sec},
	}, nil
}

func (uc *UseCase) businessDashboardReport(
	ctx context.Context, q repo.UpstreamQueryer, _ Params,
) (model.Report, error) {
	var users, techs, orders, services, parts []model.Record
	err := fetchAll(ctx,
		func(ctx context.Context) (err error) {
			users, err = q.Users(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			techs, err = q.Technicians(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			orders, err = q.RepairOrders(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			services, err = q.Services(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			parts, err = q.SpareParts(ctx)
			return err
		},
	)
	if err != nil {
		return model.Report{}, fmt.Errorf("fetching dashboard data: %w", err)
	}
	d, err := model.NewDashboard(
		users, techs, orders, services, parts, *uc.lowStockThreshold,
	)
	if err != nil {
		return model.Report{}, fmt.Errorf("NewDashboard: %w", err)
	}
	itoa := func(n int64) string { return strconv.FormatInt(n, 10) }
	return model.Report{
		Name: BusinessDashboard,
		Fields: map[string]string{
			"total_users":        itoa(d.TotalUsers),
			"total_clients":      itoa(d.TotalClients),
			"total_technicians":  itoa(d.TotalTechnicians),
			"active_technicians": itoa(d.ActiveTechnicians),
			"total_orders":       itoa(d.TotalRepairOrders),
			"total_services":     itoa(d.TotalMaintenanceServices),
			"low_stock_count":    itoa(d.StockCriticalCount),
		},
	}, nil
}
