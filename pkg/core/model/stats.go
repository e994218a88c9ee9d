// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is the inclusive stock level which marks
// a spare part as low-stock when callers do not choose a threshold.
const DefaultLowStockThreshold = 5

// StatusSummary aggregates repair orders which share one status.
type StatusSummary struct {
	Status             *string // nil groups the orders with no status
	Count              int64
	TotalEstimatedCost decimal.Decimal
	TotalFinalCost     decimal.Decimal
}

// TechnicianPerformance aggregates the work which is attributed to one
// technician. Orders counts the attributed detail lines (or orders when
// an order had no attributed detail) and Revenue sums their amounts.
type TechnicianPerformance struct {
	TechnicianID string
	Name         *string
	LastName     *string
	Orders       int64
	Revenue      decimal.Decimal
}

// Dashboard contains the business-wide counters.
type Dashboard struct {
	TotalUsers               int64
	TotalClients             int64
	TotalTechnicians         int64
	ActiveTechnicians        int64
	TotalRepairOrders        int64
	TotalMaintenanceServices int64
	StockCriticalCount       int64
}

// SummarizeByStatus groups orders by their status string in one pass.
// Only statuses which are present in orders appear in the result, in
// the order of their first occurrence. Orders with no status are
// grouped under a nil status. Missing costs are summed as zero.
// The sum of all Count fields equals len(orders).
func SummarizeByStatus(orders []Record) ([]StatusSummary, error) {
	idx := make(map[string]int)
	noStatus := -1
	var out []StatusSummary
	for _, o := range orders {
		est, err := o.Decimal("estimatedCost")
		if err != nil {
			return nil, fmt.Errorf("repair order %q: %w", o.ID(), err)
		}
		fin, err := o.Decimal("finalCost")
		if err != nil {
			return nil, fmt.Errorf("repair order %q: %w", o.ID(), err)
		}
		var i int
		if status := o.Str("status"); status == nil {
			if noStatus < 0 {
				noStatus = len(out)
				out = append(out, StatusSummary{})
			}
			i = noStatus
		} else if j, ok := idx[*status]; ok {
			i = j
		} else {
			i = len(out)
			idx[*status] = i
			out = append(out, StatusSummary{Status: status})
		}
		g := &out[i]
		g.Count++
		g.TotalEstimatedCost = g.TotalEstimatedCost.Add(est)
		g.TotalFinalCost = g.TotalFinalCost.Add(fin)
	}
	return out, nil
}

// PerformanceByOrders attributes the work of orders to technicians and
// returns one entry per attributed technician in the order of their
// first appearance. Technicians without any attributed work are not
// listed. See attributeWork for the attribution rules.
func PerformanceByOrders(orders []Record) ([]TechnicianPerformance, error) {
	perf, err := attributeWork(orders)
	if err != nil {
		return nil, err
	}
	out := make([]TechnicianPerformance, 0, len(perf.ids))
	for _, id := range perf.ids {
		out = append(out, *perf.byID[id])
	}
	return out, nil
}

// PerformanceByRoster attributes the work of orders to technicians
// (like PerformanceByOrders) and then reports one entry per roster
// record, in the roster order. Technicians with no attributed work get
// zero counts and revenues. Attributed technicians which are missing
// from the roster are not reported. The i-th result corresponds to
// the i-th roster record and takes its names from the roster.
func PerformanceByRoster(
	roster, orders []Record,
) ([]TechnicianPerformance, error) {
	perf, err := attributeWork(orders)
	if err != nil {
		return nil, err
	}
	out := make([]TechnicianPerformance, 0, len(roster))
	for _, t := range roster {
		tp := TechnicianPerformance{
			TechnicianID: t.ID(),
			Name:         t.Str("name"),
			LastName:     t.Str("lastName"),
		}
		if p, ok := perf.byID[tp.TechnicianID]; ok && tp.TechnicianID != "" {
			tp.Orders = p.Orders
			tp.Revenue = p.Revenue
		}
		out = append(out, tp)
	}
	return out, nil
}

// LowStock returns those parts which their stock is at most equal to
// the threshold. Stocks are compared as decimals, so 5.5 is above 5.
// Parts with no stock field are treated as having zero items and so
// are always reported for non-negative thresholds.
func LowStock(parts []Record, threshold int64) ([]Record, error) {
	limit := decimal.NewFromInt(threshold)
	var out []Record
	for _, p := range parts {
		stock, err := p.Decimal("stock")
		if err != nil {
			return nil, fmt.Errorf("spare part %q: %w", p.ID(), err)
		}
		if stock.LessThanOrEqual(limit) {
			out = append(out, p)
		}
	}
	return out, nil
}

// NewDashboard computes the business counters from the upstream users,
// technicians roster, repair orders, maintenance services, and spare
// parts. Clients are the users with the USER role and the critical
// stock count uses the given low-stock threshold.
func NewDashboard(
	users, technicians, orders, services, parts []Record,
	threshold int64,
) (*Dashboard, error) {
	low, err := LowStock(parts, threshold)
	if err != nil {
		return nil, fmt.Errorf("LowStock: %w", err)
	}
	d := &Dashboard{
		TotalUsers:               int64(len(users)),
		TotalTechnicians:         int64(len(technicians)),
		TotalRepairOrders:        int64(len(orders)),
		TotalMaintenanceServices: int64(len(services)),
		StockCriticalCount:       int64(len(low)),
	}
	for _, u := range users {
		if HasRole(u, RoleUser) {
			d.TotalClients++
		}
	}
	for _, t := range technicians {
		if t.Truthy("active") {
			d.ActiveTechnicians++
		}
	}
	return d, nil
}

type performance struct {
	ids  []string // insertion order
	byID map[string]*TechnicianPerformance
}

func (p *performance) credit(tech Record, amount decimal.Decimal) {
	id := tech.ID()
	tp, ok := p.byID[id]
	if !ok {
		tp = &TechnicianPerformance{TechnicianID: id}
		p.byID[id] = tp
		p.ids = append(p.ids, id)
	}
	if tp.Name == nil {
		tp.Name = tech.Str("name")
	}
	if tp.LastName == nil {
		tp.LastName = tech.Str("lastName")
	}
	tp.Orders++
	tp.Revenue = tp.Revenue.Add(amount)
}

// attributeWork walks orders once. Each order detail with an assigned
// technician credits that technician with one count and the detail
// subTotal. If none of the order details had a technician, the order
// evaluatedBy technician is credited with one count and the order
// finalCost instead. Details or orders whose technician has no id are
// skipped silently, hence, such work vanishes from the results.
func attributeWork(orders []Record) (*performance, error) {
	perf := &performance{byID: make(map[string]*TechnicianPerformance)}
	for _, o := range orders {
		attributed := false
		for _, d := range o.Objects(DetailKeys...) {
			tech := d.Object("technician")
			if tech.ID() == "" {
				continue
			}
			st, err := d.Decimal("subTotal")
			if err != nil {
				return nil, fmt.Errorf(
					"repair order %q detail %q: %w", o.ID(), d.ID(), err,
				)
			}
			perf.credit(tech, st)
			attributed = true
		}
		if attributed {
			continue
		}
		tech := o.Object("evaluatedBy")
		if tech.ID() == "" {
			continue
		}
		fc, err := o.Decimal("finalCost")
		if err != nil {
			return nil, fmt.Errorf("repair order %q: %w", o.ID(), err)
		}
		perf.credit(tech, fc)
	}
	return perf, nil
}
