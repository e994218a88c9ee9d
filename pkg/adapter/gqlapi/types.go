// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gqlapi

import (
	"math"

	"github.com/graph-gophers/graphql-go"
	"github.com/momeni/repair-gateway/pkg/core/model"
	"github.com/shopspring/decimal"
)

// The following types are resolved field by field, so their field
// names follow the schema field names and their types are limited to
// the GraphQL scalar representations (int32, float64, string, bool,
// and graphql.ID) or pointers to them for nullable fields.

type user struct {
	ID        *graphql.ID
	Name      *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Role      *string
	CreatedAt *string
	UpdatedAt *string
}

type technician struct {
	ID              *graphql.ID
	Name            *string
	LastName        *string
	Email           *string
	Phone           *string
	Address         *string
	Role            *string
	CreatedAt       *string
	UpdatedAt       *string
	Specialty       *string
	ExperienceYears int32
	IsEvaluator     *bool
	Active          *bool
}

type equipment struct {
	ID            *graphql.ID
	Name          *string
	Type          *string
	Brand         *string
	Model         *string
	SerialNumber  *string
	CurrentStatus *string
	CreatedAt     *string
	UserName      *string
	UserLastName  *string
}

type maintenanceService struct {
	ID                   *graphql.ID
	ServiceName          *string
	Description          *string
	BasePrice            float64
	EstimatedTimeMinutes int32
	RequiresParts        *bool
	Type                 *string
	Active               *bool
}

type sparePart struct {
	ID          *graphql.ID
	Name        *string
	Description *string
	Stock       int32
	Price       float64
	CreatedAt   *string
}

type repairOrder struct {
	ID                 *graphql.ID
	ProblemDescription *string
	Diagnosis          *string
	EstimatedCost      float64
	FinalCost          float64
	Total              float64
	WarrantyStartDate  *string
	WarrantyEndDate    *string
	Status             *string
	CreatedAt          *string
	Details            []*repairOrderDetail
	Parts              []*repairOrderPart
}

type repairOrderDetail struct {
	ID                 *graphql.ID
	UnitPrice          float64
	Discount           float64
	SubTotal           float64
	Status             *string
	Notes              *string
	CreatedAt          *string
	UpdatedAt          *string
	Service            *maintenanceService
	TechnicianID       *graphql.ID
	TechnicianName     *string
	TechnicianLastName *string
}

type repairOrderPart struct {
	ID       *graphql.ID
	PartName *string
	Quantity int32
	SubTotal float64
	Notes    *string
}

type repairOrderRow struct {
	ID                 *graphql.ID
	Status             *string
	FinalCost          float64
	CreatedAt          *string
	ClientName         *string
	ClientLastName     *string
	TechnicianName     *string
	TechnicianLastName *string
	EquipmentName      *string
	EquipmentType      *string
}

type statusSummary struct {
	Status             *string
	Count              int32
	TotalEstimatedCost float64
	TotalFinalCost     float64
}

type technicianPerformance struct {
	TechnicianID graphql.ID
	Name         *string
	LastName     *string
	Orders       int32
	Revenue      float64
}

type dashboard struct {
	TotalUsers               int32
	TotalClients             int32
	TotalTechnicians         int32
	ActiveTechnicians        int32
	TotalRepairOrders        int32
	TotalMaintenanceServices int32
	StockCriticalCount       int32
}

func id(s *string) *graphql.ID {
	if s == nil {
		return nil
	}
	v := graphql.ID(*s)
	return &v
}

// i32 saturates n, so huge upstream counts do not wrap around.
func i32(n int64) int32 {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	default:
		return int32(n)
	}
}

func f64(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func mapAll[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func newUser(u *model.User) *user {
	return &user{
		ID:        id(u.ID),
		Name:      u.Name,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newTechnician(t *model.Technician) *technician {
	return &technician{
		ID:              id(t.ID),
		Name:            t.Name,
		LastName:        t.LastName,
		Email:           t.Email,
		Phone:           t.Phone,
		Address:         t.Address,
		Role:            t.Role,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		Specialty:       t.Specialty,
		ExperienceYears: i32(t.ExperienceYears),
		IsEvaluator:     t.IsEvaluator,
		Active:          t.Active,
	}
}

func newEquipment(e *model.Equipment) *equipment {
	return &equipment{
		ID:            id(e.ID),
		Name:          e.Name,
		Type:          e.Type,
		Brand:         e.Brand,
		Model:         e.Model,
		SerialNumber:  e.SerialNumber,
		CurrentStatus: e.CurrentStatus,
		CreatedAt:     e.CreatedAt,
		UserName:      e.UserName,
		UserLastName:  e.UserLastName,
	}
}

func newMaintenanceService(s *model.MaintenanceService) *maintenanceService {
	if s == nil {
		return nil
	}
	return &maintenanceService{
		ID:                   id(s.ID),
		ServiceName:          s.ServiceName,
		Description:          s.Description,
		BasePrice:            f64(s.BasePrice),
		EstimatedTimeMinutes: i32(s.EstimatedTimeMinutes),
		RequiresParts:        s.RequiresParts,
		Type:                 s.Type,
		Active:               s.Active,
	}
}

func newSparePart(p *model.SparePart) *sparePart {
	return &sparePart{
		ID:          id(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Stock:       i32(p.Stock),
		Price:       f64(p.Price),
		CreatedAt:   p.CreatedAt,
	}
}

func newRepairOrder(o *model.RepairOrder) *repairOrder {
	return &repairOrder{
		ID:                 id(o.ID),
		ProblemDescription: o.ProblemDescription,
		Diagnosis:          o.Diagnosis,
		EstimatedCost:      f64(o.EstimatedCost),
		FinalCost:          f64(o.FinalCost),
		Total:              f64(o.Total),
		WarrantyStartDate:  o.WarrantyStartDate,
		WarrantyEndDate:    o.WarrantyEndDate,
		Status:             o.Status,
		CreatedAt:          o.CreatedAt,
		Details:            mapAll(o.Details, newRepairOrderDetail),
		Parts:              mapAll(o.Parts, newRepairOrderPart),
	}
}

func newRepairOrderDetail(d *model.RepairOrderDetail) *repairOrderDetail {
	return &repairOrderDetail{
		ID:                 id(d.ID),
		UnitPrice:          f64(d.UnitPrice),
		Discount:           f64(d.Discount),
		SubTotal:           f64(d.SubTotal),
		Status:             d.Status,
		Notes:              d.Notes,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
		Service:            newMaintenanceService(d.Service),
		TechnicianID:       id(d.TechnicianID),
		TechnicianName:     d.TechnicianName,
		TechnicianLastName: d.TechnicianLastName,
	}
}

func newRepairOrderPart(p *model.RepairOrderPart) *repairOrderPart {
	return &repairOrderPart{
		ID:       id(p.ID),
		PartName: p.PartName,
		Quantity: i32(p.Quantity),
		SubTotal: f64(p.SubTotal),
		Notes:    p.Notes,
	}
}

func newRepairOrderRow(r *model.RepairOrderRow) *repairOrderRow {
	return &repairOrderRow{
		ID:                 id(r.ID),
		Status:             r.Status,
		FinalCost:          f64(r.FinalCost),
		CreatedAt:          r.CreatedAt,
		ClientName:         r.ClientName,
		ClientLastName:     r.ClientLastName,
		TechnicianName:     r.TechnicianName,
		TechnicianLastName: r.TechnicianLastName,
		EquipmentName:      r.EquipmentName,
		EquipmentType:      r.EquipmentType,
	}
}

func newStatusSummary(s model.StatusSummary) *statusSummary {
	return &statusSummary{
		Status:             s.Status,
		Count:              i32(s.Count),
		TotalEstimatedCost: f64(s.TotalEstimatedCost),
		TotalFinalCost:     f64(s.TotalFinalCost),
	}
}

func newTechnicianPerformance(
	p model.TechnicianPerformance,
) *technicianPerformance {
	return &technicianPerformance{
		TechnicianID: graphql.ID(p.TechnicianID),
		Name:         p.Name,
		LastName:     p.LastName,
		Orders:       i32(p.Orders),
		Revenue:      f64(p.Revenue),
	}
}

func newDashboard(d *model.Dashboard) *dashboard {
	return &dashboard{
		TotalUsers:               i32(d.TotalUsers),
		TotalClients:             i32(d.TotalClients),
		TotalTechnicians:         i32(d.TotalTechnicians),
		ActiveTechnicians:        i32(d.ActiveTechnicians),
		TotalRepairOrders:        i32(d.TotalRepairOrders),
		TotalMaintenanceServices: i32(d.TotalMaintenanceServices),
		StockCriticalCount:       i32(d.StockCriticalCount),
	}
}
