// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DetailKeys lists the field names which may carry the details of a
// repair order, in their priority order. Different upstream endpoints
// embed the same RepairOrderDetail list using different names.
var DetailKeys = []string{"repairOrderDetails", "details", "ticketServices"}

// RepairOrder is a repair ticket which is opened for one equipment.
// It owns zero or more detail lines (services) and parts.
type RepairOrder struct {
	ID                 *string
	ProblemDescription *string
	Diagnosis          *string
	EstimatedCost      decimal.Decimal
	FinalCost          decimal.Decimal
	Total              decimal.Decimal
	WarrantyStartDate  *string
	WarrantyEndDate    *string
	Status             *string
	CreatedAt          *string
	Details            []*RepairOrderDetail
	Parts              []*RepairOrderPart
}

// RepairOrderDetail is one service line of a repair order.
// Its subtotal is expected to be unitPrice*quantity-discount, but it is
// reported by the upstream API and trusted as is.
type RepairOrderDetail struct {
	ID                 *string
	UnitPrice          decimal.Decimal
	Discount           decimal.Decimal
	SubTotal           decimal.Decimal
	Status             *string
	Notes              *string
	CreatedAt          *string
	UpdatedAt          *string
	Service            *MaintenanceService
	TechnicianID       *string
	TechnicianName     *string
	TechnicianLastName *string
}

// RepairOrderPart is one spare part which is consumed by a repair order.
type RepairOrderPart struct {
	ID       *string
	PartName *string
	Quantity int64
	SubTotal decimal.Decimal
	Notes    *string
}

// RepairOrderRow is a flattened repair order which joins the order
// with its equipment, the equipment owner (client), and the evaluating
// technician. It is used for listing orders with a given status.
type RepairOrderRow struct {
	ID                 *string
	Status             *string
	FinalCost          decimal.Decimal
	CreatedAt          *string
	ClientName         *string
	ClientLastName     *string
	TechnicianName     *string
	TechnicianLastName *string
	EquipmentName      *string
	EquipmentType      *string
}

// RepairOrderFromRecord maps an upstream repair order record, including
// its details and parts, for the query path.
func RepairOrderFromRecord(r Record) (*RepairOrder, error) {
	o := &RepairOrder{
		ID:                 r.Str("id"),
		ProblemDescription: r.Str("problemDescription"),
		Diagnosis:          r.Str("diagnosis"),
		WarrantyStartDate:  r.Str("warrantyStartDate"),
		WarrantyEndDate:    r.Str("warrantyEndDate"),
		Status:             r.Str("status"),
		CreatedAt:          r.Str("createdAt"),
	}
	var err error
	if o.EstimatedCost, err = r.Decimal("estimatedCost"); err != nil {
		return nil, fmt.Errorf("repair order %q: %w", r.ID(), err)
	}
	if o.FinalCost, err = r.Decimal("finalCost"); err != nil {
		return nil, fmt.Errorf("repair order %q: %w", r.ID(), err)
	}
	if o.Total, err = r.Decimal("total"); err != nil {
		return nil, fmt.Errorf("repair order %q: %w", r.ID(), err)
	}
	for _, dr := range r.Objects(DetailKeys...) {
		d, err := RepairOrderDetailFromRecord(dr)
		if err != nil {
			return nil, fmt.Errorf("repair order %q: %w", r.ID(), err)
		}
		o.Details = append(o.Details, d)
	}
	for _, pr := range r.Objects("repairOrderParts", "parts") {
		p, err := RepairOrderPartFromRecord(pr)
		if err != nil {
			return nil, fmt.Errorf("repair order %q: %w", r.ID(), err)
		}
		o.Parts = append(o.Parts, p)
	}
	return o, nil
}

// RepairOrderDetailFromRecord maps an upstream repair order detail
// record for the query path. Its service and technician are optional.
func RepairOrderDetailFromRecord(r Record) (*RepairOrderDetail, error) {
	d := &RepairOrderDetail{
		ID:        r.Str("id"),
		Status:    r.Str("status"),
		Notes:     r.Str("notes"),
		CreatedAt: r.Str("createdAt"),
		UpdatedAt: r.Str("updatedAt"),
	}
	var err error
	if d.UnitPrice, err = r.Decimal("unitPrice"); err != nil {
		return nil, fmt.Errorf("detail %q: %w", r.ID(), err)
	}
	if d.Discount, err = r.Decimal("discount"); err != nil {
		return nil, fmt.Errorf("detail %q: %w", r.ID(), err)
	}
	if d.SubTotal, err = r.Decimal("subTotal"); err != nil {
		return nil, fmt.Errorf("detail %q: %w", r.ID(), err)
	}
	if sr := r.Object("service"); len(sr) > 0 {
		if d.Service, err = ServiceFromRecord(sr); err != nil {
			return nil, fmt.Errorf("detail %q: %w", r.ID(), err)
		}
	}
	tech := r.Object("technician")
	d.TechnicianID = tech.Str("id")
	d.TechnicianName = tech.Str("name")
	d.TechnicianLastName = tech.Str("lastName")
	return d, nil
}

// RepairOrderPartFromRecord maps an upstream repair order part record
// for the query path.
func RepairOrderPartFromRecord(r Record) (*RepairOrderPart, error) {
	q, err := r.Int("quantity")
	if err != nil {
		return nil, fmt.Errorf("part %q: %w", r.ID(), err)
	}
	st, err := r.Decimal("subTotal")
	if err != nil {
		return nil, fmt.Errorf("part %q: %w", r.ID(), err)
	}
	return &RepairOrderPart{
		ID:       r.Str("id"),
		PartName: r.Object("part").Str("name"),
		Quantity: q,
		SubTotal: st,
		Notes:    r.Str("notes"),
	}, nil
}

// RepairOrderRowFromRecord flattens an upstream repair order record
// with its nested equipment, equipment.user, and evaluatedBy objects.
func RepairOrderRowFromRecord(r Record) (*RepairOrderRow, error) {
	fc, err := r.Decimal("finalCost")
	if err != nil {
		return nil, fmt.Errorf("repair order %q: %w", r.ID(), err)
	}
	equipment := r.Object("equipment")
	client := equipment.Object("user")
	tech := r.Object("evaluatedBy")
	return &RepairOrderRow{
		ID:                 r.Str("id"),
		Status:             r.Str("status"),
		FinalCost:          fc,
		CreatedAt:          r.Str("createdAt"),
		ClientName:         client.Str("name"),
		ClientLastName:     client.Str("lastName"),
		TechnicianName:     tech.Str("name"),
		TechnicianLastName: tech.Str("lastName"),
		EquipmentName:      equipment.Str("name"),
		EquipmentType:      equipment.Str("type"),
	}, nil
}

// HasStatus reports if r record has exactly the given status.
func HasStatus(r Record, status string) bool {
	s := r.Str("status")
	return s != nil && *s == status
}
