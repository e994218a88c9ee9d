// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaintenanceService is one offered service which may be attached to
// a repair order as a detail line.
type MaintenanceService struct {
	ID                   *string
	ServiceName          *string
	Description          *string
	BasePrice            decimal.Decimal
	EstimatedTimeMinutes int64
	RequiresParts        *bool
	Type                 *string
	Active               *bool
}

// SparePart is an inventory item. Upstream versions report its price
// as unitPrice or price and both are accepted.
type SparePart struct {
	ID          *string
	Name        *string
	Description *string
	Stock       int64
	Price       decimal.Decimal
	CreatedAt   *string
	UpdatedAt   *string
}

// ServiceFromRecord maps an upstream maintenance service record for
// the query path.
func ServiceFromRecord(r Record) (*MaintenanceService, error) {
	price, err := r.Decimal("basePrice")
	if err != nil {
		return nil, fmt.Errorf("service %q: %w", r.ID(), err)
	}
	minutes, err := r.Int("estimatedTimeMinutes")
	if err != nil {
		return nil, fmt.Errorf("service %q: %w", r.ID(), err)
	}
	return &MaintenanceService{
		ID:                   r.Str("id"),
		ServiceName:          r.Str("serviceName"),
		Description:          r.Str("description"),
		BasePrice:            price,
		EstimatedTimeMinutes: minutes,
		RequiresParts:        r.Bool("requiresParts"),
		Type:                 r.Str("type"),
		Active:               r.Bool("active"),
	}, nil
}

// SparePartFromRecord maps an upstream spare part record for the query
// path.
func SparePartFromRecord(r Record) (*SparePart, error) {
	stock, err := r.Int("stock")
	if err != nil {
		return nil, fmt.Errorf("spare part %q: %w", r.ID(), err)
	}
	price, err := SparePartPrice(r)
	if err != nil {
		return nil, fmt.Errorf("spare part %q: %w", r.ID(), err)
	}
	return &SparePart{
		ID:          r.Str("id"),
		Name:        r.Str("name"),
		Description: r.Str("description"),
		Stock:       stock,
		Price:       price,
		CreatedAt:   r.Str("createdAt"),
		UpdatedAt:   r.Str("updatedAt"),
	}, nil
}

// SparePartPrice returns the unit price of a spare part record,
// reading the unitPrice field and falling back to the price field.
func SparePartPrice(r Record) (decimal.Decimal, error) {
	if r["unitPrice"] != nil {
		return r.Decimal("unitPrice")
	}
	return r.Decimal("price")
}
