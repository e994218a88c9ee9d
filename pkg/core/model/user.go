// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models of the repair shop, i.e., users,
// technicians, equipments, repair orders and their details and parts,
// maintenance services, and spare parts. This layer may not depend on
// outter layers, while all other layers may depend on it.
//
// None of these models are persisted by the gateway. Each one of them
// is built transiently from an upstream Record (see record.go) by the
// query path mapping functions which are named like UserFromRecord.
// Fields which may be null in the upstream JSON are kept as pointers,
// so they may be passed to GraphQL clients as null, while numeric
// fields default to zero. Reports use the Record.Display policy instead.
package model

import (
	"fmt"
	"strings"
)

// Known user roles. The upstream API reports them as plain strings and
// they are not validated by the gateway.
const (
	RoleUser       = "USER"
	RoleTechnician = "TECHNICIAN"
	RoleAdmin      = "ADMIN"
)

// User is a registered account, either a client, a technician, or an
// administrator.
type User struct {
	ID        *string
	Name      *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Role      *string
	CreatedAt *string
	UpdatedAt *string
}

// Technician is a User specialization with professional information.
type Technician struct {
	User

	Specialty       *string
	ExperienceYears int64
	IsEvaluator     *bool
	Active          *bool
}

// UserFromRecord maps an upstream user record for the query path.
func UserFromRecord(r Record) *User {
	return &User{
		ID:        r.Str("id"),
		Name:      r.Str("name"),
		LastName:  r.Str("lastName"),
		Email:     r.Str("email"),
		Phone:     r.Str("phone"),
		Address:   r.Str("address"),
		Role:      r.Str("role"),
		CreatedAt: r.Str("createdAt"),
		UpdatedAt: r.Str("updatedAt"),
	}
}

// TechnicianFromRecord maps an upstream user record, which belongs to
// a technician, for the query path.
func TechnicianFromRecord(r Record) (*Technician, error) {
	years, err := r.Int("experienceYears")
	if err != nil {
		return nil, fmt.Errorf("technician %q: %w", r.ID(), err)
	}
	return &Technician{
		User:            *UserFromRecord(r),
		Specialty:       r.Str("specialty"),
		ExperienceYears: years,
		IsEvaluator:     r.Bool("isEvaluator"),
		Active:          r.Bool("active"),
	}, nil
}

// HasRole reports if r user record has the given role, comparing them
// case-insensitively.
func HasRole(r Record, role string) bool {
	s := r.Str("role")
	return s != nil && strings.EqualFold(strings.TrimSpace(*s), role)
}
