// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Equipment is a device which is brought to the shop by a client.
// UserName and UserLastName describe its owner (if known).
type Equipment struct {
	ID            *string
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

// EquipmentFromRecord maps an upstream equipment record for the query
// path. The nested user object is optional.
func EquipmentFromRecord(r Record) *Equipment {
	owner := r.Object("user")
	return &Equipment{
		ID:            r.Str("id"),
		Name:          r.Str("name"),
		Type:          r.Str("type"),
		Brand:         r.Str("brand"),
		Model:         r.Str("model"),
		SerialNumber:  r.Str("serialNumber"),
		CurrentStatus: r.Str("currentStatus"),
		CreatedAt:     r.Str("createdAt"),
		UserName:      owner.Str("name"),
		UserLastName:  owner.Str("lastName"),
	}
}
