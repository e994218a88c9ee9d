// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"encoding/json"
	"testing"

	"github.com/momeni/repair-gateway/pkg/core/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrPassesNullThrough(t *testing.T) {
	r := model.Record{
		"name":  "Mario",
		"empty": "",
		"null":  nil,
		"num":   json.Number("7"),
		"flag":  true,
		"obj":   map[string]any{"a": 1},
	}
	require.NotNil(t, r.Str("name"))
	assert.Equal(t, "Mario", *r.Str("name"))
	require.NotNil(t, r.Str("empty"), "empty strings are kept")
	assert.Equal(t, "", *r.Str("empty"))
	assert.Nil(t, r.Str("null"))
	assert.Nil(t, r.Str("missing"))
	assert.Equal(t, "7", *r.Str("num"))
	assert.Equal(t, "true", *r.Str("flag"))
	assert.Nil(t, r.Str("obj"))
}

func TestDisplayUsesPlaceholder(t *testing.T) {
	r := model.Record{
		"name":   " Mario ",
		"blank":  "   ",
		"null":   nil,
		"active": true,
		"eval":   false,
		"cost":   json.Number("125.50"),
	}
	assert.Equal(t, "Mario", r.Display("name"))
	assert.Equal(t, model.NotRecorded, r.Display("blank"))
	assert.Equal(t, model.NotRecorded, r.Display("null"))
	assert.Equal(t, model.NotRecorded, r.Display("missing"))
	assert.Equal(t, "Sí", r.Display("active"))
	assert.Equal(t, "No", r.Display("eval"))
	assert.Equal(t, "125.50", r.Display("cost"))
}

func TestDecimalDefaultsToZero(t *testing.T) {
	r := model.Record{
		"n":     json.Number("98.0"),
		"f":     12.5,
		"s":     "3.25",
		"blank": "",
		"null":  nil,
		"bad":   "12,5",
		"obj":   map[string]any{},
	}
	for _, tc := range []struct {
		key      string
		expected string
		fails    bool
	}{
		{key: "n", expected: "98"},
		{key: "f", expected: "12.5"},
		{key: "s", expected: "3.25"},
		{key: "blank", expected: "0"},
		{key: "null", expected: "0"},
		{key: "missing", expected: "0"},
		{key: "bad", fails: true},
		{key: "obj", fails: true},
	} {
		t.Run(tc.key, func(t *testing.T) {
			d, err := r.Decimal(tc.key)
			if tc.fails {
				var ce *model.ConversionError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, tc.key, ce.Key)
				return
			}
			require.NoError(t, err)
			assert.True(
				t, decimal.RequireFromString(tc.expected).Equal(d),
				"got %s", d,
			)
		})
	}
}

func TestNestedObjectsNeverFail(t *testing.T) {
	r := model.Record{
		"equipment": map[string]any{
			"name": "Laptop",
			"user": nil,
		},
		"details": []any{
			map[string]any{"id": "d1"},
			"garbage",
			map[string]any{"id": "d2"},
		},
		"repairOrderDetails": []any{},
	}
	owner := r.Object("equipment").Object("user")
	assert.NotNil(t, owner)
	assert.Empty(t, owner)
	assert.Nil(t, owner.Str("name"))
	assert.Equal(t, model.NotRecorded, owner.Display("name"))
	assert.Empty(t, r.Object("evaluatedBy").ID())

	details := r.Objects(model.DetailKeys...)
	require.Len(t, details, 2, "first non-empty list, objects only")
	assert.Equal(t, "d1", details[0].ID())
	assert.Equal(t, "d2", details[1].ID())
}

func TestMappingIsIdempotent(t *testing.T) {
	r := model.Record{
		"id":            "1",
		"status":        "COMPLETED",
		"estimatedCost": json.Number("120.00"),
		"finalCost":     json.Number("125.50"),
		"details": []any{
			map[string]any{
				"id":         "d1",
				"subTotal":   json.Number("45"),
				"technician": map[string]any{"id": "T1", "name": "Andrés"},
			},
		},
	}
	o1, err := model.RepairOrderFromRecord(r)
	require.NoError(t, err)
	o2, err := model.RepairOrderFromRecord(r)
	require.NoError(t, err)
	assert.Equal(t, o1, o2)
	assert.Nil(t, o1.Diagnosis)
	assert.True(t, o1.Total.IsZero())
	require.Len(t, o1.Details, 1)
	assert.Equal(t, "T1", *o1.Details[0].TechnicianID)
}

func TestSparePartPriceFallback(t *testing.T) {
	p, err := model.SparePartFromRecord(model.Record{
		"id": "5", "price": json.Number("42.75"),
	})
	require.NoError(t, err)
	assert.Equal(t, "42.75", p.Price.String())
	assert.Equal(t, int64(0), p.Stock)

	p, err = model.SparePartFromRecord(model.Record{
		"id": "5", "price": json.Number("1"), "unitPrice": "42.75",
	})
	require.NoError(t, err)
	assert.Equal(t, "42.75", p.Price.String())

	_, err = model.SparePartFromRecord(model.Record{"stock": "many"})
	assert.Error(t, err)
}

func TestEquipmentOwner(t *testing.T) {
	e := model.EquipmentFromRecord(model.Record{
		"id":   "1",
		"name": "Laptop HP Pavilion 15",
		"user": map[string]any{"name": "Mario", "lastName": "Delgado"},
	})
	assert.Equal(t, "Mario", *e.UserName)
	assert.Equal(t, "Delgado", *e.UserLastName)
	assert.Nil(t, e.Brand)
}

func TestSemVerText(t *testing.T) {
	var sv model.SemVer
	require.NoError(t, sv.UnmarshalText([]byte("1.2")))
	assert.Equal(t, model.SemVer{1, 2, 0}, sv)
	assert.Error(t, sv.UnmarshalText([]byte("1.x.0")))
	assert.Error(t, sv.UnmarshalText([]byte("1.2.3.4")))
	assert.Equal(t, "1.2.0", sv.String())
}
