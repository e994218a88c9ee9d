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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual),
		"expected %s, got %s", expected, actual)
}

func TestSummarizeByStatus(t *testing.T) {
	orders := []model.Record{
		{"status": "OPEN", "estimatedCost": json.Number("50"), "finalCost": json.Number("0")},
		{"status": "OPEN", "estimatedCost": json.Number("30"), "finalCost": json.Number("20")},
		{"status": "COMPLETED", "estimatedCost": json.Number("100"), "finalCost": json.Number("125.5")},
	}
	groups, err := model.SummarizeByStatus(orders)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "OPEN", *groups[0].Status)
	assert.Equal(t, int64(2), groups[0].Count)
	assertDecimal(t, "80", groups[0].TotalEstimatedCost)
	assertDecimal(t, "20", groups[0].TotalFinalCost)

	assert.Equal(t, "COMPLETED", *groups[1].Status)
	assert.Equal(t, int64(1), groups[1].Count)
	assertDecimal(t, "100", groups[1].TotalEstimatedCost)
	assertDecimal(t, "125.5", groups[1].TotalFinalCost)

	var total int64
	for _, g := range groups {
		total += g.Count
	}
	assert.Equal(t, int64(len(orders)), total)
}

func TestSummarizeByStatusMissingFields(t *testing.T) {
	groups, err := model.SummarizeByStatus([]model.Record{
		{"status": "OPEN"},
		{"estimatedCost": json.Number("10")},
		{"status": "", "estimatedCost": json.Number("3")},
		{"status": nil, "estimatedCost": json.Number("2")},
	})
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assertDecimal(t, "0", groups[0].TotalEstimatedCost)
	assert.Nil(t, groups[1].Status)
	assert.Equal(t, int64(2), groups[1].Count)
	assertDecimal(t, "12", groups[1].TotalEstimatedCost)
	assert.Equal(t, "", *groups[2].Status)

	_, err = model.SummarizeByStatus([]model.Record{
		{"status": "OPEN", "finalCost": "n/a"},
	})
	assert.Error(t, err)

	groups, err = model.SummarizeByStatus(nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestLowStock(t *testing.T) {
	var parts []model.Record
	for i, stock := range []int{12, 8, 25, 15, 10} {
		parts = append(parts, model.Record{
			"id":    json.Number(string(rune('1' + i))),
			"stock": json.Number(decimal.NewFromInt(int64(stock)).String()),
		})
	}
	low, err := model.LowStock(parts, 10)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "2", low[0].ID())
	assert.Equal(t, "5", low[1].ID())

	for _, threshold := range []int64{0, 5, 9, 10, 12, 30} {
		low, err := model.LowStock(parts, threshold)
		require.NoError(t, err)
		kept := make(map[string]bool)
		for _, p := range low {
			stock, _ := p.Int("stock")
			assert.LessOrEqual(t, stock, threshold)
			kept[p.ID()] = true
		}
		for _, p := range parts {
			if stock, _ := p.Int("stock"); !kept[p.ID()] {
				assert.Greater(t, stock, threshold)
			}
		}
	}
}

func TestLowStockComparesDecimals(t *testing.T) {
	parts := []model.Record{
		{"id": "a", "stock": json.Number("5.5")},
		{"id": "b", "stock": json.Number("5")},
		{"id": "c", "stock": json.Number("4.9")},
	}
	low, err := model.LowStock(parts, 5)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "b", low[0].ID())
	assert.Equal(t, "c", low[1].ID())
}

func TestLowStockMissingStock(t *testing.T) {
	low, err := model.LowStock([]model.Record{{"id": "x"}}, model.DefaultLowStockThreshold)
	require.NoError(t, err)
	assert.Len(t, low, 1)
}

func TestPerformanceFallsBackToEvaluator(t *testing.T) {
	orders := []model.Record{{
		"id":          "1",
		"finalCost":   json.Number("98.0"),
		"evaluatedBy": map[string]any{"id": "T1", "name": "Paola"},
	}}
	perf, err := model.PerformanceByOrders(orders)
	require.NoError(t, err)
	require.Len(t, perf, 1)
	assert.Equal(t, "T1", perf[0].TechnicianID)
	assert.Equal(t, int64(1), perf[0].Orders)
	assertDecimal(t, "98", perf[0].Revenue)
	assert.Equal(t, "Paola", *perf[0].Name)
}

func TestPerformancePrefersDetails(t *testing.T) {
	orders := []model.Record{
		{
			"id":          "1",
			"finalCost":   json.Number("125.5"),
			"evaluatedBy": map[string]any{"id": "T9"},
			"repairOrderDetails": []any{
				map[string]any{
					"subTotal":   json.Number("45"),
					"technician": map[string]any{"id": "T1", "name": "Andrés"},
				},
				map[string]any{
					"subTotal":   json.Number("75"),
					"technician": map[string]any{"id": "T2"},
				},
				map[string]any{
					"subTotal":   json.Number("10"),
					"technician": nil,
				},
			},
		},
		{
			"id":          "2",
			"finalCost":   json.Number("30"),
			"evaluatedBy": map[string]any{"id": "T1"},
			"details": []any{
				map[string]any{"subTotal": json.Number("5")},
			},
		},
		{
			"id":        "3",
			"finalCost": json.Number("50"),
		},
	}
	perf, err := model.PerformanceByOrders(orders)
	require.NoError(t, err)
	require.Len(t, perf, 2, "T9 is not credited and order 3 vanishes")

	assert.Equal(t, "T1", perf[0].TechnicianID)
	assert.Equal(t, int64(2), perf[0].Orders)
	assertDecimal(t, "75", perf[0].Revenue)

	assert.Equal(t, "T2", perf[1].TechnicianID)
	assert.Equal(t, int64(1), perf[1].Orders)
	assertDecimal(t, "75", perf[1].Revenue)
}

func TestPerformanceByRosterZeroFills(t *testing.T) {
	roster := []model.Record{
		{"id": "T2", "name": "Paola"},
		{"id": "T3", "name": "Carlos"},
		{"name": "Nameless"},
	}
	orders := []model.Record{
		{"finalCost": json.Number("98"), "evaluatedBy": map[string]any{"id": "T2"}},
		{"finalCost": json.Number("10"), "evaluatedBy": map[string]any{"id": "T7"}},
	}
	perf, err := model.PerformanceByRoster(roster, orders)
	require.NoError(t, err)
	require.Len(t, perf, 3)
	assert.Equal(t, "T2", perf[0].TechnicianID)
	assert.Equal(t, int64(1), perf[0].Orders)
	assertDecimal(t, "98", perf[0].Revenue)
	assert.Equal(t, "T3", perf[1].TechnicianID)
	assert.Equal(t, int64(0), perf[1].Orders)
	assert.True(t, perf[1].Revenue.IsZero())
	assert.Equal(t, "", perf[2].TechnicianID)
	assert.Equal(t, int64(0), perf[2].Orders)
	assert.Equal(t, "Nameless", *perf[2].Name)
}

func TestNewDashboard(t *testing.T) {
	users := []model.Record{
		{"role": "USER"}, {"role": "user"}, {"role": "ADMIN"}, {},
	}
	techs := []model.Record{{"active": true}, {"active": false}, {}}
	parts := []model.Record{
		{"stock": json.Number("2")}, {"stock": json.Number("9")},
	}
	d, err := model.NewDashboard(
		users, techs, make([]model.Record, 4), nil, parts, 5,
	)
	require.NoError(t, err)
	assert.Equal(t, model.Dashboard{
		TotalUsers:         4,
		TotalClients:       2,
		TotalTechnicians:   3,
		ActiveTechnicians:  1,
		TotalRepairOrders:  4,
		StockCriticalCount: 1,
	}, *d)
}
