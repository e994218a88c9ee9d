// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gqlapi_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/momeni/repair-gateway/pkg/adapter/gqlapi"
	"github.com/momeni/repair-gateway/pkg/adapter/report"
	"github.com/momeni/repair-gateway/pkg/adapter/upstream/fixturerp"
	"github.com/momeni/repair-gateway/pkg/adapter/upstream/restrp"
	"github.com/momeni/repair-gateway/pkg/core/repo"
	"github.com/momeni/repair-gateway/pkg/core/usecase/adminuc"
	"github.com/momeni/repair-gateway/pkg/core/usecase/reportsuc"
	"github.com/stretchr/testify/suite"
)

func newSchema(up repo.Upstream, opts ...gqlapi.Option) (*gqlapi.Schema, error) {
	admin, err := adminuc.New(up)
	if err != nil {
		return nil, err
	}
	r, err := report.New()
	if err != nil {
		return nil, err
	}
	reports, err := reportsuc.New(up, r)
	if err != nil {
		return nil, err
	}
	return gqlapi.New(admin, reports, opts...)
}

type SchemaTestSuite struct {
	suite.Suite

	Ctx    context.Context
	Schema *gqlapi.Schema
}

func TestSchemaTestSuite(t *testing.T) {
	up, err := fixturerp.New()
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}
	s, err := newSchema(up)
	if err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	suite.Run(t, &SchemaTestSuite{Ctx: context.Background(), Schema: s})
}

func (sts *SchemaTestSuite) exec(query string, vars map[string]any) string {
	resp := sts.Schema.Exec(sts.Ctx, "Bearer tok", query, "", vars)
	sts.Require().Empty(resp.Errors)
	return string(resp.Data)
}

func (sts *SchemaTestSuite) TestUsers() {
	sts.JSONEq(`{"users": [
		{"id": "1", "name": "Mario"},
		{"id": "2", "name": "Gabriel"},
		{"id": "3", "name": "Ana"}
	]}`, sts.exec(`{ users { id name } }`, nil))
}

func (sts *SchemaTestSuite) TestTechnicianWithVariables() {
	sts.JSONEq(
		`{"technician": {"name": "Paola", "experienceYears": 3, "active": true}}`,
		sts.exec(
			`query T($id: ID!) { technician(id: $id) { name experienceYears active } }`,
			map[string]any{"id": "11"},
		),
	)
}

func (sts *SchemaTestSuite) TestRepairOrderDetails() {
	sts.JSONEq(`{"repairOrder": {
		"finalCost": 125.5,
		"details": [{"subTotal": 45, "technicianId": "10",
			"service": {"serviceName": "Diagnóstico general"}}],
		"parts": [{"quantity": 1, "subTotal": 95.5}]
	}}`, sts.exec(`{ repairOrder(id: "1") {
		finalCost
		details { subTotal technicianId service { serviceName } }
		parts { quantity subTotal }
	} }`, nil))
}

func (sts *SchemaTestSuite) TestAggregations() {
	sts.JSONEq(`{"dashboard": {
		"totalUsers": 3, "totalClients": 1, "totalTechnicians": 4,
		"activeTechnicians": 3, "totalRepairOrders": 3,
		"totalMaintenanceServices": 4, "stockCriticalCount": 0
	}}`, sts.exec(`{ dashboard {
		totalUsers totalClients totalTechnicians activeTechnicians
		totalRepairOrders totalMaintenanceServices stockCriticalCount
	} }`, nil))

	sts.JSONEq(`{"techniciansPerformance": [
		{"technicianId": "10", "orders": 1, "revenue": 45},
		{"technicianId": "11", "orders": 1, "revenue": 75},
		{"technicianId": "13", "orders": 1, "revenue": 0}
	]}`, sts.exec(`{ techniciansPerformance { technicianId orders revenue } }`, nil))

	sts.JSONEq(`{"repairOrdersSummary": [
		{"status": "COMPLETED", "count": 1},
		{"status": "IN_PROGRESS", "count": 1},
		{"status": "OPEN", "count": 1}
	]}`, sts.exec(`{ repairOrdersSummary { status count } }`, nil))
}

func (sts *SchemaTestSuite) TestFilters() {
	sts.JSONEq(
		`{"sparePartsLowStock": []}`,
		sts.exec(`{ sparePartsLowStock { id } }`, nil),
	)
	sts.JSONEq(
		`{"sparePartsLowStock": [
			{"id": "2", "price": 68.9},
			{"id": "5", "price": 42.75}
		]}`,
		sts.exec(`{ sparePartsLowStock(threshold: 10) { id price } }`, nil),
	)
	sts.JSONEq(
		`{"repairOrdersByStatus": []}`,
		sts.exec(`{ repairOrdersByStatus(status: "UNKNOWN") { id } }`, nil),
	)
	sts.JSONEq(
		`{"repairOrdersByStatus": [{"id": "2", "clientName": "Mario"}]}`,
		sts.exec(
			`{ repairOrdersByStatus(status: "IN_PROGRESS") { id clientName } }`,
			nil,
		),
	)
}

func (sts *SchemaTestSuite) TestReport() {
	var data struct {
		UsersReport string `json:"usersReport"`
	}
	resp := sts.Schema.Exec(sts.Ctx, "", `{ usersReport }`, "", nil)
	sts.Require().Empty(resp.Errors)
	sts.Require().NoError(json.Unmarshal(resp.Data, &data))
	pdf, err := base64.StdEncoding.DecodeString(data.UsersReport)
	sts.Require().NoError(err)
	sts.True(strings.HasPrefix(string(pdf), "%PDF-"))
}

func (sts *SchemaTestSuite) TestNotFoundIsFieldError() {
	resp := sts.Schema.Exec(
		sts.Ctx, "", `{ equipment(id: "404") { id } }`, "", nil,
	)
	sts.Require().Len(resp.Errors, 1)
	sts.Equal(http.StatusNotFound, resp.Errors[0].Extensions["status"])
	sts.Equal([]any{"equipment"}, resp.Errors[0].Path)
}

func (sts *SchemaTestSuite) TestFieldErrorKeepsSiblings() {
	resp := sts.Schema.Exec(
		sts.Ctx, "", `{ users { id } user(id: "nope") { id } }`, "", nil,
	)
	sts.Require().Len(resp.Errors, 1)
	sts.Equal([]any{"user"}, resp.Errors[0].Path)
	sts.JSONEq(`{
		"users": [{"id": "1"}, {"id": "2"}, {"id": "3"}],
		"user": null
	}`, string(resp.Data))
}

func (sts *SchemaTestSuite) TestInvalidQuery() {
	resp := sts.Schema.Exec(sts.Ctx, "", `{ cars { id } }`, "", nil)
	sts.NotEmpty(resp.Errors)
}

func TestSchemaOptions(t *testing.T) {
	up, err := fixturerp.New()
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}
	s, err := newSchema(up, gqlapi.WithMaxDepth(2), gqlapi.WithIntrospection(false))
	if err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	ctx := context.Background()
	resp := s.Exec(ctx, "", `{ repairOrders { details { service { id } } } }`, "", nil)
	if len(resp.Errors) == 0 {
		t.Errorf("expected a max depth error")
	}
	resp = s.Exec(ctx, "", `{ __schema { queryType { name } } }`, "", nil)
	if strings.Contains(string(resp.Data), `"Query"`) {
		t.Errorf("introspection is not disabled: %s", resp.Data)
	}

	if _, err := newSchema(up, gqlapi.WithMaxDepth(-1)); err == nil {
		t.Errorf("expected negative max depth to be rejected")
	}
}

func TestConfiguredThreshold(t *testing.T) {
	up, err := fixturerp.New()
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}
	admin, err := adminuc.New(up)
	if err != nil {
		t.Fatalf("adminuc.New: %v", err)
	}
	r, err := report.New()
	if err != nil {
		t.Fatalf("report.New: %v", err)
	}
	reports, err := reportsuc.New(up, r, reportsuc.WithLowStockThreshold(10))
	if err != nil {
		t.Fatalf("reportsuc.New: %v", err)
	}
	s, err := gqlapi.New(admin, reports)
	if err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	for query, expected := range map[string]string{
		`{ sparePartsLowStock { id } }`:                  `{"sparePartsLowStock":[]}`,
		`{ sparePartsLowStock(threshold: null) { id } }`: `{"sparePartsLowStock":[{"id":"2"},{"id":"5"}]}`,
	} {
		resp := s.Exec(context.Background(), "", query, "", nil)
		if len(resp.Errors) != 0 {
			t.Fatalf("%s: unexpected errors: %v", query, resp.Errors)
		}
		if got := string(resp.Data); got != expected {
			t.Errorf("%s: unexpected data: %s", query, got)
		}
	}
}

func TestTokenIsForwarded(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id": 7, "name": "Rosa"}]`))
		},
	))
	defer srv.Close()
	up, err := restrp.New(srv.URL)
	if err != nil {
		t.Fatalf("restrp.New: %v", err)
	}
	s, err := newSchema(up)
	if err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	resp := s.Exec(context.Background(), "abc", `{ users { id name } }`, "", nil)
	if len(resp.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", resp.Errors)
	}
	if auth != "Bearer abc" {
		t.Errorf("expected Bearer abc header, got %q", auth)
	}
	if got := string(resp.Data); got != `{"users":[{"id":"7","name":"Rosa"}]}` {
		t.Errorf("unexpected data: %s", got)
	}
}
