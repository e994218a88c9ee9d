// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fixturerp implements the repo.Upstream port with a fixed set
// of embedded records, shaped like the REST API responses. It allows
// the gateway to be demonstrated (upstream.mode: fixture) and tested
// without a running REST backend. Credentials are accepted and ignored.
package fixturerp

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/momeni/repair-gateway/pkg/core/cerr"
	"github.com/momeni/repair-gateway/pkg/core/model"
	"github.com/momeni/repair-gateway/pkg/core/repo"
)

//go:embed fixtures/*.json
var fixtures embed.FS

// Repo serves the embedded fixtures. Each call decodes a fresh copy,
// so callers may modify the returned records freely.
type Repo struct {
	files map[string][]byte
}

// New loads and validates all fixture files.
func New() (*Repo, error) {
	r := &Repo{files: make(map[string][]byte)}
	for _, name := range []string{
		"users", "technicians", "equipments",
		"spare-parts", "services", "repair-orders",
	} {
		b, err := fixtures.ReadFile("fixtures/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("reading %s fixture: %w", name, err)
		}
		r.files[name] = b
		if _, err := r.decode(name); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Bearer returns a queryer over the fixtures. The token is ignored.
func (r *Repo) Bearer(string) repo.UpstreamQueryer {
	return queryer{r}
}

func (r *Repo) decode(name string) ([]model.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(r.files[name]))
	dec.UseNumber()
	var l []any
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("decoding %s fixture: %w", name, err)
	}
	return model.Records(l), nil
}

type queryer struct {
	*Repo
}

func (q queryer) Users(context.Context) ([]model.Record, error) {
	return q.decode("users")
}

// User looks the id up among users and then technicians, like the
// REST API which serves both kinds from /users/{id}.
func (q queryer) User(_ context.Context, id string) (model.Record, error) {
	for _, name := range []string{"users", "technicians"} {
		recs, err := q.decode(name)
		if err != nil {
			return nil, err
		}
		if r := find(recs, id); r != nil {
			return r, nil
		}
	}
	return nil, notFound("/users/" + id)
}

func (q queryer) Technicians(context.Context) ([]model.Record, error) {
	return q.decode("technicians")
}

func (q queryer) Equipments(context.Context) ([]model.Record, error) {
	return q.decode("equipments")
}

func (q queryer) Equipment(_ context.Context, id string) (model.Record, error) {
	return q.one("equipments", "/equipments/", id)
}

func (q queryer) SpareParts(context.Context) ([]model.Record, error) {
	return q.decode("spare-parts")
}

func (q queryer) Services(context.Context) ([]model.Record, error) {
	return q.decode("services")
}

func (q queryer) RepairOrders(context.Context) ([]model.Record, error) {
	return q.decode("repair-orders")
}

func (q queryer) RepairOrder(
	_ context.Context, id string,
) (model.Record, error) {
	return q.one("repair-orders", "/repair-orders/", id)
}

func (q queryer) one(name, prefix, id string) (model.Record, error) {
	recs, err := q.decode(name)
	if err != nil {
		return nil, err
	}
	if r := find(recs, id); r != nil {
		return r, nil
	}
	return nil, notFound(prefix + id)
}

func find(recs []model.Record, id string) model.Record {
	for _, r := range recs {
		if r.ID() == id {
			return r
		}
	}
	return nil
}

func notFound(path string) error {
	return cerr.Upstream(&cerr.UpstreamError{
		Method: http.MethodGet,
		Path:   path,
		Status: http.StatusNotFound,
		Body:   "record not found",
	})
}
