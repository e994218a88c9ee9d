// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package restrp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/repair-gateway/pkg/core/cerr"
	"github.com/momeni/repair-gateway/pkg/core/log"
	"github.com/momeni/repair-gateway/pkg/core/model"
)

const (
	maxBodySize  = 32 << 20
	maxErrorBody = 512
)

type queryer struct {
	*Repo
	auth string
}

func (q queryer) Users(ctx context.Context) ([]model.Record, error) {
	return q.list(ctx, "/users", "/users")
}

func (q queryer) User(ctx context.Context, id string) (model.Record, error) {
	return q.object(ctx, "/users/{id}", "/users/"+url.PathEscape(id))
}

func (q queryer) Technicians(ctx context.Context) ([]model.Record, error) {
	return q.list(ctx, "/users/technician", "/users/technician")
}

func (q queryer) Equipments(ctx context.Context) ([]model.Record, error) {
	return q.list(ctx, "/equipments", "/equipments")
}

func (q queryer) Equipment(
	ctx context.Context, id string,
) (model.Record, error) {
	return q.object(
		ctx, "/equipments/{id}", "/equipments/"+url.PathEscape(id),
	)
}

func (q queryer) SpareParts(ctx context.Context) ([]model.Record, error) {
	return q.list(ctx, "/spare-parts", "/spare-parts")
}

func (q queryer) Services(ctx context.Context) ([]model.Record, error) {
	return q.list(ctx, "/services", "/services")
}

func (q queryer) RepairOrders(ctx context.Context) ([]model.Record, error) {
	return q.list(ctx, "/repair-orders", "/repair-orders")
}

func (q queryer) RepairOrder(
	ctx context.Context, id string,
) (model.Record, error) {
	return q.object(
		ctx, "/repair-orders/{id}", "/repair-orders/"+url.PathEscape(id),
	)
}

// list fetches path and decodes it as a JSON array of objects.
// The endpoint argument is the path template which labels metrics.
func (q queryer) list(
	ctx context.Context, endpoint, path string,
) ([]model.Record, error) {
	v, err := q.get(ctx, endpoint, path)
	if err != nil {
		return nil, err
	}
	switch l := v.(type) {
	case nil:
		return []model.Record{}, nil
	case []any:
		return model.Records(l), nil
	default:
		return nil, cerr.Upstream(&cerr.UpstreamError{
			Method: http.MethodGet, Path: path, Status: http.StatusOK,
			Err:  fmt.Errorf("expected a JSON array, got %T", v),
			Body: "unexpected JSON shape",
		})
	}
}

// object fetches path and decodes it as one JSON object.
func (q queryer) object(
	ctx context.Context, endpoint, path string,
) (model.Record, error) {
	v, err := q.get(ctx, endpoint, path)
	if err != nil {
		return nil, err
	}
	switch m := v.(type) {
	case nil:
		return model.Record{}, nil
	case map[string]any:
		return model.Record(m), nil
	default:
		return nil, cerr.Upstream(&cerr.UpstreamError{
			Method: http.MethodGet, Path: path, Status: http.StatusOK,
			Err:  fmt.Errorf("expected a JSON object, got %T", v),
			Body: "unexpected JSON shape",
		})
	}
}

// get sends one GET request and decodes its JSON body. An empty body
// decodes as nil. Failures are returned as *cerr.Error values which
// wrap a *cerr.UpstreamError.
func (q queryer) get(ctx context.Context, endpoint, path string) (any, error) {
	start := time.Now()
	v, ue := q.do(ctx, path)
	if ue != nil {
		q.metrics.observe(endpoint, start, ue)
		log.Warn(
			ctx, "upstream request failed",
			slog.String("path", path),
			log.Err("error", ue),
		)
		return nil, cerr.Upstream(ue)
	}
	q.metrics.observe(endpoint, start, nil)
	log.Debug(
		ctx, "upstream request served",
		slog.String("path", path),
		slog.Duration("latency", time.Since(start)),
	)
	return v, nil
}

func (q queryer) do(ctx context.Context, path string) (any, *cerr.UpstreamError) {
	ue := &cerr.UpstreamError{Method: http.MethodGet, Path: path}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, q.base+path, nil,
	)
	if err != nil {
		ue.Err = fmt.Errorf("creating request: %w", err)
		return nil, ue
	}
	req.Header.Set("Accept", "application/json")
	if q.auth != "" {
		req.Header.Set("Authorization", q.auth)
	}
	resp, err := q.client.Do(req)
	if err != nil {
		ue.Err = err
		return nil, ue
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		ue.Err = fmt.Errorf("reading body: %w", err)
		return nil, ue
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ue.Status = resp.StatusCode
		ue.Body = string(bytes.TrimSpace(body))
		if len(ue.Body) > maxErrorBody {
			ue.Body = ue.Body[:maxErrorBody]
		}
		return nil, ue
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		ue.Status = resp.StatusCode
		ue.Err = fmt.Errorf("decoding body: %w", err)
		ue.Body = "malformed JSON"
		return nil, ue
	}
	return v, nil
}
