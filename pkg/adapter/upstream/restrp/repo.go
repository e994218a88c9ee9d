// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package restrp implements the repo.Upstream port by calling the
// repair business REST API. Every operation is a single GET request
// which is bounded by a timeout (10s by default) and is never retried.
// Responses are decoded with json.Number values, so money amounts keep
// their exact decimal text until the model layer converts them.
package restrp

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/momeni/repair-gateway/pkg/core/repo"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultTimeout bounds each upstream request when WithTimeout is not
// used.
const DefaultTimeout = 10 * time.Second

// Repo keeps the upstream base URL and the shared HTTP client.
// It is safe for concurrent use. Credentials are not kept by Repo and
// must be bound per caller using the Bearer method.
type Repo struct {
	base    string
	client  *http.Client
	timeout time.Duration
	reg     prometheus.Registerer
	metrics *metrics
}

// Option is a functional option for the New function.
type Option func(r *Repo) error

// WithTimeout configures the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Repo) error {
		if d <= 0 {
			return fmt.Errorf("timeout (%v) is not positive", d)
		}
		if r.timeout != 0 {
			return errors.New("timeout is already configured")
		}
		r.timeout = d
		return nil
	}
}

// WithHTTPClient replaces the HTTP client which is used for sending
// requests. Its Timeout field is overwritten by the configured timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Repo) error {
		if c == nil {
			return errors.New("nil http client")
		}
		r.client = c
		return nil
	}
}

// WithRegisterer registers the client metrics with reg.
// Without this option, metrics are collected but not exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(r *Repo) error {
		r.reg = reg
		return nil
	}
}

// New instantiates a Repo which sends requests to the apiURL base.
// The apiURL must be an absolute http or https URL. A trailing slash
// is ignored, so "http://api/" and "http://api" are equivalent.
func New(apiURL string, opts ...Option) (*Repo, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("parsing api url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api url %q is not absolute", apiURL)
	}
	r := &Repo{base: strings.TrimRight(apiURL, "/")}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if r.timeout == 0 {
		r.timeout = DefaultTimeout
	}
	if r.client == nil {
		r.client = &http.Client{}
	}
	c := *r.client
	c.Timeout = r.timeout
	r.client = &c
	r.metrics = newMetrics(r.reg)
	return r, nil
}

// Bearer binds token to a new queryer. The "Bearer " prefix is added
// if it is missing and an empty token sends no Authorization header.
func (r *Repo) Bearer(token string) repo.UpstreamQueryer {
	return queryer{Repo: r, auth: Authorization(token)}
}

// Authorization normalizes token as an Authorization header value.
func Authorization(token string) string {
	token = strings.TrimSpace(token)
	switch {
	case token == "":
		return ""
	case strings.HasPrefix(token, "Bearer "):
		return token
	default:
		return "Bearer " + token
	}
}
