// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// UpstreamError indicates that a request to the upstream REST API has
// failed, either at the transport level (Status is zero and Err holds
// the cause) or by a non-2xx HTTP status. Body keeps the (possibly
// truncated) upstream response body for diagnosis.
type UpstreamError struct {
	Method string
	Path   string
	Status int
	Body   string
	Err    error
}

// Error reports the failed request and its status or cause.
func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream %s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf(
			"upstream %s %s: status %d", e.Method, e.Path, e.Status,
		)
	}
	return fmt.Sprintf(
		"upstream %s %s: status %d: %s",
		e.Method, e.Path, e.Status, e.Body,
	)
}

// Unwrap returns the transport error, if any.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Timeout reports if the request was abandoned because of a deadline.
func (e *UpstreamError) Timeout() bool {
	var t interface{ Timeout() bool }
	return e.Status == 0 && errors.As(e.Err, &t) && t.Timeout()
}

// HTTPStatus maps e to the status code which a gateway should report
// to its own clients. Client errors of the upstream (e.g., 404 or 401)
// are passed through while other failures become 502 or 504.
func (e *UpstreamError) HTTPStatus() int {
	switch {
	case e.Timeout():
		return http.StatusGatewayTimeout
	case e.Status >= 400 && e.Status < 500:
		return e.Status
	default:
		return http.StatusBadGateway
	}
}

// Upstream wraps an UpstreamError as an *Error with its mapped status.
func Upstream(e *UpstreamError) *Error {
	switch s := e.HTTPStatus(); s {
	case http.StatusUnauthorized:
		return Authentication(e)
	case http.StatusForbidden:
		return Authorization(e)
	case http.StatusNotFound:
		return NotFound(e)
	case http.StatusBadGateway:
		return BadGateway(e)
	case http.StatusGatewayTimeout:
		return GatewayTimeout(e)
	default:
		return &Error{Err: e, HTTPStatusCode: s}
	}
}
