// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package graphqlrs realizes the GraphQL resource, accepting GraphQL
// queries over GET and POST requests and delegating them to the
// gqlapi schema. The Authorization header of the caller is forwarded
// to the upstream API as is.
package graphqlrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/repair-gateway/pkg/adapter/gqlapi"
)

type resource struct {
	schema *gqlapi.Schema
}

// Register instantiates a resource adapting the s schema with:
//  1. POST request to path with a JSON body like
//     {"query": "...", "operationName": "...", "variables": {...}},
//  2. GET request to path with query, operationName, and variables
//     query parameters, where variables is a JSON encoded object.
//
// Both of them respond with the {data, errors} GraphQL envelope.
func Register(r gin.IRouter, path string, s *gqlapi.Schema) {
	rs := &resource{schema: s}
	r.POST(path, rs.Query)
	r.GET(path, rs.Query)
}

func (rs *resource) Query(c *gin.Context) {
	req := rs.DserQueryReq(c)
	if req == nil {
		return
	}
	ctx := withSubject(c.Request.Context(), req.Token)
	resp := rs.schema.Exec(
		ctx, req.Token, req.Query, req.OperationName, req.Variables,
	)
	c.JSON(http.StatusOK, resp)
}
