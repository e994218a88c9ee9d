// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of the repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/repair-gateway/pkg/adapter/config"
	rgin "github.com/momeni/repair-gateway/pkg/adapter/restful/gin"
	"github.com/momeni/repair-gateway/pkg/adapter/restful/gin/graphqlrs"
	"github.com/momeni/repair-gateway/pkg/adapter/restful/gin/reportsrs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Middlewares lists the gin middlewares which are enabled by c.
// The reg registry collects the HTTP metrics, if it is not nil.
func Middlewares(c *config.Config, reg *prometheus.Registry) []gin.HandlerFunc {
	mws := []gin.HandlerFunc{rgin.RequestID()}
	if *c.Gin.Logger {
		mws = append(mws, rgin.Logger())
	}
	if *c.Gin.Recovery {
		mws = append(mws, rgin.Recovery())
	}
	if len(c.Gin.AllowedOrigins) > 0 {
		mws = append(mws, rgin.CORS(c.Gin.AllowedOrigins))
	}
	if reg != nil {
		mws = append(mws, rgin.Metrics(reg))
	}
	return mws
}

// Register instantiates the upstream repository, the report renderer,
// the use cases, and the GraphQL schema based on the c configuration
// settings and registers their resources on the e engine:
//  1. the GraphQL endpoint at graphql.path (GET and POST),
//  2. GET /reports/:name for PDF downloads,
//  3. GET /health for liveness probes,
//  4. GET metrics.path for prometheus, if reg is not nil.
//
// Components register their metrics in reg too. Errors are returned
// after wrapping.
func Register(e *gin.Engine, c *config.Config, reg *prometheus.Registry) error {
	var registerer prometheus.Registerer
	if reg != nil {
		registerer = reg
	}
	u, err := c.NewUpstream(registerer)
	if err != nil {
		return fmt.Errorf("creating upstream repository: %w", err)
	}
	r, err := c.NewRenderer(registerer)
	if err != nil {
		return fmt.Errorf("creating report renderer: %w", err)
	}
	adminUseCase, err := c.NewAdminUseCase(u)
	if err != nil {
		return fmt.Errorf("creating admin use case: %w", err)
	}
	reportsUseCase, err := c.NewReportsUseCase(u, r)
	if err != nil {
		return fmt.Errorf("creating reports use case: %w", err)
	}
	s, err := c.NewSchema(adminUseCase, reportsUseCase)
	if err != nil {
		return fmt.Errorf("creating graphql schema: %w", err)
	}
	graphqlrs.Register(e, *c.GraphQL.Path, s)
	reportsrs.Register(e, reportsUseCase)
	e.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if reg != nil {
		e.GET(*c.Metrics.Path, gin.WrapH(
			promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		))
	}
	return nil
}
