// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reportsrs realizes the reports resource, so the PDF reports
// can be downloaded directly instead of as base64 GraphQL strings.
package reportsrs

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/repair-gateway/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/repair-gateway/pkg/core/usecase/reportsuc"
)

type resource struct {
	reports *reportsuc.UseCase
}

// Register instantiates a resource adapting the reports use case with:
//  1. GET request to /reports/:name?id=&status=&threshold=
//     in order to download the name report as a PDF file.
func Register(r gin.IRouter, reports *reportsuc.UseCase) {
	rs := &resource{reports: reports}
	r.GET("/reports/:name", rs.Download)
}

func (rs *resource) Download(c *gin.Context) {
	req := rs.DserDownloadReq(c)
	if req == nil {
		return
	}
	pdf, err := rs.reports.PDF(
		c.Request.Context(), req.Token, req.Name, req.Params,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Header(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s.pdf"`, req.Name),
	)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
