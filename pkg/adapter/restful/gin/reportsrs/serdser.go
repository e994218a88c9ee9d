package reportsrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/repair-gateway/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/repair-gateway/pkg/core/usecase/reportsuc"
)

type rawDownloadReq struct {
	ID        string `form:"id"`
	Status    string `form:"status"`
	Threshold *int64 `form:"threshold" binding:"omitempty,min=0"`
}

type downloadReq struct {
	Token  string
	Name   string
	Params reportsuc.Params
}

func (rs *resource) DserDownloadReq(c *gin.Context) *downloadReq {
	req := &rawDownloadReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	val := &downloadReq{
		Token: c.GetHeader("Authorization"),
		Name:  c.Param("name"),
		Params: reportsuc.Params{
			ID:        req.ID,
			Status:    req.Status,
			Threshold: rs.reports.LowStockThreshold(),
		},
	}
	if req.Threshold != nil {
		val.Params.Threshold = *req.Threshold
	}
	return val
}
