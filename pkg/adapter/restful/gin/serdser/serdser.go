package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/repair-gateway/pkg/core/cerr"
	"github.com/momeni/repair-gateway/pkg/core/log"
)

// Bind deserializes the request into req with b and validates it.
// Failures are written as a 400 response and false is returned, so
// the caller may just return.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case nil:
		return true
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	(*errs)[name] = append((*errs)[name], msgs...)
}

// SerErr writes err as a {"detail": ...} response. A *cerr.Error or
// *cerr.UpstreamError selects the status code and other errors are
// reported as internal errors.
func SerErr(c *gin.Context, err error) {
	var ue *cerr.UpstreamError
	var ce *cerr.Error
	switch {
	case errors.As(err, &ce):
	case errors.As(err, &ue):
		ce = cerr.Upstream(ue)
	default:
		log.Error(
			c.Request.Context(), "request has failed", log.Err("err", err),
		)
		ce = cerr.Internal(err)
	}
	c.JSON(ce.HTTPStatusCode, gin.H{
		"detail": ce.Err.Error(),
	})
}
