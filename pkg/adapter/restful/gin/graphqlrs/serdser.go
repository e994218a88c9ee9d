package graphqlrs

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/momeni/repair-gateway/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/repair-gateway/pkg/core/log"
)

type rawPostQueryReq struct {
	Query         string         `json:"query" binding:"required"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

type rawGetQueryReq struct {
	Query         string `form:"query" binding:"required"`
	OperationName string `form:"operationName"`
	Variables     string `form:"variables"`
}

type queryReq struct {
	Token         string
	Query         string
	OperationName string
	Variables     map[string]any
}

func (rs *resource) DserQueryReq(c *gin.Context) *queryReq {
	val := &queryReq{Token: c.GetHeader("Authorization")}
	if c.Request.Method == http.MethodPost {
		req := &rawPostQueryReq{}
		if ok := serdser.Bind(c, req, binding.JSON); !ok {
			return nil
		}
		val.Query, val.OperationName = req.Query, req.OperationName
		val.Variables = req.Variables
		return val
	}
	req := &rawGetQueryReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	val.Query, val.OperationName = req.Query, req.OperationName
	if req.Variables != "" {
		if err := json.Unmarshal(
			[]byte(req.Variables), &val.Variables,
		); err != nil {
			var errs map[string][]string
			serdser.AddErr(
				&errs, "variables", "Query param variables is not a JSON object.",
			)
			c.JSON(http.StatusBadRequest, errs)
			return nil
		}
	}
	return val
}

// withSubject adds the sub claim of the token to the logging context.
// The header is forwarded as is, so it may carry a bare token or one
// with the "Bearer " prefix. The signature is not verified.
func withSubject(ctx context.Context, header string) context.Context {
	tok := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tok == "" {
		return ctx
	}
	t, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		log.Debug(ctx, "token is not a JWT", log.Err("err", err))
		return ctx
	}
	sub, err := t.Claims.GetSubject()
	if err != nil || sub == "" {
		return ctx
	}
	return log.With(ctx, log.Subject(sub))
}
