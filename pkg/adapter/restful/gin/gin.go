package gin

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/repair-gateway/pkg/core/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// SetMode selects the debug, release, or test mode of gin.
func SetMode(mode string) {
	gin.SetMode(mode)
}

// Logger writes one info record per request using the core/log
// package, so the request id of RequestID middleware is included.
func Logger() HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		ctx := c.Request.Context()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}
		log.Info(ctx, "request is served", attrs...)
	}
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// RequestID reuses the X-Request-ID of the request or generates one,
// echoes it in the response, and adds it to the logging context.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		ctx := log.With(c.Request.Context(), log.RequestID(id))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CORS allows browsers of the given origins to call the gateway.
func CORS(origins []string) HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Authorization", RequestIDHeader,
		},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// Metrics counts the served requests by their route and status, and
// observes their latencies. A nil reg keeps them unregistered.
func Metrics(reg prometheus.Registerer) HandlerFunc {
	f := promauto.With(reg)
	labels := []string{"method", "route", "status"}
	total := f.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rgweb",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Served HTTP requests by method, route, and status.",
	}, labels)
	duration := f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rgweb",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method, route, and status.",
		Buckets:   prometheus.DefBuckets,
	}, labels)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		lvs := []string{
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		}
		total.WithLabelValues(lvs...).Inc()
		duration.WithLabelValues(lvs...).Observe(
			time.Since(start).Seconds(),
		)
	}
}
