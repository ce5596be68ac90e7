package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "library_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "library_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	circulationOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "library_circulation_operations_total",
		Help: "Borrow, return and fee operations by outcome",
	}, []string{"operation", "outcome"})

	gatewayCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "library_gateway_calls_total",
		Help: "Payment gateway invocations by outcome",
	}, []string{"operation", "outcome"})

	lateFeesCharged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "library_late_fees_charged_total",
		Help: "Sum of late fees successfully charged, in dollars",
	})
)

// Middleware records request count and latency keyed by the matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func RecordCirculation(operation string, success bool) {
	outcome := OutcomeSuccess
	if !success {
		outcome = OutcomeFailure
	}
	circulationOperations.WithLabelValues(operation, outcome).Inc()
}

func RecordGatewayCall(operation, outcome string) {
	gatewayCalls.WithLabelValues(operation, outcome).Inc()
}

func RecordLateFeeCharged(amount decimal.Decimal) {
	lateFeesCharged.Add(amount.InexactFloat64())
}
