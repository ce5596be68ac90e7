package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/books/:id", "204"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books/7", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books/8", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/books/:id", "204")))
}

func TestRecorders(t *testing.T) {
	borrowOK := testutil.ToFloat64(circulationOperations.WithLabelValues("borrow", OutcomeSuccess))
	chargeErr := testutil.ToFloat64(gatewayCalls.WithLabelValues("charge", OutcomeError))
	charged := testutil.ToFloat64(lateFeesCharged)

	RecordCirculation("borrow", true)
	RecordGatewayCall("charge", OutcomeError)
	RecordLateFeeCharged(decimal.NewFromFloat(6.5))

	assert.Equal(t, borrowOK+1, testutil.ToFloat64(circulationOperations.WithLabelValues("borrow", OutcomeSuccess)))
	assert.Equal(t, chargeErr+1, testutil.ToFloat64(gatewayCalls.WithLabelValues("charge", OutcomeError)))
	assert.InDelta(t, charged+6.5, testutil.ToFloat64(lateFeesCharged), 1e-9)
}
