package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/payment/model"
	"library-backend/internal/shared/apperror"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) PayLateFees(ctx context.Context, patronID string, bookID int64) (*model.PaymentTransaction, error) {
	args := m.Called(ctx, patronID, bookID)
	txn, _ := args.Get(0).(*model.PaymentTransaction)
	return txn, args.Error(1)
}

func (m *mockService) RefundLateFeePayment(ctx context.Context, transactionID string, amount decimal.Decimal) (*model.RefundResult, error) {
	args := m.Called(ctx, transactionID, amount)
	res, _ := args.Get(0).(*model.RefundResult)
	return res, args.Error(1)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.POST("/payments/late-fees", h.PayLateFees)
	r.POST("/payments/refunds", h.RefundLateFee)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPayLateFees(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("PayLateFees", mock.Anything, "123456", int64(7)).Return(&model.PaymentTransaction{
			TransactionID: "txn_123456_1700000000",
			PatronID:      "123456",
			BookID:        7,
			Amount:        decimal.RequireFromString("6.50"),
			Success:       true,
			Message:       "Payment successful!",
		}, nil)

		w := post(setupRouter(svc), "/payments/late-fees", `{"patron_id":"123456","book_id":7}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "txn_123456_1700000000")
		svc.AssertExpectations(t)
	})

	t.Run("declined keeps the attempted transaction", func(t *testing.T) {
		svc := new(mockService)
		svc.On("PayLateFees", mock.Anything, "123456", int64(7)).Return(&model.PaymentTransaction{
			PatronID: "123456",
			BookID:   7,
			Amount:   decimal.RequireFromString("15.00"),
			Message:  "Payment failed: declined",
		}, apperror.Declined("Payment failed: declined"))

		w := post(setupRouter(svc), "/payments/late-fees", `{"patron_id":"123456","book_id":7}`)

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Amount decimal.Decimal `json:"amount"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.True(t, body.Data.Amount.Equal(decimal.NewFromInt(15)))
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := new(mockService)

		w := post(setupRouter(svc), "/payments/late-fees", `{"patron_id":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "PayLateFees", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRefundLateFee(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("RefundLateFeePayment", mock.Anything, "txn_123456_1", mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.RequireFromString("3.25"))
		})).Return(&model.RefundResult{TransactionID: "txn_123456_1", Success: true, Message: "ok"}, nil)

		w := post(setupRouter(svc), "/payments/refunds", `{"transaction_id":"txn_123456_1","amount":"3.25"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := new(mockService)
		svc.On("RefundLateFeePayment", mock.Anything, "bad", mock.Anything).
			Return(&model.RefundResult{TransactionID: "bad", Message: model.MsgInvalidTransaction}, apperror.Validation(model.MsgInvalidTransaction))

		w := post(setupRouter(svc), "/payments/refunds", `{"transaction_id":"bad","amount":1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), model.MsgInvalidTransaction)
	})
}
