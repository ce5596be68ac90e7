package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/payment/model"
	"library-backend/internal/domains/payment/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// PayLateFees - POST /api/v1/payments/late-fees
func (h *Handler) PayLateFees(c *gin.Context) {
	var req model.PayLateFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body.")
		return
	}

	txn, err := h.service.PayLateFees(c.Request.Context(), req.PatronID, req.BookID)
	if err != nil {
		if txn == nil {
			response.FromError(c, err, nil)
			return
		}
		response.FromError(c, err, txn)
		return
	}
	response.Success(c, http.StatusOK, txn.Message, txn)
}

// RefundLateFee - POST /api/v1/payments/refunds
func (h *Handler) RefundLateFee(c *gin.Context) {
	var req model.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body.")
		return
	}

	res, err := h.service.RefundLateFeePayment(c.Request.Context(), req.TransactionID, req.Amount)
	if err != nil {
		if res == nil {
			response.FromError(c, err, nil)
			return
		}
		response.FromError(c, err, res)
		return
	}
	response.Success(c, http.StatusOK, res.Message, res)
}
