package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookHandler "library-backend/internal/domains/book/handler"
	"library-backend/internal/domains/circulation/model"
	"library-backend/internal/domains/circulation/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// BorrowBook - POST /api/v1/books/:id/borrow
func (h *Handler) BorrowBook(c *gin.Context) {
	bookID, ok := bookHandler.ParseBookID(c)
	if !ok {
		return
	}

	var req model.PatronRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body.")
		return
	}

	res, err := h.service.BorrowBook(c.Request.Context(), req.PatronID, bookID)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, http.StatusCreated, res.Message, res.Record)
}

// ReturnBook - POST /api/v1/books/:id/return
func (h *Handler) ReturnBook(c *gin.Context) {
	bookID, ok := bookHandler.ParseBookID(c)
	if !ok {
		return
	}

	var req model.PatronRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body.")
		return
	}

	res, err := h.service.ReturnBook(c.Request.Context(), req.PatronID, bookID)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, res.Message, res)
}

// GetLateFee - GET /api/v1/books/:id/late-fee?patron_id=
func (h *Handler) GetLateFee(c *gin.Context) {
	bookID, ok := bookHandler.ParseBookID(c)
	if !ok {
		return
	}

	fee, err := h.service.CalculateLateFee(c.Request.Context(), c.Query("patron_id"), bookID)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, string(fee.Status), fee)
}

// GetPatronStatus - GET /api/v1/patrons/:patron_id/status
// The report is served as-is; a report carrying an error gets 400.
func (h *Handler) GetPatronStatus(c *gin.Context) {
	report := h.service.GetPatronStatus(c.Request.Context(), c.Param("patron_id"))

	status := http.StatusOK
	if report.Error != "" {
		status = http.StatusBadRequest
		if report.Error == model.MsgLoadDBError {
			status = http.StatusInternalServerError
		}
	}
	c.JSON(status, report)
}
