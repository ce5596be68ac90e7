package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ParseBookID reads the :id path parameter.
func ParseBookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid book ID.")
		return 0, false
	}
	return id, true
}

// ListBooks - GET /api/v1/books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, "", books)
}

// GetBook - GET /api/v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := ParseBookID(c)
	if !ok {
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, "", book)
}

// AddBook - POST /api/v1/books
func (h *Handler) AddBook(c *gin.Context) {
	var req model.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body.")
		return
	}

	res, err := h.service.AddBook(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, http.StatusCreated, res.Message, res.Book)
}

// SearchBooks - GET /api/v1/books/search?q=&type=
func (h *Handler) SearchBooks(c *gin.Context) {
	req := model.SearchBooksRequest{
		Query: c.Query("q"),
		Type:  c.DefaultQuery("type", model.SearchByTitle),
	}

	books, err := h.service.SearchBooks(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, "", books)
}

// ExportCatalog - GET /api/v1/books/export
func (h *Handler) ExportCatalog(c *gin.Context) {
	f, err := h.service.ExportCatalog(c.Request.Context())
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("catalog_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
