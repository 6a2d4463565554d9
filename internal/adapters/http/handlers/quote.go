// Package handlers provides HTTP request handlers for the service.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"insquote/internal/adapters/http/dto"
	"insquote/internal/app"
)

// QuoteHandler handles quote-related HTTP endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// CreateQuote handles POST /api/v1/quotes.
// Runs the full quoting pipeline and returns the persisted quote with 201.
// Validation failures return 400 with field-level details; a persistence
// failure returns 503 and the request is safe to retry.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"request body must be valid JSON",
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	quote, err := h.service.CreateQuote(c.Request.Context(), req.ToDomain())
	if err != nil {
		dto.HandleError(c, err)

		return
	}

	c.JSON(http.StatusCreated, dto.FromQuote(quote))
}

// GetQuote handles GET /api/v1/quotes/:id.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"quote ID must be an integer",
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	quote, err := h.service.GetQuote(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)

		return
	}

	c.JSON(http.StatusOK, dto.FromQuote(quote))
}

// ListQuotes handles GET /api/v1/quotes.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.service.ListQuotes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)

		return
	}

	c.JSON(http.StatusOK, dto.FromQuotes(quotes))
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.POST("", h.CreateQuote)
	quotes.GET("", h.ListQuotes)
	quotes.GET("/:id", h.GetQuote)
}
