package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"insquote/internal/adapters/http/dto"
	"insquote/internal/app"
)

// GenderHandler exposes gender inference as a standalone endpoint.
type GenderHandler struct {
	service *app.QuoteService
}

// NewGenderHandler creates a new gender handler.
func NewGenderHandler(service *app.QuoteService) *GenderHandler {
	return &GenderHandler{
		service: service,
	}
}

// InferGender handles POST /api/v1/gender.
// Inference never fails: an unknown name resolves to the fixed default, so
// the response is always 200 with a definite gender.
func (h *GenderHandler) InferGender(c *gin.Context) {
	var req dto.GenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"request body must be valid JSON",
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	res := h.service.InferGender(c.Request.Context(), req.Name)

	c.JSON(http.StatusOK, dto.FromResolution(res))
}

// RegisterGenderRoutes registers gender routes on the given router group.
func (h *GenderHandler) RegisterGenderRoutes(rg *gin.RouterGroup) {
	rg.POST("/gender", h.InferGender)
}
