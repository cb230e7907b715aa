package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sit-academy/enrollment-api/internal/service"
	"github.com/sit-academy/enrollment-api/pkg/response"
)

// CatalogHandler serves the public course catalog.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler creates a new handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// CourseAndBatchDetails godoc
// @Summary Course catalog with batches
// @Description List active courses with their scheduled batches and live seat availability
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) CourseAndBatchDetails(c *gin.Context) {
	details, cached, err := h.service.CourseAndBatchDetails(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil, map[string]interface{}{"cached": cached})
}
