package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sit-academy/enrollment-api/internal/service"
	"github.com/sit-academy/enrollment-api/pkg/response"
)

// InquiryHandler serves the admin inquiry listing.
type InquiryHandler struct {
	service *service.InquiryService
}

// NewInquiryHandler creates a new handler.
func NewInquiryHandler(svc *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{service: svc}
}

// List godoc
// @Summary List inquiries
// @Description List recent course inquiries, newest first
// @Tags Inquiries
// @Produce json
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /inquiries [get]
func (h *InquiryHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	inquiries, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inquiries, nil)
}
