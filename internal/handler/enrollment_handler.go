package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sit-academy/enrollment-api/internal/models"
	"github.com/sit-academy/enrollment-api/internal/service"
	appErrors "github.com/sit-academy/enrollment-api/pkg/errors"
	"github.com/sit-academy/enrollment-api/pkg/response"
)

// EnrollmentHandler exposes the enrollment submission endpoint. The
// same endpoint serves guests and signed-in students; the optional JWT
// on the route decides which path the submission resolves to.
type EnrollmentHandler struct {
	resolver *service.IntentResolver
	workflow *service.EnrollmentService
}

// NewEnrollmentHandler creates a new handler.
func NewEnrollmentHandler(resolver *service.IntentResolver, workflow *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{resolver: resolver, workflow: workflow}
}

type enrollRequest struct {
	CourseID        string               `json:"courseId"`
	CourseTitle     string               `json:"courseTitle"`
	CourseShortForm string               `json:"courseShortForm"`
	CoursePrice     float64              `json:"coursePrice"`
	BatchDetails    *models.BatchDetails `json:"batchDetails"`

	// Guest contact fields, ignored for authenticated submissions.
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Enroll godoc
// @Summary Submit an enrollment
// @Description Take an inquiry from a guest or enroll a signed-in student, initiating payment for priced courses
// @Tags Enrollment
// @Accept json
// @Produce json
// @Param payload body enrollRequest true "Enrollment payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /enroll [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid enrollment payload"))
		return
	}

	input := service.ResolveIntentInput{
		CourseID:        req.CourseID,
		CourseTitle:     req.CourseTitle,
		CourseShortForm: req.CourseShortForm,
		CoursePrice:     req.CoursePrice,
		Batch:           req.BatchDetails,
		Auth:            models.AuthStateGuest,
		Contact:         models.GuestContact{Name: req.Name, Email: req.Email, Phone: req.Phone},
	}
	if claims := claimsFromContext(c); claims != nil {
		info := claims.Info()
		input.Auth = models.AuthStateAuthenticated
		input.User = &info
	}

	intent, err := h.resolver.Resolve(input)
	if err != nil {
		response.Error(c, err)
		return
	}

	outcome := h.workflow.Execute(c.Request.Context(), intent)
	if !outcome.Succeeded() {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, outcome.Reason))
		return
	}

	response.JSON(c, http.StatusOK, outcome, nil)
}
