package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sit-academy/enrollment-api/internal/middleware"
	"github.com/sit-academy/enrollment-api/internal/models"
	"github.com/sit-academy/enrollment-api/internal/service"
)

type stubInquiryStore struct {
	created int
	err     error
}

func (s *stubInquiryStore) Create(context.Context, *models.Inquiry) error {
	if s.err == nil {
		s.created++
	}
	return s.err
}

type stubEnrollmentStore struct {
	created int
}

func (s *stubEnrollmentStore) Create(context.Context, *models.Enrollment) error {
	s.created++
	return nil
}

func (s *stubEnrollmentStore) UpdateStatus(context.Context, string, models.EnrollmentStatus) error {
	return nil
}

func newEnrollTestHandler(inquiries *stubInquiryStore, enrollments *stubEnrollmentStore) *EnrollmentHandler {
	resolver := service.NewIntentResolver(nil)
	workflow := service.NewEnrollmentService(inquiries, enrollments, nil, nil, nil, zap.NewNop())
	return NewEnrollmentHandler(resolver, workflow)
}

func postEnroll(handler *EnrollmentHandler, body string, claims *models.JWTClaims) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/enroll", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	handler.Enroll(c)
	return rec
}

func TestEnrollHandlerGuestInquiry(t *testing.T) {
	inquiries := &stubInquiryStore{}
	handler := newEnrollTestHandler(inquiries, &stubEnrollmentStore{})

	body := `{"courseTitle":"AWS Fundamentals","name":"Asha Rao","email":"asha@example.com","phone":"+91-9000000000"}`
	rec := postEnroll(handler, body, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, inquiries.created)

	var envelope struct {
		Data models.EnrollmentOutcome `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, models.OutcomeInquirySubmitted, envelope.Data.Kind)
}

func TestEnrollHandlerGuestMissingContact(t *testing.T) {
	inquiries := &stubInquiryStore{}
	handler := newEnrollTestHandler(inquiries, &stubEnrollmentStore{})

	body := `{"courseTitle":"AWS Fundamentals","name":"Asha Rao"}`
	rec := postEnroll(handler, body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, inquiries.created, "nothing may be persisted when resolution fails")
}

func TestEnrollHandlerAuthenticatedFreeCourse(t *testing.T) {
	enrollments := &stubEnrollmentStore{}
	handler := newEnrollTestHandler(&stubInquiryStore{}, enrollments)

	claims := &models.JWTClaims{UserID: "usr-1", Email: "student@example.com", Role: models.RoleStudent}
	body := `{"courseId":"aws-fundamentals","courseTitle":"AWS Fundamentals","courseShortForm":"AWS","coursePrice":0}`
	rec := postEnroll(handler, body, claims)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, enrollments.created)

	var envelope struct {
		Data models.EnrollmentOutcome `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, models.OutcomeEnrolledFree, envelope.Data.Kind)
	assert.NotEmpty(t, envelope.Data.EnrollmentID)
}

func TestEnrollHandlerMalformedBody(t *testing.T) {
	handler := newEnrollTestHandler(&stubInquiryStore{}, &stubEnrollmentStore{})

	rec := postEnroll(handler, `{"courseTitle":`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
