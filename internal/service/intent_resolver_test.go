package service

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sit-academy/enrollment-api/internal/models"
	appErrors "github.com/sit-academy/enrollment-api/pkg/errors"
)

func testCourse() *models.Course {
	return &models.Course{ID: "aws-fundamentals", Title: "AWS Fundamentals", ShortForm: "AWS", Price: 15000}
}

func TestResolveGuestIntent(t *testing.T) {
	resolver := NewIntentResolver(validator.New())

	intent, err := resolver.Resolve(ResolveIntentInput{
		Course: testCourse(),
		Auth:   models.AuthStateGuest,
		Contact: models.GuestContact{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Phone: "+91-9000000000",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PathInquiry, intent.Path)
	assert.Equal(t, "AWS Fundamentals", intent.Course.Title)
}

func TestResolveGuestIntentIgnoresPrice(t *testing.T) {
	resolver := NewIntentResolver(validator.New())

	for _, price := range []float64{0, 15000} {
		course := testCourse()
		course.Price = price
		intent, err := resolver.Resolve(ResolveIntentInput{
			Course:  course,
			Auth:    models.AuthStateGuest,
			Contact: models.GuestContact{Name: "Asha Rao", Email: "asha@example.com", Phone: "+91-9000000000"},
		})
		require.NoError(t, err)
		assert.Equal(t, models.PathInquiry, intent.Path)
	}
}

func TestResolveGuestIntentMissingContact(t *testing.T) {
	resolver := NewIntentResolver(validator.New())

	cases := []models.GuestContact{
		{Email: "asha@example.com", Phone: "+91-9000000000"},
		{Name: "Asha Rao", Phone: "+91-9000000000"},
		{Name: "Asha Rao", Email: "asha@example.com"},
		{Name: "   ", Email: "asha@example.com", Phone: "+91-9000000000"},
	}
	for _, contact := range cases {
		_, err := resolver.Resolve(ResolveIntentInput{Course: testCourse(), Auth: models.AuthStateGuest, Contact: contact})
		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	}
}

func TestResolveAuthenticatedIntent(t *testing.T) {
	resolver := NewIntentResolver(validator.New())

	intent, err := resolver.Resolve(ResolveIntentInput{
		Course: testCourse(),
		Auth:   models.AuthStateAuthenticated,
		User:   &models.UserInfo{ID: "usr-1", Email: "student@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PathEnrollment, intent.Path)
	require.NotNil(t, intent.User)
	assert.Equal(t, "usr-1", intent.User.ID)
}

func TestResolveAuthenticatedIntentMissingCourseInfo(t *testing.T) {
	resolver := NewIntentResolver(validator.New())

	cases := []models.Course{
		{Title: "AWS Fundamentals", ShortForm: "AWS"},
		{ID: "aws-fundamentals", ShortForm: "AWS"},
		{ID: "aws-fundamentals", Title: "AWS Fundamentals"},
	}
	for _, course := range cases {
		c := course
		_, err := resolver.Resolve(ResolveIntentInput{
			Course: &c,
			Auth:   models.AuthStateAuthenticated,
			User:   &models.UserInfo{ID: "usr-1"},
		})
		require.Error(t, err)
		assert.Equal(t, "course information is missing", appErrors.FromError(err).Message)
	}
}

func TestResolveNormalizesLegacyCourseFields(t *testing.T) {
	resolver := NewIntentResolver(validator.New())

	intent, err := resolver.Resolve(ResolveIntentInput{
		CourseID:        " aws-fundamentals ",
		CourseTitle:     "AWS Fundamentals",
		CourseShortForm: "AWS",
		CoursePrice:     15000,
		Auth:            models.AuthStateAuthenticated,
		User:            &models.UserInfo{ID: "usr-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "aws-fundamentals", intent.Course.ID)
	assert.Equal(t, float64(15000), intent.Course.Price)
}

func TestResolveRejectsUnknownAuthState(t *testing.T) {
	resolver := NewIntentResolver(validator.New())

	_, err := resolver.Resolve(ResolveIntentInput{Course: testCourse(), Auth: models.AuthState("anonymous")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestResolveAuthenticatedIntentRequiresUser(t *testing.T) {
	resolver := NewIntentResolver(validator.New())

	_, err := resolver.Resolve(ResolveIntentInput{Course: testCourse(), Auth: models.AuthStateAuthenticated})
	require.Error(t, err)
}
