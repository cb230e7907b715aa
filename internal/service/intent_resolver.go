package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sit-academy/enrollment-api/internal/models"
	appErrors "github.com/sit-academy/enrollment-api/pkg/errors"
)

// ResolveIntentInput accepts both supported course shapes: the
// structured Course object, or the legacy loose fields sent by older
// clients. Exactly one normalized intent comes out or a validation
// error does; nothing ever defaults silently.
type ResolveIntentInput struct {
	Course *models.Course

	// Legacy loose fields, used only when Course is nil.
	CourseID        string
	CourseTitle     string
	CourseShortForm string
	CoursePrice     float64

	Batch   *models.BatchDetails
	Auth    models.AuthState
	User    *models.UserInfo
	Contact models.GuestContact
}

// IntentResolver classifies an enrollment attempt into exactly one
// path. It is pure: no I/O, no ambient session reads, the caller's
// authentication state arrives as an explicit parameter.
type IntentResolver struct {
	validator *validator.Validate
}

// NewIntentResolver constructs an IntentResolver.
func NewIntentResolver(validate *validator.Validate) *IntentResolver {
	if validate == nil {
		validate = validator.New()
	}
	return &IntentResolver{validator: validate}
}

// Resolve normalizes the input into a canonical EnrollmentIntent.
//
// Guests always resolve to the inquiry path once their contact fields
// check out; price never matters to a guest because they never reach
// the paid branch. Authenticated callers resolve to the enrollment
// path provided the course is fully identified. Whether the paid or
// free branch applies is decided later, inside the workflow, only
// after the enrollment record exists.
func (r *IntentResolver) Resolve(input ResolveIntentInput) (*models.EnrollmentIntent, error) {
	course := r.normalizeCourse(input)

	switch input.Auth {
	case models.AuthStateGuest:
		contact := models.GuestContact{
			Name:  strings.TrimSpace(input.Contact.Name),
			Email: strings.TrimSpace(input.Contact.Email),
			Phone: strings.TrimSpace(input.Contact.Phone),
		}
		if err := r.validator.Struct(contact); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name, email and phone are required")
		}
		if course.Title == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "course information is missing")
		}
		return &models.EnrollmentIntent{
			Path:    models.PathInquiry,
			Course:  course,
			Batch:   input.Batch,
			Auth:    models.AuthStateGuest,
			Contact: contact,
		}, nil

	case models.AuthStateAuthenticated:
		if input.User == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "authenticated intent requires a user")
		}
		if course.ID == "" || course.Title == "" || course.ShortForm == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "course information is missing")
		}
		return &models.EnrollmentIntent{
			Path:   models.PathEnrollment,
			Course: course,
			Batch:  input.Batch,
			Auth:   models.AuthStateAuthenticated,
			User:   input.User,
		}, nil

	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognized authentication state")
	}
}

func (r *IntentResolver) normalizeCourse(input ResolveIntentInput) models.Course {
	if input.Course != nil {
		return *input.Course
	}
	return models.Course{
		ID:        strings.TrimSpace(input.CourseID),
		Title:     strings.TrimSpace(input.CourseTitle),
		ShortForm: strings.TrimSpace(input.CourseShortForm),
		Price:     input.CoursePrice,
	}
}
