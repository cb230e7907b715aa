package models

// AuthState distinguishes guest visitors from signed-in students. It
// is always passed explicitly into intent resolution; nothing in the
// enrollment core reads session state ambiently.
type AuthState string

// Recognised authentication states.
const (
	AuthStateGuest         AuthState = "guest"
	AuthStateAuthenticated AuthState = "authenticated"
)

// EnrollmentPath is the classification an intent resolves to.
type EnrollmentPath string

// The two top-level enrollment paths. Pricing splits the enrollment
// path further, but only after the enrollment record exists.
const (
	PathInquiry    EnrollmentPath = "INQUIRY"
	PathEnrollment EnrollmentPath = "ENROLLMENT"
)

// GuestContact carries the contact fields a guest must supply before
// an inquiry can be taken.
type GuestContact struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// EnrollmentIntent is the canonical, request-scoped value an
// enrollment attempt normalizes into. It is constructed fresh per
// submission and never persisted.
type EnrollmentIntent struct {
	Path    EnrollmentPath
	Course  Course
	Batch   *BatchDetails
	Auth    AuthState
	User    *UserInfo
	Contact GuestContact
}
