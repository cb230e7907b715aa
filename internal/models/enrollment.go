package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusWaiting       EnrollmentStatus = "WAITING_APPROVAL"
	EnrollmentStatusApproved      EnrollmentStatus = "APPROVED"
	EnrollmentStatusCertified     EnrollmentStatus = "CERTIFIED"
	EnrollmentStatusWithdrawn     EnrollmentStatus = "WITHDRAWN"
	EnrollmentStatusPaymentFailed EnrollmentStatus = "PAYMENT_FAILED"
)

// BatchDetails pins the cohort an enrollment was taken against. When
// the student picks no batch the workflow substitutes the standard
// ninety-day default batch.
type BatchDetails struct {
	BatchID   string `db:"batch_id" json:"batchId"`
	BatchName string `db:"batch_name" json:"batchName"`
	StartDate string `db:"batch_start" json:"startdate"`
	EndDate   string `db:"batch_end" json:"enddate"`
}

// Enrollment captures a student's seat reservation in a course batch.
type Enrollment struct {
	ID              string           `db:"id" json:"enrollmentID"`
	UserID          string           `db:"user_id" json:"-"`
	UserEmail       string           `db:"user_email" json:"email"`
	CourseID        string           `db:"course_id" json:"courseID"`
	CourseShortForm string           `db:"course_short_form" json:"courseShortForm"`
	CourseTitle     string           `db:"course_title" json:"courseTitle"`
	Batch           BatchDetails     `db:"batch" json:"batchDetails"`
	Status          EnrollmentStatus `db:"status" json:"enrollmentStatus"`
	CertificationID *string          `db:"certification_id" json:"certificationID,omitempty"`
	EnrolledAt      time.Time        `db:"enrolled_at" json:"enrolledDate"`
}
