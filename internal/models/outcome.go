package models

// OutcomeKind tags the terminal result of one workflow execution.
type OutcomeKind string

// Terminal workflow outcomes.
const (
	OutcomeInquirySubmitted       OutcomeKind = "INQUIRY_SUBMITTED"
	OutcomeEnrolledFree           OutcomeKind = "ENROLLED_FREE"
	OutcomeEnrolledPendingPayment OutcomeKind = "ENROLLED_PENDING_PAYMENT"
	OutcomeFailed                 OutcomeKind = "FAILED"
)

// EnrollmentOutcome is produced exactly once per workflow execution
// and consumed once by the caller.
type EnrollmentOutcome struct {
	Kind         OutcomeKind `json:"outcome"`
	EnrollmentID string      `json:"enrollmentId,omitempty"`
	PaymentURL   string      `json:"paymentUrl,omitempty"`
	Reason       string      `json:"reason,omitempty"`
}

// Succeeded reports whether the workflow reached a non-failure
// terminal state.
func (o EnrollmentOutcome) Succeeded() bool {
	return o.Kind != OutcomeFailed
}
