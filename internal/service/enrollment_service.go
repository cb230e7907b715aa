package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sit-academy/enrollment-api/internal/models"
	appErrors "github.com/sit-academy/enrollment-api/pkg/errors"
	"github.com/sit-academy/enrollment-api/pkg/payment"
)

// The synthetic batch substituted when an authenticated caller picks
// no cohort spans exactly ninety days from the submission date.
const defaultBatchSpan = 90 * 24 * time.Hour

type inquiryWriter interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
}

type enrollmentWriter interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus) error
}

type paymentGateway interface {
	Initiate(ctx context.Context, req payment.Request) (*payment.Session, error)
}

type inquiryNotifier interface {
	Notify(inquiry models.Inquiry)
}

// EnrollmentService executes resolved enrollment intents end-to-end.
// Each invocation issues one fixed sequence of external calls for its
// path and produces exactly one terminal outcome. It never retries,
// never loops, and never blocks a full batch: seat capacity is
// advisory to the UI and the backend remains the authority.
type EnrollmentService struct {
	inquiries   inquiryWriter
	enrollments enrollmentWriter
	gateway     paymentGateway
	notifier    inquiryNotifier
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
}

// NewEnrollmentService constructs the workflow engine. The gateway and
// notifier may be nil when payments or follow-up dispatch are disabled.
func NewEnrollmentService(inquiries inquiryWriter, enrollments enrollmentWriter, gateway paymentGateway, notifier inquiryNotifier, metrics *MetricsService, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		inquiries:   inquiries,
		enrollments: enrollments,
		gateway:     gateway,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Execute runs the workflow for one resolved intent.
func (s *EnrollmentService) Execute(ctx context.Context, intent *models.EnrollmentIntent) models.EnrollmentOutcome {
	var outcome models.EnrollmentOutcome
	switch intent.Path {
	case models.PathInquiry:
		outcome = s.executeInquiry(ctx, intent)
	case models.PathEnrollment:
		outcome = s.executeEnrollment(ctx, intent)
	default:
		outcome = failedOutcome(fmt.Sprintf("unsupported enrollment path %q", intent.Path))
	}
	if s.metrics != nil {
		s.metrics.RecordWorkflowOutcome(string(outcome.Kind))
	}
	return outcome
}

func (s *EnrollmentService) executeInquiry(ctx context.Context, intent *models.EnrollmentIntent) models.EnrollmentOutcome {
	inquiry := models.Inquiry{
		ID:        uuid.NewString(),
		Name:      intent.Contact.Name,
		Email:     intent.Contact.Email,
		Phone:     intent.Contact.Phone,
		Course:    intent.Course.Title,
		Message:   fmt.Sprintf("I am interested in enrolling for %s. Please contact me with enrollment details.", intent.Course.Title),
		CreatedAt: s.now().UTC(),
	}

	if err := s.inquiries.Create(ctx, &inquiry); err != nil {
		s.logger.Error("inquiry submission failed", zap.String("course", intent.Course.Title), zap.Error(err))
		return failedOutcome(appErrors.Reason(err, "failed to submit inquiry"))
	}

	if s.notifier != nil {
		s.notifier.Notify(inquiry)
	}

	s.logger.Info("inquiry submitted", zap.String("inquiry_id", inquiry.ID), zap.String("course", intent.Course.Title))
	return models.EnrollmentOutcome{Kind: models.OutcomeInquirySubmitted}
}

func (s *EnrollmentService) executeEnrollment(ctx context.Context, intent *models.EnrollmentIntent) models.EnrollmentOutcome {
	now := s.now()
	batch := intent.Batch
	if batch == nil {
		batch = s.defaultBatch(now)
	}

	enrollment := &models.Enrollment{
		ID:              newEnrollmentID(now),
		UserID:          intent.User.ID,
		UserEmail:       intent.User.Email,
		CourseID:        intent.Course.ID,
		CourseShortForm: intent.Course.ShortForm,
		CourseTitle:     intent.Course.Title,
		Batch:           *batch,
		Status:          models.EnrollmentStatusWaiting,
		EnrolledAt:      now.UTC(),
	}

	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		s.logger.Error("enrollment creation failed", zap.String("course_id", intent.Course.ID), zap.Error(err))
		return failedOutcome(appErrors.Reason(err, "failed to enroll"))
	}

	if intent.Course.Free() {
		s.logger.Info("free enrollment completed", zap.String("enrollment_id", enrollment.ID))
		return models.EnrollmentOutcome{Kind: models.OutcomeEnrolledFree, EnrollmentID: enrollment.ID}
	}

	return s.initiatePayment(ctx, intent, enrollment)
}

// initiatePayment runs the paid branch. The enrollment record already
// exists at this point; when payment initiation fails the record is
// marked PAYMENT_FAILED and left in place. There is no compensating
// rollback.
func (s *EnrollmentService) initiatePayment(ctx context.Context, intent *models.EnrollmentIntent, enrollment *models.Enrollment) models.EnrollmentOutcome {
	payer := intent.User.Email
	if payer == "" {
		payer = "guest"
	}

	if s.gateway == nil {
		s.markPaymentFailed(ctx, enrollment.ID)
		return failedOutcome("payment gateway is not configured")
	}

	session, err := s.gateway.Initiate(ctx, payment.Request{
		OrderID:     enrollment.ID,
		Amount:      intent.Course.Price,
		PayerID:     payer,
		PayerEmail:  intent.User.Email,
		Description: fmt.Sprintf("Enrollment - %s", intent.Course.Title),
	})
	if err != nil {
		s.logger.Error("payment initiation failed",
			zap.String("enrollment_id", enrollment.ID),
			zap.Float64("amount", intent.Course.Price),
			zap.Error(err))
		s.markPaymentFailed(ctx, enrollment.ID)
		return failedOutcome(appErrors.Reason(err, "failed to initiate payment"))
	}
	if session.RedirectURL == "" {
		s.markPaymentFailed(ctx, enrollment.ID)
		return failedOutcome("payment gateway returned no redirect url")
	}

	s.logger.Info("enrollment pending payment",
		zap.String("enrollment_id", enrollment.ID),
		zap.Float64("amount", intent.Course.Price))
	return models.EnrollmentOutcome{
		Kind:         models.OutcomeEnrolledPendingPayment,
		EnrollmentID: enrollment.ID,
		PaymentURL:   session.RedirectURL,
	}
}

func (s *EnrollmentService) markPaymentFailed(ctx context.Context, enrollmentID string) {
	if err := s.enrollments.UpdateStatus(ctx, enrollmentID, models.EnrollmentStatusPaymentFailed); err != nil {
		s.logger.Warn("failed to mark enrollment payment-failed", zap.String("enrollment_id", enrollmentID), zap.Error(err))
	}
}

func (s *EnrollmentService) defaultBatch(now time.Time) *models.BatchDetails {
	return &models.BatchDetails{
		BatchID:   "default",
		BatchName: "Standard Batch",
		StartDate: now.Format("2006-01-02"),
		EndDate:   now.Add(defaultBatchSpan).Format("2006-01-02"),
	}
}

// newEnrollmentID mirrors the legacy identifier scheme: EID, the
// submission date, and five random uppercase hex characters.
func newEnrollmentID(now time.Time) string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	suffix := strings.ToUpper(hex.EncodeToString(buf))[:5]
	return "EID" + now.Format("20060102") + suffix
}

func failedOutcome(reason string) models.EnrollmentOutcome {
	return models.EnrollmentOutcome{Kind: models.OutcomeFailed, Reason: reason}
}
