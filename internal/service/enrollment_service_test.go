package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sit-academy/enrollment-api/internal/models"
	"github.com/sit-academy/enrollment-api/pkg/payment"
)

type mockInquiryRepo struct {
	created []models.Inquiry
	err     error
}

func (m *mockInquiryRepo) Create(_ context.Context, inquiry *models.Inquiry) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *inquiry)
	return nil
}

type mockEnrollmentRepo struct {
	created       []models.Enrollment
	createErr     error
	statusUpdates map[string]models.EnrollmentStatus
	statusErr     error
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, *enrollment)
	return nil
}

func (m *mockEnrollmentRepo) UpdateStatus(_ context.Context, id string, status models.EnrollmentStatus) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	if m.statusUpdates == nil {
		m.statusUpdates = make(map[string]models.EnrollmentStatus)
	}
	m.statusUpdates[id] = status
	return nil
}

type mockGateway struct {
	calls   int
	lastReq payment.Request
	session *payment.Session
	err     error
}

func (m *mockGateway) Initiate(_ context.Context, req payment.Request) (*payment.Session, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

type mockNotifier struct {
	notified []models.Inquiry
}

func (m *mockNotifier) Notify(inquiry models.Inquiry) {
	m.notified = append(m.notified, inquiry)
}

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	fixed := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return fixed }
}

func authenticatedIntent(price float64, batch *models.BatchDetails) *models.EnrollmentIntent {
	return &models.EnrollmentIntent{
		Path:   models.PathEnrollment,
		Course: models.Course{ID: "aws-fundamentals", Title: "AWS Fundamentals", ShortForm: "AWS", Price: price},
		Batch:  batch,
		Auth:   models.AuthStateAuthenticated,
		User:   &models.UserInfo{ID: "usr-1", Email: "student@example.com"},
	}
}

func TestExecuteInquiry(t *testing.T) {
	inquiries := &mockInquiryRepo{}
	notifier := &mockNotifier{}
	svc := NewEnrollmentService(inquiries, &mockEnrollmentRepo{}, nil, notifier, nil, zap.NewNop())

	outcome := svc.Execute(context.Background(), &models.EnrollmentIntent{
		Path:    models.PathInquiry,
		Course:  models.Course{Title: "AWS Fundamentals"},
		Auth:    models.AuthStateGuest,
		Contact: models.GuestContact{Name: "Asha Rao", Email: "asha@example.com", Phone: "+91-9000000000"},
	})

	assert.Equal(t, models.OutcomeInquirySubmitted, outcome.Kind)
	require.Len(t, inquiries.created, 1)
	inquiry := inquiries.created[0]
	assert.Equal(t, "I am interested in enrolling for AWS Fundamentals. Please contact me with enrollment details.", inquiry.Message)
	assert.Equal(t, "Asha Rao", inquiry.Name)
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, inquiry.ID, notifier.notified[0].ID)
}

func TestExecuteInquiryStoreFailure(t *testing.T) {
	inquiries := &mockInquiryRepo{err: errors.New("connection refused")}
	notifier := &mockNotifier{}
	svc := NewEnrollmentService(inquiries, &mockEnrollmentRepo{}, nil, notifier, nil, zap.NewNop())

	outcome := svc.Execute(context.Background(), &models.EnrollmentIntent{
		Path:    models.PathInquiry,
		Course:  models.Course{Title: "AWS Fundamentals"},
		Contact: models.GuestContact{Name: "Asha Rao", Email: "asha@example.com", Phone: "+91-9000000000"},
	})

	assert.Equal(t, models.OutcomeFailed, outcome.Kind)
	assert.NotEmpty(t, outcome.Reason)
	assert.Empty(t, notifier.notified)
}

func TestExecuteFreeEnrollment(t *testing.T) {
	enrollments := &mockEnrollmentRepo{}
	gateway := &mockGateway{session: &payment.Session{RedirectURL: "https://pay.example.com/x"}}
	svc := NewEnrollmentService(&mockInquiryRepo{}, enrollments, gateway, nil, nil, zap.NewNop())
	svc.now = fixedClock(t)

	outcome := svc.Execute(context.Background(), authenticatedIntent(0, nil))

	assert.Equal(t, models.OutcomeEnrolledFree, outcome.Kind)
	assert.NotEmpty(t, outcome.EnrollmentID)
	assert.Empty(t, outcome.PaymentURL)
	assert.Zero(t, gateway.calls, "free enrollment must never touch the payment gateway")
	require.Len(t, enrollments.created, 1)
	assert.Equal(t, models.EnrollmentStatusWaiting, enrollments.created[0].Status)
}

func TestExecutePaidEnrollment(t *testing.T) {
	enrollments := &mockEnrollmentRepo{}
	gateway := &mockGateway{session: &payment.Session{Token: "tok-1", RedirectURL: "https://pay.example.com/x"}}
	svc := NewEnrollmentService(&mockInquiryRepo{}, enrollments, gateway, nil, nil, zap.NewNop())
	svc.now = fixedClock(t)

	outcome := svc.Execute(context.Background(), authenticatedIntent(15000, nil))

	assert.Equal(t, models.OutcomeEnrolledPendingPayment, outcome.Kind)
	assert.Equal(t, "https://pay.example.com/x", outcome.PaymentURL)
	assert.Equal(t, 1, gateway.calls)
	assert.Equal(t, outcome.EnrollmentID, gateway.lastReq.OrderID)
	assert.Equal(t, float64(15000), gateway.lastReq.Amount)
	assert.Equal(t, "student@example.com", gateway.lastReq.PayerID)
	assert.Empty(t, enrollments.statusUpdates)
}

func TestExecutePaidEnrollmentGuestPayer(t *testing.T) {
	intent := authenticatedIntent(15000, nil)
	intent.User.Email = ""
	gateway := &mockGateway{session: &payment.Session{RedirectURL: "https://pay.example.com/x"}}
	svc := NewEnrollmentService(&mockInquiryRepo{}, &mockEnrollmentRepo{}, gateway, nil, nil, zap.NewNop())

	svc.Execute(context.Background(), intent)

	assert.Equal(t, "guest", gateway.lastReq.PayerID)
}

func TestExecuteEnrollmentCreateFailure(t *testing.T) {
	enrollments := &mockEnrollmentRepo{createErr: errors.New("duplicate key")}
	gateway := &mockGateway{session: &payment.Session{RedirectURL: "https://pay.example.com/x"}}
	svc := NewEnrollmentService(&mockInquiryRepo{}, enrollments, gateway, nil, nil, zap.NewNop())

	outcome := svc.Execute(context.Background(), authenticatedIntent(15000, nil))

	assert.Equal(t, models.OutcomeFailed, outcome.Kind)
	assert.Zero(t, gateway.calls, "payment must not start when enrollment creation fails")
	assert.Empty(t, enrollments.statusUpdates)
}

func TestExecutePaidEnrollmentPaymentFailure(t *testing.T) {
	enrollments := &mockEnrollmentRepo{}
	gateway := &mockGateway{err: errors.New("midtrans unavailable")}
	svc := NewEnrollmentService(&mockInquiryRepo{}, enrollments, gateway, nil, nil, zap.NewNop())

	outcome := svc.Execute(context.Background(), authenticatedIntent(15000, nil))

	assert.Equal(t, models.OutcomeFailed, outcome.Kind)
	// The created record stays; only its status flips. No rollback.
	require.Len(t, enrollments.created, 1)
	created := enrollments.created[0]
	assert.Equal(t, models.EnrollmentStatusPaymentFailed, enrollments.statusUpdates[created.ID])
}

func TestExecutePaidEnrollmentNoGateway(t *testing.T) {
	enrollments := &mockEnrollmentRepo{}
	svc := NewEnrollmentService(&mockInquiryRepo{}, enrollments, nil, nil, nil, zap.NewNop())

	outcome := svc.Execute(context.Background(), authenticatedIntent(15000, nil))

	assert.Equal(t, models.OutcomeFailed, outcome.Kind)
	require.Len(t, enrollments.created, 1)
	assert.Equal(t, models.EnrollmentStatusPaymentFailed, enrollments.statusUpdates[enrollments.created[0].ID])
}

func TestExecutePaidEnrollmentEmptyRedirect(t *testing.T) {
	enrollments := &mockEnrollmentRepo{}
	gateway := &mockGateway{session: &payment.Session{Token: "tok-1"}}
	svc := NewEnrollmentService(&mockInquiryRepo{}, enrollments, gateway, nil, nil, zap.NewNop())

	outcome := svc.Execute(context.Background(), authenticatedIntent(15000, nil))

	assert.Equal(t, models.OutcomeFailed, outcome.Kind)
	require.Len(t, enrollments.created, 1)
	assert.Equal(t, models.EnrollmentStatusPaymentFailed, enrollments.statusUpdates[enrollments.created[0].ID])
}

func TestExecuteEnrollmentDefaultBatch(t *testing.T) {
	enrollments := &mockEnrollmentRepo{}
	svc := NewEnrollmentService(&mockInquiryRepo{}, enrollments, nil, nil, nil, zap.NewNop())
	svc.now = fixedClock(t)

	svc.Execute(context.Background(), authenticatedIntent(0, nil))

	require.Len(t, enrollments.created, 1)
	batch := enrollments.created[0].Batch
	assert.Equal(t, "default", batch.BatchID)
	assert.Equal(t, "Standard Batch", batch.BatchName)
	assert.Equal(t, "2026-03-15", batch.StartDate)
	assert.Equal(t, "2026-06-13", batch.EndDate)
}

func TestExecuteEnrollmentKeepsChosenBatch(t *testing.T) {
	enrollments := &mockEnrollmentRepo{}
	svc := NewEnrollmentService(&mockInquiryRepo{}, enrollments, nil, nil, nil, zap.NewNop())

	chosen := &models.BatchDetails{BatchID: "b-7", BatchName: "March Evening", StartDate: "2026-03-01", EndDate: "2026-05-30"}
	svc.Execute(context.Background(), authenticatedIntent(0, chosen))

	require.Len(t, enrollments.created, 1)
	assert.Equal(t, *chosen, enrollments.created[0].Batch)
}

func TestExecuteEnrollmentFullBatchStillPermitted(t *testing.T) {
	// Seat figures are advisory to the UI; the workflow accepts a
	// submission against a batch already at capacity.
	require.True(t, models.BatchFull(25, 25))

	enrollments := &mockEnrollmentRepo{}
	svc := NewEnrollmentService(&mockInquiryRepo{}, enrollments, nil, nil, nil, zap.NewNop())

	full := &models.BatchDetails{BatchID: "b-full", BatchName: "March Evening", StartDate: "2026-03-01", EndDate: "2026-05-30"}
	outcome := svc.Execute(context.Background(), authenticatedIntent(0, full))

	assert.Equal(t, models.OutcomeEnrolledFree, outcome.Kind)
	assert.Len(t, enrollments.created, 1)
}

func TestExecuteEnrollmentIDFormat(t *testing.T) {
	enrollments := &mockEnrollmentRepo{}
	svc := NewEnrollmentService(&mockInquiryRepo{}, enrollments, nil, nil, nil, zap.NewNop())
	svc.now = fixedClock(t)

	outcome := svc.Execute(context.Background(), authenticatedIntent(0, nil))

	assert.Regexp(t, regexp.MustCompile(`^EID20260315[0-9A-F]{5}$`), outcome.EnrollmentID)
}

func TestExecuteUnknownPath(t *testing.T) {
	svc := NewEnrollmentService(&mockInquiryRepo{}, &mockEnrollmentRepo{}, nil, nil, nil, zap.NewNop())

	outcome := svc.Execute(context.Background(), &models.EnrollmentIntent{Path: models.EnrollmentPath("TRANSFER")})

	assert.Equal(t, models.OutcomeFailed, outcome.Kind)
}
