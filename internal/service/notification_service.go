package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sit-academy/enrollment-api/internal/models"
	"github.com/sit-academy/enrollment-api/pkg/jobs"
)

const jobKindInquiryFollowUp = "inquiry_follow_up"

// NotificationService dispatches inquiry follow-ups to a background
// worker queue so inquiry submission never waits on delivery. Actual
// mail transport sits behind the admissions tooling; this service
// records the hand-off.
type NotificationService struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewNotificationService builds the service and its queue.
func NewNotificationService(logger *zap.Logger, cfg jobs.QueueConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{logger: logger}
	cfg.Logger = logger
	s.queue = jobs.NewQueue("inquiry-notifications", s.handle, cfg)
	return s
}

// Start launches the worker pool.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the worker pool.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Notify enqueues a follow-up for a submitted inquiry. Dispatch is
// best-effort: a full queue is logged, not surfaced to the visitor.
func (s *NotificationService) Notify(inquiry models.Inquiry) {
	job := jobs.Job{ID: inquiry.ID, Kind: jobKindInquiryFollowUp, Payload: inquiry}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue inquiry follow-up", zap.String("inquiry_id", inquiry.ID), zap.Error(err))
	}
}

func (s *NotificationService) handle(ctx context.Context, job jobs.Job) error {
	inquiry, ok := job.Payload.(models.Inquiry)
	if !ok {
		s.logger.Error("unexpected inquiry payload", zap.String("job_id", job.ID))
		return nil
	}
	s.logger.Info("inquiry follow-up dispatched",
		zap.String("inquiry_id", inquiry.ID),
		zap.String("email", inquiry.Email),
		zap.String("course", inquiry.Course))
	return nil
}
