package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sit-academy/enrollment-api/internal/models"
	appErrors "github.com/sit-academy/enrollment-api/pkg/errors"
)

type inquiryReader interface {
	List(ctx context.Context, limit int) ([]models.Inquiry, error)
}

// InquiryService serves the admin view over submitted inquiries.
type InquiryService struct {
	repo   inquiryReader
	logger *zap.Logger
}

// NewInquiryService constructs an inquiry service.
func NewInquiryService(repo inquiryReader, logger *zap.Logger) *InquiryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InquiryService{repo: repo, logger: logger}
}

// ListRecent returns the most recent inquiries, newest first.
func (s *InquiryService) ListRecent(ctx context.Context, limit int) ([]models.Inquiry, error) {
	inquiries, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inquiries")
	}
	return inquiries, nil
}
