package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sit-academy/enrollment-api/internal/models"
	appErrors "github.com/sit-academy/enrollment-api/pkg/errors"
)

const catalogCacheKey = "catalog:course-batch-details"

type catalogRepository interface {
	ListWithBatches(ctx context.Context) ([]models.CourseDetail, error)
	ListBatchSummaries(ctx context.Context) ([]models.BatchSummary, error)
}

// CatalogService serves the public course-and-batch listing and the
// admin batch overview.
type CatalogService struct {
	repo     catalogRepository
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

// NewCatalogService constructs a catalog service.
func NewCatalogService(repo catalogRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, cache: cache, metrics: metrics, logger: logger, cacheTTL: cacheTTL, now: time.Now}
}

// CourseAndBatchDetails returns every active course with its batches,
// each batch carrying live seat figures. The boolean reports whether
// the listing came from cache.
func (s *CatalogService) CourseAndBatchDetails(ctx context.Context) ([]models.CourseDetail, bool, error) {
	var cached []models.CourseDetail
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, catalogCacheKey, &cached); err == nil && hit {
			return cached, true, nil
		}
	}

	start := time.Now()
	details, err := s.repo.ListWithBatches(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course catalog")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("catalog_listing", time.Since(start))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, details, s.cacheTTL); err != nil {
			s.logger.Warn("cache catalog listing", zap.Error(err))
		}
	}
	return details, false, nil
}

// BatchSummaries returns the admin batch overview with schedule status
// derived against today's date.
func (s *CatalogService) BatchSummaries(ctx context.Context) ([]models.BatchSummary, error) {
	summaries, err := s.repo.ListBatchSummaries(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batches")
	}

	today := s.now().Format("2006-01-02")
	for i := range summaries {
		summaries[i].Status = scheduleStatus(summaries[i].StartDate, summaries[i].EndDate, today)
	}
	return summaries, nil
}

// scheduleStatus classifies a batch by comparing ISO dates textually,
// the same way the legacy dashboard did.
func scheduleStatus(start, end, today string) models.BatchStatus {
	switch {
	case start <= today && today <= end:
		return models.BatchStatusOngoing
	case today > end:
		return models.BatchStatusCompleted
	default:
		return models.BatchStatusUpcoming
	}
}
