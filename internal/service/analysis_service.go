package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sit-academy/enrollment-api/internal/models"
	appErrors "github.com/sit-academy/enrollment-api/pkg/errors"
)

type rosterReader interface {
	ListByBatch(ctx context.Context, batchID string) ([]models.BatchStudent, error)
}

type batchInfoReader interface {
	FindBatchInfo(ctx context.Context, batchID string) (*models.BatchInfo, error)
}

// AnalysisService derives per-batch statistics and revenue from the
// enrollment roster. The fold itself is pure and recomputed on every
// cache miss; cached results are the pre-aggregated read path.
type AnalysisService struct {
	roster   rosterReader
	batches  batchInfoReader
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewAnalysisService constructs an analysis service.
func NewAnalysisService(roster rosterReader, batches batchInfoReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{roster: roster, batches: batches, cache: cache, metrics: metrics, logger: logger, cacheTTL: cacheTTL}
}

// Aggregate folds a roster into batch statistics and revenue figures.
// It performs no I/O and is total on any roster, including an empty
// one: the averages are zero rather than a division by zero.
func Aggregate(roster []models.BatchStudent) (models.BatchStatistics, models.BatchRevenue) {
	stats := models.BatchStatistics{TotalStudents: len(roster)}
	var revenue models.BatchRevenue

	var progressSum, attendanceSum float64
	for _, student := range roster {
		if student.Active() {
			stats.ActiveStudents++
		}
		if student.Completed() {
			stats.CompletedStudents++
		}
		progressSum += student.Progress
		attendanceSum += student.Attendance

		revenue.TotalRevenue += student.FeePaid
		if student.PaymentDone {
			revenue.PaidStudents++
		} else {
			revenue.PendingPayments++
		}
	}

	if len(roster) > 0 {
		stats.AverageProgress = progressSum / float64(len(roster))
		stats.AttendanceRate = attendanceSum / float64(len(roster))
	}
	return stats, revenue
}

// Analyze computes the full analysis for one batch. The boolean
// reports whether the result came from cache.
func (s *AnalysisService) Analyze(ctx context.Context, batchID string) (*models.BatchAnalysis, bool, error) {
	cacheKey := fmt.Sprintf("analysis:batch:%s", batchID)
	var cached models.BatchAnalysis
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	info, err := s.batches.FindBatchInfo(ctx, batchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "batch not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}

	start := time.Now()
	roster, err := s.roster.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch roster")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("batch_roster", time.Since(start))
	}

	stats, revenue := Aggregate(roster)
	analysis := &models.BatchAnalysis{BatchInfo: *info, Statistics: stats, Revenue: revenue}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, analysis, s.cacheTTL); err != nil {
			s.logger.Warn("cache batch analysis", zap.String("batch_id", batchID), zap.Error(err))
		}
	}
	return analysis, false, nil
}

// Students returns the raw roster for one batch.
func (s *AnalysisService) Students(ctx context.Context, batchID string) ([]models.BatchStudent, error) {
	roster, err := s.roster.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch roster")
	}
	return roster, nil
}

// InvalidateBatch drops any cached analysis for the batch.
func (s *AnalysisService) InvalidateBatch(ctx context.Context, batchID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("analysis:batch:%s", batchID)); err != nil {
		s.logger.Warn("invalidate batch analysis cache", zap.String("batch_id", batchID), zap.Error(err))
	}
}
