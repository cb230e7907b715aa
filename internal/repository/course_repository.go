package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sit-academy/enrollment-api/internal/models"
)

// CourseRepository handles persistence of the course catalog and its
// scheduled batches.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID returns a single active course.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, title, short_form, price, category, duration, active FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListWithBatches returns every active course together with its
// batches. The enrolled figure per batch is derived live from the
// enrollments table so refetching always reflects recent activity.
func (r *CourseRepository) ListWithBatches(ctx context.Context) ([]models.CourseDetail, error) {
	const courseQuery = `SELECT id, title, short_form, price, category, duration, active
        FROM courses WHERE active = TRUE ORDER BY title`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, courseQuery); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	const batchQuery = `SELECT b.id, b.course_id, b.name, b.start_date, b.end_date, b.timing, b.mode, b.capacity,
        (SELECT COUNT(*) FROM enrollments e WHERE e.batch_id = b.id) AS enrolled
        FROM batches b ORDER BY b.start_date`
	var batches []models.Batch
	if err := r.db.SelectContext(ctx, &batches, batchQuery); err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	byCourse := make(map[string][]models.Batch, len(courses))
	for _, batch := range batches {
		byCourse[batch.CourseID] = append(byCourse[batch.CourseID], batch)
	}

	details := make([]models.CourseDetail, 0, len(courses))
	for _, course := range courses {
		details = append(details, models.CourseDetail{Course: course, Batches: byCourse[course.ID]})
	}
	return details, nil
}

// ListBatchSummaries returns every batch joined with its course title
// and live student count, for the admin batch listing.
func (r *CourseRepository) ListBatchSummaries(ctx context.Context) ([]models.BatchSummary, error) {
	const query = `SELECT b.id, b.course_id, b.name, b.start_date, b.end_date, b.timing, b.mode, b.capacity,
        (SELECT COUNT(*) FROM enrollments e WHERE e.batch_id = b.id) AS enrolled,
        c.title AS course_title,
        (SELECT COUNT(*) FROM enrollments e WHERE e.batch_id = b.id) AS students_count
        FROM batches b JOIN courses c ON c.id = b.course_id
        ORDER BY b.start_date DESC`
	var summaries []models.BatchSummary
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("list batch summaries: %w", err)
	}
	return summaries, nil
}

// FindBatchInfo returns the identifying view of one batch with its
// course context.
func (r *CourseRepository) FindBatchInfo(ctx context.Context, batchID string) (*models.BatchInfo, error) {
	const query = `SELECT b.id AS batch_id, c.id AS course_id, c.title AS course_title,
        b.start_date, b.end_date, b.timing, b.mode
        FROM batches b JOIN courses c ON c.id = b.course_id
        WHERE b.id = $1`
	row := r.db.QueryRowxContext(ctx, query, batchID)
	var info models.BatchInfo
	if err := row.Scan(&info.BatchID, &info.CourseID, &info.CourseTitle, &info.StartDate, &info.EndDate, &info.Timing, &info.Mode); err != nil {
		return nil, err
	}
	return &info, nil
}
