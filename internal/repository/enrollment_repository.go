package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sit-academy/enrollment-api/internal/models"
)

// EnrollmentRepository handles persistence of enrollments and the
// per-batch roster view used by batch analysis.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts a new enrollment record.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `INSERT INTO enrollments
        (id, user_id, user_email, course_id, course_short_form, course_title,
         batch_id, batch_name, batch_start, batch_end, status, enrolled_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		enrollment.ID,
		enrollment.UserID,
		enrollment.UserEmail,
		enrollment.CourseID,
		enrollment.CourseShortForm,
		enrollment.CourseTitle,
		enrollment.Batch.BatchID,
		enrollment.Batch.BatchName,
		enrollment.Batch.StartDate,
		enrollment.Batch.EndDate,
		enrollment.Status,
		enrollment.EnrolledAt,
	)
	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// UpdateStatus transitions an enrollment's lifecycle state.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus) error {
	const query = `UPDATE enrollments SET status = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update enrollment status: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("enrollment %s not found", id)
	}
	return nil
}

// ListByBatch returns the roster for one batch: each enrollment joined
// with the student's name and progress, attendance and fee state.
func (r *EnrollmentRepository) ListByBatch(ctx context.Context, batchID string) ([]models.BatchStudent, error) {
	const query = `SELECT e.id AS enrollment_id, COALESCE(u.full_name, e.user_email) AS student_name,
        e.user_email AS student_email, e.status, e.progress, e.attendance, e.fee_paid, e.payment_done
        FROM enrollments e
        LEFT JOIN users u ON u.id = e.user_id
        WHERE e.batch_id = $1
        ORDER BY e.enrolled_at`
	var roster []models.BatchStudent
	if err := r.db.SelectContext(ctx, &roster, query, batchID); err != nil {
		return nil, fmt.Errorf("list batch roster: %w", err)
	}
	return roster, nil
}

// CountByBatch returns the number of seats taken in a batch.
func (r *EnrollmentRepository) CountByBatch(ctx context.Context, batchID string) (int, error) {
	const query = `SELECT COUNT(*) FROM enrollments WHERE batch_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, batchID); err != nil {
		return 0, fmt.Errorf("count batch enrollments: %w", err)
	}
	return count, nil
}
