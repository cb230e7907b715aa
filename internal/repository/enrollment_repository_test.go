package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/sit-academy/enrollment-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestEnrollmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	enrollment := &models.Enrollment{
		ID:              "EID20250101ABCDE",
		UserID:          "usr-1",
		UserEmail:       "student@example.com",
		CourseID:        "aws-fundamentals",
		CourseShortForm: "AWS",
		CourseTitle:     "AWS Fundamentals",
		Batch: models.BatchDetails{
			BatchID:   "batch-1",
			BatchName: "Morning Batch",
			StartDate: "2025-01-10",
			EndDate:   "2025-04-10",
		},
		Status:     models.EnrollmentStatusWaiting,
		EnrolledAt: time.Now().UTC(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollments")).
		WithArgs(
			enrollment.ID, enrollment.UserID, enrollment.UserEmail,
			enrollment.CourseID, enrollment.CourseShortForm, enrollment.CourseTitle,
			enrollment.Batch.BatchID, enrollment.Batch.BatchName,
			enrollment.Batch.StartDate, enrollment.Batch.EndDate,
			enrollment.Status, enrollment.EnrolledAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), enrollment))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET status = $2 WHERE id = $1")).
		WithArgs("EID20250101ABCDE", models.EnrollmentStatusPaymentFailed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "EID20250101ABCDE", models.EnrollmentStatusPaymentFailed)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryUpdateStatusMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET status = $2 WHERE id = $1")).
		WithArgs("missing", models.EnrollmentStatusApproved).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.EnrollmentStatusApproved)
	require.Error(t, err)
}

func TestEnrollmentRepositoryListByBatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"enrollment_id", "student_name", "student_email", "status", "progress", "attendance", "fee_paid", "payment_done"}).
		AddRow("enr-1", "Asha Rao", "asha@example.com", models.EnrollmentStatusApproved, 65.0, 90.0, 15000.0, true).
		AddRow("enr-2", "Vikram Shah", "vikram@example.com", models.EnrollmentStatusWaiting, 0.0, 0.0, 0.0, false)
	mock.ExpectQuery("SELECT e.id AS enrollment_id").
		WithArgs("batch-1").
		WillReturnRows(rows)

	roster, err := repo.ListByBatch(context.Background(), "batch-1")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	require.Equal(t, "Asha Rao", roster[0].StudentName)
	require.True(t, roster[0].PaymentDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCountByBatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enrollments WHERE batch_id = $1")).
		WithArgs("batch-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	count, err := repo.CountByBatch(context.Background(), "batch-1")
	require.NoError(t, err)
	require.Equal(t, 25, count)
}
