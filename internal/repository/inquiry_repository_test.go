package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/sit-academy/enrollment-api/internal/models"
)

func TestInquiryRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInquiryRepository(db)

	inquiry := &models.Inquiry{
		ID:        "inq-1",
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		Phone:     "+91-9000000000",
		Course:    "AWS Fundamentals",
		Message:   "I am interested in enrolling for AWS Fundamentals. Please contact me with enrollment details.",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO inquiries")).
		WithArgs(inquiry.ID, inquiry.Name, inquiry.Email, inquiry.Phone, inquiry.Course, inquiry.Message, inquiry.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), inquiry))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInquiryRepositoryListClampsLimit(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInquiryRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "course", "message", "created_at"}).
		AddRow("inq-1", "Asha Rao", "asha@example.com", "+91-9000000000", "AWS Fundamentals", "hello", time.Now())
	mock.ExpectQuery("SELECT id, name, email, phone, course, message, created_at").
		WithArgs(50).
		WillReturnRows(rows)

	inquiries, err := repo.List(context.Background(), -1)
	require.NoError(t, err)
	require.Len(t, inquiries, 1)
}
