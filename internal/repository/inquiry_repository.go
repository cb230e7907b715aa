package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sit-academy/enrollment-api/internal/models"
)

// InquiryRepository handles persistence of guest inquiries.
type InquiryRepository struct {
	db *sqlx.DB
}

// NewInquiryRepository constructs the repository.
func NewInquiryRepository(db *sqlx.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// Create inserts a new inquiry record.
func (r *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	const query = `INSERT INTO inquiries (id, name, email, phone, course, message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		inquiry.ID,
		inquiry.Name,
		inquiry.Email,
		inquiry.Phone,
		inquiry.Course,
		inquiry.Message,
		inquiry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}
	return nil
}

// List returns the latest inquiries for the admin follow-up view.
func (r *InquiryRepository) List(ctx context.Context, limit int) ([]models.Inquiry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const query = `SELECT id, name, email, phone, course, message, created_at
        FROM inquiries ORDER BY created_at DESC LIMIT $1`
	var inquiries []models.Inquiry
	if err := r.db.SelectContext(ctx, &inquiries, query, limit); err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return inquiries, nil
}
