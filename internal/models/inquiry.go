package models

import "time"

// Inquiry is a non-binding contact request left by an unauthenticated
// visitor interested in a course. Inquiries are followed up by the
// admissions team, never converted automatically.
type Inquiry struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Course    string    `db:"course" json:"course"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
