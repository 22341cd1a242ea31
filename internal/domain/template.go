package domain

import "time"

// EmailTemplate is a named body with {{key}} placeholders, owned by
// the database and read-only to this service.
type EmailTemplate struct {
	ID        string
	Name      string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
