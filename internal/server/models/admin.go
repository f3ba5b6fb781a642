package models

import "time"

// Admin is an account allowed to use the admin endpoints.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
