package model

import "time"

// User represents a registered Speeti customer.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Admin        bool
	CreatedAt    time.Time
}
