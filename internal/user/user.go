package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user that may log into the service
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Admin        bool      `json:"is_admin"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
