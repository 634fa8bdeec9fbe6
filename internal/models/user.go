package models

import "time"

// User represents a row of the users table.
type User struct {
	UserID       string    `db:"user_id"`
	Username     string    `db:"username"`
	PasswordHash *string   `db:"password_hash"`
	Name         string    `db:"name"`
	Role         string    `db:"role"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
}
