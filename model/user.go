// file: model/user.go

package model

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a registered reader of the catalog.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never exposed in responses
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
