package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the access-token payload. UserID is the authoritative
// identity claim; Name and Role ride along so the refresh flow can rebuild
// the principal without a database round-trip.
type AppClaims struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
