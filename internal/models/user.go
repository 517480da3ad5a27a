package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by the backend-issued access token. UserID is the backend's
// opaque id, not a UUID.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
