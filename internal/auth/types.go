package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// represents Supabase JWT claims; the user id lives in the standard `sub` claim
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim
func (c *Claims) UserID() string {
	return c.Subject
}
