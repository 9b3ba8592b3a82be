package models

import "github.com/golang-jwt/jwt/v5"

type UserClaims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthUser is the identity stashed into the request context by the auth middleware.
type AuthUser struct {
	UserID string
	Name   string
	Role   string
}
