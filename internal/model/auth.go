package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims is the JWT payload for catalog administrators
type AdminClaims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// SessionClaims is the JWT payload scoping a token to one assessment session
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	jwt.RegisteredClaims
}

// LoginRequest is the admin login body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful admin login
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}

// StartSessionResponse is returned when an assessment session is created
type StartSessionResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
}
