package auth

import (
	"time"
)

// Constants for error messages
const (
	ErrInvalidCredentials  = "Invalid credentials"
	ErrTokenGenerateFailed = "Failed to generate token"
)

// LoginRequest model for login endpoints
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse model for authentication responses
type AuthResponse struct {
	Token         string     `json:"token"`
	UserID        string     `json:"user_id"`
	Email         string     `json:"email"`
	Nickname      string     `json:"nickname"`
	IsAdmin       bool       `json:"is_admin"`
	LastConnected *time.Time `json:"last_connected"`
}
