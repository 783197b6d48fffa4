package dto

import "time"

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Operator string `json:"operator" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
