package dto

import "github.com/hackmap/hackmap/internal/app/models"

// SignupRequest is the registration payload
type SignupRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Username string `json:"username" example:"ada"`
	Password string `json:"password" example:"s3cret!pass"`
}

// LoginRequest is the credential payload for token issuance
type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"s3cret!pass"`
}

// AuthResponse carries a signed token together with the authenticated user
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
