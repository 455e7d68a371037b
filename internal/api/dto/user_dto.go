package dto

import "github.com/gamerhub/marketplace/internal/domain"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username string `json:"usuario"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IdentityResponse wraps the current identity.
type IdentityResponse struct {
	User domain.Identity `json:"user"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
