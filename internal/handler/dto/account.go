// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse carries the confirmation message and the bearer token.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
