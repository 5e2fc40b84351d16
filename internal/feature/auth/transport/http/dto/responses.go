package dto

import "account_backend/internal/feature/auth/domain/entity"

// ErrorRes is the fixed error envelope for all failure responses.
type ErrorRes struct {
	Error string `json:"error"`
}

// MessageRes is a plain informational response.
type MessageRes struct {
	Message string `json:"message"`
}

// LoginRes represents the response for a successful login.
type LoginRes struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// RegisterRes represents the response for a successful registration.
// The token is included so a fresh account can call the API immediately.
type RegisterRes struct {
	Message string       `json:"message"`
	User    *entity.User `json:"user"`
	Token   string       `json:"token"`
}
