// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when the email/password pair does not
	// match a stored user. Unknown email and wrong password are deliberately
	// indistinguishable to prevent user enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when a bearer token is unknown or revoked.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenNotFound is returned by token repositories when no association
	// exists for the given token digest.
	ErrTokenNotFound = errors.New("token not found")

	// ErrWeakPassword is returned when a supplied password does not meet the
	// minimum length requirement.
	ErrWeakPassword = errors.New("password too weak")
)
