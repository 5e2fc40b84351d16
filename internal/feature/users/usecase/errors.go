// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when the target user ID does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when a create or update would violate
	// email uniqueness.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrWeakPassword is returned when a supplied password does not meet the
	// minimum length requirement.
	ErrWeakPassword = errors.New("password too weak")
)
