// Package bootstrap contains one-time startup tasks.
package bootstrap

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"
	"account_backend/internal/platform/config"
)

// Admin creates the initial administrator account when none exists.
// It is idempotent: if a user with the configured admin email already exists,
// it does nothing. Without an administrator no user management endpoint is
// usable, since only admins may create further users.
func Admin(ctx context.Context, users usecase.UserRepository, hasher usecase.Hasher, cfg *config.Config) error {
	if !cfg.BootstrapAdminEnabled {
		return nil
	}

	_, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, usecase.ErrUserNotFound) {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}

	password := cfg.AdminPassword
	generated := false
	if password == "" {
		password, err = generatePassword(32)
		if err != nil {
			return err
		}
		generated = true
	}

	hashed, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &entity.User{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: hashed,
		IsAdmin:  true,
	}
	if err := users.Create(ctx, admin); err != nil {
		// Another replica may have won the race; that is fine.
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create initial admin: %w", err)
	}

	if generated {
		slog.Info("initial admin created", "email", admin.Email, "password", password)
	} else {
		slog.Info("initial admin created", "email", admin.Email)
	}
	return nil
}

func generatePassword(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("password length must be positive")
	}
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw)[:length], nil
}
