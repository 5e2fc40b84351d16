package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsDuplicateKey reports whether err is a driver-specific unique constraint
// violation. It recognizes PostgreSQL (SQLSTATE 23505) and SQLite
// ("UNIQUE constraint failed"), the two drivers this service runs against.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
