// Package db opens and migrates the relational database connection.
package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"account_backend/internal/platform/config"
)

// Open connects to PostgreSQL using the given configuration, retrying for up
// to a minute so the service survives a database that is still starting.
// When cfg.RunMigrations is set, the given models are auto-migrated.
func Open(cfg *config.Config, models ...any) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var (
		conn *gorm.DB
		err  error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := conn.AutoMigrate(models...); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return conn
}
